package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/testutil"
)

func newTestClient(t *testing.T) (*testutil.Backend, *surveyClient) {
	t.Helper()
	backend := testutil.NewBackend(t)
	log, _ := test.NewNullLogger()
	client := NewSurveyClient(backend.URL()+"/", 5*time.Second, log).(*surveyClient)
	return backend, client
}

func TestCastVote(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Reply("POST /api/vote", testutil.Reply{JSON: map[string]any{"success": true, "message": "Obrigado pelo seu feedback!"}})

	err := client.CastVote(context.Background(), domain.Satisfied)
	require.NoError(t, err)

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.JSONEq(t, `{"satisfacao":"satisfeito"}`, string(reqs[0].Body))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))

	_, err = uuid.Parse(reqs[0].RequestID)
	assert.NoError(t, err)
}

func TestCastVoteRejected(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Reply("POST /api/vote", testutil.Reply{Status: http.StatusBadRequest, JSON: map[string]string{"error": "Opção inválida"}})

	err := client.CastVote(context.Background(), domain.Unsatisfied)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRequestRejected)

	var statusErr *domain.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "Opção inválida", statusErr.Message)
}

func TestCastVoteConnectionError(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Server.Close()

	err := client.CastVote(context.Background(), domain.VerySatisfied)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.NotErrorIs(t, err, domain.ErrRequestRejected)
}

const statsPayload = `{
	"total": 3,
	"satisfacao": {"muito_satisfeito": 2, "insatisfeito": 1},
	"dia_semana": {"Segunda": 2, "Sexta": 1},
	"avaliacoes_diarias": [{"data": "2024-05-06", "count": 2}, {"data": "2024-05-10", "count": 1}],
	"ultimas_avaliacoes": [
		{"id": 7, "grau_satisfacao": "insatisfeito", "data": "2024-05-10", "hora": "10:15:00", "dia_semana": "Sexta"},
		{"id": "abc", "grau_satisfacao": "muito_satisfeito", "data": "2024-05-06", "hora": "09:00:00", "dia_semana": "Segunda"}
	],
	"paginacao": {"pagina_atual": 2, "total_paginas": 3, "total_registos": 45, "registos_por_pagina": 20}
}`

func TestStatsWithRange(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Reply("GET /api/stats", testutil.Reply{Raw: []byte(statsPayload), ContentType: "application/json"})

	start, _ := domain.ParseDate("2024-05-05")
	end, _ := domain.ParseDate("2024-05-10")
	stats, err := client.Stats(context.Background(), domain.StatsQuery{Page: 2, Start: start, End: end})
	require.NoError(t, err)

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "2", reqs[0].Query.Get("pagina"))
	assert.Equal(t, "2024-05-05", reqs[0].Query.Get("data_inicio"))
	assert.Equal(t, "2024-05-10", reqs[0].Query.Get("data_fim"))

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Satisfaction[domain.VerySatisfied])
	assert.Equal(t, 0, stats.Satisfaction[domain.Satisfied])
	assert.Equal(t, 2, stats.DayOfWeek["Segunda"])
	require.Len(t, stats.DailySeries, 2)
	assert.Equal(t, "2024-05-06", stats.DailySeries[0].Date.String())
	require.Len(t, stats.RecentEntries, 2)
	assert.Equal(t, domain.EntryID("7"), stats.RecentEntries[0].ID)
	assert.Equal(t, domain.EntryID("abc"), stats.RecentEntries[1].ID)
	assert.Equal(t, domain.Unsatisfied, stats.RecentEntries[0].Satisfaction)
	assert.Equal(t, domain.Pagination{CurrentPage: 2, TotalPages: 3, TotalRecords: 45, RecordsPerPage: 20}, stats.Pagination)
}

func TestStatsWithoutRangeSendsOnlyPage(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Reply("GET /api/stats", testutil.Reply{Raw: []byte(statsPayload), ContentType: "application/json"})

	start, _ := domain.ParseDate("2024-05-05")
	_, err := client.Stats(context.Background(), domain.StatsQuery{Page: 1, Start: start})
	require.NoError(t, err)

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "1", reqs[0].Query.Get("pagina"))
	assert.False(t, reqs[0].Query.Has("data_inicio"))
	assert.False(t, reqs[0].Query.Has("data_fim"))
}

func TestStatsRejectsUnknownCategory(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Reply("GET /api/stats", testutil.Reply{JSON: map[string]any{
		"total":      1,
		"satisfacao": map[string]int{"neutro": 1},
	}})

	_, err := client.Stats(context.Background(), domain.StatsQuery{Page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestCompare(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Reply("GET /api/stats/comparacao", testutil.Reply{JSON: map[string]any{
		"dia1": map[string]any{"data": "2024-05-01", "total": 4, "distribuicao": map[string]int{"satisfeito": 4}},
		"dia2": map[string]any{"data": "2024-05-02", "total": 1, "distribuicao": map[string]int{"insatisfeito": 1}},
	}})

	d1, _ := domain.ParseDate("2024-05-01")
	d2, _ := domain.ParseDate("2024-05-02")
	resp, err := client.Compare(context.Background(), d1, d2)
	require.NoError(t, err)

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "2024-05-01", reqs[0].Query.Get("dia1"))
	assert.Equal(t, "2024-05-02", reqs[0].Query.Get("dia2"))
	assert.Equal(t, 4, resp.Day1.Total)
	assert.Equal(t, 4, resp.Day1.Distribution[domain.Satisfied])
	assert.Equal(t, 1, resp.Day2.Distribution[domain.Unsatisfied])
}

func TestCompareRejectedCarriesServerMessage(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Reply("GET /api/stats/comparacao", testutil.Reply{Status: http.StatusInternalServerError, JSON: map[string]string{"error": "Banco de dados não disponível"}})

	d1, _ := domain.ParseDate("2024-05-01")
	d2, _ := domain.ParseDate("2024-05-02")
	_, err := client.Compare(context.Background(), d1, d2)

	var statusErr *domain.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "Banco de dados não disponível", statusErr.Message)
}

func TestExportTextOmitsEmptyDates(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Reply("POST /api/export/txt", testutil.Reply{Raw: []byte("RELATÓRIO\n"), ContentType: "text/plain"})

	data, err := client.ExportText(context.Background(), domain.ExportRequest{Start: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, "RELATÓRIO\n", string(data))

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	var body map[string]any
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	assert.Equal(t, map[string]any{"data_inicio": "2024-05-01"}, body)
}

func TestExportTextEmptyBody(t *testing.T) {
	backend, client := newTestClient(t)
	backend.Reply("POST /api/export/txt", testutil.Reply{Raw: []byte("x"), ContentType: "text/plain"})

	_, err := client.ExportText(context.Background(), domain.ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(backend.Requests()[0].Body))
}

func TestSpreadsheetURL(t *testing.T) {
	_, client := newTestClient(t)
	assert.Equal(t, client.baseURL+"/api/export/excel", client.SpreadsheetURL())
	assert.NotContains(t, client.SpreadsheetURL(), "//api")
}
