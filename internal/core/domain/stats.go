package domain

import (
	"bytes"
	"encoding/json"
)

// EntryID accepts both numeric and string identifiers from the server.
type EntryID string

func (id *EntryID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = EntryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = EntryID(n.String())
	return nil
}

type Entry struct {
	ID           EntryID  `json:"id"`
	Satisfaction Category `json:"grau_satisfacao"`
	Date         Date     `json:"data"`
	Time         string   `json:"hora"`
	Weekday      string   `json:"dia_semana"`
}

type DailyCount struct {
	Date  Date `json:"data"`
	Count int  `json:"count"`
}

type Pagination struct {
	CurrentPage    int `json:"pagina_atual"`
	TotalPages     int `json:"total_paginas"`
	TotalRecords   int `json:"total_registos"`
	RecordsPerPage int `json:"registos_por_pagina"`
}

// StatsResponse is the payload of GET /api/stats. Aggregation happens on the
// server; the client only reshapes it for display.
type StatsResponse struct {
	Total         int              `json:"total"`
	Satisfaction  map[Category]int `json:"satisfacao"`
	DayOfWeek     map[string]int   `json:"dia_semana"`
	DailySeries   []DailyCount     `json:"avaliacoes_diarias"`
	RecentEntries []Entry          `json:"ultimas_avaliacoes"`
	Pagination    Pagination       `json:"paginacao"`
}

type DayStats struct {
	Date         Date             `json:"data"`
	Total        int              `json:"total"`
	Distribution map[Category]int `json:"distribuicao"`
}

type ComparisonResponse struct {
	Day1 DayStats `json:"dia1"`
	Day2 DayStats `json:"dia2"`
}

// StatsQuery is what the dashboard asks the server for. Start and End are
// sent only when both are set.
type StatsQuery struct {
	Page  int
	Start Date
	End   Date
}

func (q StatsQuery) HasRange() bool {
	return !q.Start.IsZero() && !q.End.IsZero()
}

// ExportRequest is the body of POST /api/export/txt. Empty dates are omitted
// from the JSON rather than sent as null.
type ExportRequest struct {
	Start string `json:"data_inicio,omitempty"`
	End   string `json:"data_fim,omitempty"`
}
