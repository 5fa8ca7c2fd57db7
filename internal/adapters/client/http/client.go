package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxErrorBody  = 64 * 1024
	maxExportBody = 50 * 1024 * 1024
)

type surveyClient struct {
	baseURL string
	client  *http.Client
	log     logrus.FieldLogger
}

func NewSurveyClient(baseURL string, timeout time.Duration, log logrus.FieldLogger) ports.SurveyAPI {
	return &surveyClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *surveyClient) SpreadsheetURL() string {
	return c.baseURL + "/api/export/excel"
}

func (c *surveyClient) CastVote(ctx context.Context, category domain.Category) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/vote", nil, domain.VoteRequest{Satisfaction: category})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body domain.VoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode vote response: %w", domain.ErrConnection, err)
	}
	return nil
}

func (c *surveyClient) Stats(ctx context.Context, query domain.StatsQuery) (*domain.StatsResponse, error) {
	params := url.Values{}
	params.Set("pagina", strconv.Itoa(query.Page))
	if query.HasRange() {
		params.Set("data_inicio", query.Start.String())
		params.Set("data_fim", query.End.String())
	}

	resp, err := c.do(ctx, http.MethodGet, "/api/stats", params, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var stats domain.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &stats, nil
}

func (c *surveyClient) Compare(ctx context.Context, day1, day2 domain.Date) (*domain.ComparisonResponse, error) {
	params := url.Values{}
	params.Set("dia1", day1.String())
	params.Set("dia2", day2.String())

	resp, err := c.do(ctx, http.MethodGet, "/api/stats/comparacao", params, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var comparison domain.ComparisonResponse
	if err := json.NewDecoder(resp.Body).Decode(&comparison); err != nil {
		return nil, fmt.Errorf("decode comparison: %w", err)
	}
	return &comparison, nil
}

func (c *surveyClient) ExportText(ctx context.Context, req domain.ExportRequest) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/export/txt", nil, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExportBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read export: %w", domain.ErrConnection, err)
	}
	return data, nil
}

// do sends one request and returns the response only for 2xx statuses.
// Anything else is turned into a *domain.StatusError.
func (c *surveyClient) do(ctx context.Context, method, path string, params url.Values, body any) (*http.Response, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	})
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrConnection, method, path, err)
	}

	log.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	statusErr := &domain.StatusError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return statusErr
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		statusErr.Message = body.Error
	} else {
		statusErr.Message = strings.TrimSpace(string(raw))
	}
	return statusErr
}
