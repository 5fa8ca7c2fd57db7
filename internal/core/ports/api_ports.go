package ports

import (
	"context"

	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/domain"
)

// SurveyAPI is the backend JSON API consumed by both front-ends.
type SurveyAPI interface {
	CastVote(ctx context.Context, category domain.Category) error
	Stats(ctx context.Context, query domain.StatsQuery) (*domain.StatsResponse, error)
	Compare(ctx context.Context, day1, day2 domain.Date) (*domain.ComparisonResponse, error)
	ExportText(ctx context.Context, req domain.ExportRequest) ([]byte, error)
	SpreadsheetURL() string
}
