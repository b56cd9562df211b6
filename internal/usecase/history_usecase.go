package usecase

import (
	"context"

	"github.com/fadilmartias/harvard-cv/internal/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ExtractionReader is satisfied by *repository.ExtractionRepository.
type ExtractionReader interface {
	FindExtractionByID(ctx context.Context, id string) (*model.Extraction, error)
	ListExtractions(ctx context.Context, clientID string, page, pageSize int) ([]model.Extraction, int64, error)
}

// HistoryUsecase serves stored extraction runs.
type HistoryUsecase struct {
	reader ExtractionReader
}

func NewHistoryUsecase(reader ExtractionReader) *HistoryUsecase {
	return &HistoryUsecase{reader: reader}
}

func (uc *HistoryUsecase) GetResult(ctx context.Context, id string) (*model.Extraction, error) {
	return uc.reader.FindExtractionByID(ctx, id)
}

// List returns clientID's own runs only. It clamps page to >= 1 and pageSize
// to [1, 100] and returns the values it used.
func (uc *HistoryUsecase) List(ctx context.Context, clientID string, page, pageSize int) ([]model.Extraction, int64, int, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	items, total, err := uc.reader.ListExtractions(ctx, clientID, page, pageSize)
	return items, total, page, pageSize, err
}
