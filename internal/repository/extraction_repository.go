package repository

import (
	"context"

	"github.com/fadilmartias/harvard-cv/internal/model"
	"gorm.io/gorm"
)

type ExtractionRepository struct {
	db *gorm.DB
}

func NewExtractionRepository(db *gorm.DB) *ExtractionRepository {
	return &ExtractionRepository{db}
}

func (r *ExtractionRepository) CreateExtraction(ctx context.Context, extraction *model.Extraction) error {
	return r.db.WithContext(ctx).Create(extraction).Error
}

func (r *ExtractionRepository) UpdateExtraction(ctx context.Context, extraction *model.Extraction) error {
	return r.db.WithContext(ctx).Save(extraction).Error
}

func (r *ExtractionRepository) FindExtractionByID(ctx context.Context, id string) (*model.Extraction, error) {
	var extraction model.Extraction
	err := r.db.WithContext(ctx).First(&extraction, "id = ?", id).Error
	return &extraction, err
}

// ListExtractions returns one page of clientID's runs, newest first, plus
// their total count. Raw text and CV are not loaded.
func (r *ExtractionRepository) ListExtractions(ctx context.Context, clientID string, page, pageSize int) ([]model.Extraction, int64, error) {
	var (
		total       int64
		extractions []model.Extraction
	)
	db := r.db.WithContext(ctx).Model(&model.Extraction{}).Where("client_id = ?", clientID).Session(&gorm.Session{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Omit("raw_text", "cv").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&extractions).Error
	return extractions, total, err
}
