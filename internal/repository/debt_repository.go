package repository

import (
	"context"

	"github.com/sjperalta/debtbook-api/internal/models"
	"gorm.io/gorm"
)

type debtRepository struct {
	db *gorm.DB
}

// NewDebtRepository creates a new debt repository
func NewDebtRepository(db *gorm.DB) DebtRepository {
	return &debtRepository{db: db}
}

func (r *debtRepository) FindAll(ctx context.Context) ([]models.Debt, error) {
	var debts []models.Debt
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&debts).Error
	return debts, err
}

func (r *debtRepository) FindByID(ctx context.Context, id string) (*models.Debt, error) {
	var debt models.Debt
	if err := r.db.WithContext(ctx).First(&debt, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &debt, nil
}

func (r *debtRepository) Create(ctx context.Context, debt *models.Debt) error {
	return translate(r.db.WithContext(ctx).Create(debt).Error)
}

// Update replaces amount and note only
func (r *debtRepository) Update(ctx context.Context, debt *models.Debt) error {
	result := r.db.WithContext(ctx).
		Model(&models.Debt{}).
		Where("id = ?", debt.ID).
		Select("DebtAmount", "Note").
		Updates(debt)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *debtRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Debt{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
