package transfer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
)

// Repository handles transfer properties persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, props *models.TransferProperties) error
	Update(ctx context.Context, props *models.TransferProperties) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.TransferProperties, error)
	FindByFacility(ctx context.Context, facilityID uuid.UUID) (*models.TransferProperties, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a transfer properties repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, props *models.TransferProperties) error {
	return r.db.WithContext(ctx).Create(props).Error
}

func (r *repository) Update(ctx context.Context, props *models.TransferProperties) error {
	return r.db.WithContext(ctx).Save(props).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.TransferProperties, error) {
	var props models.TransferProperties
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&props).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &props, nil
}

func (r *repository) FindByFacility(ctx context.Context, facilityID uuid.UUID) (*models.TransferProperties, error) {
	var props models.TransferProperties
	if err := r.db.WithContext(ctx).
		Where("facility_id = ?", facilityID).
		First(&props).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &props, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.TransferProperties{}).Error
}
