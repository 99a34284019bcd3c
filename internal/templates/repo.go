package templates

import (
	"context"

	"gorm.io/gorm"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
)

// Repository handles file template persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByType(ctx context.Context, templateType enums.TemplateType) (*models.FileTemplate, error)
	Save(ctx context.Context, template *models.FileTemplate) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a file template repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByType(ctx context.Context, templateType enums.TemplateType) (*models.FileTemplate, error) {
	var template models.FileTemplate
	if err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("template_type = ?", templateType).
		First(&template).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// Save replaces the template's columns wholesale inside one transaction, so
// a template is never observable with a partial column set.
func (r *repository) Save(ctx context.Context, template *models.FileTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", template.ID).
			Delete(&models.FileColumn{}).Error; err != nil {
			return err
		}
		return tx.Save(template).Error
	})
}
