package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/pkg/enums"
)

// FileColumn is one output field definition within a file template.
// Position defines output order and is unique per template. Excluded
// columns stay stored but are dropped from the rendered file.
type FileColumn struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TemplateID     uuid.UUID           `gorm:"column:template_id;type:uuid;not null;uniqueIndex:ux_file_columns_template_position,priority:1"`
	ColumnLabel    string              `gorm:"column:column_label"`
	DataFieldLabel string              `gorm:"column:data_field_label"`
	DefaultColumn  bool                `gorm:"column:default_column;not null;default:false"`
	Include        bool                `gorm:"column:include;not null;default:true"`
	Position       int                 `gorm:"column:position;not null;uniqueIndex:ux_file_columns_template_position,priority:2"`
	Format         string              `gorm:"column:format"`
	Nested         enums.ColumnContext `gorm:"column:nested;type:text"`
	KeyPath        string              `gorm:"column:key_path"`
	Related        enums.RelatedEntity `gorm:"column:related;type:text"`
	RelatedKeyPath string              `gorm:"column:related_key_path"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (FileColumn) TableName() string {
	return "file_columns"
}
