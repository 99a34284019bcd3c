package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/pkg/enums"
)

// FileTemplate is the column-mapping configuration describing how an order
// is rendered as a delimited file. Exactly one template is active per
// template type.
type FileTemplate struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FilePrefix   string             `gorm:"column:file_prefix;not null"`
	HeaderInFile bool               `gorm:"column:header_in_file;not null;default:false"`
	TemplateType enums.TemplateType `gorm:"column:template_type;type:text;not null;unique"`
	Columns      []FileColumn       `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (FileTemplate) TableName() string {
	return "file_templates"
}
