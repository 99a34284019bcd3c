package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/pkg/enums"
)

// TransferProperties is the per-facility delivery destination configuration.
// Both variants share one table; TransferType discriminates which columns
// are meaningful. At most one record may exist per facility.
type TransferProperties struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FacilityID uuid.UUID          `gorm:"column:facility_id;type:uuid;not null;unique"`
	Type       enums.TransferType `gorm:"column:type;type:text;not null"`

	// Local variant.
	Path string `gorm:"column:path"`

	// Ftp variant.
	Protocol        enums.FtpProtocol `gorm:"column:protocol;type:text"`
	Username        string            `gorm:"column:username"`
	Password        string            `gorm:"column:password"`
	ServerHost      string            `gorm:"column:server_host"`
	ServerPort      int               `gorm:"column:server_port"`
	RemoteDirectory string            `gorm:"column:remote_directory"`
	LocalDirectory  string            `gorm:"column:local_directory"`
	PassiveMode     bool              `gorm:"column:passive_mode;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (TransferProperties) TableName() string {
	return "transfer_properties"
}

// IsFtp reports whether the record is the FTP-family variant.
func (t *TransferProperties) IsFtp() bool {
	return t != nil && t.Type == enums.TransferTypeFtp
}

// LocalPath returns the directory where the export artifact is staged:
// the destination path for the local variant, the staging directory for
// the FTP variant.
func (t *TransferProperties) LocalPath() string {
	if t == nil {
		return ""
	}
	if t.Type == enums.TransferTypeFtp {
		return t.LocalDirectory
	}
	return t.Path
}
