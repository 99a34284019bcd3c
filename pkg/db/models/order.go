package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openlmis/fulfillment-backend/pkg/enums"
)

// Order is the fulfillment aggregate produced from an approved requisition.
// The order code is unique and never changes once assigned.
type Order struct {
	ID                   uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ExternalID           uuid.UUID         `gorm:"column:external_id;type:uuid;not null;unique"`
	Emergency            bool              `gorm:"column:emergency;not null;default:false"`
	FacilityID           *uuid.UUID        `gorm:"column:facility_id;type:uuid"`
	ProgramID            *uuid.UUID        `gorm:"column:program_id;type:uuid"`
	ProcessingPeriodID   *uuid.UUID        `gorm:"column:processing_period_id;type:uuid"`
	RequestingFacilityID *uuid.UUID        `gorm:"column:requesting_facility_id;type:uuid"`
	ReceivingFacilityID  *uuid.UUID        `gorm:"column:receiving_facility_id;type:uuid"`
	SupplyingFacilityID  *uuid.UUID        `gorm:"column:supplying_facility_id;type:uuid"`
	OrderCode            string            `gorm:"column:order_code;not null;unique"`
	Status               enums.OrderStatus `gorm:"column:status;type:text;not null"`
	QuotedCost           decimal.Decimal   `gorm:"column:quoted_cost;type:numeric(19,2);not null;default:0"`
	CreatedByID          *uuid.UUID        `gorm:"column:created_by_id;type:uuid"`
	LineItems            []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (Order) TableName() string {
	return "orders"
}
