package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineItem is one product line within an order. Line items are owned
// exclusively by their order and are removed with it.
type OrderLineItem struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	OrderableID      uuid.UUID `gorm:"column:orderable_id;type:uuid;not null"`
	OrderedQuantity  int64     `gorm:"column:ordered_quantity;not null"`
	FilledQuantity   int64     `gorm:"column:filled_quantity;not null;default:0"`
	ApprovedQuantity int64     `gorm:"column:approved_quantity;not null;default:0"`
	PacksToShip      *int64    `gorm:"column:packs_to_ship"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (OrderLineItem) TableName() string {
	return "order_line_items"
}
