package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openlmis/fulfillment-backend/pkg/enums"
)

// CreateOrderInput carries the fields accepted when converting an upstream
// requisition into an order.
type CreateOrderInput struct {
	ExternalID           uuid.UUID             `json:"externalId" validate:"required"`
	Emergency            bool                  `json:"emergency"`
	FacilityID           *uuid.UUID            `json:"facilityId"`
	ProgramID            *uuid.UUID            `json:"programId"`
	ProcessingPeriodID   *uuid.UUID            `json:"processingPeriodId"`
	RequestingFacilityID *uuid.UUID            `json:"requestingFacilityId"`
	ReceivingFacilityID  *uuid.UUID            `json:"receivingFacilityId"`
	SupplyingFacilityID  *uuid.UUID            `json:"supplyingFacilityId"`
	QuotedCost           decimal.Decimal       `json:"quotedCost"`
	CreatedByID          *uuid.UUID            `json:"createdById"`
	LineItems            []CreateLineItemInput `json:"lineItems" validate:"required,min=1,dive"`
}

// CreateLineItemInput is one product line in an order creation request.
type CreateLineItemInput struct {
	OrderableID      uuid.UUID `json:"orderableId" validate:"required"`
	OrderedQuantity  int64     `json:"orderedQuantity" validate:"gte=0"`
	FilledQuantity   int64     `json:"filledQuantity" validate:"gte=0"`
	ApprovedQuantity int64     `json:"approvedQuantity" validate:"gte=0"`
	PacksToShip      *int64    `json:"packsToShip"`
}

// ListOrdersQuery configures order list filtering and paging.
type ListOrdersQuery struct {
	SupplyingFacilityID  *uuid.UUID
	RequestingFacilityID *uuid.UUID
	ProgramID            *uuid.UUID
	Status               *enums.OrderStatus
	Page                 int
	PageSize             int
}
