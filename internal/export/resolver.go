package export

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

// orderAccessors maps template key paths onto order fields. A path absent
// from this map is a template configuration error, not an empty cell.
var orderAccessors = map[string]func(*models.Order) any{
	"id":         func(o *models.Order) any { return o.ID },
	"externalId": func(o *models.Order) any { return o.ExternalID },
	"emergency":  func(o *models.Order) any { return o.Emergency },
	"facilityId": func(o *models.Order) any { return uuidValue(o.FacilityID) },
	"programId":  func(o *models.Order) any { return uuidValue(o.ProgramID) },
	"processingPeriodId": func(o *models.Order) any {
		return uuidValue(o.ProcessingPeriodID)
	},
	"requestingFacilityId": func(o *models.Order) any {
		return uuidValue(o.RequestingFacilityID)
	},
	"receivingFacilityId": func(o *models.Order) any {
		return uuidValue(o.ReceivingFacilityID)
	},
	"supplyingFacilityId": func(o *models.Order) any {
		return uuidValue(o.SupplyingFacilityID)
	},
	"orderCode":   func(o *models.Order) any { return o.OrderCode },
	"status":      func(o *models.Order) any { return o.Status.String() },
	"quotedCost":  func(o *models.Order) any { return o.QuotedCost },
	"createdById": func(o *models.Order) any { return uuidValue(o.CreatedByID) },
	"createdDate": func(o *models.Order) any { return o.CreatedAt },
}

var lineItemAccessors = map[string]func(*models.OrderLineItem) any{
	"id":               func(li *models.OrderLineItem) any { return li.ID },
	"orderableId":      func(li *models.OrderLineItem) any { return li.OrderableID },
	"orderedQuantity":  func(li *models.OrderLineItem) any { return li.OrderedQuantity },
	"filledQuantity":   func(li *models.OrderLineItem) any { return li.FilledQuantity },
	"approvedQuantity": func(li *models.OrderLineItem) any { return li.ApprovedQuantity },
	"packsToShip": func(li *models.OrderLineItem) any {
		if li.PacksToShip == nil {
			return nil
		}
		return *li.PacksToShip
	},
}

// FieldResolver resolves a file column against an order and the current
// line item. The literal and line-number contexts never touch either model.
type FieldResolver struct{}

// Resolve returns the raw cell value for the column. lineNo is the 1-based
// position of the current line item within the file being rendered.
func (FieldResolver) Resolve(column models.FileColumn, order *models.Order, lineItem *models.OrderLineItem, lineNo int) (any, error) {
	switch column.Nested {
	case enums.ColumnContextLiteral:
		return column.KeyPath, nil
	case enums.ColumnContextLineNumber:
		return lineNo, nil
	case enums.ColumnContextOrder:
		accessor, ok := orderAccessors[column.KeyPath]
		if !ok {
			return nil, unknownPathError(column.Nested.String(), column.KeyPath)
		}
		return accessor(order), nil
	default:
		// Anything else, including blank, resolves against the line item.
		accessor, ok := lineItemAccessors[column.KeyPath]
		if !ok {
			return nil, unknownPathError(enums.ColumnContextLineItem.String(), column.KeyPath)
		}
		return accessor(lineItem), nil
	}
}

func unknownPathError(context, keyPath string) error {
	return pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("unknown %s key path %q", context, keyPath))
}

func uuidValue(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
