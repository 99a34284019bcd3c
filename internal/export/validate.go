package export

import (
	"fmt"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

// ValidateTemplate rejects templates that would fail at export time:
// duplicate positions, unknown key paths, and unknown related key paths.
// The related entity type itself is not validated; an unrecognized type
// renders empty cells, which existing templates rely on.
func ValidateTemplate(template *models.FileTemplate) error {
	positions := make(map[int]bool, len(template.Columns))
	for _, column := range template.Columns {
		if positions[column.Position] {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate column position %d", column.Position))
		}
		positions[column.Position] = true

		if err := validateKeyPath(column); err != nil {
			return err
		}
		if err := validateRelatedKeyPath(column); err != nil {
			return err
		}
	}
	return nil
}

func validateKeyPath(column models.FileColumn) error {
	switch column.Nested {
	case enums.ColumnContextLiteral, enums.ColumnContextLineNumber:
		return nil
	case enums.ColumnContextOrder:
		if _, ok := orderAccessors[column.KeyPath]; !ok {
			return unknownPathError(column.Nested.String(), column.KeyPath)
		}
	default:
		if _, ok := lineItemAccessors[column.KeyPath]; !ok {
			return unknownPathError(enums.ColumnContextLineItem.String(), column.KeyPath)
		}
	}
	return nil
}

func validateRelatedKeyPath(column models.FileColumn) error {
	var known bool
	switch column.Related {
	case enums.RelatedEntityFacility:
		_, known = facilityAccessors[column.RelatedKeyPath]
	case enums.RelatedEntityOrderable:
		_, known = orderableAccessors[column.RelatedKeyPath]
	case enums.RelatedEntityPeriod:
		_, known = periodAccessors[column.RelatedKeyPath]
	default:
		return nil
	}
	if !known {
		return unknownPathError(column.Related.String(), column.RelatedKeyPath)
	}
	return nil
}
