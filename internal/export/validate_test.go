package export

import (
	"testing"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

func TestValidateTemplateAcceptsDefaultLayout(t *testing.T) {
	template := &models.FileTemplate{
		Columns: []models.FileColumn{
			{Position: 1, Nested: enums.ColumnContextOrder, KeyPath: "orderCode"},
			{Position: 2, Nested: enums.ColumnContextOrder, KeyPath: "facilityId", Related: enums.RelatedEntityFacility, RelatedKeyPath: "code"},
			{Position: 3, KeyPath: "orderableId", Related: enums.RelatedEntityOrderable, RelatedKeyPath: "productCode"},
			{Position: 4, Nested: enums.ColumnContextLineNumber},
			{Position: 5, Nested: enums.ColumnContextLiteral, KeyPath: "fixed"},
		},
	}
	if err := ValidateTemplate(template); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateTemplateRejectsDuplicatePositions(t *testing.T) {
	template := &models.FileTemplate{
		Columns: []models.FileColumn{
			{Position: 1, KeyPath: "orderedQuantity"},
			{Position: 1, KeyPath: "approvedQuantity"},
		},
	}
	err := ValidateTemplate(template)
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateTemplateRejectsUnknownKeyPath(t *testing.T) {
	template := &models.FileTemplate{
		Columns: []models.FileColumn{
			{Position: 1, Nested: enums.ColumnContextOrder, KeyPath: "invoiceNumber"},
		},
	}
	err := ValidateTemplate(template)
	if !pkgerrors.Is(err, pkgerrors.CodeConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateTemplateRejectsUnknownRelatedKeyPath(t *testing.T) {
	template := &models.FileTemplate{
		Columns: []models.FileColumn{
			{Position: 1, KeyPath: "orderableId", Related: enums.RelatedEntityOrderable, RelatedKeyPath: "dispensable"},
		},
	}
	err := ValidateTemplate(template)
	if !pkgerrors.Is(err, pkgerrors.CodeConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateTemplateAllowsUnknownRelatedType(t *testing.T) {
	template := &models.FileTemplate{
		Columns: []models.FileColumn{
			{Position: 1, KeyPath: "orderableId", Related: enums.RelatedEntity("Program"), RelatedKeyPath: "code"},
		},
	}
	if err := ValidateTemplate(template); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
