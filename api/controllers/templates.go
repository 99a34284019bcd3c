package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/api/responses"
	"github.com/openlmis/fulfillment-backend/api/validators"
	"github.com/openlmis/fulfillment-backend/internal/templates"
	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
)

type fileColumnRequest struct {
	ColumnLabel    string `json:"columnLabel"`
	DataFieldLabel string `json:"dataFieldLabel"`
	Include        bool   `json:"include"`
	Position       int    `json:"position" validate:"gte=1"`
	Format         string `json:"format"`
	Nested         string `json:"nested"`
	KeyPath        string `json:"keyPath"`
	Related        string `json:"related"`
	RelatedKeyPath string `json:"relatedKeyPath"`
}

type fileTemplateRequest struct {
	FilePrefix   string              `json:"filePrefix" validate:"required"`
	HeaderInFile bool                `json:"headerInFile"`
	TemplateType string              `json:"templateType" validate:"required"`
	Columns      []fileColumnRequest `json:"columns" validate:"required,min=1,dive"`
}

type fileColumnResponse struct {
	ID             uuid.UUID `json:"id"`
	ColumnLabel    string    `json:"columnLabel"`
	DataFieldLabel string    `json:"dataFieldLabel"`
	DefaultColumn  bool      `json:"defaultColumn"`
	Include        bool      `json:"include"`
	Position       int       `json:"position"`
	Format         string    `json:"format,omitempty"`
	Nested         string    `json:"nested,omitempty"`
	KeyPath        string    `json:"keyPath,omitempty"`
	Related        string    `json:"related,omitempty"`
	RelatedKeyPath string    `json:"relatedKeyPath,omitempty"`
}

type fileTemplateResponse struct {
	ID           uuid.UUID            `json:"id"`
	FilePrefix   string               `json:"filePrefix"`
	HeaderInFile bool                 `json:"headerInFile"`
	TemplateType enums.TemplateType   `json:"templateType"`
	Columns      []fileColumnResponse `json:"columns"`
}

func toFileTemplateResponse(template *models.FileTemplate) fileTemplateResponse {
	columns := make([]fileColumnResponse, 0, len(template.Columns))
	for _, column := range template.Columns {
		columns = append(columns, fileColumnResponse{
			ID:             column.ID,
			ColumnLabel:    column.ColumnLabel,
			DataFieldLabel: column.DataFieldLabel,
			DefaultColumn:  column.DefaultColumn,
			Include:        column.Include,
			Position:       column.Position,
			Format:         column.Format,
			Nested:         column.Nested.String(),
			KeyPath:        column.KeyPath,
			Related:        column.Related.String(),
			RelatedKeyPath: column.RelatedKeyPath,
		})
	}
	return fileTemplateResponse{
		ID:           template.ID,
		FilePrefix:   template.FilePrefix,
		HeaderInFile: template.HeaderInFile,
		TemplateType: template.TemplateType,
		Columns:      columns,
	}
}

// FileTemplateGet returns the active order file template.
func FileTemplateGet(svc *templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		template, err := svc.GetActive(r.Context(), enums.TemplateTypeOrder)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toFileTemplateResponse(template))
	}
}

// FileTemplateSave replaces the active template and its column set.
func FileTemplateSave(svc *templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input fileTemplateRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		templateType, err := enums.ParseTemplateType(input.TemplateType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown template type"))
			return
		}

		template := &models.FileTemplate{
			FilePrefix:   input.FilePrefix,
			HeaderInFile: input.HeaderInFile,
			TemplateType: templateType,
		}
		for _, column := range input.Columns {
			template.Columns = append(template.Columns, models.FileColumn{
				ColumnLabel:    column.ColumnLabel,
				DataFieldLabel: column.DataFieldLabel,
				Include:        column.Include,
				Position:       column.Position,
				Format:         column.Format,
				Nested:         enums.ColumnContext(column.Nested),
				KeyPath:        column.KeyPath,
				Related:        enums.RelatedEntity(column.Related),
				RelatedKeyPath: column.RelatedKeyPath,
			})
		}

		saved, err := svc.Save(r.Context(), template)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toFileTemplateResponse(saved))
	}
}
