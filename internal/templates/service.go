package templates

import (
	"context"
	"errors"

	"github.com/openlmis/fulfillment-backend/internal/export"
	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

// ServiceParams groups dependencies for the template service.
type ServiceParams struct {
	Repo Repository
}

// Service manages the file template governing order exports.
type Service struct {
	repo Repository
}

// NewService builds a template service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// GetActive fetches the active template for the template type.
func (s *Service) GetActive(ctx context.Context, templateType enums.TemplateType) (*models.FileTemplate, error) {
	template, err := s.repo.FindByType(ctx, templateType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find file template")
	}
	if template == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "file template not found")
	}
	return template, nil
}

// Save validates and persists the template, replacing its column set
// wholesale. Updates keep the stored template's identity; the incoming
// payload cannot reassign it.
func (s *Service) Save(ctx context.Context, template *models.FileTemplate) (*models.FileTemplate, error) {
	if template == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file template is required")
	}
	if !template.TemplateType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "template type is invalid")
	}
	if template.FilePrefix == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file prefix is required")
	}
	if err := export.ValidateTemplate(template); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByType(ctx, template.TemplateType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find file template")
	}
	if existing != nil {
		template.ID = existing.ID
		template.CreatedAt = existing.CreatedAt
		for i := range template.Columns {
			template.Columns[i].TemplateID = existing.ID
		}
	}

	if err := s.repo.Save(ctx, template); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "save file template")
	}
	return template, nil
}
