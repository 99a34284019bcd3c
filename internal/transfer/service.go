package transfer

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/internal/referencedata"
	"github.com/openlmis/fulfillment-backend/pkg/db"
	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

// FacilityLookup checks that a facility exists in reference data.
type FacilityLookup interface {
	Facility(ctx context.Context, id uuid.UUID) (*referencedata.Facility, error)
}

// ServiceParams groups dependencies for the transfer properties service.
type ServiceParams struct {
	Repo       Repository
	Facilities FacilityLookup
}

// Service manages the per-facility delivery configuration.
type Service struct {
	repo       Repository
	facilities FacilityLookup
}

// NewService builds a transfer properties service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Facilities == nil {
		return nil, errors.New("facility lookup is required")
	}
	return &Service{repo: params.Repo, facilities: params.Facilities}, nil
}

// Get fetches transfer properties by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.TransferProperties, error) {
	props, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find transfer properties")
	}
	if props == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transfer properties not found")
	}
	return props, nil
}

// GetByFacility fetches transfer properties for the facility.
func (s *Service) GetByFacility(ctx context.Context, facilityID uuid.UUID) (*models.TransferProperties, error) {
	props, err := s.repo.FindByFacility(ctx, facilityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find transfer properties")
	}
	if props == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transfer properties not found for facility")
	}
	return props, nil
}

// Create stores new transfer properties. The facility must exist and may
// hold at most one configuration.
func (s *Service) Create(ctx context.Context, props *models.TransferProperties) (*models.TransferProperties, error) {
	if err := s.validate(ctx, props); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, props); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "transfer properties already exist for facility")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create transfer properties")
	}
	return props, nil
}

// Update replaces an existing configuration. The facility binding cannot move
// onto a facility that already has one.
func (s *Service) Update(ctx context.Context, id uuid.UUID, props *models.TransferProperties) (*models.TransferProperties, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find transfer properties")
	}
	if existing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transfer properties not found")
	}
	if err := s.validate(ctx, props); err != nil {
		return nil, err
	}
	props.ID = existing.ID
	props.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, props); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "transfer properties already exist for facility")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "update transfer properties")
	}
	return props, nil
}

// Delete removes the configuration by ID.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find transfer properties")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "transfer properties not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete transfer properties")
	}
	return nil
}

func (s *Service) validate(ctx context.Context, props *models.TransferProperties) error {
	if props == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "transfer properties are required")
	}
	if props.FacilityID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "facility ID is required")
	}
	switch props.Type {
	case enums.TransferTypeLocal:
		if props.Path == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "path is required for local transfer properties")
		}
	case enums.TransferTypeFtp:
		if !props.Protocol.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "ftp protocol is invalid")
		}
		if props.ServerHost == "" || props.ServerPort <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "server host and port are required")
		}
		if props.LocalDirectory == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "local directory is required")
		}
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "transfer type is invalid")
	}

	facility, err := s.facilities.Facility(ctx, props.FacilityID)
	if err != nil {
		return err
	}
	if facility == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "facility does not exist")
	}
	return nil
}
