package orders

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/pkg/db"
	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
)

// ExportFormatCsv is the only export format the service produces.
const ExportFormatCsv = "csv"

// TemplateSource fetches the active file template for an export kind.
type TemplateSource interface {
	GetActive(ctx context.Context, templateType enums.TemplateType) (*models.FileTemplate, error)
}

// Deliverer runs the delivery state machine for an order, mutating its status.
type Deliverer interface {
	Deliver(ctx context.Context, order *models.Order, template *models.FileTemplate) error
}

// Exporter renders an order through a template into a byte stream.
type Exporter interface {
	Export(ctx context.Context, order *models.Order, template *models.FileTemplate, w io.Writer) error
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo        Repository
	Templates   TemplateSource
	Coordinator Deliverer
	Exporter    Exporter
	Codes       *CodeGenerator
	Log         *logger.Logger
}

// Service orchestrates order creation, export and delivery retry.
type Service struct {
	repo        Repository
	templates   TemplateSource
	coordinator Deliverer
	exporter    Exporter
	codes       *CodeGenerator
	log         *logger.Logger
}

// NewService builds an order service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Templates == nil {
		return nil, errors.New("template source is required")
	}
	if params.Coordinator == nil {
		return nil, errors.New("coordinator is required")
	}
	if params.Exporter == nil {
		return nil, errors.New("exporter is required")
	}
	if params.Codes == nil {
		return nil, errors.New("code generator is required")
	}
	if params.Log == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		repo:        params.Repo,
		templates:   params.Templates,
		coordinator: params.Coordinator,
		exporter:    params.Exporter,
		codes:       params.Codes,
		log:         params.Log,
	}, nil
}

// Create converts the input into an order, runs the delivery state machine
// once, and persists the result. A delivery failure does not abort creation;
// the order lands in TRANSFER_FAILED and waits for a manual retry.
func (s *Service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	order := &models.Order{
		ExternalID:           input.ExternalID,
		Emergency:            input.Emergency,
		FacilityID:           input.FacilityID,
		ProgramID:            input.ProgramID,
		ProcessingPeriodID:   input.ProcessingPeriodID,
		RequestingFacilityID: input.RequestingFacilityID,
		ReceivingFacilityID:  input.ReceivingFacilityID,
		SupplyingFacilityID:  input.SupplyingFacilityID,
		QuotedCost:           input.QuotedCost,
		CreatedByID:          input.CreatedByID,
		Status:               enums.OrderStatusOrdered,
	}
	for _, item := range input.LineItems {
		order.LineItems = append(order.LineItems, models.OrderLineItem{
			OrderableID:      item.OrderableID,
			OrderedQuantity:  item.OrderedQuantity,
			FilledQuantity:   item.FilledQuantity,
			ApprovedQuantity: item.ApprovedQuantity,
			PacksToShip:      item.PacksToShip,
		})
	}
	order.OrderCode = s.codes.Generate(order, "")

	template, err := s.templates.GetActive(ctx, enums.TemplateTypeOrder)
	switch {
	case err == nil:
		if err := s.coordinator.Deliver(ctx, order, template); err != nil {
			s.log.Warn(s.log.WithOrderID(ctx, order.OrderCode), "order delivery failed at creation")
		}
	case pkgerrors.Is(err, pkgerrors.CodeNotFound):
		// No template means no transport; the order still lands, failed,
		// and the manual retry recovers it once a template exists.
		order.Status = enums.OrderStatusTransferFailed
		s.log.Warn(s.log.WithOrderID(ctx, order.OrderCode), "no active file template, order transfer failed")
	default:
		// A template-source outage is not a configuration problem; fail
		// the create rather than parking the order as TRANSFER_FAILED.
		return nil, err
	}

	if err := s.repo.Create(ctx, order); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order already exists for external reference")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create order")
	}
	return order, nil
}

// Get fetches an order with its line items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// List returns orders matching the query plus the unpaged total.
func (s *Service) List(ctx context.Context, query ListOrdersQuery) ([]models.Order, int64, error) {
	found, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list orders")
	}
	return found, total, nil
}

// Export renders the order in the requested format to w and returns the
// order together with the artifact file name, template prefix included,
// so downloads carry the same name as staged transfer files. Only CSV is
// supported; anything else is a validation failure.
func (s *Service) Export(ctx context.Context, id uuid.UUID, format string, w io.Writer) (*models.Order, string, error) {
	if format != ExportFormatCsv {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "export format not supported: "+format)
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	template, err := s.templates.GetActive(ctx, enums.TemplateTypeOrder)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			return nil, "", pkgerrors.New(pkgerrors.CodeConfiguration, "no active file template configured")
		}
		return nil, "", err
	}
	if err := s.exporter.Export(ctx, order, template, w); err != nil {
		return nil, "", err
	}
	return order, template.FilePrefix + order.OrderCode + ".csv", nil
}

// Retry re-runs delivery for an order stuck in TRANSFER_FAILED. Any other
// status is rejected so a delivered file cannot be double-sent.
func (s *Service) Retry(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusTransferFailed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is not in a retryable status")
	}

	template, err := s.templates.GetActive(ctx, enums.TemplateTypeOrder)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "no active file template configured")
		}
		return nil, err
	}

	deliverErr := s.coordinator.Deliver(ctx, order, template)
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "update order")
	}
	if deliverErr != nil {
		return order, deliverErr
	}
	return order, nil
}

// Delete removes the order and its line items.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete order")
	}
	return nil
}
