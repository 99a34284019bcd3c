package orders

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openlmis/fulfillment-backend/pkg/config"
	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
)

type stubRepo struct {
	byID      map[uuid.UUID]*models.Order
	created   []*models.Order
	updated   []*models.Order
	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[uuid.UUID]*models.Order)}
}

func (s *stubRepo) WithTx(*gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, order *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.created = append(s.created, order)
	s.byID[order.ID] = order
	return nil
}

func (s *stubRepo) Update(_ context.Context, order *models.Order) error {
	s.updated = append(s.updated, order)
	s.byID[order.ID] = order
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	return s.byID[id], nil
}

func (s *stubRepo) List(_ context.Context, _ ListOrdersQuery) ([]models.Order, int64, error) {
	found := make([]models.Order, 0, len(s.byID))
	for _, order := range s.byID {
		found = append(found, *order)
	}
	return found, int64(len(found)), nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}

type stubTemplates struct {
	template *models.FileTemplate
	err      error
}

func (s *stubTemplates) GetActive(context.Context, enums.TemplateType) (*models.FileTemplate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.template, nil
}

type stubCoordinator struct {
	status enums.OrderStatus
	err    error
	calls  int
}

func (s *stubCoordinator) Deliver(_ context.Context, order *models.Order, _ *models.FileTemplate) error {
	s.calls++
	order.Status = s.status
	return s.err
}

type stubExporter struct {
	output string
	err    error
}

func (s *stubExporter) Export(_ context.Context, _ *models.Order, _ *models.FileTemplate, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, s.output)
	return err
}

func newTestService(t *testing.T, repo Repository, templates TemplateSource, coordinator Deliverer, exporter Exporter) *Service {
	t.Helper()
	service, err := NewService(ServiceParams{
		Repo:        repo,
		Templates:   templates,
		Coordinator: coordinator,
		Exporter:    exporter,
		Codes:       NewCodeGenerator(config.OrderCodeConfig{Prefix: "ORDER-", IncludePrefix: true}),
		Log:         logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func createInput() CreateOrderInput {
	facilityID := uuid.New()
	return CreateOrderInput{
		ExternalID:          uuid.New(),
		SupplyingFacilityID: &facilityID,
		LineItems: []CreateLineItemInput{
			{OrderableID: uuid.New(), OrderedQuantity: 10, ApprovedQuantity: 5},
		},
	}
}

func TestServiceCreateGeneratesCodeAndDelivers(t *testing.T) {
	repo := newStubRepo()
	coordinator := &stubCoordinator{status: enums.OrderStatusReadyToPack}
	service := newTestService(t, repo, &stubTemplates{template: &models.FileTemplate{FilePrefix: "O_"}}, coordinator, &stubExporter{})

	input := createInput()
	order, err := service.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if coordinator.calls != 1 {
		t.Fatalf("expected one delivery, got %d", coordinator.calls)
	}
	if order.Status != enums.OrderStatusReadyToPack {
		t.Fatalf("unexpected status %s", order.Status)
	}
	wantCode := "ORDER-" + input.ExternalID.String()
	if order.OrderCode != wantCode {
		t.Fatalf("unexpected order code %q, want %q", order.OrderCode, wantCode)
	}
	if len(repo.created) != 1 || len(repo.created[0].LineItems) != 1 {
		t.Fatalf("expected order persisted with line items")
	}
}

func TestServiceCreatePersistsFailedDelivery(t *testing.T) {
	repo := newStubRepo()
	coordinator := &stubCoordinator{
		status: enums.OrderStatusTransferFailed,
		err:    pkgerrors.New(pkgerrors.CodeConfiguration, "no transfer properties"),
	}
	service := newTestService(t, repo, &stubTemplates{template: &models.FileTemplate{}}, coordinator, &stubExporter{})

	order, err := service.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != enums.OrderStatusTransferFailed {
		t.Fatalf("expected TRANSFER_FAILED, got %s", order.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected failed order persisted")
	}
}

func TestServiceCreateWithoutTemplateFailsTransfer(t *testing.T) {
	repo := newStubRepo()
	coordinator := &stubCoordinator{status: enums.OrderStatusReadyToPack}
	templates := &stubTemplates{err: pkgerrors.New(pkgerrors.CodeNotFound, "file template not found")}
	service := newTestService(t, repo, templates, coordinator, &stubExporter{})

	order, err := service.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != enums.OrderStatusTransferFailed {
		t.Fatalf("expected TRANSFER_FAILED, got %s", order.Status)
	}
	if coordinator.calls != 0 {
		t.Fatalf("expected no delivery without a template")
	}
}

func TestServiceCreateTemplateSourceOutageFailsCreate(t *testing.T) {
	repo := newStubRepo()
	coordinator := &stubCoordinator{status: enums.OrderStatusReadyToPack}
	templates := &stubTemplates{err: pkgerrors.Wrap(pkgerrors.CodeStorage, errors.New("connection refused"), "find file template")}
	service := newTestService(t, repo, templates, coordinator, &stubExporter{})

	_, err := service.Create(context.Background(), createInput())
	if !pkgerrors.Is(err, pkgerrors.CodeStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no order persisted on template lookup failure")
	}
	if coordinator.calls != 0 {
		t.Fatalf("expected no delivery on template lookup failure")
	}
}

func TestServiceCreateDuplicateExternalIDConflicts(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = errors.New(`duplicate key value violates unique constraint "orders_external_id_key"`)
	service := newTestService(t, repo, &stubTemplates{template: &models.FileTemplate{}}, &stubCoordinator{status: enums.OrderStatusReadyToPack}, &stubExporter{})

	_, err := service.Create(context.Background(), createInput())
	if !pkgerrors.Is(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestServiceGetMissingIsNotFound(t *testing.T) {
	service := newTestService(t, newStubRepo(), &stubTemplates{}, &stubCoordinator{}, &stubExporter{})

	_, err := service.Get(context.Background(), uuid.New())
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceExportRejectsUnknownFormat(t *testing.T) {
	service := newTestService(t, newStubRepo(), &stubTemplates{}, &stubCoordinator{}, &stubExporter{})

	_, _, err := service.Export(context.Background(), uuid.New(), "xlsx", &bytes.Buffer{})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceExportWithoutTemplateIsConfigurationError(t *testing.T) {
	repo := newStubRepo()
	order := &models.Order{ID: uuid.New(), OrderCode: "ORDER-1"}
	repo.byID[order.ID] = order
	templates := &stubTemplates{err: pkgerrors.New(pkgerrors.CodeNotFound, "file template not found")}
	service := newTestService(t, repo, templates, &stubCoordinator{}, &stubExporter{})

	_, _, err := service.Export(context.Background(), order.ID, ExportFormatCsv, &bytes.Buffer{})
	if !pkgerrors.Is(err, pkgerrors.CodeConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestServiceExportRendersCsv(t *testing.T) {
	repo := newStubRepo()
	order := &models.Order{ID: uuid.New(), OrderCode: "ORDER-1"}
	repo.byID[order.ID] = order
	exporter := &stubExporter{output: "Order number\r\nORDER-1\r\n"}
	service := newTestService(t, repo, &stubTemplates{template: &models.FileTemplate{FilePrefix: "O_"}}, &stubCoordinator{}, exporter)

	var buf bytes.Buffer
	got, fileName, err := service.Export(context.Background(), order.ID, ExportFormatCsv, &buf)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if got.OrderCode != "ORDER-1" {
		t.Fatalf("unexpected order %+v", got)
	}
	if fileName != "O_ORDER-1.csv" {
		t.Fatalf("unexpected file name %q", fileName)
	}
	if buf.String() != exporter.output {
		t.Fatalf("unexpected body %q", buf.String())
	}
}

func TestServiceRetryMissingOrderIsNotFound(t *testing.T) {
	service := newTestService(t, newStubRepo(), &stubTemplates{}, &stubCoordinator{}, &stubExporter{})

	_, err := service.Retry(context.Background(), uuid.New())
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceRetryRequiresTransferFailed(t *testing.T) {
	repo := newStubRepo()
	order := &models.Order{ID: uuid.New(), Status: enums.OrderStatusInRoute}
	repo.byID[order.ID] = order
	coordinator := &stubCoordinator{}
	service := newTestService(t, repo, &stubTemplates{template: &models.FileTemplate{}}, coordinator, &stubExporter{})

	_, err := service.Retry(context.Background(), order.ID)
	if !pkgerrors.Is(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict error, got %v", err)
	}
	if coordinator.calls != 0 {
		t.Fatalf("retry must not deliver from %s", order.Status)
	}
}

func TestServiceRetryRerunsDeliveryAndPersists(t *testing.T) {
	repo := newStubRepo()
	order := &models.Order{ID: uuid.New(), OrderCode: "ORDER-2", Status: enums.OrderStatusTransferFailed}
	repo.byID[order.ID] = order
	coordinator := &stubCoordinator{status: enums.OrderStatusInRoute}
	service := newTestService(t, repo, &stubTemplates{template: &models.FileTemplate{}}, coordinator, &stubExporter{})

	got, err := service.Retry(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got.Status != enums.OrderStatusInRoute {
		t.Fatalf("expected IN_ROUTE, got %s", got.Status)
	}
	if coordinator.calls != 1 {
		t.Fatalf("expected one delivery, got %d", coordinator.calls)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("expected order persisted after retry")
	}
}

func TestServiceRetryPersistsFailureAndSurfacesError(t *testing.T) {
	repo := newStubRepo()
	order := &models.Order{ID: uuid.New(), Status: enums.OrderStatusTransferFailed}
	repo.byID[order.ID] = order
	coordinator := &stubCoordinator{
		status: enums.OrderStatusTransferFailed,
		err:    pkgerrors.New(pkgerrors.CodeTransfer, "connection refused"),
	}
	service := newTestService(t, repo, &stubTemplates{template: &models.FileTemplate{}}, coordinator, &stubExporter{})

	got, err := service.Retry(context.Background(), order.ID)
	if !pkgerrors.Is(err, pkgerrors.CodeTransfer) {
		t.Fatalf("expected transfer error, got %v", err)
	}
	if got == nil || got.Status != enums.OrderStatusTransferFailed {
		t.Fatalf("expected failed order returned, got %+v", got)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("expected failed status persisted")
	}
}

func TestCodeGeneratorSegments(t *testing.T) {
	externalID := uuid.MustParse("aaf12a5a-8b16-11e1-8000-000000000003")
	order := &models.Order{ExternalID: externalID, Emergency: true}

	cases := []struct {
		name string
		cfg  config.OrderCodeConfig
		want string
	}{
		{
			name: "prefix only",
			cfg:  config.OrderCodeConfig{Prefix: "ORDER-", IncludePrefix: true},
			want: "ORDER-" + externalID.String(),
		},
		{
			name: "bare external reference",
			cfg:  config.OrderCodeConfig{Prefix: "ORDER-"},
			want: externalID.String(),
		},
		{
			name: "program code and suffix",
			cfg:  config.OrderCodeConfig{IncludeProgramCode: true, IncludeTypeSuffix: true},
			want: "EM" + externalID.String() + "E",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewCodeGenerator(tc.cfg).Generate(order, "EM"); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
