package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/openlmis/fulfillment-backend/internal/orders"
	"github.com/openlmis/fulfillment-backend/internal/referencedata"
	"github.com/openlmis/fulfillment-backend/internal/templates"
	"github.com/openlmis/fulfillment-backend/internal/transfer"
	"github.com/openlmis/fulfillment-backend/pkg/config"
	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
)

type stubOrderRepo struct{}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) orders.Repository { return s }

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error { return nil }

func (s *stubOrderRepo) Update(ctx context.Context, order *models.Order) error { return nil }

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) List(ctx context.Context, query orders.ListOrdersQuery) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubTemplateRepo struct{}

func (s *stubTemplateRepo) WithTx(tx *gorm.DB) templates.Repository { return s }

func (s *stubTemplateRepo) FindByType(ctx context.Context, templateType enums.TemplateType) (*models.FileTemplate, error) {
	return nil, nil
}

func (s *stubTemplateRepo) Save(ctx context.Context, template *models.FileTemplate) error {
	return nil
}

type stubTransferRepo struct{}

func (s *stubTransferRepo) WithTx(tx *gorm.DB) transfer.Repository { return s }

func (s *stubTransferRepo) Create(ctx context.Context, props *models.TransferProperties) error {
	return nil
}

func (s *stubTransferRepo) Update(ctx context.Context, props *models.TransferProperties) error {
	return nil
}

func (s *stubTransferRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.TransferProperties, error) {
	return nil, nil
}

func (s *stubTransferRepo) FindByFacility(ctx context.Context, facilityID uuid.UUID) (*models.TransferProperties, error) {
	return nil, nil
}

func (s *stubTransferRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubFacilityLookup struct{}

func (stubFacilityLookup) Facility(ctx context.Context, id uuid.UUID) (*referencedata.Facility, error) {
	return &referencedata.Facility{ID: id, Code: "HF01"}, nil
}

type stubDeliverer struct{}

func (stubDeliverer) Deliver(ctx context.Context, order *models.Order, template *models.FileTemplate) error {
	order.Status = enums.OrderStatusReadyToPack
	return nil
}

type stubExporter struct{}

func (stubExporter) Export(ctx context.Context, order *models.Order, template *models.FileTemplate, w io.Writer) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		OrderCode: config.OrderCodeConfig{
			Prefix:        "ORDER-",
			IncludePrefix: true,
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, gatherer prometheus.Gatherer) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	templateService, err := templates.NewService(templates.ServiceParams{Repo: &stubTemplateRepo{}})
	if err != nil {
		t.Fatalf("template service: %v", err)
	}

	transferService, err := transfer.NewService(transfer.ServiceParams{
		Repo:       &stubTransferRepo{},
		Facilities: stubFacilityLookup{},
	})
	if err != nil {
		t.Fatalf("transfer service: %v", err)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:        &stubOrderRepo{},
		Templates:   templateService,
		Coordinator: stubDeliverer{},
		Exporter:    stubExporter{},
		Codes:       orders.NewCodeGenerator(cfg.OrderCode),
		Log:         logg,
	})
	if err != nil {
		t.Fatalf("order service: %v", err)
	}

	return NewRouter(RouterParams{
		Config:    cfg,
		Log:       logg,
		Orders:    orderService,
		Templates: templateService,
		Transfer:  transferService,
		Metrics:   gatherer,
	})
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsExposedWhenGathererWired(t *testing.T) {
	router := newTestRouter(t, testConfig(), prometheus.NewRegistry())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsAbsentWithoutGatherer(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestOrderGetRejectsMalformedID(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrderGetMissingOrderReturns404(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestOrderCreateRejectsBadJSON(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestFileTemplateGetMissingReturns404(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/fileTemplates", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestTransferPropertiesSearchRequiresFacility(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/transferProperties/search", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
