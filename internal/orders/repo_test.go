package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  external_id TEXT NOT NULL UNIQUE,
  emergency INTEGER NOT NULL DEFAULT 0,
  facility_id TEXT,
  program_id TEXT,
  processing_period_id TEXT,
  requesting_facility_id TEXT,
  receiving_facility_id TEXT,
  supplying_facility_id TEXT,
  order_code TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL,
  quoted_cost TEXT NOT NULL DEFAULT '0',
  created_by_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  orderable_id TEXT NOT NULL,
  ordered_quantity INTEGER NOT NULL,
  filled_quantity INTEGER NOT NULL DEFAULT 0,
  approved_quantity INTEGER NOT NULL DEFAULT 0,
  packs_to_ship INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(ordersTable).Error)
	require.NoError(t, conn.Exec(lineItems).Error)
	return conn
}

func newStoredOrder(status enums.OrderStatus) *models.Order {
	supplyingID := uuid.New()
	return &models.Order{
		ID:                  uuid.New(),
		ExternalID:          uuid.New(),
		OrderCode:           "ORDER-" + uuid.NewString(),
		Status:              status,
		SupplyingFacilityID: &supplyingID,
		LineItems: []models.OrderLineItem{
			{ID: uuid.New(), OrderableID: uuid.New(), OrderedQuantity: 10, ApprovedQuantity: 5},
		},
	}
}

func TestRepositoryCreatePersistsLineItems(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	order := newStoredOrder(enums.OrderStatusOrdered)

	require.NoError(t, repo.Create(context.Background(), order))

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, order.OrderCode, found.OrderCode)
	require.Len(t, found.LineItems, 1)
	assert.Equal(t, int64(5), found.LineItems[0].ApprovedQuantity)
}

func TestRepositoryFindByIDMissingReturnsNil(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))

	found, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryCreateRejectsDuplicateOrderCode(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	first := newStoredOrder(enums.OrderStatusOrdered)
	require.NoError(t, repo.Create(context.Background(), first))

	dup := newStoredOrder(enums.OrderStatusOrdered)
	dup.OrderCode = first.OrderCode

	require.Error(t, repo.Create(context.Background(), dup))
}

func TestRepositoryListFiltersByStatusAndFacility(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))

	failed := newStoredOrder(enums.OrderStatusTransferFailed)
	require.NoError(t, repo.Create(context.Background(), failed))
	require.NoError(t, repo.Create(context.Background(), newStoredOrder(enums.OrderStatusInRoute)))

	status := enums.OrderStatusTransferFailed
	found, total, err := repo.List(context.Background(), ListOrdersQuery{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, failed.ID, found[0].ID)

	found, total, err = repo.List(context.Background(), ListOrdersQuery{
		SupplyingFacilityID: failed.SupplyingFacilityID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, failed.ID, found[0].ID)
}

func TestRepositoryDeleteRemovesOrder(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	order := newStoredOrder(enums.OrderStatusOrdered)
	require.NoError(t, repo.Create(context.Background(), order))

	require.NoError(t, repo.Delete(context.Background(), order.ID))

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
