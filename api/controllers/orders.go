package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openlmis/fulfillment-backend/api/responses"
	"github.com/openlmis/fulfillment-backend/api/validators"
	"github.com/openlmis/fulfillment-backend/internal/orders"
	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
)

type orderLineItemResponse struct {
	ID               uuid.UUID `json:"id"`
	OrderableID      uuid.UUID `json:"orderableId"`
	OrderedQuantity  int64     `json:"orderedQuantity"`
	FilledQuantity   int64     `json:"filledQuantity"`
	ApprovedQuantity int64     `json:"approvedQuantity"`
	PacksToShip      *int64    `json:"packsToShip,omitempty"`
}

type orderResponse struct {
	ID                   uuid.UUID               `json:"id"`
	ExternalID           uuid.UUID               `json:"externalId"`
	Emergency            bool                    `json:"emergency"`
	FacilityID           *uuid.UUID              `json:"facilityId,omitempty"`
	ProgramID            *uuid.UUID              `json:"programId,omitempty"`
	ProcessingPeriodID   *uuid.UUID              `json:"processingPeriodId,omitempty"`
	RequestingFacilityID *uuid.UUID              `json:"requestingFacilityId,omitempty"`
	ReceivingFacilityID  *uuid.UUID              `json:"receivingFacilityId,omitempty"`
	SupplyingFacilityID  *uuid.UUID              `json:"supplyingFacilityId,omitempty"`
	OrderCode            string                  `json:"orderCode"`
	Status               enums.OrderStatus       `json:"status"`
	QuotedCost           decimal.Decimal         `json:"quotedCost"`
	CreatedByID          *uuid.UUID              `json:"createdById,omitempty"`
	CreatedDate          time.Time               `json:"createdDate"`
	LineItems            []orderLineItemResponse `json:"lineItems"`
}

func toOrderResponse(order *models.Order) orderResponse {
	lineItems := make([]orderLineItemResponse, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		lineItems = append(lineItems, orderLineItemResponse{
			ID:               item.ID,
			OrderableID:      item.OrderableID,
			OrderedQuantity:  item.OrderedQuantity,
			FilledQuantity:   item.FilledQuantity,
			ApprovedQuantity: item.ApprovedQuantity,
			PacksToShip:      item.PacksToShip,
		})
	}
	return orderResponse{
		ID:                   order.ID,
		ExternalID:           order.ExternalID,
		Emergency:            order.Emergency,
		FacilityID:           order.FacilityID,
		ProgramID:            order.ProgramID,
		ProcessingPeriodID:   order.ProcessingPeriodID,
		RequestingFacilityID: order.RequestingFacilityID,
		ReceivingFacilityID:  order.ReceivingFacilityID,
		SupplyingFacilityID:  order.SupplyingFacilityID,
		OrderCode:            order.OrderCode,
		Status:               order.Status,
		QuotedCost:           order.QuotedCost,
		CreatedByID:          order.CreatedByID,
		CreatedDate:          order.CreatedAt,
		LineItems:            lineItems,
	}
}

type listOrdersResponse struct {
	Orders   []orderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// OrderCreate converts an upstream requisition into an order and runs the
// delivery state machine once.
func OrderCreate(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input orders.CreateOrderInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toOrderResponse(order))
	}
}

// OrderGet fetches one order with its line items.
func OrderGet(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponse(order))
	}
}

// OrderList returns orders filtered by facility, program and status.
func OrderList(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseListOrdersQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, total, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]orderResponse, 0, len(found))
		for i := range found {
			items = append(items, toOrderResponse(&found[i]))
		}
		responses.WriteSuccess(w, listOrdersResponse{
			Orders:   items,
			Total:    total,
			Page:     query.Page,
			PageSize: query.PageSize,
		})
	}
}

// OrderExport streams the order rendered through the active template. Only
// the CSV format is produced.
func OrderExport(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		format := r.URL.Query().Get("format")
		if format == "" {
			format = orders.ExportFormatCsv
		}

		// Render fully before writing headers so failures still produce a
		// JSON error response instead of a truncated file.
		var buf bytes.Buffer
		_, fileName, err := svc.Export(r.Context(), id, format, &buf)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			logg.Error(r.Context(), "write export response", err)
		}
	}
}

// OrderRetry re-runs delivery for a TRANSFER_FAILED order.
func OrderRetry(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Retry(r.Context(), id)
		if err != nil && order == nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"order":   toOrderResponse(order),
			"success": err == nil,
		})
	}
}

// OrderDelete removes an order and its line items.
func OrderDelete(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func parseListOrdersQuery(r *http.Request) (orders.ListOrdersQuery, error) {
	var query orders.ListOrdersQuery
	var err error

	if query.SupplyingFacilityID, err = validators.ParseQueryUUID(r, "supplyingFacility"); err != nil {
		return query, err
	}
	if query.RequestingFacilityID, err = validators.ParseQueryUUID(r, "requestingFacility"); err != nil {
		return query, err
	}
	if query.ProgramID, err = validators.ParseQueryUUID(r, "program"); err != nil {
		return query, err
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, parseErr := enums.ParseOrderStatus(raw)
		if parseErr != nil {
			return query, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").WithDetails(map[string]any{"field": "status"})
		}
		query.Status = &status
	}
	if query.Page, err = validators.ParseQueryInt(r, "page", 1, 1, 1<<20); err != nil {
		return query, err
	}
	if query.PageSize, err = validators.ParseQueryInt(r, "pageSize", 50, 1, 500); err != nil {
		return query, err
	}
	return query, nil
}
