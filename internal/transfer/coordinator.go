package transfer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
	"github.com/openlmis/fulfillment-backend/pkg/metrics"
)

// Exporter renders an order through a template into a byte stream.
type Exporter interface {
	Export(ctx context.Context, order *models.Order, template *models.FileTemplate, w io.Writer) error
}

// Storage stages artifacts on the local filesystem.
type Storage interface {
	Path(dir, filePrefix, orderCode string) string
	Store(path string, data []byte) error
	Delete(path string) error
}

// PropertiesSource resolves the delivery configuration for a facility.
type PropertiesSource interface {
	FindByFacility(ctx context.Context, facilityID uuid.UUID) (*models.TransferProperties, error)
}

// CoordinatorParams groups dependencies for the delivery coordinator.
type CoordinatorParams struct {
	Properties PropertiesSource
	Exporter   Exporter
	Storage    Storage
	Sender     Sender
	Metrics    *metrics.TransferMetrics
	Log        *logger.Logger

	// FTPSendEnabled gates the network send. When false the send path is
	// treated as a failure, so orders park in TRANSFER_FAILED until the
	// flag is turned back on and a retry is issued.
	FTPSendEnabled bool
}

// Coordinator runs the delivery state machine for a single order: render,
// stage, send, and set the resulting status on the order.
type Coordinator struct {
	properties     PropertiesSource
	exporter       Exporter
	storage        Storage
	sender         Sender
	metrics        *metrics.TransferMetrics
	log            *logger.Logger
	ftpSendEnabled bool
}

// NewCoordinator builds a delivery coordinator.
func NewCoordinator(params CoordinatorParams) (*Coordinator, error) {
	if params.Properties == nil {
		return nil, errors.New("properties source is required")
	}
	if params.Exporter == nil {
		return nil, errors.New("exporter is required")
	}
	if params.Storage == nil {
		return nil, errors.New("storage is required")
	}
	if params.Sender == nil {
		return nil, errors.New("sender is required")
	}
	if params.Log == nil {
		return nil, errors.New("logger is required")
	}
	return &Coordinator{
		properties:     params.Properties,
		exporter:       params.Exporter,
		storage:        params.Storage,
		sender:         params.Sender,
		metrics:        params.Metrics,
		log:            params.Log,
		ftpSendEnabled: params.FTPSendEnabled,
	}, nil
}

// Deliver evaluates the delivery rules for the order and mutates its status
// in place. The returned error reports why a delivery failed; the caller
// persists the order either way, since TRANSFER_FAILED is itself a valid
// outcome that the manual retry operation recovers from.
func (c *Coordinator) Deliver(ctx context.Context, order *models.Order, template *models.FileTemplate) error {
	ctx = c.log.WithOrderID(ctx, order.OrderCode)

	if order.SupplyingFacilityID == nil {
		order.Status = enums.OrderStatusTransferFailed
		c.log.Warn(ctx, "order has no supplying facility, transfer failed")
		return pkgerrors.New(pkgerrors.CodeConfiguration, "order has no supplying facility")
	}
	ctx = c.log.WithFacilityID(ctx, order.SupplyingFacilityID.String())

	props, err := c.properties.FindByFacility(ctx, *order.SupplyingFacilityID)
	if err != nil {
		order.Status = enums.OrderStatusTransferFailed
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "resolve transfer properties")
	}
	if props == nil {
		order.Status = enums.OrderStatusTransferFailed
		c.log.Warn(ctx, "no transfer properties for supplying facility, transfer failed")
		return pkgerrors.New(pkgerrors.CodeConfiguration, "no transfer properties for supplying facility")
	}

	var rendered bytes.Buffer
	if err := c.exporter.Export(ctx, order, template, &rendered); err != nil {
		order.Status = enums.OrderStatusTransferFailed
		c.log.Error(ctx, "order export failed", err)
		return err
	}

	fileName := template.FilePrefix + order.OrderCode + ".csv"
	artifactPath := c.storage.Path(props.LocalPath(), template.FilePrefix, order.OrderCode)

	if !props.IsFtp() {
		// Local destination: stage the file, nothing to send.
		if err := c.storage.Store(artifactPath, rendered.Bytes()); err != nil {
			order.Status = enums.OrderStatusTransferFailed
			c.log.Error(ctx, "store order artifact failed", err)
			return err
		}
		order.Status = enums.OrderStatusReadyToPack
		c.log.Info(ctx, "order staged for local pickup")
		return nil
	}

	order.Status = enums.OrderStatusInRoute
	if err := c.storage.Store(artifactPath, rendered.Bytes()); err != nil {
		order.Status = enums.OrderStatusTransferFailed
		c.log.Error(ctx, "store order artifact failed", err)
		return err
	}

	if err := c.send(ctx, props, fileName, rendered.Bytes()); err != nil {
		// The staged artifact stays on disk for the retry path.
		order.Status = enums.OrderStatusTransferFailed
		c.log.Error(ctx, "order transfer failed", err)
		return err
	}

	if err := c.storage.Delete(artifactPath); err != nil {
		c.log.Error(ctx, "cleanup of sent artifact failed", err)
	}
	c.log.Info(ctx, "order transferred")
	return nil
}

func (c *Coordinator) send(ctx context.Context, props *models.TransferProperties, fileName string, data []byte) error {
	protocol := props.Protocol.String()
	if !c.ftpSendEnabled {
		c.metrics.IncFailure(protocol)
		return pkgerrors.New(pkgerrors.CodeConfiguration, "ftp send is disabled")
	}

	start := time.Now()
	err := c.sender.Send(ctx, props, fileName, bytes.NewReader(data))
	c.metrics.ObserveDuration(protocol, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(protocol)
		return err
	}
	c.metrics.IncSuccess(protocol)
	return nil
}
