package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openlmis/fulfillment-backend/api/responses"
	"github.com/openlmis/fulfillment-backend/api/validators"
	"github.com/openlmis/fulfillment-backend/internal/transfer"
	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
)

type transferPropertiesRequest struct {
	FacilityID uuid.UUID `json:"facilityId" validate:"required"`
	Type       string    `json:"type" validate:"required"`

	Path string `json:"path,omitempty"`

	Protocol        string `json:"protocol,omitempty"`
	Username        string `json:"username,omitempty"`
	Password        string `json:"password,omitempty"`
	ServerHost      string `json:"serverHost,omitempty"`
	ServerPort      int    `json:"serverPort,omitempty"`
	RemoteDirectory string `json:"remoteDirectory,omitempty"`
	LocalDirectory  string `json:"localDirectory,omitempty"`
	PassiveMode     *bool  `json:"passiveMode,omitempty"`
}

// transferPropertiesResponse never carries the password back out.
type transferPropertiesResponse struct {
	ID         uuid.UUID          `json:"id"`
	FacilityID uuid.UUID          `json:"facilityId"`
	Type       enums.TransferType `json:"type"`

	Path string `json:"path,omitempty"`

	Protocol        string `json:"protocol,omitempty"`
	Username        string `json:"username,omitempty"`
	ServerHost      string `json:"serverHost,omitempty"`
	ServerPort      int    `json:"serverPort,omitempty"`
	RemoteDirectory string `json:"remoteDirectory,omitempty"`
	LocalDirectory  string `json:"localDirectory,omitempty"`
	PassiveMode     bool   `json:"passiveMode"`
}

func toTransferPropertiesModel(input transferPropertiesRequest) (*models.TransferProperties, error) {
	transferType, err := enums.ParseTransferType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown transfer type")
	}

	props := &models.TransferProperties{
		FacilityID:      input.FacilityID,
		Type:            transferType,
		Path:            input.Path,
		Username:        input.Username,
		Password:        input.Password,
		ServerHost:      input.ServerHost,
		ServerPort:      input.ServerPort,
		RemoteDirectory: input.RemoteDirectory,
		LocalDirectory:  input.LocalDirectory,
		PassiveMode:     true,
	}
	if input.PassiveMode != nil {
		props.PassiveMode = *input.PassiveMode
	}
	if transferType == enums.TransferTypeFtp {
		protocol, err := enums.ParseFtpProtocol(input.Protocol)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown ftp protocol")
		}
		props.Protocol = protocol
	}
	return props, nil
}

func toTransferPropertiesResponse(props *models.TransferProperties) transferPropertiesResponse {
	return transferPropertiesResponse{
		ID:              props.ID,
		FacilityID:      props.FacilityID,
		Type:            props.Type,
		Path:            props.Path,
		Protocol:        props.Protocol.String(),
		Username:        props.Username,
		ServerHost:      props.ServerHost,
		ServerPort:      props.ServerPort,
		RemoteDirectory: props.RemoteDirectory,
		LocalDirectory:  props.LocalDirectory,
		PassiveMode:     props.PassiveMode,
	}
}

// TransferPropertiesCreate stores a facility's delivery configuration.
func TransferPropertiesCreate(svc *transfer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input transferPropertiesRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		props, err := toTransferPropertiesModel(input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), props)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toTransferPropertiesResponse(created))
	}
}

// TransferPropertiesGet fetches a configuration by ID.
func TransferPropertiesGet(svc *transfer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "propertiesID"), "propertiesID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		props, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toTransferPropertiesResponse(props))
	}
}

// TransferPropertiesSearch fetches the configuration for a facility.
func TransferPropertiesSearch(svc *transfer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facilityID, err := validators.ParseQueryUUID(r, "facility")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if facilityID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "facility query parameter is required"))
			return
		}

		props, err := svc.GetByFacility(r.Context(), *facilityID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toTransferPropertiesResponse(props))
	}
}

// TransferPropertiesUpdate replaces a configuration by ID.
func TransferPropertiesUpdate(svc *transfer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "propertiesID"), "propertiesID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input transferPropertiesRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		props, err := toTransferPropertiesModel(input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, props)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toTransferPropertiesResponse(updated))
	}
}

// TransferPropertiesDelete removes a configuration by ID.
func TransferPropertiesDelete(svc *transfer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "propertiesID"), "propertiesID")
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
