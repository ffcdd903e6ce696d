// Package http provides the inbound HTTP adapter: an Echo server exposing
// the payment webhook, the handoff operations, and the tracking reads.
package http

import (
	"errors"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	confirmPaymentHandler       commands.ConfirmPaymentCommandHandler
	acceptCollectionHandler     commands.AcceptCollectionCommandHandler
	finalizeCollectionHandler   commands.FinalizeCollectionCommandHandler
	registerDepotArrivalHandler commands.RegisterDepotArrivalCommandHandler
	claimVolumeHandler          commands.ClaimVolumeCommandHandler
	acceptDeliveryHandler       commands.AcceptDeliveryCommandHandler
	finalizeDeliveryHandler     commands.FinalizeDeliveryCommandHandler
	recordOccurrenceHandler     commands.RecordOccurrenceCommandHandler

	// Query handlers
	getShipmentHandler            queries.GetShipmentQueryHandler
	getShipmentTimelineHandler    queries.GetShipmentTimelineQueryHandler
	searchAvailableVolumesHandler queries.SearchAvailableVolumesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	acceptCollectionHandler commands.AcceptCollectionCommandHandler,
	finalizeCollectionHandler commands.FinalizeCollectionCommandHandler,
	registerDepotArrivalHandler commands.RegisterDepotArrivalCommandHandler,
	claimVolumeHandler commands.ClaimVolumeCommandHandler,
	acceptDeliveryHandler commands.AcceptDeliveryCommandHandler,
	finalizeDeliveryHandler commands.FinalizeDeliveryCommandHandler,
	recordOccurrenceHandler commands.RecordOccurrenceCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getShipmentTimelineHandler queries.GetShipmentTimelineQueryHandler,
	searchAvailableVolumesHandler queries.SearchAvailableVolumesQueryHandler,
) *Server {
	return &Server{
		confirmPaymentHandler:         confirmPaymentHandler,
		acceptCollectionHandler:       acceptCollectionHandler,
		finalizeCollectionHandler:     finalizeCollectionHandler,
		registerDepotArrivalHandler:   registerDepotArrivalHandler,
		claimVolumeHandler:            claimVolumeHandler,
		acceptDeliveryHandler:         acceptDeliveryHandler,
		finalizeDeliveryHandler:       finalizeDeliveryHandler,
		recordOccurrenceHandler:       recordOccurrenceHandler,
		getShipmentHandler:            getShipmentHandler,
		getShipmentTimelineHandler:    getShipmentTimelineHandler,
		searchAvailableVolumesHandler: searchAvailableVolumesHandler,
	}
}

// RegisterRoutes attaches every endpoint to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/payments/confirmation", s.ConfirmPayment)
	api.POST("/volumes/:id/accept-collection", s.AcceptCollection)
	api.POST("/shipments/:id/finalize-collection", s.FinalizeCollection)
	api.POST("/volumes/:id/depot-arrival", s.RegisterDepotArrival)
	api.GET("/volumes/available", s.SearchAvailableVolumes)
	api.POST("/volumes/:id/claim", s.ClaimVolume)
	api.POST("/volumes/:id/accept-delivery", s.AcceptDelivery)
	api.POST("/volumes/:id/finalize-delivery", s.FinalizeDelivery)
	api.POST("/volumes/:id/occurrences", s.RecordOccurrence)
	api.GET("/shipments/:id", s.GetShipment)
	api.GET("/shipments/:id/timeline", s.GetShipmentTimeline)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ConfirmPayment handles POST /api/v1/payments/confirmation - the payment
// gateway webhook. Duplicate deliveries of the same event are normal and
// answered 200 like the first one; a reference with no pending draft is
// acknowledged 202 so the gateway stops retrying.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var request ConfirmPaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmPaymentCommand(request.PaymentReference)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	switch result.Outcome {
	case commands.OutcomeMaterialized:
		return ctx.JSON(http.StatusOK, ConfirmPaymentResponse{
			Outcome:        "MATERIALIZED",
			ShipmentID:     result.ShipmentID.String(),
			VolumesCreated: result.VolumesCreated,
			VolumesFailed:  result.VolumesFailed,
		})
	case commands.OutcomeAlreadyProcessed:
		return ctx.JSON(http.StatusOK, ConfirmPaymentResponse{Outcome: "ALREADY_PROCESSED"})
	default:
		return ctx.JSON(http.StatusAccepted, ConfirmPaymentResponse{Outcome: "NO_MATCHING_DRAFT"})
	}
}

// AcceptCollection handles POST /api/v1/volumes/:id/accept-collection.
func (s *Server) AcceptCollection(ctx echo.Context) error {
	volumeID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid volume id")
	}

	var request VerifiedActionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	cmd, err := commands.NewAcceptCollectionCommand(volumeID, actorID, request.EnteredDigits)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.acceptCollectionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FinalizeCollection handles POST /api/v1/shipments/:id/finalize-collection.
func (s *Server) FinalizeCollection(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var request ActorRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	cmd, err := commands.NewFinalizeCollectionCommand(shipmentID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.finalizeCollectionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterDepotArrival handles POST /api/v1/volumes/:id/depot-arrival.
func (s *Server) RegisterDepotArrival(ctx echo.Context) error {
	volumeID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid volume id")
	}

	var request VerifiedActionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	cmd, err := commands.NewRegisterDepotArrivalCommand(volumeID, actorID, request.EnteredDigits)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.registerDepotArrivalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SearchAvailableVolumes handles GET /api/v1/volumes/available?digits=NNNN.
func (s *Server) SearchAvailableVolumes(ctx echo.Context) error {
	query, err := queries.NewSearchAvailableVolumesQuery(ctx.QueryParam("digits"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	volumes, err := s.searchAvailableVolumesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	response := make([]AvailableVolumeResponse, len(volumes))
	for i, volume := range volumes {
		response[i] = AvailableVolumeResponse{
			VolumeID:              volume.VolumeID.String(),
			ShipmentID:            volume.ShipmentID.String(),
			ParcelCode:            volume.ParcelCode,
			WeightGrams:           volume.WeightGrams,
			RecipientName:         volume.RecipientName,
			RecipientCity:         volume.RecipientCity,
			RecipientState:        volume.RecipientState,
			RequestedDeliveryDate: volume.RequestedDeliveryDate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimVolume handles POST /api/v1/volumes/:id/claim.
func (s *Server) ClaimVolume(ctx echo.Context) error {
	volumeID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid volume id")
	}

	var request ActorRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	cmd, err := commands.NewClaimVolumeCommand(volumeID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.claimVolumeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptDelivery handles POST /api/v1/volumes/:id/accept-delivery.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	volumeID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid volume id")
	}

	var request ActorRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	cmd, err := commands.NewAcceptDeliveryCommand(volumeID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.acceptDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FinalizeDelivery handles POST /api/v1/volumes/:id/finalize-delivery.
func (s *Server) FinalizeDelivery(ctx echo.Context) error {
	volumeID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid volume id")
	}

	var request ActorRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	cmd, err := commands.NewFinalizeDeliveryCommand(volumeID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.finalizeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordOccurrence handles POST /api/v1/volumes/:id/occurrences.
func (s *Server) RecordOccurrence(ctx echo.Context) error {
	volumeID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid volume id")
	}

	var request RecordOccurrenceRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	role, err := shipment.RoleFromString(request.Role)
	if err != nil {
		return badRequest(ctx, "Invalid role")
	}

	reason, err := shipment.OccurrenceReasonFromString(request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid occurrence reason")
	}

	cmd, err := commands.NewRecordOccurrenceCommand(
		volumeID, actorID, role, reason, request.Description, request.MediaURL)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.recordOccurrenceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	volumes := make([]ShipmentVolumeResponse, len(result.Volumes))
	for i, volume := range result.Volumes {
		volumes[i] = ShipmentVolumeResponse{
			ID:             volume.ID.String(),
			ParcelCode:     volume.ParcelCode,
			Sequence:       volume.Sequence,
			WeightGrams:    volume.WeightGrams,
			Status:         volume.Status,
			RecipientName:  volume.RecipientName,
			RecipientCity:  volume.RecipientCity,
			RecipientState: volume.RecipientState,
		}
		if volume.AssignedActorID != nil {
			actorID := volume.AssignedActorID.String()
			volumes[i].AssignedActorID = &actorID
		}
	}

	return ctx.JSON(http.StatusOK, ShipmentResponse{
		ID:                    result.ID.String(),
		ClientID:              result.ClientID.String(),
		TrackingCode:          result.TrackingCode,
		VolumeCount:           result.VolumeCount,
		TotalWeightGrams:      result.TotalWeightGrams,
		TotalPriceCents:       result.TotalPriceCents,
		PickupPointRef:        result.PickupPointRef,
		RequestedDeliveryDate: result.RequestedDeliveryDate,
		PaymentReference:      result.PaymentReference,
		CreatedAt:             result.CreatedAt,
		Volumes:               volumes,
	})
}

// GetShipmentTimeline handles GET /api/v1/shipments/:id/timeline.
func (s *Server) GetShipmentTimeline(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentTimelineQuery(shipmentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	entries, err := s.getShipmentTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	response := make([]TimelineEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = TimelineEntryResponse{
			ID:               entry.ID.String(),
			Status:           entry.Status,
			Description:      entry.Description,
			OccurrenceReason: entry.OccurrenceReason,
			MediaURL:         entry.MediaURL,
			CreatedAt:        entry.CreatedAt,
		}
		if entry.VolumeID != nil {
			volumeID := entry.VolumeID.String()
			response[i].VolumeID = &volumeID
		}
		if entry.ActorID != nil {
			actorID := entry.ActorID.String()
			response[i].ActorID = &actorID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// badRequest answers 400 with a message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapDomainError translates the domain error taxonomy to HTTP statuses:
// unknown object -> 404, lost race or stale precondition -> 409, failed
// code verification -> 422, everything invalid about the request -> 400.
func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrStatusConflict),
		errors.Is(err, services.ErrPreconditionFailed):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Volume already advanced past the expected status",
		})
	case errors.Is(err, ports.ErrClaimConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Volume is no longer available",
		})
	case errors.Is(err, services.ErrCollectionGateNotSatisfied),
		errors.Is(err, shipment.ErrVolumeNotAssignedToActor),
		errors.Is(err, commands.ErrOccurrenceNotAllowedInStatus):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrVerificationFailed):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "Entered digits do not match the parcel code",
		})
	case errors.Is(err, services.ErrVerificationRequired),
		errors.Is(err, services.ErrRoleNotAllowed),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
