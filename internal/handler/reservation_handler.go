package handler

import (
	"errors"
	"go-gin-seat-reservation/internal/model"
	"go-gin-seat-reservation/internal/service"
	apperrors "go-gin-seat-reservation/pkg/app_errors"
	"go-gin-seat-reservation/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service service.ReservationService
}

func NewReservationHandler(service service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("reservations", h.GetReservations)
		router.GET("reservations/:id", h.GetReservation)
		router.POST("reservations", h.CreateReservation)
		router.PUT("reservations/:id/confirm", h.ConfirmReservation)
		router.PUT("reservations/:id/cancel", h.CancelReservation)
		router.DELETE("reservations/:id", h.DeleteReservation)

		router.POST("sessions", h.BeginFlow)
		router.GET("sessions/:id/last-reservation", h.LastReservation)
		router.DELETE("sessions/:id", h.EndFlow)
	}
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req model.CreateReservationRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.PrepareReservation(c, req)
	if err != nil {
		h.handleReservationError(c, err, "CreateReservation")
		return
	}

	h.handleReservationSuccess(c, created, http.StatusCreated)
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	idInt, ok := h.parseID(c)
	if !ok {
		return
	}
	reservation, err := h.service.GetReservationByID(c, idInt)
	if err != nil {
		h.handleReservationError(c, err, "GetReservation")
		return
	}

	h.handleReservationSuccess(c, reservation, http.StatusOK)
}

func (h *ReservationHandler) GetReservations(c *gin.Context) {
	reservations, err := h.service.ReservationList(c)
	if err != nil {
		h.handleReservationError(c, err, "GetReservations")
		return
	}

	h.handleReservationSuccess(c, reservations, http.StatusOK)
}

func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	idInt, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.ConfirmReservation(c, idInt); err != nil {
		h.handleReservationError(c, err, "ConfirmReservation")
		return
	}

	h.handleReservationSuccess(c, nil, http.StatusOK)
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	idInt, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.CancelReservation(c, idInt); err != nil {
		h.handleReservationError(c, err, "CancelReservation")
		return
	}

	h.handleReservationSuccess(c, nil, http.StatusOK)
}

func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	idInt, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteReservation(c, idInt); err != nil {
		h.handleReservationError(c, err, "DeleteReservation")
		return
	}

	h.handleReservationSuccess(c, nil, http.StatusOK)
}

func (h *ReservationHandler) BeginFlow(c *gin.Context) {
	flow, err := h.service.BeginFlow(c)
	if err != nil {
		h.handleReservationError(c, err, "BeginFlow")
		return
	}
	c.JSON(http.StatusCreated, flow)
}

func (h *ReservationHandler) LastReservation(c *gin.Context) {
	reservationID, err := h.service.LastReservation(c, c.Param("id"))
	if err != nil {
		h.handleReservationError(c, err, "LastReservation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation_id": reservationID})
}

func (h *ReservationHandler) EndFlow(c *gin.Context) {
	if err := h.service.EndFlow(c, c.Param("id")); err != nil {
		h.handleReservationError(c, err, "EndFlow")
		return
	}
	c.Status(http.StatusNoContent)
}

// Helper functions

func (h *ReservationHandler) parseID(c *gin.Context) (int, bool) {
	idInt, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation id"})
		return 0, false
	}
	return idInt, true
}

func (h *ReservationHandler) handleReservationError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrSeatAlreadyTaken):
		log.Warn("Seat already taken")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Seat already taken",
		})
	case errors.Is(err, apperrors.ErrSeatUnavailable):
		log.Warn("Seat unavailable")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Seat unavailable",
		})
	case errors.Is(err, apperrors.ErrCrossTypeSelection):
		log.Warn("Cross ticket type selection")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "All seats in an order must share one ticket type",
		})
	case errors.Is(err, apperrors.ErrEmptySelection):
		log.Warn("Empty selection")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No seats selected",
		})
	case errors.Is(err, apperrors.ErrMissingTicketType):
		log.Warn("Missing ticket type")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Selected zone has no ticket type",
		})
	case errors.Is(err, apperrors.ErrQuantityOutOfRange):
		log.Warn("Quantity out of range")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Seat count outside per-order limits",
		})
	case errors.Is(err, apperrors.ErrSalesNotOpen):
		log.Warn("Sales not open")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Sales not open",
		})
	case errors.Is(err, apperrors.ErrZoneNotFound):
		log.Warn("Zone not found")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown zone",
		})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	case errors.Is(err, apperrors.ErrZoneConfigNotFound):
		log.Warn("Zone config not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Zone config not found",
		})
	case errors.Is(err, apperrors.ErrReservationNotFound):
		log.Warn("Reservation not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, apperrors.ErrInvalidReservationStatus):
		log.Warn("Invalid reservation status")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invalid reservation status",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *ReservationHandler) handleReservationSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}
