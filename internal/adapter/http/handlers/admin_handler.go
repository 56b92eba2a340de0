package handlers

import (
	"context"
	"errors"
	"net/http"

	response "lavacar_booking/internal/adapter/http/dto/response"
	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase"
	"lavacar_booking/pkg"

	"github.com/gin-gonic/gin"
)

// AdminHandler is the operator panel. Every route sits behind the admin JWT
// middleware.
type AdminHandler struct {
	usecase usecase.IBookingUseCase
}

func NewAdminHandler(uc usecase.IBookingUseCase) *AdminHandler {
	return &AdminHandler{usecase: uc}
}

// ListBookings godoc
// @Summary   List bookings ordered by date and time slot
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}   response.BookingResponse
// @Failure   401  {object}  pkg.HTTPError
// @Router    /v1/admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromBookings(list))
}

// GetBooking godoc
// @Summary   Get one booking
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Booking id"
// @Success   200  {object}  response.BookingResponse
// @Failure   404  {object}  pkg.HTTPError
// @Router    /v1/admin/bookings/{id} [get]
func (h *AdminHandler) GetBooking(c *gin.Context) {
	h.respondBooking(c, h.usecase.GetByID)
}

// CompleteBooking godoc
// @Summary   Mark a booking completed
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Booking id"
// @Success   200  {object}  response.BookingResponse
// @Failure   409  {object}  pkg.HTTPError
// @Router    /v1/admin/bookings/{id}/complete [patch]
func (h *AdminHandler) CompleteBooking(c *gin.Context) {
	h.respondBooking(c, h.usecase.MarkCompleted)
}

// CancelBooking godoc
// @Summary   Cancel a booking
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Booking id"
// @Success   200  {object}  response.BookingResponse
// @Failure   409  {object}  pkg.HTTPError
// @Router    /v1/admin/bookings/{id}/cancel [patch]
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	h.respondBooking(c, h.usecase.Cancel)
}

func (h *AdminHandler) respondBooking(c *gin.Context, op func(ctx context.Context, id string) (entities.Booking, error)) {
	b, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromBooking(b))
}

func mapBookingError(err error) *pkg.AppError {
	var conflict *entities.StatusConflictError
	switch {
	case errors.Is(err, usecase.ErrInvalidBookingID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, entities.ErrBookingNotFound):
		return pkg.NewDomainErrorSimple("BOOKING_NOT_FOUND", "Booking not found", http.StatusNotFound)
	case errors.As(err, &conflict):
		return pkg.NewDomainError("INVALID_STATUS_TRANSITION", "Booking is "+string(conflict.Current)+" and cannot become "+string(conflict.Target), err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
