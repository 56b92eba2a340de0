package handlers

import (
	"errors"
	"net/http"

	request "lavacar_booking/internal/adapter/http/dto/request"
	response "lavacar_booking/internal/adapter/http/dto/response"
	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase"
	"lavacar_booking/pkg"

	"github.com/gin-gonic/gin"
)

const msgInvalidBookingPayload = "Solicitud inválida."

// BookingHandler serves the public booking form and the service catalog.
type BookingHandler struct {
	usecase usecase.IBookingUseCase
}

func NewBookingHandler(uc usecase.IBookingUseCase) *BookingHandler {
	return &BookingHandler{usecase: uc}
}

// CreateBooking godoc
// @Summary      Submit a booking
// @Description  Stores a pending booking and either opens a checkout session (payNow) or sends the confirmation emails.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        booking  body      request.BookingRequest  true  "Booking form"
// @Success      201      {object}  response.SubmissionResponse
// @Failure      400      {object}  response.SubmissionResponse
// @Failure      500      {object}  response.SubmissionResponse
// @Router       /v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var payload request.BookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, response.SubmissionFailure(msgInvalidBookingPayload, nil))
		return
	}

	res, err := h.usecase.Submit(c.Request.Context(), payload.ToInput())
	if err != nil {
		status, body := mapSubmissionError(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusCreated, response.FromSubmission(res.Booking.ID, res.CheckoutURL, res.PaymentErr, res.Warnings))
}

// ListServices godoc
// @Summary      List bookable services
// @Tags         services
// @Produce      json
// @Success      200  {array}   response.ServiceResponse
// @Failure      500  {object}  pkg.HTTPError
// @Router       /v1/services [get]
func (h *BookingHandler) ListServices(c *gin.Context) {
	services, err := h.usecase.ListServices(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "No se pudieron cargar los servicios.", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromServices(services))
}

func mapSubmissionError(err error) (int, response.SubmissionResponse) {
	var ve *entities.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, response.SubmissionFailure(response.MsgValidationFailed, ve.Issues)
	case errors.Is(err, entities.ErrServiceNotFound):
		return http.StatusBadRequest, response.SubmissionFailure(response.MsgServiceNotFound, []entities.FieldIssue{
			{Field: "serviceId", Message: response.MsgServiceNotFound},
		})
	default:
		return http.StatusInternalServerError, response.SubmissionFailure(response.MsgInternalError, nil)
	}
}
