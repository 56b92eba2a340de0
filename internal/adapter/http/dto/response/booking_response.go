package response

import (
	"errors"
	"strings"
	"time"

	"lavacar_booking/internal/domain/entities"
)

const (
	MsgBookingSaved         = "¡Reserva guardada! Te hemos enviado un correo de confirmación."
	MsgBookingSavedCheckout = "¡Reserva guardada! Redirigiendo al pago..."
	MsgBookingSavedNoPay    = "Reserva guardada, pero no se pudo iniciar el pago. Te contactaremos para completarlo."
	MsgValidationFailed     = "Errores de validación. Por favor, corrige los campos marcados."
	MsgServiceNotFound      = "Servicio no encontrado."
	MsgInternalError        = "Error al guardar la reserva. Por favor, inténtalo de nuevo."
	MsgCaveatCustomerEmail  = "No se pudo enviar el correo de confirmación."
	MsgCaveatOperatorEmail  = "No se pudo avisar al equipo; te contactaremos igualmente."
)

// Public codes for steps that failed after the booking was stored. The
// underlying errors are logged, never returned.
const (
	WarnCustomerEmailFailed = "customer_email_failed"
	WarnOperatorEmailFailed = "operator_email_failed"
	WarnNotificationFailed  = "notification_failed"
	PaymentStartFailed      = "payment_start_failed"
)

// SubmissionResponse is the body of POST /v1/bookings.
type SubmissionResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	BookingID    string                `json:"bookingId,omitempty"`
	CheckoutURL  string                `json:"checkoutUrl,omitempty"`
	Warnings     []string              `json:"warnings,omitempty"`
	PaymentError string                `json:"paymentError,omitempty"`
	Errors       []entities.FieldIssue `json:"errors,omitempty"`
}

func FromSubmission(bookingID, checkoutURL string, paymentErr error, warnings []error) SubmissionResponse {
	resp := SubmissionResponse{Success: true, BookingID: bookingID, CheckoutURL: checkoutURL}
	switch {
	case paymentErr != nil:
		resp.Message = MsgBookingSavedNoPay
		resp.PaymentError = PaymentStartFailed
	case checkoutURL != "":
		resp.Message = MsgBookingSavedCheckout
	default:
		resp.Message = MsgBookingSaved
	}

	var caveats []string
	for _, w := range warnings {
		code := warningCode(w)
		resp.Warnings = append(resp.Warnings, code)
		caveat := MsgCaveatOperatorEmail
		if code != WarnOperatorEmailFailed {
			caveat = MsgCaveatCustomerEmail
		}
		if !containsString(caveats, caveat) {
			caveats = append(caveats, caveat)
		}
	}
	if len(caveats) > 0 {
		resp.Message += " " + strings.Join(caveats, " ")
	}
	return resp
}

func warningCode(err error) string {
	var ne *entities.NotificationError
	if errors.As(err, &ne) {
		switch ne.Audience {
		case entities.AudienceCustomer:
			return WarnCustomerEmailFailed
		case entities.AudienceOperator:
			return WarnOperatorEmailFailed
		}
	}
	return WarnNotificationFailed
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func SubmissionFailure(message string, issues []entities.FieldIssue) SubmissionResponse {
	return SubmissionResponse{Success: false, Message: message, Errors: issues}
}

// BookingResponse is the operator view of a stored booking.
type BookingResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	ServiceID       string    `json:"serviceId"`
	ServiceName     string    `json:"serviceName"`
	ServicePrice    float64   `json:"servicePrice"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Comments        string    `json:"comments"`
	Status          string    `json:"status"`
	PaymentIntentID string    `json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromBooking(b entities.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		Address:         b.Address,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Date:            b.Date.Format("2006-01-02"),
		Time:            b.Time,
		Comments:        b.Comments,
		Status:          string(b.Status),
		PaymentIntentID: b.PaymentIntentID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func FromBookings(list []entities.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, FromBooking(b))
	}
	return out
}
