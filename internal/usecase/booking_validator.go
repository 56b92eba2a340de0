package usecase

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"lavacar_booking/internal/domain/entities"

	"github.com/go-playground/validator/v10"
)

// BookingInput is the raw booking form as submitted by the client. Nothing in
// it is trusted until ValidateBooking has run.
type BookingInput struct {
	Name      string  `json:"name" validate:"min=2"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone" validate:"phonedigits"`
	Address   string  `json:"address" validate:"min=5"`
	ServiceID string  `json:"serviceId" validate:"required"`
	Date      string  `json:"date" validate:"bookingdate"`
	Time      string  `json:"time" validate:"required"`
	Comments  *string `json:"comments"`
	PayNow    *bool   `json:"payNow"`
}

const minPhoneDigits = 9

// bookingDateLayouts are tried in order; the form sends a plain date, API
// clients may send a full timestamp.
var bookingDateLayouts = []string{"2006-01-02", time.RFC3339}

var fieldMessages = map[string]string{
	"name":      "El nombre debe tener al menos 2 caracteres.",
	"email":     "Correo inválido.",
	"phone":     "Teléfono inválido. Debe tener al menos 9 dígitos.",
	"address":   "Dirección inválida.",
	"serviceId": "Selecciona un servicio.",
	"date":      "Selecciona una fecha válida.",
	"time":      "Selecciona una hora.",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func bookingValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
			return countDigits(fl.Field().String()) >= minPhoneDigits
		})
		_ = v.RegisterValidation("bookingdate", func(fl validator.FieldLevel) bool {
			_, ok := parseBookingDate(fl.Field().String())
			return ok
		})
		validate = v
	})
	return validate
}

// ValidateBooking checks every field and returns either a complete
// BookingRequest or a *entities.ValidationError with one issue per failing
// field. It never returns a partially filled request.
func ValidateBooking(in BookingInput) (entities.BookingRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.ServiceID = strings.TrimSpace(in.ServiceID)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)

	if err := bookingValidator().Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return entities.BookingRequest{}, err
		}
		issues := make([]entities.FieldIssue, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msg, ok := fieldMessages[fe.Field()]
			if !ok {
				msg = "Campo inválido."
			}
			issues = append(issues, entities.FieldIssue{Field: fe.Field(), Message: msg})
		}
		return entities.BookingRequest{}, &entities.ValidationError{Issues: issues}
	}

	date, _ := parseBookingDate(in.Date)
	req := entities.BookingRequest{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		ServiceID: in.ServiceID,
		Date:      date,
		Time:      in.Time,
	}
	if in.Comments != nil {
		req.Comments = strings.TrimSpace(*in.Comments)
	}
	if in.PayNow != nil {
		req.PayNow = *in.PayNow
	}
	return req, nil
}

// parseBookingDate keeps the calendar day as written, whatever the offset,
// and returns it as midnight UTC.
func parseBookingDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
