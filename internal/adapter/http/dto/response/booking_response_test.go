package response

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"lavacar_booking/internal/domain/entities"
)

func TestFromSubmission(t *testing.T) {
	t.Run("pay later", func(t *testing.T) {
		r := FromSubmission("bk-1", "", nil, nil)
		if !r.Success || r.Message != MsgBookingSaved || r.BookingID != "bk-1" || r.Warnings != nil {
			t.Fatalf("unexpected response %+v", r)
		}
	})

	t.Run("failed confirmation email adds a caveat", func(t *testing.T) {
		r := FromSubmission("bk-1", "", nil, []error{&entities.NotificationError{
			TemplateID: "tpl_customer_booking", Recipient: "ana@example.com", Audience: entities.AudienceCustomer,
			Err: errors.New("emailjs responded 500"),
		}})
		if r.Message != MsgBookingSaved+" "+MsgCaveatCustomerEmail {
			t.Fatalf("unexpected message %q", r.Message)
		}
		if len(r.Warnings) != 1 || r.Warnings[0] != WarnCustomerEmailFailed {
			t.Fatalf("unexpected warnings %+v", r.Warnings)
		}
	})

	t.Run("warnings never expose recipients or provider detail", func(t *testing.T) {
		r := FromSubmission("bk-1", "", nil, []error{
			&entities.NotificationError{TemplateID: "tpl_o", Recipient: "owner-private@lavacar.es", Audience: entities.AudienceOperator, Err: errors.New("emailjs responded 400: template not found")},
			&entities.NotificationError{Audience: entities.AudienceOperator, Err: entities.MissingConfig("OPERATOR_EMAIL")},
			errors.New("unclassified"),
		})
		want := []string{WarnOperatorEmailFailed, WarnOperatorEmailFailed, WarnNotificationFailed}
		if len(r.Warnings) != len(want) {
			t.Fatalf("unexpected warnings %+v", r.Warnings)
		}
		for i := range want {
			if r.Warnings[i] != want[i] {
				t.Fatalf("warning %d: expected %q, got %q", i, want[i], r.Warnings[i])
			}
		}
		body, _ := json.Marshal(r)
		for _, leak := range []string{"owner-private", "tpl_o", "template not found", "OPERATOR_EMAIL"} {
			if strings.Contains(string(body), leak) {
				t.Fatalf("response leaks %q: %s", leak, body)
			}
		}
		if r.Message != MsgBookingSaved+" "+MsgCaveatOperatorEmail+" "+MsgCaveatCustomerEmail {
			t.Fatalf("unexpected message %q", r.Message)
		}
	})

	t.Run("checkout opened", func(t *testing.T) {
		r := FromSubmission("bk-1", "https://checkout.example/cs_1", nil, nil)
		if r.Message != MsgBookingSavedCheckout || r.CheckoutURL == "" || r.Warnings != nil {
			t.Fatalf("unexpected response %+v", r)
		}
	})

	t.Run("payment failed keeps success with a stable code", func(t *testing.T) {
		err := &entities.PaymentGatewayError{Provider: "stripe", Err: entities.MissingConfig("STRIPE_SECRET_KEY")}
		r := FromSubmission("bk-1", "", err, nil)
		if !r.Success || r.Message != MsgBookingSavedNoPay || r.PaymentError != PaymentStartFailed {
			t.Fatalf("unexpected response %+v", r)
		}
	})
}

func TestFromBooking(t *testing.T) {
	b := entities.Booking{ID: "bk-1", Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Status: entities.BookingStatusPaid}
	r := FromBooking(b)
	if r.Date != "2025-06-01" || r.Status != "paid" {
		t.Fatalf("unexpected response %+v", r)
	}
	if got := FromBookings(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice")
	}
}
