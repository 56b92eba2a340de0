package payments

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"lavacar_booking/internal/domain/entities"
)

const testStripeSecret = "whsec_test_secret"

func completedSessionBody(bookingID string) []byte {
	return sessionEventBody("checkout.session.completed", "paid", bookingID)
}

func sessionEventBody(eventType, paymentStatus, bookingID string) []byte {
	return []byte(`{"id":"evt_1","object":"event","type":"` + eventType + `","data":{"object":{"id":"cs_test_1","object":"checkout.session","payment_status":"` + paymentStatus + `","payment_intent":"pi_123","metadata":{"bookingId":"` + bookingID + `","clientEmail":"ana@example.com","clientName":"Ana López","serviceName":"Lavado básico","bookingDate":"1 de junio de 2025","bookingTime":"10:00"}}}}`)
}

func stripeDelivery(body []byte, sig string) entities.WebhookDelivery {
	h := http.Header{}
	if sig != "" {
		h.Set(StripeSignatureHeader, sig)
	}
	return entities.WebhookDelivery{Body: body, Headers: h}
}

func TestStripeWebhookVerifier_CheckoutCompleted(t *testing.T) {
	v := NewStripeWebhookVerifier(testStripeSecret)
	body := completedSessionBody("bk-1")

	ev, err := v.VerifyAndDecode(context.Background(), stripeDelivery(body, stripeSignature(testStripeSecret, body, time.Now())))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done, ok := ev.(entities.CheckoutCompletedEvent)
	if !ok {
		t.Fatalf("expected CheckoutCompletedEvent, got %T", ev)
	}
	if done.ID != "evt_1" || done.BookingID != "bk-1" || done.PaymentIntentID != "pi_123" {
		t.Fatalf("unexpected event: %+v", done)
	}
	if done.Metadata.ServiceName != "Lavado básico" || done.Metadata.ClientEmail != "ana@example.com" {
		t.Fatalf("metadata not decoded: %+v", done.Metadata)
	}
}

func TestStripeWebhookVerifier_Rejections(t *testing.T) {
	body := completedSessionBody("bk-1")
	valid := stripeSignature(testStripeSecret, body, time.Now())

	cases := []struct {
		name     string
		verifier *StripeWebhookVerifier
		delivery entities.WebhookDelivery
	}{
		{"missing secret", NewStripeWebhookVerifier(""), stripeDelivery(body, valid)},
		{"missing header", NewStripeWebhookVerifier(testStripeSecret), stripeDelivery(body, "")},
		{"tampered body", NewStripeWebhookVerifier(testStripeSecret), stripeDelivery(completedSessionBody("bk-2"), valid)},
		{"wrong secret", NewStripeWebhookVerifier("whsec_other"), stripeDelivery(body, valid)},
		{"stale timestamp", NewStripeWebhookVerifier(testStripeSecret), stripeDelivery(body, stripeSignature(testStripeSecret, body, time.Now().Add(-time.Hour)))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := tc.verifier.VerifyAndDecode(context.Background(), tc.delivery)
			var sve *entities.SignatureVerificationError
			if !errors.As(err, &sve) {
				t.Fatalf("expected SignatureVerificationError, got %v", err)
			}
			if ev != nil {
				t.Fatalf("expected no event, got %+v", ev)
			}
		})
	}

	t.Run("missing secret names the key", func(t *testing.T) {
		_, err := NewStripeWebhookVerifier("").VerifyAndDecode(context.Background(), stripeDelivery(body, valid))
		var ce *entities.ConfigurationError
		if !errors.As(err, &ce) || ce.Key != "STRIPE_WEBHOOK_SECRET" {
			t.Fatalf("expected ConfigurationError for STRIPE_WEBHOOK_SECRET, got %v", err)
		}
	})
}

func TestStripeWebhookVerifier_OtherEvents(t *testing.T) {
	v := NewStripeWebhookVerifier(testStripeSecret)

	t.Run("unhandled kind", func(t *testing.T) {
		body := []byte(`{"id":"evt_2","object":"event","type":"payment_intent.created","data":{"object":{"id":"pi_1","object":"payment_intent"}}}`)
		ev, err := v.VerifyAndDecode(context.Background(), stripeDelivery(body, stripeSignature(testStripeSecret, body, time.Now())))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		u, ok := ev.(entities.UnhandledEvent)
		if !ok || u.Type != "payment_intent.created" || u.ID != "evt_2" {
			t.Fatalf("expected UnhandledEvent, got %#v", ev)
		}
	})

	t.Run("missing bookingId", func(t *testing.T) {
		body := []byte(`{"id":"evt_3","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_1","object":"checkout.session","payment_status":"paid","metadata":{}}}}`)
		ev, err := v.VerifyAndDecode(context.Background(), stripeDelivery(body, stripeSignature(testStripeSecret, body, time.Now())))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := ev.(entities.MalformedEvent); !ok {
			t.Fatalf("expected MalformedEvent, got %#v", ev)
		}
	})

	t.Run("completed but unpaid waits for settlement", func(t *testing.T) {
		body := sessionEventBody("checkout.session.completed", "unpaid", "bk-1")
		ev, err := v.VerifyAndDecode(context.Background(), stripeDelivery(body, stripeSignature(testStripeSecret, body, time.Now())))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		u, ok := ev.(entities.UnhandledEvent)
		if !ok || u.Type != "checkout.session.completed.unpaid" {
			t.Fatalf("expected UnhandledEvent, got %#v", ev)
		}
	})

	t.Run("async payment succeeded", func(t *testing.T) {
		body := sessionEventBody("checkout.session.async_payment_succeeded", "paid", "bk-1")
		ev, err := v.VerifyAndDecode(context.Background(), stripeDelivery(body, stripeSignature(testStripeSecret, body, time.Now())))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		done, ok := ev.(entities.CheckoutCompletedEvent)
		if !ok || done.BookingID != "bk-1" || done.PaymentIntentID != "pi_123" {
			t.Fatalf("expected CheckoutCompletedEvent, got %#v", ev)
		}
	})

	t.Run("signed but not json", func(t *testing.T) {
		body := []byte(`not-json`)
		ev, err := v.VerifyAndDecode(context.Background(), stripeDelivery(body, stripeSignature(testStripeSecret, body, time.Now())))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := ev.(entities.MalformedEvent); !ok {
			t.Fatalf("expected MalformedEvent, got %#v", ev)
		}
	})
}
