package payments

import (
	"context"
	"encoding/json"
	"strings"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

const (
	StripeSignatureHeader         = "Stripe-Signature"
	stripeCheckoutSessionComplete = "checkout.session.completed"
	stripeAsyncPaymentSucceeded   = "checkout.session.async_payment_succeeded"
)

// StripeWebhookVerifier checks the Stripe-Signature header over the raw body
// and only then decodes the event.
type StripeWebhookVerifier struct {
	secret string
}

var _ interfaces.IWebhookVerifier = (*StripeWebhookVerifier)(nil)

func NewStripeWebhookVerifier(secret string) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{secret: strings.TrimSpace(secret)}
}

func (v *StripeWebhookVerifier) Provider() string { return ProviderStripe }

func (v *StripeWebhookVerifier) VerifyAndDecode(_ context.Context, d entities.WebhookDelivery) (entities.PaymentEvent, error) {
	if v.secret == "" {
		return nil, &entities.SignatureVerificationError{Reason: "webhook secret not configured", Err: entities.MissingConfig("STRIPE_WEBHOOK_SECRET")}
	}
	sig := d.Headers.Get(StripeSignatureHeader)
	if sig == "" {
		return nil, &entities.SignatureVerificationError{Reason: "missing " + StripeSignatureHeader + " header"}
	}
	if err := webhook.ValidatePayload(d.Body, sig, v.secret); err != nil {
		return nil, &entities.SignatureVerificationError{Reason: "stripe signature mismatch", Err: err}
	}

	var ev stripe.Event
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		return entities.MalformedEvent{Reason: "event body is not valid json"}, nil
	}
	if t := string(ev.Type); t != stripeCheckoutSessionComplete && t != stripeAsyncPaymentSucceeded {
		return entities.UnhandledEvent{ID: ev.ID, Type: t}, nil
	}

	var session stripe.CheckoutSession
	if ev.Data == nil || json.Unmarshal(ev.Data.Raw, &session) != nil {
		return entities.MalformedEvent{ID: ev.ID, Type: string(ev.Type), Reason: "checkout session object not decodable"}, nil
	}
	// A completed session with a delayed method is still unpaid; the
	// async_payment_succeeded event follows once funds settle.
	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return entities.UnhandledEvent{ID: ev.ID, Type: string(ev.Type) + "." + string(session.PaymentStatus)}, nil
	}
	meta := entities.PaymentSessionMetadataFromMap(session.Metadata)
	if strings.TrimSpace(meta.BookingID) == "" {
		return entities.MalformedEvent{ID: ev.ID, Type: string(ev.Type), Reason: "metadata.bookingId missing"}, nil
	}

	paymentIntentID := ""
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}
	return entities.CheckoutCompletedEvent{
		ID:              ev.ID,
		BookingID:       meta.BookingID,
		PaymentIntentID: paymentIntentID,
		Metadata:        meta,
	}, nil
}
