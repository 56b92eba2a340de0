package interfaces

import (
	"context"
	"lavacar_booking/internal/domain/entities"
)

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_interface_mock.go -package=mock_interfaces

// ICheckoutGateway abstracts hosted checkout providers (Stripe, Mercado Pago).
//
// It only opens the session; nothing is written locally.
type ICheckoutGateway interface {
	Provider() string
	CreateCheckoutSession(ctx context.Context, req entities.CheckoutSessionRequest) (entities.CheckoutSession, error)
}

// IWebhookVerifier authenticates a raw delivery and decodes it into exactly
// one entities.PaymentEvent variant.
//
// Verification runs over the raw body before any business field is parsed.
// Failures are *entities.SignatureVerificationError.
type IWebhookVerifier interface {
	Provider() string
	VerifyAndDecode(ctx context.Context, delivery entities.WebhookDelivery) (entities.PaymentEvent, error)
}
