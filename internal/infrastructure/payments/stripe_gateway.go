package payments

import (
	"context"
	"strings"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

const (
	ProviderStripe      = "stripe"
	ProviderMercadoPago = "mercadopago"
	ProviderMock        = "mock"
)

// StripeGateway opens hosted Stripe Checkout sessions.
type StripeGateway struct {
	secretKey string
	backends  *stripe.Backends
}

var _ interfaces.ICheckoutGateway = (*StripeGateway)(nil)

// NewStripeGateway does not validate the key; a missing key is reported by
// CreateCheckoutSession. backends may be nil to use the Stripe API.
func NewStripeGateway(secretKey string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{secretKey: strings.TrimSpace(secretKey), backends: backends}
}

func (g *StripeGateway) Provider() string { return ProviderStripe }

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req entities.CheckoutSessionRequest) (entities.CheckoutSession, error) {
	logger := logrus.WithFields(logrus.Fields{"booking_id": req.BookingID, "provider": ProviderStripe})
	if g.secretKey == "" {
		logger.Error("[payment][gateway] STRIPE_SECRET_KEY not set")
		return entities.CheckoutSession{}, &entities.PaymentGatewayError{Provider: ProviderStripe, Err: entities.MissingConfig("STRIPE_SECRET_KEY")}
	}

	sc := &client.API{}
	sc.Init(g.secretKey, g.backends)

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.LineItem.Name),
						Description: stripe.String(req.LineItem.Description),
					},
					UnitAmount: stripe.Int64(req.LineItem.UnitAmount),
				},
				Quantity: stripe.Int64(req.LineItem.Quantity),
			},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.BookingID),
	}
	params.Context = ctx
	for k, v := range req.Metadata.ToMap() {
		params.AddMetadata(k, v)
	}

	logger.WithField("unit_amount", req.LineItem.UnitAmount).Info("[payment][gateway] stripe checkout create start")
	s, err := sc.CheckoutSessions.New(params)
	if err != nil {
		logger.WithError(err).Error("[payment][gateway] stripe checkout create failed")
		return entities.CheckoutSession{}, &entities.PaymentGatewayError{Provider: ProviderStripe, Err: err}
	}
	logger.WithField("session_id", s.ID).Info("[payment][gateway] stripe checkout create success")
	return entities.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
