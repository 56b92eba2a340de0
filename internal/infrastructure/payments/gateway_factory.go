package payments

import (
	"fmt"

	appconfig "lavacar_booking/internal/infrastructure/config"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// NewCheckoutGateway picks the gateway named by PAYMENT_PROVIDER, or the mock
// gateway when PAYMENT_GATEWAY_MOCK is on.
func NewCheckoutGateway(cfg appconfig.Payment) (interfaces.ICheckoutGateway, error) {
	if cfg.MockPayments() {
		logrus.Warn("[payment][gateway] mock mode enabled")
		return NewMockGateway(), nil
	}
	switch cfg.Provider {
	case "", ProviderStripe:
		return NewStripeGateway(cfg.StripeSecretKey, nil), nil
	case ProviderMercadoPago:
		gw, err := NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
		if err != nil {
			return nil, err
		}
		return gw, nil
	}
	return nil, fmt.Errorf("unknown PAYMENT_PROVIDER %q", cfg.Provider)
}

// NewWebhookVerifiers returns a verifier for every provider. Each one fails
// closed on its own when its secret is missing.
func NewWebhookVerifiers(cfg appconfig.Payment) ([]interfaces.IWebhookVerifier, error) {
	mp, err := NewMercadoPagoWebhookVerifier(cfg.MercadoPagoWebhookSecret, cfg.MercadoPagoAccessToken)
	if err != nil {
		return nil, err
	}
	return []interfaces.IWebhookVerifier{NewStripeWebhookVerifier(cfg.StripeWebhookSecret), mp}, nil
}
