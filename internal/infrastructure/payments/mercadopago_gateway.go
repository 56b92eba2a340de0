package payments

import (
	"context"
	"errors"
	"strings"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/sirupsen/logrus"
)

// preferenceCreator is the part of preference.Client used for checkout.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPagoGateway opens Checkout Pro preferences. The booking id travels
// as external_reference, which Mercado Pago returns on the payment.
type MercadoPagoGateway struct {
	client  preferenceCreator
	sandbox bool
}

var _ interfaces.ICheckoutGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		logrus.Warn("[payment][gateway] MERCADOPAGO_ACCESS_TOKEN not set; checkout will fail until configured")
		return &MercadoPagoGateway{}, nil
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		logrus.WithError(err).Error("[payment][gateway] failed creating mercado pago sdk config")
		return nil, err
	}
	logrus.Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		client:  preference.NewClient(cfg),
		sandbox: strings.HasPrefix(accessToken, "TEST-"),
	}, nil
}

func (g *MercadoPagoGateway) Provider() string { return ProviderMercadoPago }

func (g *MercadoPagoGateway) CreateCheckoutSession(ctx context.Context, req entities.CheckoutSessionRequest) (entities.CheckoutSession, error) {
	logger := logrus.WithFields(logrus.Fields{"booking_id": req.BookingID, "provider": ProviderMercadoPago})
	if g == nil || g.client == nil {
		logger.Error("[payment][gateway] MERCADOPAGO_ACCESS_TOKEN not set")
		return entities.CheckoutSession{}, &entities.PaymentGatewayError{Provider: ProviderMercadoPago, Err: entities.MissingConfig("MERCADOPAGO_ACCESS_TOKEN")}
	}

	metadata := make(map[string]any, 9)
	for k, v := range req.Metadata.ToMap() {
		metadata[k] = v
	}

	preq := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          req.LineItem.ServiceID,
				Title:       req.LineItem.Name,
				Description: req.LineItem.Description,
				Quantity:    int(req.LineItem.Quantity),
				UnitPrice:   entities.FromMinorUnits(req.LineItem.UnitAmount),
				CurrencyID:  strings.ToUpper(req.Currency),
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Pending: req.SuccessURL,
			Failure: req.CancelURL,
		},
		AutoReturn:        "approved",
		ExternalReference: req.BookingID,
		Metadata:          metadata,
	}

	logger.WithField("unit_amount", req.LineItem.UnitAmount).Info("[payment][gateway] mercado pago preference create start")
	resp, err := g.client.Create(ctx, preq)
	if err != nil {
		logger.WithError(err).Error("[payment][gateway] mercado pago preference create failed")
		return entities.CheckoutSession{}, &entities.PaymentGatewayError{Provider: ProviderMercadoPago, Err: err}
	}
	if resp == nil {
		return entities.CheckoutSession{}, &entities.PaymentGatewayError{Provider: ProviderMercadoPago, Err: errors.New("empty preference response")}
	}

	checkoutURL := resp.InitPoint
	if g.sandbox && resp.SandboxInitPoint != "" {
		checkoutURL = resp.SandboxInitPoint
	}
	logger.WithField("preference_id", resp.ID).Info("[payment][gateway] mercado pago preference create success")
	return entities.CheckoutSession{ID: resp.ID, URL: checkoutURL}, nil
}
