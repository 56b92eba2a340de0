package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/sirupsen/logrus"
)

const (
	MercadoPagoSignatureHeader = "X-Signature"
	MercadoPagoRequestIDHeader = "X-Request-Id"
	mercadoPagoApproved        = "approved"
)

// paymentGetter is the part of payment.Client used to resolve a notification.
type paymentGetter interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoWebhookVerifier checks the x-signature HMAC and then resolves
// the notified payment through the API; the notification body itself only
// carries the payment id.
type MercadoPagoWebhookVerifier struct {
	secret   string
	payments paymentGetter
}

var _ interfaces.IWebhookVerifier = (*MercadoPagoWebhookVerifier)(nil)

func NewMercadoPagoWebhookVerifier(secret, accessToken string) (*MercadoPagoWebhookVerifier, error) {
	v := &MercadoPagoWebhookVerifier{secret: strings.TrimSpace(secret)}
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return v, nil
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	v.payments = payment.NewClient(cfg)
	return v, nil
}

func (v *MercadoPagoWebhookVerifier) Provider() string { return ProviderMercadoPago }

type mercadoPagoNotification struct {
	ID   json.RawMessage `json:"id"`
	Type string          `json:"type"`
}

func (v *MercadoPagoWebhookVerifier) VerifyAndDecode(ctx context.Context, d entities.WebhookDelivery) (entities.PaymentEvent, error) {
	if v.secret == "" {
		return nil, &entities.SignatureVerificationError{Reason: "webhook secret not configured", Err: entities.MissingConfig("MERCADOPAGO_WEBHOOK_SECRET")}
	}
	dataID := d.Query["data.id"]
	if err := verifyMercadoPagoSignature(v.secret, d.Headers.Get(MercadoPagoSignatureHeader), d.Headers.Get(MercadoPagoRequestIDHeader), dataID); err != nil {
		return nil, err
	}

	var n mercadoPagoNotification
	if len(d.Body) > 0 {
		if err := json.Unmarshal(d.Body, &n); err != nil {
			return entities.MalformedEvent{ID: dataID, Reason: "notification body is not valid json"}, nil
		}
	}
	eventType := d.Query["type"]
	if eventType == "" {
		eventType = n.Type
	}
	eventID := strings.Trim(string(n.ID), `"`)
	if eventID == "" {
		eventID = dataID
	}
	if eventType != "payment" {
		return entities.UnhandledEvent{ID: eventID, Type: eventType}, nil
	}

	paymentID, err := strconv.Atoi(dataID)
	if err != nil {
		return entities.MalformedEvent{ID: eventID, Type: eventType, Reason: "data.id is not a payment id"}, nil
	}
	if v.payments == nil {
		return nil, entities.MissingConfig("MERCADOPAGO_ACCESS_TOKEN")
	}

	p, err := v.payments.Get(ctx, paymentID)
	if err != nil {
		logrus.WithError(err).WithField("payment_id", paymentID).Error("[payment][webhook] mercado pago payment fetch failed")
		return nil, fmt.Errorf("fetch mercado pago payment %d: %w", paymentID, err)
	}
	if p.Status != mercadoPagoApproved {
		return entities.UnhandledEvent{ID: eventID, Type: "payment." + p.Status}, nil
	}

	meta := entities.PaymentSessionMetadataFromMap(mercadoPagoMetadata(p.Metadata))
	meta.BookingID = strings.TrimSpace(p.ExternalReference)
	if meta.BookingID == "" {
		return entities.MalformedEvent{ID: eventID, Type: eventType, Reason: "external_reference missing"}, nil
	}
	return entities.CheckoutCompletedEvent{
		ID:              eventID,
		BookingID:       meta.BookingID,
		PaymentIntentID: strconv.Itoa(p.ID),
		Metadata:        meta,
	}, nil
}

// verifyMercadoPagoSignature checks "ts=<ts>,v1=<hex>" against the manifest
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;". Parts with no value are
// left out of the manifest.
func verifyMercadoPagoSignature(secret, header, requestID, dataID string) error {
	if header == "" {
		return &entities.SignatureVerificationError{Reason: "missing x-signature header"}
	}
	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		k, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "ts":
			ts = strings.TrimSpace(val)
		case "v1":
			v1 = strings.TrimSpace(val)
		}
	}
	if ts == "" || v1 == "" {
		return &entities.SignatureVerificationError{Reason: "x-signature header missing ts or v1"}
	}
	want, err := hex.DecodeString(v1)
	if err != nil {
		return &entities.SignatureVerificationError{Reason: "x-signature v1 is not hex", Err: err}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(mercadoPagoManifest(dataID, requestID, ts)))
	if !hmac.Equal(mac.Sum(nil), want) {
		return &entities.SignatureVerificationError{Reason: "mercado pago signature mismatch"}
	}
	return nil
}

func mercadoPagoManifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	b.WriteString("ts:" + ts + ";")
	return b.String()
}

// mercadoPagoMetadata maps the snake_case keys Mercado Pago returns back to
// the keys the session was created with.
func mercadoPagoMetadata(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, val := range in {
		s, ok := val.(string)
		if !ok {
			s = fmt.Sprint(val)
		}
		out[k] = s
		out[snakeToCamel(k)] = s
	}
	return out
}

func snakeToCamel(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
