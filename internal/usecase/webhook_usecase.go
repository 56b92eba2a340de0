package usecase

import (
	"context"
	"errors"
	"strings"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=webhook_usecase.go -destination=../adapter/http/handlers/mocks/webhook_usecase_mock.go -package=mocks

const unknownServiceName = "Servicio Desconocido"

// WebhookOutcome is what happened to an acknowledged delivery.
type WebhookOutcome string

const (
	OutcomeIgnored        WebhookOutcome = "ignored"
	OutcomeMalformed      WebhookOutcome = "malformed"
	OutcomeBookingMissing WebhookOutcome = "booking_missing"
	OutcomeDuplicate      WebhookOutcome = "duplicate"
	OutcomePaid           WebhookOutcome = "paid"
)

type WebhookResult struct {
	Outcome   WebhookOutcome
	EventID   string
	BookingID string
	Warnings  []error
}

// IWebhookUseCase reconciles verified payment events with stored bookings.
//
// Requested behavior:
//   - Verify before anything else; a failed check has no side effects.
//   - Only a pending booking moves to paid, and only then are the
//     payment-confirmed notifications sent.
//   - An error is returned only when a retry could help (store failures).
type IWebhookUseCase interface {
	Handle(ctx context.Context, provider string, delivery entities.WebhookDelivery) (WebhookResult, error)
}

type WebhookUseCase struct {
	verifiers  map[string]interfaces.IWebhookVerifier
	repo       interfaces.IBookingRepository
	catalog    interfaces.IServiceCatalog
	dispatcher *NotificationDispatcher
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(repo interfaces.IBookingRepository, catalog interfaces.IServiceCatalog, dispatcher *NotificationDispatcher, verifiers ...interfaces.IWebhookVerifier) *WebhookUseCase {
	byProvider := make(map[string]interfaces.IWebhookVerifier, len(verifiers))
	for _, v := range verifiers {
		if v != nil {
			byProvider[v.Provider()] = v
		}
	}
	return &WebhookUseCase{verifiers: byProvider, repo: repo, catalog: catalog, dispatcher: dispatcher}
}

func (u *WebhookUseCase) Handle(ctx context.Context, provider string, delivery entities.WebhookDelivery) (WebhookResult, error) {
	logger := logrus.WithField("provider", provider)

	verifier, ok := u.verifiers[strings.ToLower(strings.TrimSpace(provider))]
	if !ok {
		logger.Warn("[webhook][usecase] no verifier registered for provider")
		return WebhookResult{}, &entities.SignatureVerificationError{Reason: "no verifier registered for provider " + provider}
	}

	event, err := verifier.VerifyAndDecode(ctx, delivery)
	if err != nil {
		var sve *entities.SignatureVerificationError
		if errors.As(err, &sve) {
			logger.WithError(err).Warn("[webhook][usecase] delivery rejected")
		} else {
			logger.WithError(err).Error("[webhook][usecase] delivery could not be decoded")
		}
		return WebhookResult{}, err
	}
	logger = logger.WithField("event_id", event.EventID())

	switch ev := event.(type) {
	case entities.UnhandledEvent:
		logger.WithField("type", ev.Type).Info("[webhook][usecase] event kind not handled; acknowledged")
		return WebhookResult{Outcome: OutcomeIgnored, EventID: ev.ID}, nil
	case entities.MalformedEvent:
		logger.WithField("reason", ev.Reason).Warn("[webhook][usecase] malformed event; acknowledged")
		return WebhookResult{Outcome: OutcomeMalformed, EventID: ev.ID}, nil
	case entities.CheckoutCompletedEvent:
		return u.reconcile(ctx, logger, ev)
	default:
		logger.Warn("[webhook][usecase] unexpected event variant; acknowledged")
		return WebhookResult{Outcome: OutcomeIgnored, EventID: event.EventID()}, nil
	}
}

func (u *WebhookUseCase) reconcile(ctx context.Context, logger *logrus.Entry, ev entities.CheckoutCompletedEvent) (WebhookResult, error) {
	res := WebhookResult{EventID: ev.ID, BookingID: ev.BookingID}
	if strings.TrimSpace(ev.BookingID) == "" {
		logger.Warn("[webhook][usecase] checkout completed without bookingId; acknowledged")
		res.Outcome = OutcomeMalformed
		return res, nil
	}
	logger = logger.WithField("booking_id", ev.BookingID)

	current, err := u.repo.GetByID(ctx, ev.BookingID)
	if err != nil {
		logger.WithError(err).Error("[webhook][usecase] booking lookup failed")
		return WebhookResult{}, err
	}
	if current.ID == "" {
		logger.Warn("[webhook][usecase] booking not found; acknowledged")
		res.Outcome = OutcomeBookingMissing
		return res, nil
	}
	if current.Status.IsPaidOrBeyond() {
		logger.WithField("status", current.Status).Info("[webhook][usecase] duplicate delivery; acknowledged")
		res.Outcome = OutcomeDuplicate
		return res, nil
	}

	paid, err := u.repo.UpdateStatus(ctx, ev.BookingID, entities.BookingStatusPaid, entities.BookingStatusUpdate{PaymentIntentID: ev.PaymentIntentID})
	if err != nil {
		var conflict *entities.StatusConflictError
		switch {
		case errors.As(err, &conflict):
			logger.WithField("status", conflict.Current).Info("[webhook][usecase] concurrent delivery already applied; acknowledged")
			res.Outcome = OutcomeDuplicate
			return res, nil
		case errors.Is(err, entities.ErrBookingNotFound):
			logger.Warn("[webhook][usecase] booking disappeared before update; acknowledged")
			res.Outcome = OutcomeBookingMissing
			return res, nil
		}
		logger.WithError(err).Error("[webhook][usecase] marking booking paid failed")
		return WebhookResult{}, err
	}
	logger.WithField("payment_intent_id", ev.PaymentIntentID).Info("[webhook][usecase] booking marked paid")

	res.Outcome = OutcomePaid
	if u.dispatcher != nil {
		res.Warnings = u.dispatcher.PaymentConfirmed(ctx, paid, u.serviceName(ctx, logger, paid, ev))
	}
	return res, nil
}

// serviceName prefers the live catalog, then the name frozen on the booking,
// then the name carried in the session metadata.
func (u *WebhookUseCase) serviceName(ctx context.Context, logger *logrus.Entry, b entities.Booking, ev entities.CheckoutCompletedEvent) string {
	if u.catalog != nil {
		svc, err := u.catalog.GetByID(ctx, b.ServiceID)
		switch {
		case err != nil:
			logger.WithError(err).Warn("[webhook][usecase] service lookup failed")
		case svc.Found() && svc.Name != "":
			return svc.Name
		default:
			logger.WithField("service_id", b.ServiceID).Warn("[webhook][usecase] service not found")
		}
	}
	if b.ServiceName != "" {
		return b.ServiceName
	}
	if ev.Metadata.ServiceName != "" {
		return ev.Metadata.ServiceName
	}
	return unknownServiceName
}
