package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=booking_usecase.go -destination=../adapter/http/handlers/mocks/booking_usecase_mock.go -package=mocks

var (
	ErrInvalidBookingID = errors.New("invalid booking id")
)

// IBookingUseCase covers the customer submission flow and the operator panel.
//
// Requested behavior:
//   - Submit validates, resolves the service, stores a pending booking and
//     then either opens a checkout session (payNow) or notifies both parties.
//   - Any failure after the booking is stored is reported, never rolled back.
type IBookingUseCase interface {
	Submit(ctx context.Context, in BookingInput) (SubmissionResult, error)
	ListServices(ctx context.Context) ([]entities.Service, error)
	List(ctx context.Context) ([]entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	MarkCompleted(ctx context.Context, id string) (entities.Booking, error)
	Cancel(ctx context.Context, id string) (entities.Booking, error)
}

// SubmissionResult is returned whenever the booking was stored. PaymentErr
// and Warnings describe the steps that ran after the write and failed.
type SubmissionResult struct {
	Booking     entities.Booking
	CheckoutURL string
	PaymentErr  error
	Warnings    []error
}

type CheckoutConfig struct {
	BaseURL  string
	Currency string
	Timeout  time.Duration
}

type BookingUseCase struct {
	repo       interfaces.IBookingRepository
	catalog    interfaces.IServiceCatalog
	gateway    interfaces.ICheckoutGateway
	dispatcher *NotificationDispatcher
	checkout   CheckoutConfig
	now        func() time.Time
}

var _ IBookingUseCase = (*BookingUseCase)(nil)

func NewBookingUseCase(repo interfaces.IBookingRepository, catalog interfaces.IServiceCatalog, gateway interfaces.ICheckoutGateway, dispatcher *NotificationDispatcher, checkout CheckoutConfig) *BookingUseCase {
	if checkout.Currency == "" {
		checkout.Currency = "eur"
	}
	return &BookingUseCase{
		repo:       repo,
		catalog:    catalog,
		gateway:    gateway,
		dispatcher: dispatcher,
		checkout:   checkout,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (u *BookingUseCase) Submit(ctx context.Context, in BookingInput) (SubmissionResult, error) {
	req, err := ValidateBooking(in)
	if err != nil {
		logrus.WithError(err).Info("[booking][usecase] submission rejected by validation")
		return SubmissionResult{}, err
	}
	logger := logrus.WithFields(logrus.Fields{"service_id": req.ServiceID, "pay_now": req.PayNow})
	logger.Info("[booking][usecase] submit start")

	svc, err := u.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		logger.WithError(err).Error("[booking][usecase] service lookup failed")
		return SubmissionResult{}, err
	}
	if !svc.Found() || !svc.Active {
		logger.Info("[booking][usecase] service not found")
		return SubmissionResult{}, entities.ErrServiceNotFound
	}

	created, err := u.repo.Create(ctx, entities.NewPendingBooking(req, svc, u.now()))
	if err != nil {
		logger.WithError(err).Error("[booking][usecase] booking create failed")
		return SubmissionResult{}, err
	}
	logger = logger.WithField("booking_id", created.ID)
	logger.Info("[booking][usecase] booking stored")

	res := SubmissionResult{Booking: created}
	if req.PayNow {
		checkoutURL, err := u.startCheckout(ctx, created, svc)
		if err != nil {
			logger.WithError(err).Error("[booking][usecase] checkout session failed; booking kept as pending")
			res.PaymentErr = err
			return res, nil
		}
		res.CheckoutURL = checkoutURL
		logger.Info("[booking][usecase] checkout session opened")
		return res, nil
	}

	if u.dispatcher != nil {
		res.Warnings = u.dispatcher.BookingReceived(ctx, created)
	}
	logger.WithField("warnings", len(res.Warnings)).Info("[booking][usecase] submit success")
	return res, nil
}

// startCheckout never changes the stored booking. Every failure comes back
// as a *entities.PaymentGatewayError.
func (u *BookingUseCase) startCheckout(ctx context.Context, b entities.Booking, svc entities.Service) (string, error) {
	if u.gateway == nil {
		return "", &entities.PaymentGatewayError{Provider: "none", Err: entities.MissingConfig("PAYMENT_PROVIDER")}
	}
	provider := u.gateway.Provider()
	if strings.TrimSpace(u.checkout.BaseURL) == "" {
		return "", &entities.PaymentGatewayError{Provider: provider, Err: entities.MissingConfig("BASE_URL")}
	}

	amount, err := entities.ToMinorUnits(b.ServicePrice)
	if err != nil {
		return "", &entities.PaymentGatewayError{Provider: provider, Err: err}
	}

	base := strings.TrimRight(u.checkout.BaseURL, "/")
	id := url.QueryEscape(b.ID)
	req := entities.CheckoutSessionRequest{
		BookingID: b.ID,
		Currency:  u.checkout.Currency,
		LineItem: entities.CheckoutLineItem{
			ServiceID:   svc.ID,
			Name:        b.ServiceName,
			Description: fmt.Sprintf("Fecha: %s, Hora: %s", entities.FormatLongSpanishDate(b.Date), b.Time),
			UnitAmount:  amount,
			Quantity:    1,
		},
		SuccessURL: base + "/success?bookingId=" + id,
		CancelURL:  base + "/cancel?bookingId=" + id,
		Metadata:   entities.NewPaymentSessionMetadata(b),
	}

	if u.checkout.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.checkout.Timeout)
		defer cancel()
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		var pge *entities.PaymentGatewayError
		if errors.As(err, &pge) {
			return "", err
		}
		return "", &entities.PaymentGatewayError{Provider: provider, Err: err}
	}
	if session.URL == "" {
		return "", &entities.PaymentGatewayError{Provider: provider, Err: errors.New("checkout session has no url")}
	}
	return session.URL, nil
}

func (u *BookingUseCase) ListServices(ctx context.Context) ([]entities.Service, error) {
	return u.catalog.List(ctx)
}

func (u *BookingUseCase) List(ctx context.Context) ([]entities.Booking, error) {
	return u.repo.List(ctx)
}

func (u *BookingUseCase) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Booking{}, err
	}
	if b.ID == "" {
		return entities.Booking{}, entities.ErrBookingNotFound
	}
	return b, nil
}

func (u *BookingUseCase) MarkCompleted(ctx context.Context, id string) (entities.Booking, error) {
	return u.transition(ctx, id, entities.BookingStatusCompleted)
}

func (u *BookingUseCase) Cancel(ctx context.Context, id string) (entities.Booking, error) {
	return u.transition(ctx, id, entities.BookingStatusCancelled)
}

func (u *BookingUseCase) transition(ctx context.Context, id string, to entities.BookingStatus) (entities.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Booking{}, ErrInvalidBookingID
	}
	logger := logrus.WithFields(logrus.Fields{"booking_id": id, "target": to})

	updated, err := u.repo.UpdateStatus(ctx, id, to, entities.BookingStatusUpdate{})
	if err != nil {
		logger.WithError(err).Warn("[booking][usecase] status update rejected")
		return entities.Booking{}, err
	}
	logger.Info("[booking][usecase] status updated")
	return updated, nil
}
