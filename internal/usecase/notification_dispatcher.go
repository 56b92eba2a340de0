package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// NotificationTemplates holds the provider template id for each message kind.
type NotificationTemplates struct {
	CustomerBooking string
	OperatorBooking string
	CustomerPayment string
	OperatorPayment string
}

type NotificationConfig struct {
	Templates     NotificationTemplates
	OperatorEmail string
	FromName      string
	Timeout       time.Duration
}

// NotificationDispatcher sends the customer and operator message pairs. Every
// failure is collected and returned; nothing here aborts the caller.
type NotificationDispatcher struct {
	notifier interfaces.INotifier
	cfg      NotificationConfig
}

func NewNotificationDispatcher(notifier interfaces.INotifier, cfg NotificationConfig) *NotificationDispatcher {
	if cfg.FromName == "" {
		cfg.FromName = "LavaCarWash"
	}
	return &NotificationDispatcher{notifier: notifier, cfg: cfg}
}

type message struct {
	audience   string
	templateID string
	configKey  string
	subject    string
}

// BookingReceived sends the booking-confirmation pair for a pay-later booking.
func (d *NotificationDispatcher) BookingReceived(ctx context.Context, b entities.Booking) []error {
	return d.sendPair(ctx, b, b.ServiceName,
		message{entities.AudienceCustomer, d.cfg.Templates.CustomerBooking, "EMAILJS_TEMPLATE_CUSTOMER_BOOKING", fmt.Sprintf("Confirmación de Reserva - %s", b.ServiceName)},
		message{entities.AudienceOperator, d.cfg.Templates.OperatorBooking, "EMAILJS_TEMPLATE_OPERATOR_BOOKING", fmt.Sprintf("Nueva Reserva Recibida - %s (%s)", b.ServiceName, b.ID)},
	)
}

// PaymentConfirmed sends the payment-confirmed pair once a booking is paid.
func (d *NotificationDispatcher) PaymentConfirmed(ctx context.Context, b entities.Booking, serviceName string) []error {
	return d.sendPair(ctx, b, serviceName,
		message{entities.AudienceCustomer, d.cfg.Templates.CustomerPayment, "EMAILJS_TEMPLATE_CUSTOMER_PAYMENT", fmt.Sprintf("Pago Confirmado - %s", serviceName)},
		message{entities.AudienceOperator, d.cfg.Templates.OperatorPayment, "EMAILJS_TEMPLATE_OPERATOR_PAYMENT", fmt.Sprintf("Pago Recibido - %s (%s)", serviceName, b.ID)},
	)
}

func (d *NotificationDispatcher) sendPair(ctx context.Context, b entities.Booking, serviceName string, customer, operator message) []error {
	var errs []error
	if err := d.send(ctx, customer, b.Email, d.vars(b, serviceName, customer.subject)); err != nil {
		errs = append(errs, err)
	}

	operatorVars := d.vars(b, serviceName, operator.subject)
	operatorVars["client_email"] = b.Email
	if d.cfg.OperatorEmail == "" {
		logrus.WithField("booking_id", b.ID).Error("[notification][usecase] operator email not configured")
		errs = append(errs, &entities.NotificationError{TemplateID: operator.templateID, Audience: entities.AudienceOperator, Err: entities.MissingConfig("OPERATOR_EMAIL")})
	} else if err := d.send(ctx, operator, d.cfg.OperatorEmail, operatorVars); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (d *NotificationDispatcher) send(ctx context.Context, msg message, recipient string, vars map[string]string) error {
	templateID := msg.templateID
	logger := logrus.WithFields(logrus.Fields{"booking_id": vars["booking_id"], "template_id": templateID, "recipient": recipient})
	if d.notifier == nil {
		logger.Warn("[notification][usecase] notifier not configured")
		return &entities.NotificationError{TemplateID: templateID, Recipient: recipient, Audience: msg.audience, Err: errors.New("notifier not configured")}
	}
	if templateID == "" {
		logger.Error("[notification][usecase] template not configured")
		return &entities.NotificationError{Recipient: recipient, Audience: msg.audience, Err: entities.MissingConfig(msg.configKey)}
	}

	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	if err := d.notifier.Send(ctx, templateID, recipient, vars); err != nil {
		logger.WithError(err).Warn("[notification][usecase] send failed")
		var ne *entities.NotificationError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return &entities.NotificationError{TemplateID: templateID, Recipient: recipient, Audience: msg.audience, Err: err}
	}
	logger.Info("[notification][usecase] sent")
	return nil
}

func (d *NotificationDispatcher) vars(b entities.Booking, serviceName, subject string) map[string]string {
	return map[string]string{
		"from_name":        d.cfg.FromName,
		"subject":          subject,
		"client_name":      b.Name,
		"service_name":     serviceName,
		"booking_date":     entities.FormatShortDate(b.Date),
		"booking_time":     b.Time,
		"booking_address":  b.Address,
		"booking_phone":    b.Phone,
		"booking_comments": b.Comments,
		"booking_id":       b.ID,
		"name":             b.Name,
		"email":            b.Email,
	}
}
