package routes

import (
	"context"
	"net/http"

	"lavacar_booking/internal/adapter/http/handlers"
	"lavacar_booking/internal/adapter/persistence/repository"
	"lavacar_booking/internal/infrastructure/cache"
	appconfig "lavacar_booking/internal/infrastructure/config"
	"lavacar_booking/internal/infrastructure/database"
	"lavacar_booking/internal/infrastructure/notifications"
	"lavacar_booking/internal/infrastructure/payments"
	"lavacar_booking/internal/usecase"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// buildHandlers connects the adapters. Missing provider or email settings do
// not stop startup; the operation that needs them reports a configuration
// error instead.
func buildHandlers(ctx context.Context, cfg appconfig.Config) (Handlers, error) {
	ddb, err := database.NewDynamoDBClient(ctx, cfg.AWS)
	if err != nil {
		return Handlers{}, err
	}

	bookingRepo := repository.NewBookingDynamoRepository(ddb, cfg.AWS.BookingsTable)
	var catalog interfaces.IServiceCatalog = repository.NewServiceDynamoRepository(ddb, cfg.AWS.ServicesTable)
	if rdb := cache.NewRedisClient(ctx, cfg.Redis); rdb != nil {
		catalog = repository.NewCachedServiceCatalog(catalog, rdb, cfg.Redis.CatalogCacheTTL)
	}

	gateway, err := payments.NewCheckoutGateway(cfg.Payment)
	if err != nil {
		logrus.WithError(err).Error("[http][routes] checkout gateway not configured; payNow submissions will report a payment error")
	}
	verifiers, err := payments.NewWebhookVerifiers(cfg.Payment)
	if err != nil {
		return Handlers{}, err
	}

	notifier := notifications.NewEmailJSClient(cfg.Email, &http.Client{Timeout: cfg.Email.Timeout})
	dispatcher := usecase.NewNotificationDispatcher(notifier, usecase.NotificationConfig{
		Templates: usecase.NotificationTemplates{
			CustomerBooking: cfg.Email.TemplateCustomerBooking,
			OperatorBooking: cfg.Email.TemplateOperatorBooking,
			CustomerPayment: cfg.Email.TemplateCustomerPayment,
			OperatorPayment: cfg.Email.TemplateOperatorPayment,
		},
		OperatorEmail: cfg.Email.OperatorEmail,
		FromName:      cfg.Email.FromName,
		Timeout:       cfg.Email.Timeout,
	})

	bookingUseCase := usecase.NewBookingUseCase(bookingRepo, catalog, gateway, dispatcher, usecase.CheckoutConfig{
		BaseURL:  cfg.Payment.BaseURL,
		Currency: cfg.Payment.Currency,
		Timeout:  cfg.Payment.Timeout,
	})
	webhookUseCase := usecase.NewWebhookUseCase(bookingRepo, catalog, dispatcher, verifiers...)

	return Handlers{
		Booking: handlers.NewBookingHandler(bookingUseCase),
		Admin:   handlers.NewAdminHandler(bookingUseCase),
		Webhook: handlers.NewWebhookHandler(webhookUseCase),
	}, nil
}
