package routes

import (
	"lavacar_booking/internal/adapter/http/handlers"
	"lavacar_booking/internal/infrastructure/payments"

	"github.com/gin-gonic/gin"
)

func addBookingRoutes(rg *gin.RouterGroup, bookingHandler *handlers.BookingHandler, webhookHandler *handlers.WebhookHandler) {
	rg.POST(PathBookings, bookingHandler.CreateBooking)
	rg.GET(PathServices, bookingHandler.ListServices)

	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/"+payments.ProviderStripe, webhookHandler.Receive(payments.ProviderStripe))
		webhooks.POST("/"+payments.ProviderMercadoPago, webhookHandler.Receive(payments.ProviderMercadoPago))
	}
}

func addAdminRoutes(rg *gin.RouterGroup, adminHandler *handlers.AdminHandler) {
	bookings := rg.Group(PathBookings)
	{
		bookings.GET("", adminHandler.ListBookings)
		bookings.GET("/:id", adminHandler.GetBooking)
		bookings.PATCH("/:id/complete", adminHandler.CompleteBooking)
		bookings.PATCH("/:id/cancel", adminHandler.CancelBooking)
	}
}
