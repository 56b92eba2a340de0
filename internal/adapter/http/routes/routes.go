package routes

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	_ "lavacar_booking/docs"
	"lavacar_booking/internal/adapter/http/handlers"
	"lavacar_booking/internal/adapter/http/middleware"
	appconfig "lavacar_booking/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathBookings = "/bookings"
	PathServices = "/services"
	PathWebhooks = "/webhooks"
	PathAdmin    = "/admin"
)

type Handlers struct {
	Booking *handlers.BookingHandler
	Admin   *handlers.AdminHandler
	Webhook *handlers.WebhookHandler
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// SHUTDOWN_TIMEOUT.
func Run(ctx context.Context, cfg appconfig.Config) error {
	h, err := buildHandlers(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Server.Port),
		Handler:           NewRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("[http][routes] listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logrus.Info("[http][routes] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func NewRouter(cfg appconfig.Config, h Handlers) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	router := gin.New()
	setMiddlewares(router, cfg.Server)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	getRoutes(router, cfg, h)
	return router
}

func getRoutes(router *gin.Engine, cfg appconfig.Config, h Handlers) {
	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBookingRoutes(v1, h.Booking, h.Webhook)

	// Painel do operador
	admin := v1.Group(PathAdmin, middleware.AdminAuth(cfg.Admin.JWTSecret))
	addAdminRoutes(admin, h.Admin)
}

func setMiddlewares(router *gin.Engine, cfg appconfig.Server) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Timeout(cfg.RequestTimeout))
}
