package handlers

import (
	"errors"
	"io"
	"net/http"

	response "lavacar_booking/internal/adapter/http/dto/response"
	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase"
	"lavacar_booking/pkg"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 1 << 20

var (
	errWebhookBodyUnreadable = pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Webhook body could not be read", http.StatusBadRequest)
)

// WebhookHandler forwards raw provider callbacks to the reconciler. The body
// is passed through untouched; signature checks need the exact bytes.
type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// Receive godoc
// @Summary      Payment provider webhook
// @Description  Verifies the provider signature over the raw body and reconciles checkout completions.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        provider  path      string  true  "stripe or mercadopago"
// @Success      200       {object}  response.WebhookAck
// @Failure      400       {object}  pkg.HTTPError
// @Failure      500       {object}  pkg.HTTPError
// @Router       /v1/webhooks/{provider} [post]
func (h *WebhookHandler) Receive(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(errWebhookBodyUnreadable.HTTPStatus, errWebhookBodyUnreadable.ToHTTPError())
			return
		}

		query := make(map[string]string)
		for k, v := range c.Request.URL.Query() {
			if len(v) > 0 {
				query[k] = v[0]
			}
		}

		res, err := h.usecase.Handle(c.Request.Context(), provider, entities.WebhookDelivery{
			Body:    body,
			Headers: c.Request.Header.Clone(),
			Query:   query,
		})
		if err != nil {
			appErr := mapWebhookError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.JSON(http.StatusOK, response.WebhookAck{Received: true, Outcome: string(res.Outcome)})
	}
}

func mapWebhookError(err error) *pkg.AppError {
	var sve *entities.SignatureVerificationError
	if errors.As(err, &sve) {
		return pkg.NewDomainError("INVALID_SIGNATURE", "Webhook signature verification failed", err, http.StatusBadRequest)
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
