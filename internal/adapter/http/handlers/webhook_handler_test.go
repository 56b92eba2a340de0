package handlers

import (
	"context"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	response "lavacar_booking/internal/adapter/http/dto/response"
	"lavacar_booking/internal/adapter/http/handlers/mocks"
	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestWebhookHandler_Receive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("raw body headers and query reach the use case", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWebhookUseCase(ctrl)
		h := NewWebhookHandler(uc)

		raw := `{"type":"payment", "data":{"id":"123"}}`
		uc.EXPECT().Handle(gomock.Any(), "mercadopago", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, d entities.WebhookDelivery) (usecase.WebhookResult, error) {
				if string(d.Body) != raw {
					t.Fatalf("body was altered: %q", d.Body)
				}
				if d.Headers.Get("X-Signature") != "ts=1,v1=abc" || d.Query["data.id"] != "123" {
					t.Fatalf("unexpected delivery %+v", d)
				}
				return usecase.WebhookResult{Outcome: usecase.OutcomePaid}, nil
			})

		r := gin.New()
		r.POST("/v1/webhooks/mercadopago", h.Receive("mercadopago"))
		req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/mercadopago?data.id=123&type=payment", bytes.NewBufferString(raw))
		req.Header.Set("X-Signature", "ts=1,v1=abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var ack response.WebhookAck
		if err := json.Unmarshal(w.Body.Bytes(), &ack); err != nil || !ack.Received || ack.Outcome != "paid" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"signature failure", &entities.SignatureVerificationError{Reason: "mismatch"}, http.StatusBadRequest},
		{"store failure", errors.New("dynamo down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIWebhookUseCase(ctrl)
			uc.EXPECT().Handle(gomock.Any(), "stripe", gomock.Any()).Return(usecase.WebhookResult{}, tc.err)

			r := gin.New()
			r.POST("/v1/webhooks/stripe", NewWebhookHandler(uc).Receive("stripe"))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", bytes.NewBufferString("{}")))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}

	t.Run("acknowledged outcomes are 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIWebhookUseCase(ctrl)
		uc.EXPECT().Handle(gomock.Any(), "stripe", gomock.Any()).Return(usecase.WebhookResult{Outcome: usecase.OutcomeBookingMissing}, nil)

		r := gin.New()
		r.POST("/v1/webhooks/stripe", NewWebhookHandler(uc).Receive("stripe"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", bytes.NewBufferString("{}")))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
