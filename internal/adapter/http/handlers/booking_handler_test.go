package handlers

import (
	"context"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	response "lavacar_booking/internal/adapter/http/dto/response"
	"lavacar_booking/internal/adapter/http/handlers/mocks"
	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const validBookingBody = `{"name":"Ana López","email":"ana@example.com","phone":"612345678","address":"Calle Mayor 5","serviceId":"svc-basic","date":"2025-06-01","time":"10:00"}`

func postBooking(t *testing.T, h *BookingHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/v1/bookings", h.CreateBooking)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSubmission(t *testing.T, w *httptest.ResponseRecorder) response.SubmissionResponse {
	t.Helper()
	var body response.SubmissionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewBookingHandler(mocks.NewMockIBookingUseCase(ctrl))

		w := postBooking(t, h, "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("pay later created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		uc.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in usecase.BookingInput) (usecase.SubmissionResult, error) {
			if in.ServiceID != "svc-basic" || in.PayNow != nil {
				t.Fatalf("unexpected input %+v", in)
			}
			return usecase.SubmissionResult{Booking: entities.Booking{ID: "bk-1"}}, nil
		})

		w := postBooking(t, h, validBookingBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeSubmission(t, w)
		if !body.Success || body.BookingID != "bk-1" || body.Message != response.MsgBookingSaved {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("payment failure still created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		uc.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(usecase.SubmissionResult{
			Booking:    entities.Booking{ID: "bk-1"},
			PaymentErr: &entities.PaymentGatewayError{Provider: "stripe", Err: errors.New("timeout")},
		}, nil)

		w := postBooking(t, h, validBookingBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeSubmission(t, w)
		if body.BookingID != "bk-1" || body.PaymentError != response.PaymentStartFailed || body.CheckoutURL != "" {
			t.Fatalf("unexpected body %+v", body)
		}
		if strings.Contains(w.Body.String(), "timeout") {
			t.Fatalf("gateway detail leaked: %s", w.Body.String())
		}
	})

	t.Run("notification failure is a caveat not a leak", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		uc.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(usecase.SubmissionResult{
			Booking: entities.Booking{ID: "bk-1"},
			Warnings: []error{&entities.NotificationError{
				TemplateID: "tpl_operator_booking", Recipient: "owner-private@lavacar.es",
				Audience: entities.AudienceOperator, Err: errors.New("emailjs responded 400"),
			}},
		}, nil)

		w := postBooking(t, h, validBookingBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeSubmission(t, w)
		if body.Message != response.MsgBookingSaved+" "+response.MsgCaveatOperatorEmail {
			t.Fatalf("unexpected message %q", body.Message)
		}
		if len(body.Warnings) != 1 || body.Warnings[0] != response.WarnOperatorEmailFailed {
			t.Fatalf("unexpected warnings %+v", body.Warnings)
		}
		if strings.Contains(w.Body.String(), "owner-private") || strings.Contains(w.Body.String(), "tpl_operator_booking") {
			t.Fatalf("notification detail leaked: %s", w.Body.String())
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		uc.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(usecase.SubmissionResult{}, &entities.ValidationError{
			Issues: []entities.FieldIssue{{Field: "email", Message: "Correo inválido."}},
		})

		w := postBooking(t, h, validBookingBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeSubmission(t, w)
		if body.Success || len(body.Errors) != 1 || body.Errors[0].Field != "email" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("service not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		uc.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(usecase.SubmissionResult{}, entities.ErrServiceNotFound)

		w := postBooking(t, h, validBookingBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeSubmission(t, w)
		if len(body.Errors) != 1 || body.Errors[0].Field != "serviceId" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		uc.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(usecase.SubmissionResult{}, errors.New("dynamo down"))

		w := postBooking(t, h, validBookingBody)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if decodeSubmission(t, w).Success {
			t.Fatalf("expected success=false")
		}
	})
}

func TestBookingHandler_ListServices(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIBookingUseCase(ctrl)
	h := NewBookingHandler(uc)

	uc.EXPECT().ListServices(gomock.Any()).Return([]entities.Service{{ID: "svc-basic", Name: "Lavado básico", Price: 50, Active: true}}, nil)

	r := gin.New()
	r.GET("/v1/services", h.ListServices)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/services", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []response.ServiceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 1 || body[0].Price != 50 {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
