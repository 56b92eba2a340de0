package payments

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// MockGateway skips the external provider and sends the customer straight to
// the success page. Enabled with PAYMENT_GATEWAY_MOCK.
type MockGateway struct{}

var _ interfaces.ICheckoutGateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway { return &MockGateway{} }

func (g *MockGateway) Provider() string { return ProviderMock }

func (g *MockGateway) CreateCheckoutSession(_ context.Context, req entities.CheckoutSessionRequest) (entities.CheckoutSession, error) {
	id := "mock_" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	u, err := url.Parse(req.SuccessURL)
	if err != nil {
		return entities.CheckoutSession{}, &entities.PaymentGatewayError{Provider: ProviderMock, Err: err}
	}
	q := u.Query()
	q.Set("session_id", id)
	u.RawQuery = q.Encode()

	logrus.WithFields(logrus.Fields{"booking_id": req.BookingID, "session_id": id}).Info("[payment][gateway] mock checkout session created")
	return entities.CheckoutSession{ID: id, URL: u.String()}, nil
}
