package entities

import "net/http"

// Metadata keys carried by the payment provider. bookingId is the only join
// key back to a Booking; the rest feed notification templates.
const (
	MetaBookingID       = "bookingId"
	MetaClientEmail     = "clientEmail"
	MetaClientName      = "clientName"
	MetaServiceName     = "serviceName"
	MetaBookingDate     = "bookingDate"
	MetaBookingTime     = "bookingTime"
	MetaBookingAddress  = "bookingAddress"
	MetaBookingPhone    = "bookingPhone"
	MetaBookingComments = "bookingComments"
)

// PaymentSessionMetadata is never persisted locally; it lives on the
// provider's checkout session and comes back on the webhook.
type PaymentSessionMetadata struct {
	BookingID       string
	ClientEmail     string
	ClientName      string
	ServiceName     string
	BookingDate     string
	BookingTime     string
	BookingAddress  string
	BookingPhone    string
	BookingComments string
}

func NewPaymentSessionMetadata(b Booking) PaymentSessionMetadata {
	return PaymentSessionMetadata{
		BookingID:       b.ID,
		ClientEmail:     b.Email,
		ClientName:      b.Name,
		ServiceName:     b.ServiceName,
		BookingDate:     FormatLongSpanishDate(b.Date),
		BookingTime:     b.Time,
		BookingAddress:  b.Address,
		BookingPhone:    b.Phone,
		BookingComments: b.Comments,
	}
}

func (m PaymentSessionMetadata) ToMap() map[string]string {
	return map[string]string{
		MetaBookingID:       m.BookingID,
		MetaClientEmail:     m.ClientEmail,
		MetaClientName:      m.ClientName,
		MetaServiceName:     m.ServiceName,
		MetaBookingDate:     m.BookingDate,
		MetaBookingTime:     m.BookingTime,
		MetaBookingAddress:  m.BookingAddress,
		MetaBookingPhone:    m.BookingPhone,
		MetaBookingComments: m.BookingComments,
	}
}

func PaymentSessionMetadataFromMap(m map[string]string) PaymentSessionMetadata {
	return PaymentSessionMetadata{
		BookingID:       m[MetaBookingID],
		ClientEmail:     m[MetaClientEmail],
		ClientName:      m[MetaClientName],
		ServiceName:     m[MetaServiceName],
		BookingDate:     m[MetaBookingDate],
		BookingTime:     m[MetaBookingTime],
		BookingAddress:  m[MetaBookingAddress],
		BookingPhone:    m[MetaBookingPhone],
		BookingComments: m[MetaBookingComments],
	}
}

// CheckoutLineItem is priced in minor units; conversion happens before the
// provider boundary and nowhere else.
type CheckoutLineItem struct {
	ServiceID   string
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

type CheckoutSessionRequest struct {
	BookingID  string
	Currency   string
	LineItem   CheckoutLineItem
	SuccessURL string
	CancelURL  string
	Metadata   PaymentSessionMetadata
}

type CheckoutSession struct {
	ID  string
	URL string
}

// WebhookDelivery is an inbound provider callback before verification.
// Body is the raw, unparsed request body.
type WebhookDelivery struct {
	Body    []byte
	Headers http.Header
	Query   map[string]string
}

// PaymentEvent is the verified, decoded form of a delivery. Exactly one of
// the variants below is produced per delivery.
type PaymentEvent interface {
	EventID() string
	isPaymentEvent()
}

// CheckoutCompletedEvent means the customer finished paying.
type CheckoutCompletedEvent struct {
	ID              string
	BookingID       string
	PaymentIntentID string
	Metadata        PaymentSessionMetadata
}

// UnhandledEvent is any verified event kind this workflow does not model.
type UnhandledEvent struct {
	ID   string
	Type string
}

// MalformedEvent is a checkout-completed event missing required metadata.
// It is acknowledged, never retried.
type MalformedEvent struct {
	ID     string
	Type   string
	Reason string
}

func (e CheckoutCompletedEvent) EventID() string { return e.ID }
func (e UnhandledEvent) EventID() string         { return e.ID }
func (e MalformedEvent) EventID() string         { return e.ID }

func (CheckoutCompletedEvent) isPaymentEvent() {}
func (UnhandledEvent) isPaymentEvent()         {}
func (MalformedEvent) isPaymentEvent()         {}
