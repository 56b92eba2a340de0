package entities

import "time"

// BookingStatus represents the lifecycle of a booking (reserva).
//
// Domain notes:
//   - pending -> paid -> completed is the happy path.
//   - cancelled is reachable from pending or paid.
//   - completed is reachable from pending too (customer pays on site).
//   - Nothing ever moves back to pending.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPaid:      {BookingStatusPending},
	BookingStatusCompleted: {BookingStatusPending, BookingStatusPaid},
	BookingStatusCancelled: {BookingStatusPending, BookingStatusPaid},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusPaid, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// AllowedFrom lists the statuses a booking may be in to move to s.
// It is empty for pending, which is only ever set on creation.
func (s BookingStatus) AllowedFrom() []BookingStatus {
	from := bookingTransitions[s]
	out := make([]BookingStatus, len(from))
	copy(out, from)
	return out
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, from := range bookingTransitions[next] {
		if from == s {
			return true
		}
	}
	return false
}

// IsPaidOrBeyond reports whether a payment event for this booking has
// already been applied (or can no longer be applied).
func (s BookingStatus) IsPaidOrBeyond() bool {
	return s != BookingStatusPending
}

// Booking is the aggregate of record persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id (assigned by the repository on create)
//
// ServiceName/ServicePrice are a frozen copy of the catalog entry at booking
// time and are never re-derived. ServicePrice is in major units (euros).
type Booking struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Address         string        `json:"address"`
	ServiceID       string        `json:"service_id"`
	ServiceName     string        `json:"service_name"`
	ServicePrice    float64       `json:"service_price"`
	Date            time.Time     `json:"date"`
	Time            string        `json:"time"`
	Comments        string        `json:"comments"`
	Status          BookingStatus `json:"status"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// BookingRequest is the validated form input. It only exists between the
// validator and the booking use case.
type BookingRequest struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	ServiceID string
	Date      time.Time
	Time      string
	Comments  string
	PayNow    bool
}

// BookingStatusUpdate carries the optional fields written together with a
// status change.
type BookingStatusUpdate struct {
	PaymentIntentID string
}

// NewPendingBooking freezes the resolved service into a new booking.
func NewPendingBooking(req BookingRequest, svc Service, now time.Time) Booking {
	return Booking{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		ServiceID:    svc.ID,
		ServiceName:  svc.Name,
		ServicePrice: svc.Price,
		Date:         req.Date,
		Time:         req.Time,
		Comments:     req.Comments,
		Status:       BookingStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
