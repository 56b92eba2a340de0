package interfaces

import (
	"context"
	"lavacar_booking/internal/domain/entities"
)

//go:generate mockgen -source=booking_repository_interface.go -destination=mocks/booking_repository_interface_mock.go -package=mock_interfaces

// IBookingRepository abstracts DynamoDB persistence for Booking.
//
// The booking workflow must be able to:
//   - create a booking in "pending" (the repository assigns the id)
//   - read a booking for reconciliation
//   - move a booking forward with a conditional write on its current status
//
// GetByID returns a zero Booking (empty ID) when nothing matches.
// UpdateStatus returns entities.ErrBookingNotFound when the id does not exist
// and *entities.StatusConflictError when the current status is not a legal
// predecessor of the target status.

type IBookingRepository interface {
	Create(ctx context.Context, b entities.Booking) (entities.Booking, error)
	GetByID(ctx context.Context, id string) (entities.Booking, error)
	List(ctx context.Context) ([]entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus, update entities.BookingStatusUpdate) (entities.Booking, error)
}
