package request

import "lavacar_booking/internal/usecase"

// BookingRequest is the public booking form. Field rules live in the use
// case validator so the messages stay in one place.
type BookingRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	ServiceID string  `json:"serviceId"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Comments  *string `json:"comments,omitempty"`
	PayNow    *bool   `json:"payNow,omitempty"`
}

func (r BookingRequest) ToInput() usecase.BookingInput {
	return usecase.BookingInput{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		ServiceID: r.ServiceID,
		Date:      r.Date,
		Time:      r.Time,
		Comments:  r.Comments,
		PayNow:    r.PayNow,
	}
}
