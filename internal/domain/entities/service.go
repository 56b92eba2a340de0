package entities

// Service is a catalog entry (servicio). It is owned outside this workflow:
// bookings read it, never write it.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Price is in major units (euros).
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Active      bool    `json:"active"`
}

func (s Service) Found() bool {
	return s.ID != ""
}
