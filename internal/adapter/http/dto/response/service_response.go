package response

import "lavacar_booking/internal/domain/entities"

type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func FromServices(list []entities.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ServiceResponse{ID: s.ID, Name: s.Name, Description: s.Description, Price: s.Price})
	}
	return out
}
