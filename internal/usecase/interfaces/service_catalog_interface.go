package interfaces

import (
	"context"
	"lavacar_booking/internal/domain/entities"
)

//go:generate mockgen -source=service_catalog_interface.go -destination=mocks/service_catalog_interface_mock.go -package=mock_interfaces

// IServiceCatalog reads the service catalog (servicios). It is read-only.
//
// GetByID returns a zero Service (empty ID) when nothing matches; inactive
// services are returned as stored and filtered by the caller.

type IServiceCatalog interface {
	GetByID(ctx context.Context, id string) (entities.Service, error)
	List(ctx context.Context) ([]entities.Service, error)
}
