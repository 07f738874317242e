package location

import "context"

type LocationService interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	Get(ctx context.Context, id string) (LocationResponse, error)
	List(ctx context.Context, includeInactive bool) ([]LocationResponse, error)
	Update(ctx context.Context, req UpdateLocationRequest) (LocationResponse, error)
	Delete(ctx context.Context, id string) error
}
