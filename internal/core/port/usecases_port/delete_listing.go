package usecases_port

import "context"

type DeleteListingUseCasePort interface {
	Execute(ctx context.Context, vehicleID int64) error
}
