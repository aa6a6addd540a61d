package collection

import "context"

// Repository defines the contract for collection storage.
type Repository interface {
	Get(ctx context.Context, key string) (Record, error)
	// ListForOwner returns every core collection plus the owner's own,
	// ordered by name.
	ListForOwner(ctx context.Context, ownerKey string) ([]Record, error)
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, key string) (bool, error)
}
