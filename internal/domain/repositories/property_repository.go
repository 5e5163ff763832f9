package repositories

import (
	"context"

	"github.com/lightbnb/backend/internal/domain/entities"
)

// DefaultLimit is the row limit applied when a caller passes zero.
const DefaultLimit = 10

// PropertyFilter holds the optional constraints of a property search.
// A nil field is not filtered on.
type PropertyFilter struct {
	City                 *string
	MinimumPricePerNight *int64
	MaximumPricePerNight *int64
	MinimumRating        *float64
	OwnerID              *int64
}

// PropertyRepository defines the interface for property operations
type PropertyRepository interface {
	// Create inserts a property and returns the stored row
	Create(ctx context.Context, property entities.NewProperty) (*entities.Property, error)

	// Search lists properties matching filter, cheapest first
	Search(ctx context.Context, filter PropertyFilter, limit int) ([]*entities.PropertySearchResult, error)
}
