package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lightbnb/backend/internal/domain/entities"
	"github.com/lightbnb/backend/internal/domain/repositories"
	"github.com/lightbnb/backend/internal/infrastructure/clients/postgres"
	"github.com/lightbnb/backend/internal/infrastructure/observability"
	apperrors "github.com/lightbnb/backend/pkg/errors"
)

// propertyColumn maps one writable properties column to its NewProperty field.
type propertyColumn struct {
	column string
	value  func(p *entities.NewProperty) interface{}
}

// propertyColumns is the single source of the insert column order. Columns
// and values are both taken from it in one pass, so they cannot drift.
var propertyColumns = []propertyColumn{
	{"owner_id", func(p *entities.NewProperty) interface{} { return p.OwnerID }},
	{"title", func(p *entities.NewProperty) interface{} { return p.Title }},
	{"description", func(p *entities.NewProperty) interface{} { return p.Description }},
	{"thumbnail_photo_url", func(p *entities.NewProperty) interface{} { return p.ThumbnailPhotoURL }},
	{"cover_photo_url", func(p *entities.NewProperty) interface{} { return p.CoverPhotoURL }},
	{"cost_per_night", func(p *entities.NewProperty) interface{} { return p.CostPerNight }},
	{"street", func(p *entities.NewProperty) interface{} { return p.Street }},
	{"city", func(p *entities.NewProperty) interface{} { return p.City }},
	{"province", func(p *entities.NewProperty) interface{} { return p.Province }},
	{"post_code", func(p *entities.NewProperty) interface{} { return p.PostCode }},
	{"country", func(p *entities.NewProperty) interface{} { return p.Country }},
	{"parking_spaces", func(p *entities.NewProperty) interface{} { return p.ParkingSpaces }},
	{"number_of_bathrooms", func(p *entities.NewProperty) interface{} { return p.NumberOfBathrooms }},
	{"number_of_bedrooms", func(p *entities.NewProperty) interface{} { return p.NumberOfBedrooms }},
}

// propertyReturning lists every column scanned back into entities.Property
func propertyReturning() []interface{} {
	cols := make([]interface{}, 0, len(propertyColumns)+2)
	cols = append(cols, "id")
	for _, c := range propertyColumns {
		cols = append(cols, c.column)
	}
	return append(cols, "active")
}

// PropertyAdapter implements the PropertyRepository interface
type PropertyAdapter struct {
	client *postgres.Client
	instrumentation
}

// NewPropertyAdapter creates a new property adapter
func NewPropertyAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.PropertyRepository {
	return &PropertyAdapter{
		client:          client,
		instrumentation: instrumentation{metrics: metrics},
	}
}

// BuildPropertyInsertQuery renders the insert for property.
func BuildPropertyInsertQuery(property entities.NewProperty) (string, []interface{}, error) {
	cols := make([]interface{}, 0, len(propertyColumns))
	vals := make([]interface{}, 0, len(propertyColumns))
	for _, c := range propertyColumns {
		cols = append(cols, c.column)
		vals = append(vals, c.value(&property))
	}

	return dialect.Insert("properties").
		Cols(cols...).
		Vals(vals).
		Returning(propertyReturning()...).
		Prepared(true).
		ToSQL()
}

// Create inserts a property and returns the stored row
func (a *PropertyAdapter) Create(ctx context.Context, property entities.NewProperty) (*entities.Property, error) {
	query, args, err := BuildPropertyInsertQuery(property)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build property insert query", err)
	}

	var created *entities.Property
	err = a.observe(ctx, "properties.create", func(ctx context.Context) error {
		row := &entities.Property{}
		if err := a.client.DB().GetContext(ctx, row, query, args...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return storeError("failed to create property", err)
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Search lists properties matching filter with their average rating
func (a *PropertyAdapter) Search(ctx context.Context, filter repositories.PropertyFilter, limit int) ([]*entities.PropertySearchResult, error) {
	query, args, err := BuildPropertySearchQuery(filter, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build property search query", err)
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("query", query).
		Interface("args", args).
		Msg("property search")

	properties := []*entities.PropertySearchResult{}
	err = a.observe(ctx, "properties.search", func(ctx context.Context) error {
		if err := a.client.DB().SelectContext(ctx, &properties, query, args...); err != nil {
			return storeError(fmt.Sprintf("failed to search properties (%d filters)", len(args)-1), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return properties, nil
}
