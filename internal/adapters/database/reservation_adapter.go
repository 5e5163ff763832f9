package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/lightbnb/backend/internal/domain/entities"
	"github.com/lightbnb/backend/internal/domain/repositories"
	"github.com/lightbnb/backend/internal/infrastructure/clients/postgres"
	"github.com/lightbnb/backend/internal/infrastructure/observability"
	apperrors "github.com/lightbnb/backend/pkg/errors"
)

// ReservationAdapter implements the ReservationRepository interface
type ReservationAdapter struct {
	client *postgres.Client
	instrumentation
}

// NewReservationAdapter creates a new reservation adapter
func NewReservationAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.ReservationRepository {
	return &ReservationAdapter{
		client:          client,
		instrumentation: instrumentation{metrics: metrics},
	}
}

// BuildGuestReservationsQuery renders the reservation listing for a guest.
// Reviews are joined only for the average rating; grouping collapses the
// fan-out back to one row per reservation.
func BuildGuestReservationsQuery(guestID int64, limit int) (string, []interface{}, error) {
	if limit == 0 {
		limit = repositories.DefaultLimit
	}

	ds := dialect.From("reservations").
		Select(
			goqu.I("reservations.id"),
			goqu.I("reservations.guest_id"),
			goqu.I("reservations.property_id"),
			goqu.I("reservations.start_date"),
			goqu.I("reservations.end_date"),
			goqu.I("properties.title"),
			goqu.I("properties.thumbnail_photo_url"),
			goqu.I("properties.cost_per_night"),
			goqu.I("properties.number_of_bedrooms"),
			goqu.I("properties.number_of_bathrooms"),
			goqu.I("properties.parking_spaces"),
			goqu.I("properties.city"),
			goqu.I("properties.country"),
			goqu.AVG(goqu.I("property_reviews.rating")).As("average_rating"),
		).
		Join(
			goqu.T("properties"),
			goqu.On(goqu.I("reservations.property_id").Eq(goqu.I("properties.id"))),
		).
		LeftJoin(
			goqu.T("property_reviews"),
			goqu.On(goqu.I("properties.id").Eq(goqu.I("property_reviews.property_id"))),
		).
		Where(goqu.I("reservations.guest_id").Eq(guestID)).
		GroupBy(goqu.I("reservations.id"), goqu.I("properties.id")).
		Order(goqu.I("reservations.start_date").Asc())

	return withLimit(ds, limit)
}

// ListByGuest lists a guest's reservations ordered by start date. A guest
// without reservations gets an empty slice.
func (a *ReservationAdapter) ListByGuest(ctx context.Context, guestID int64, limit int) ([]*entities.GuestReservation, error) {
	query, args, err := BuildGuestReservationsQuery(guestID, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reservations query", err)
	}

	reservations := []*entities.GuestReservation{}
	err = a.observe(ctx, "reservations.list_by_guest", func(ctx context.Context) error {
		if err := a.client.DB().SelectContext(ctx, &reservations, query, args...); err != nil {
			return storeError("failed to list reservations", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reservations, nil
}
