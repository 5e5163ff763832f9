package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lightbnb/backend/pkg/errors"
)

var reservationRowColumns = []string{
	"id", "guest_id", "property_id", "start_date", "end_date",
	"title", "thumbnail_photo_url", "cost_per_night", "number_of_bedrooms",
	"number_of_bathrooms", "parking_spaces", "city", "country", "average_rating",
}

func TestBuildGuestReservationsQuery(t *testing.T) {
	query, args, err := BuildGuestReservationsQuery(1, 0)
	require.NoError(t, err)

	assert.Contains(t, query, `"reservations"."guest_id" = $1`)
	assert.Contains(t, query, `GROUP BY "reservations"."id", "properties"."id"`)
	assert.Contains(t, query, `ORDER BY "reservations"."start_date" ASC`)
	assert.True(t, strings.HasSuffix(query, "LIMIT $2"), query)

	require.Len(t, args, 2)
	assert.EqualValues(t, 1, args[0])
	assert.EqualValues(t, 10, args[1])
	assertPlaceholdersMatchArgs(t, query, args)
}

func TestReservationAdapter_ListByGuest(t *testing.T) {
	t.Run("returns reservations merged with their property", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewReservationAdapter(client, nil)

		start := time.Date(2018, 9, 11, 0, 0, 0, 0, time.UTC)
		end := time.Date(2018, 9, 26, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`FROM "reservations" INNER JOIN "properties"`).
			WithArgs(int64(1), 5).
			WillReturnRows(sqlmock.NewRows(reservationRowColumns).
				AddRow(1, 1, 1, start, end, "Speed lamp", "", 93061, 6, 4, 6, "Sotboske", "Canada", 4.1))

		reservations, err := adapter.ListByGuest(context.Background(), 1, 5)
		require.NoError(t, err)
		require.Len(t, reservations, 1)

		r := reservations[0]
		assert.Equal(t, "Speed lamp", r.Title)
		assert.Equal(t, start, r.StartDate)
		assert.Equal(t, 15, r.Nights())
		require.NotNil(t, r.AverageRating)
		assert.InDelta(t, 4.1, *r.AverageRating, 0.0001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guest without reservations gets an empty slice", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewReservationAdapter(client, nil)

		mock.ExpectQuery(`FROM "reservations"`).
			WillReturnRows(sqlmock.NewRows(reservationRowColumns))

		reservations, err := adapter.ListByGuest(context.Background(), 77, 10)
		require.NoError(t, err)
		assert.NotNil(t, reservations)
		assert.Empty(t, reservations)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewReservationAdapter(client, nil)

		mock.ExpectQuery(`FROM "reservations"`).
			WillReturnError(errors.New("relation \"reservations\" does not exist"))

		reservations, err := adapter.ListByGuest(context.Background(), 1, 10)
		require.Error(t, err)
		assert.Nil(t, reservations)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	})
}
