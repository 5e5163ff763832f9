package repositories

import (
	"context"

	"github.com/lightbnb/backend/internal/domain/entities"
)

// ReservationRepository defines the interface for reservation reads
type ReservationRepository interface {
	// ListByGuest lists a guest's reservations ordered by start date
	ListByGuest(ctx context.Context, guestID int64, limit int) ([]*entities.GuestReservation, error)
}
