package entities

import "time"

// Reservation represents a guest's booking of a property
type Reservation struct {
	ID         int64     `json:"id" db:"id"`
	GuestID    int64     `json:"guest_id" db:"guest_id"`
	PropertyID int64     `json:"property_id" db:"property_id"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	EndDate    time.Time `json:"end_date" db:"end_date"`
}

// GuestReservation is a reservation merged with the property it books
type GuestReservation struct {
	Reservation
	Title             string   `json:"title" db:"title"`
	ThumbnailPhotoURL string   `json:"thumbnail_photo_url" db:"thumbnail_photo_url"`
	CostPerNight      int64    `json:"cost_per_night" db:"cost_per_night"`
	NumberOfBedrooms  int      `json:"number_of_bedrooms" db:"number_of_bedrooms"`
	NumberOfBathrooms int      `json:"number_of_bathrooms" db:"number_of_bathrooms"`
	ParkingSpaces     int      `json:"parking_spaces" db:"parking_spaces"`
	City              string   `json:"city" db:"city"`
	Country           string   `json:"country" db:"country"`
	AverageRating     *float64 `json:"average_rating" db:"average_rating"`
}

// Nights returns the number of nights booked
func (r *Reservation) Nights() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}
