package entities

// Property represents a rental listing
type Property struct {
	ID                int64   `json:"id" db:"id"`
	OwnerID           int64   `json:"owner_id" db:"owner_id"`
	Title             string  `json:"title" db:"title"`
	Description       *string `json:"description" db:"description"` // nullable
	ThumbnailPhotoURL string  `json:"thumbnail_photo_url" db:"thumbnail_photo_url"`
	CoverPhotoURL     string  `json:"cover_photo_url" db:"cover_photo_url"`
	CostPerNight      int64   `json:"cost_per_night" db:"cost_per_night"`
	ParkingSpaces     int     `json:"parking_spaces" db:"parking_spaces"`
	NumberOfBathrooms int     `json:"number_of_bathrooms" db:"number_of_bathrooms"`
	NumberOfBedrooms  int     `json:"number_of_bedrooms" db:"number_of_bedrooms"`
	Country           string  `json:"country" db:"country"`
	Street            string  `json:"street" db:"street"`
	City              string  `json:"city" db:"city"`
	Province          string  `json:"province" db:"province"`
	PostCode          string  `json:"post_code" db:"post_code"`
	Active            bool    `json:"active" db:"active"`
}

// NewProperty holds the fields an owner supplies when listing a property
type NewProperty struct {
	OwnerID           int64  `json:"owner_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url"`
	CoverPhotoURL     string `json:"cover_photo_url"`
	CostPerNight      int64  `json:"cost_per_night"`
	ParkingSpaces     int    `json:"parking_spaces"`
	NumberOfBathrooms int    `json:"number_of_bathrooms"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms"`
	Country           string `json:"country"`
	Street            string `json:"street"`
	City              string `json:"city"`
	Province          string `json:"province"`
	PostCode          string `json:"post_code"`
}

// PropertySearchResult is a property with its average review rating.
// AverageRating is nil when the property has no reviews.
type PropertySearchResult struct {
	Property
	AverageRating *float64 `json:"average_rating" db:"average_rating"`
}
