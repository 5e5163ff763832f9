package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/lightbnb/backend/internal/adapters/database"
	"github.com/lightbnb/backend/internal/application/services"
	"github.com/lightbnb/backend/internal/domain/entities"
	"github.com/lightbnb/backend/internal/infrastructure/clients/postgres"
	"github.com/lightbnb/backend/internal/infrastructure/observability"
	"github.com/lightbnb/backend/pkg/config"
	apperrors "github.com/lightbnb/backend/pkg/errors"
)

type seedUser struct {
	name, email, password string
}

var seedUsers = []seedUser{
	{"Devin Sanders", "tristanjacobs@gmail.com", "password"},
	{"Iva Harrison", "allisonjackson@mail.com", "password"},
	{"Lloyd Jefferson", "asherpoole@gmx.com", "password"},
}

var seedProperties = []entities.NewProperty{
	{
		Title:             "Speed lamp",
		Description:       "description",
		ThumbnailPhotoURL: "https://images.pexels.com/photos/2086676/pexels-photo-2086676.jpeg?auto=compress&cs=tinysrgb&h=350",
		CoverPhotoURL:     "https://images.pexels.com/photos/2086676/pexels-photo-2086676.jpeg",
		CostPerNight:      93061,
		Street:            "536 Namsub Highway",
		City:              "Sotboske",
		Province:          "Quebec",
		PostCode:          "28142",
		Country:           "Canada",
		ParkingSpaces:     6,
		NumberOfBathrooms: 4,
		NumberOfBedrooms:  8,
	},
	{
		Title:             "Blank corner",
		Description:       "description",
		ThumbnailPhotoURL: "https://images.pexels.com/photos/2121121/pexels-photo-2121121.jpeg?auto=compress&cs=tinysrgb&h=350",
		CoverPhotoURL:     "https://images.pexels.com/photos/2121121/pexels-photo-2121121.jpeg",
		CostPerNight:      85234,
		Street:            "651 Nami Road",
		City:              "Bohbatev",
		Province:          "Alberta",
		PostCode:          "83680",
		Country:           "Canada",
		ParkingSpaces:     6,
		NumberOfBathrooms: 6,
		NumberOfBedrooms:  7,
	},
	{
		Title:             "Habit mix",
		Description:       "description",
		ThumbnailPhotoURL: "https://images.pexels.com/photos/2080018/pexels-photo-2080018.jpeg?auto=compress&cs=tinysrgb&h=350",
		CoverPhotoURL:     "https://images.pexels.com/photos/2080018/pexels-photo-2080018.jpeg",
		CostPerNight:      46058,
		Street:            "1650 Hejto Center",
		City:              "Genwezuj",
		Province:          "Newfoundland And Labrador",
		PostCode:          "44583",
		Country:           "Canada",
		ParkingSpaces:     0,
		NumberOfBathrooms: 5,
		NumberOfBedrooms:  6,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("lightbnb-seed", cfg.App.Env, cfg.App.LogLevel)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				property_reviews,
				reservations,
				properties,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	users := database.NewUserAdapter(pgClient, nil)
	properties := database.NewPropertyAdapter(pgClient, nil)
	accounts := services.NewAccountService(users)

	owners := make([]int64, 0, len(seedUsers))
	for _, su := range seedUsers {
		user, err := accounts.Register(ctx, su.name, su.email, su.password)
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			user, err = users.GetByEmail(ctx, su.email)
		}
		if err != nil || user == nil {
			log.Fatal().Err(err).Str("email", su.email).Msg("failed to seed user")
		}
		owners = append(owners, user.ID)
	}

	for i, p := range seedProperties {
		p.OwnerID = owners[i%len(owners)]
		created, err := properties.Create(ctx, p)
		if err != nil || created == nil {
			log.Fatal().Err(err).Str("title", p.Title).Msg("failed to seed property")
		}
		log.Info().Int64("property_id", created.ID).Str("title", created.Title).Msg("seeded property")
	}

	log.Info().Int("users", len(owners)).Int("properties", len(seedProperties)).Msg("seeding complete")
}
