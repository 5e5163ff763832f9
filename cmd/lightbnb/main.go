package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lightbnb/backend/internal/adapters/database"
	"github.com/lightbnb/backend/internal/application/services"
	"github.com/lightbnb/backend/internal/domain/entities"
	"github.com/lightbnb/backend/internal/domain/repositories"
	"github.com/lightbnb/backend/internal/infrastructure/clients/postgres"
	"github.com/lightbnb/backend/internal/infrastructure/observability"
	"github.com/lightbnb/backend/pkg/config"
)

const usage = `usage: lightbnb <command> [flags]

commands:
  user          look up a user by -email or -id
  register      create a user (-name, -email, -password)
  login         check -email and -password
  reservations  list a guest's reservations (-guest, -limit)
  search        search properties (-city, -min-price, -max-price, -min-rating, -owner, -limit)
  add-property  insert a property read as JSON from stdin
`

// app holds the repositories every command runs against.
type app struct {
	users        repositories.UserRepository
	reservations repositories.ReservationRepository
	properties   repositories.PropertyRepository
	accounts     *services.AccountService
	in           io.Reader
	out          io.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	users := database.NewUserAdapter(pgClient, metrics)
	a := &app{
		users:        users,
		reservations: database.NewReservationAdapter(pgClient, metrics),
		properties:   database.NewPropertyAdapter(pgClient, metrics),
		accounts:     services.NewAccountService(users),
		in:           os.Stdin,
		out:          os.Stdout,
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		pgClient.Close()
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "user":
		return a.user(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "reservations":
		return a.listReservations(ctx, args)
	case "search":
		return a.search(ctx, args)
	case "add-property":
		return a.addProperty(ctx)
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func (a *app) user(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("user", flag.ContinueOnError)
	email := fs.String("email", "", "user email")
	id := fs.Int64("id", 0, "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		user *entities.User
		err  error
	)
	switch {
	case *email != "":
		user, err = a.users.GetByEmail(ctx, *email)
	case *id != 0:
		user, err = a.users.GetByID(ctx, *id)
	default:
		return fmt.Errorf("one of -email or -id is required")
	}
	if err != nil {
		return err
	}

	return a.print(user)
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "plain-text password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.accounts.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "plain-text password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.accounts.Authenticate(ctx, *email, *password)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *app) listReservations(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reservations", flag.ContinueOnError)
	guestID := fs.Int64("guest", 0, "guest user id")
	limit := fs.Int("limit", repositories.DefaultLimit, "maximum rows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *guestID == 0 {
		return fmt.Errorf("-guest is required")
	}

	reservations, err := a.reservations.ListByGuest(ctx, *guestID, *limit)
	if err != nil {
		return err
	}
	return a.print(reservations)
}

func (a *app) search(ctx context.Context, args []string) error {
	filter, limit, err := parseSearchFlags(args)
	if err != nil {
		return err
	}

	properties, err := a.properties.Search(ctx, filter, limit)
	if err != nil {
		return err
	}
	return a.print(properties)
}

// parseSearchFlags only sets the filter fields whose flags were passed.
func parseSearchFlags(args []string) (repositories.PropertyFilter, int, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	city := fs.String("city", "", "city substring")
	minPrice := fs.Int64("min-price", 0, "minimum cost per night")
	maxPrice := fs.Int64("max-price", 0, "maximum cost per night")
	minRating := fs.Float64("min-rating", 0, "minimum review rating")
	owner := fs.Int64("owner", 0, "owner user id")
	limit := fs.Int("limit", repositories.DefaultLimit, "maximum rows")
	if err := fs.Parse(args); err != nil {
		return repositories.PropertyFilter{}, 0, err
	}

	var filter repositories.PropertyFilter
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "city":
			filter.City = city
		case "min-price":
			filter.MinimumPricePerNight = minPrice
		case "max-price":
			filter.MaximumPricePerNight = maxPrice
		case "min-rating":
			filter.MinimumRating = minRating
		case "owner":
			filter.OwnerID = owner
		}
	})

	return filter, *limit, nil
}

func (a *app) addProperty(ctx context.Context) error {
	var property entities.NewProperty
	if err := json.NewDecoder(a.in).Decode(&property); err != nil {
		return fmt.Errorf("failed to decode property: %w", err)
	}

	created, err := a.properties.Create(ctx, property)
	if err != nil {
		return err
	}
	return a.print(created)
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
