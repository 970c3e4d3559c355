// Command seed fills the scheduling database with fake providers, staff,
// clients and activities. Everything is created through the services as the
// bootstrap admin, so the usual validation and uniqueness rules apply.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
	"github.com/rushhour/scheduling/internal/core/service"
	"github.com/rushhour/scheduling/internal/infrastructure/config"
	"github.com/rushhour/scheduling/internal/infrastructure/credentials"
	"github.com/rushhour/scheduling/internal/infrastructure/db/postgres"
	"github.com/rushhour/scheduling/pkg/logger"
)

const seedPassword = "Seed.Pass1"

type counts struct {
	providers  int
	employees  int
	clients    int
	activities int
}

type seeder struct {
	faker  *gofakeit.Faker
	caller domain.Caller
	log    zerolog.Logger

	providers  ports.ProviderService
	employees  ports.EmployeeService
	clients    ports.ClientService
	activities ports.ActivityService
}

func main() {
	var n counts
	flag.IntVar(&n.providers, "providers", 3, "number of providers")
	flag.IntVar(&n.employees, "employees", 4, "employees per provider")
	flag.IntVar(&n.clients, "clients", 20, "number of clients")
	flag.IntVar(&n.activities, "activities", 5, "activities per provider")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "rushhour-seed"})
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "rushhour-seed"})
	if cfg.Admin.Email == "" {
		log.Fatal().Msg("ADMIN_EMAIL is required")
	}

	gdb, err := postgres.Connect(cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	if err := postgres.AutoMigrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate postgres")
	}
	store := postgres.NewStore(gdb)

	creds := credentials.NewStore(cfg.JWTSecret, cfg.TokenTTL, cfg.HashIterations)
	guard := service.NewAuthorizationGuard(store.Relations(), log)
	audit := ports.NopAuditLog{}

	admin, err := service.NewAuthService(store.Accounts(), creds, audit, log).
		EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("ensure admin account")
	}

	s := &seeder{
		faker:      gofakeit.New(0),
		caller:     domain.Caller{AccountID: admin.ID, Role: domain.RoleAdmin},
		log:        log,
		providers:  service.NewProviderService(store, guard, audit, log),
		employees:  service.NewEmployeeService(store, guard, creds, audit, log),
		clients:    service.NewClientService(store, guard, creds, audit, log),
		activities: service.NewActivityService(store, guard, audit, log),
	}
	if err := s.run(ctx, n); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("seed complete")
}

func (s *seeder) run(ctx context.Context, n counts) error {
	for i := 0; i < n.providers; i++ {
		p, err := s.provider(ctx)
		if err != nil {
			return fmt.Errorf("provider: %w", err)
		}

		staff := make([]int64, 0, n.employees)
		for j := 0; j < n.employees; j++ {
			role := domain.RoleEmployee
			if j == 0 {
				role = domain.RoleProviderAdmin
			}
			e, err := s.employee(ctx, p, role)
			if err != nil {
				return fmt.Errorf("employee: %w", err)
			}
			staff = append(staff, e.ID)
		}

		for j := 0; j < n.activities; j++ {
			if _, err := s.activity(ctx, p, staff); err != nil {
				return fmt.Errorf("activity: %w", err)
			}
		}
		s.log.Info().Int64("provider_id", p.ID).Str("name", p.Name).
			Int("employees", len(staff)).Int("activities", n.activities).
			Msg("provider seeded")
	}

	for i := 0; i < n.clients; i++ {
		if _, err := s.client(ctx); err != nil {
			return fmt.Errorf("client: %w", err)
		}
	}
	s.log.Info().Int("clients", n.clients).Msg("clients seeded")
	return nil
}

func (s *seeder) provider(ctx context.Context) (*domain.Provider, error) {
	name := s.faker.Company()
	businessDomain := strings.ToLower(letters(name)) + s.faker.DigitN(3)
	return s.providers.Create(ctx, s.caller, ports.ProviderInput{
		Name:            name,
		Website:         "https://www." + businessDomain + ".com",
		BusinessDomain:  businessDomain,
		Phone:           s.faker.Phone(),
		WorkingDayStart: datatypes.NewTime(9, 0, 0, 0),
		WorkingDayEnd:   datatypes.NewTime(17, 0, 0, 0),
		WorkingDays:     domain.Weekdays,
	})
}

func (s *seeder) employee(ctx context.Context, p *domain.Provider, role domain.Role) (*domain.Employee, error) {
	account := s.account(p.BusinessDomain + ".com")
	return s.employees.Create(ctx, s.caller, ports.NewEmployeeInput{
		AccountInput: account,
		Password:     seedPassword,
		Role:         role,
		Title:        letters(s.faker.JobDescriptor()),
		Phone:        s.faker.Phone(),
		RatePerHour:  decimal.NewFromFloat(s.faker.Price(15, 80)).Round(2),
		HireDate:     s.faker.DateRange(time.Now().AddDate(-5, 0, 0), time.Now()).UTC(),
		ProviderID:   p.ID,
	})
}

func (s *seeder) client(ctx context.Context) (*domain.Client, error) {
	return s.clients.Create(ctx, s.caller, ports.NewClientInput{
		AccountInput: s.account(s.faker.DomainName()),
		Password:     seedPassword,
		Phone:        s.faker.Phone(),
		Address:      s.faker.Street(),
	})
}

func (s *seeder) activity(ctx context.Context, p *domain.Provider, staff []int64) (*domain.Activity, error) {
	assigned := make([]int64, 0, len(staff))
	for _, id := range staff {
		if s.faker.Bool() {
			assigned = append(assigned, id)
		}
	}
	return s.activities.Create(ctx, s.caller, ports.ActivityInput{
		Name:        s.faker.HipsterWord() + " " + s.faker.BuzzWord(),
		Price:       decimal.NewFromFloat(s.faker.Price(10, 150)).Round(2),
		Duration:    15 * s.faker.Number(1, 8),
		EmployeeIDs: assigned,
		ProviderID:  p.ID,
	})
}

// account builds a unique identity whose email lives under host.
func (s *seeder) account(host string) ports.AccountInput {
	first := letters(s.faker.FirstName())
	last := letters(s.faker.LastName())
	username := strings.ToLower(first+"."+last) + s.faker.DigitN(4)
	return ports.AccountInput{
		Email:    username + "@" + host,
		FullName: first + "-" + last,
		Username: username,
	}
}

func letters(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}
