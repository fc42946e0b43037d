package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Aidin1998/laptrack/internal/auth"
	"github.com/Aidin1998/laptrack/internal/inventory"
	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

var fixturesFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, employees and laptops from a YAML fixtures file",
	Long: `Loads fixtures through the same services the API uses, so validation and
uniqueness rules apply. Records that already exist are skipped.

Example:
  laptrack seed -f fixtures.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(fixturesFile)
		if err != nil {
			return fmt.Errorf("failed to open fixtures: %w", err)
		}
		defer f.Close()

		fixtures, err := parseFixtures(f)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := newApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(context.Background()) }()

		summary, err := fixtures.apply(ctx, a.auth, a.inventory, log)
		if err != nil {
			return err
		}
		log.Info("Seed complete",
			zap.Int("created", summary.created),
			zap.Int("skipped", summary.skipped))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&fixturesFile, "file", "f", "fixtures.yaml", "fixtures file")
}

type fixtures struct {
	Users     []userFixture     `yaml:"users"`
	Employees []employeeFixture `yaml:"employees"`
	Laptops   []laptopFixture   `yaml:"laptops"`
}

type userFixture struct {
	Email    string      `yaml:"email"`
	Name     string      `yaml:"name"`
	Password string      `yaml:"password"`
	Role     models.Role `yaml:"role"`
}

type employeeFixture struct {
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Email      string `yaml:"email"`
	Department string `yaml:"department"`
	Position   string `yaml:"position"`
	Phone      string `yaml:"phone"`
}

type laptopFixture struct {
	Brand          string              `yaml:"brand"`
	Model          string              `yaml:"model"`
	SerialNumber   string              `yaml:"serial_number"`
	Processor      string              `yaml:"processor"`
	RAMGB          int                 `yaml:"ram_gb"`
	StorageGB      int                 `yaml:"storage_gb"`
	OS             string              `yaml:"os"`
	PurchaseDate   *time.Time          `yaml:"purchase_date"`
	PurchasePrice  string              `yaml:"purchase_price"`
	WarrantyExpiry *time.Time          `yaml:"warranty_expiry"`
	Status         models.LaptopStatus `yaml:"status"`
	Location       string              `yaml:"location"`
	Notes          string              `yaml:"notes"`
}

func (l laptopFixture) request() (*models.CreateLaptopRequest, error) {
	price := decimal.Zero
	if l.PurchasePrice != "" {
		var err error
		if price, err = decimal.NewFromString(l.PurchasePrice); err != nil {
			return nil, fmt.Errorf("laptop %s: invalid purchase_price %q", l.SerialNumber, l.PurchasePrice)
		}
	}
	return &models.CreateLaptopRequest{
		Brand:        l.Brand,
		Model:        l.Model,
		SerialNumber: l.SerialNumber,
		Specs: models.Specs{
			Processor: l.Processor,
			RAMGB:     l.RAMGB,
			StorageGB: l.StorageGB,
			OS:        l.OS,
		},
		PurchaseDate:   l.PurchaseDate,
		PurchasePrice:  price,
		WarrantyExpiry: l.WarrantyExpiry,
		Status:         l.Status,
		Location:       l.Location,
		Notes:          l.Notes,
	}, nil
}

func parseFixtures(r io.Reader) (*fixtures, error) {
	var f fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

type seedSummary struct {
	created int
	skipped int
}

// count treats conflicts as already seeded.
func (s *seedSummary) count(logger *zap.Logger, kind, key string, err error) error {
	switch {
	case err == nil:
		s.created++
		return nil
	case errors.Is(err, errors.Conflict):
		s.skipped++
		logger.Debug("fixture exists, skipping", zap.String("kind", kind), zap.String("key", key))
		return nil
	default:
		return fmt.Errorf("failed to seed %s %s: %w", kind, key, err)
	}
}

func (f *fixtures) apply(ctx context.Context, authSvc *auth.Service, inv *inventory.Service, logger *zap.Logger) (seedSummary, error) {
	var summary seedSummary

	for _, u := range f.Users {
		role := u.Role
		if role == "" {
			role = models.RoleStaff
		}
		_, err := authSvc.CreateUser(ctx, u.Email, u.Name, u.Password, role)
		if err := summary.count(logger, "user", u.Email, err); err != nil {
			return summary, err
		}
	}

	for _, e := range f.Employees {
		_, err := inv.CreateEmployee(ctx, &models.CreateEmployeeRequest{
			FirstName:  e.FirstName,
			LastName:   e.LastName,
			Email:      e.Email,
			Department: e.Department,
			Position:   e.Position,
			Phone:      e.Phone,
		})
		if err := summary.count(logger, "employee", e.Email, err); err != nil {
			return summary, err
		}
	}

	for _, l := range f.Laptops {
		req, err := l.request()
		if err != nil {
			return summary, err
		}
		_, err = inv.CreateLaptop(ctx, req)
		if err := summary.count(logger, "laptop", l.SerialNumber, err); err != nil {
			return summary, err
		}
	}

	return summary, nil
}
