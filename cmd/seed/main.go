// Command seed loads the default pantry suggestions and the demo account.
// Usage: go run ./cmd/seed [--suggestions file.xlsx] [--demo-password ...]
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"pantrify/internal/config"
	"pantrify/internal/domain"
	"pantrify/internal/export"
	"pantrify/internal/port"
	"pantrify/internal/repository/postgres"
	"pantrify/internal/service"
)

const demoEmail = "demo@pantrify.com"

var defaultSuggestions = []service.UpsertSuggestionInput{
	{Name: "Apples", ImageURL: "/images/pantry/apples.png", Description: "Fresh apples, great for snacks and baking."},
	{Name: "Bread", ImageURL: "/images/pantry/bread.png", Description: "Loaf of bread, perfect for sandwiches."},
	{Name: "Milk", ImageURL: "/images/pantry/milk.png", Description: "Dairy or plant-based milk."},
	{Name: "Eggs", ImageURL: "/images/pantry/eggs.png", Description: "Chicken eggs, a breakfast staple."},
	{Name: "Cheese", ImageURL: "/images/pantry/cheese.png", Description: "Block or slices of cheese."},
	{Name: "Chicken", ImageURL: "/images/pantry/chicken.png", Description: "Raw or cooked chicken."},
	{Name: "Flour", ImageURL: "/images/pantry/flour.png", Description: "All-purpose or specialty flour."},
	{Name: "Onions", ImageURL: "/images/pantry/onions.png", Description: "Yellow, white, or red onions."},
	{Name: "Pasta", ImageURL: "/images/pantry/pasta.png", Description: "Dried pasta shapes."},
	{Name: "Rice", ImageURL: "/images/pantry/rice.png", Description: "White or brown rice."},
	{Name: "Tomatoes", ImageURL: "/images/pantry/tomatoes.png", Description: "Fresh or canned tomatoes."},
	{Name: "Potatoes", ImageURL: "/images/pantry/potatoes.png", Description: "Russet, red, or Yukon gold potatoes."},
	{Name: "Salt", ImageURL: "/images/pantry/salt.png", Description: "Table or sea salt."},
	{Name: "Pepper", ImageURL: "/images/pantry/pepper.png", Description: "Black pepper."},
	{Name: "Olive Oil", ImageURL: "/images/pantry/olive-oil.png", Description: "Extra virgin olive oil."},
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		xlsxPath     string
		demoPassword string
		skipDemo     bool
	)

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Seed pantry suggestions and the demo account",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			db, err := postgres.NewDB(&cfg.DB)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			s := &seeder{
				users:       postgres.NewUserRepo(db),
				suggestions: service.NewSuggestionService(postgres.NewSuggestionRepo(db)),
				hashCost:    service.BcryptCost,
			}
			ctx := cmd.Context()

			inputs := defaultSuggestions
			if xlsxPath != "" {
				inputs, err = readSuggestionFile(xlsxPath)
				if err != nil {
					return err
				}
			}
			n, err := s.seedSuggestions(ctx, inputs)
			if err != nil {
				return err
			}
			log.Printf("seeded %d pantry suggestions", n)

			if skipDemo {
				return nil
			}
			if err := s.seedDemoUser(ctx, demoEmail, demoPassword); err != nil {
				return err
			}
			log.Printf("demo user %s created/updated", demoEmail)
			return nil
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "suggestions", "", "XLSX file with Name, Image URL, Description columns (replaces the defaults)")
	cmd.Flags().StringVar(&demoPassword, "demo-password", "Demo!pass1", "password for the demo account")
	cmd.Flags().BoolVar(&skipDemo, "skip-demo", false, "do not create the demo account")
	return cmd
}

func readSuggestionFile(path string) ([]service.UpsertSuggestionInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suggestions file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := export.ReadSuggestionsXLSX(f)
	if err != nil {
		return nil, fmt.Errorf("read suggestions file: %w", err)
	}
	inputs := make([]service.UpsertSuggestionInput, 0, len(rows))
	for _, r := range rows {
		inputs = append(inputs, service.UpsertSuggestionInput{
			Name:        r.Name,
			ImageURL:    r.ImageURL,
			Description: r.Description,
		})
	}
	return inputs, nil
}

type seeder struct {
	users       port.UserRepository
	suggestions service.SuggestionService
	hashCost    int
}

// seedSuggestions upserts every input and returns how many were saved.
// Rows that fail validation are logged and skipped.
func (s *seeder) seedSuggestions(ctx context.Context, inputs []service.UpsertSuggestionInput) (int, error) {
	saved := 0
	for _, in := range inputs {
		if _, err := s.suggestions.Upsert(ctx, in); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				log.Printf("skipping suggestion %q: %v", in.Name, err)
				continue
			}
			return saved, fmt.Errorf("seed suggestion %q: %w", in.Name, err)
		}
		saved++
	}
	return saved, nil
}

// seedDemoUser creates the demo account, or resets its password and
// reactivates it when it already exists.
func (s *seeder) seedDemoUser(ctx context.Context, email, password string) error {
	if !service.IsStrongPassword(password) {
		return fmt.Errorf("demo password: %w", domain.ErrWeakPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return s.users.Create(ctx, &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			IsActive:     true,
		})
	}
	if err != nil {
		return fmt.Errorf("look up demo user: %w", err)
	}

	user.PasswordHash = string(hash)
	user.IsActive = true
	return s.users.Update(ctx, user)
}
