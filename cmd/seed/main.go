// The seed binary loads a YAML fixture file into the database: user
// accounts, the product catalog, and the obstacle/promo reference lists.
// It is meant for development and fresh deployments; inserts are
// idempotent on natural keys so re-running is safe.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"crm_leads_backend/internal/auth/password"
	"crm_leads_backend/migrations"
	"crm_leads_backend/platform/config"
	"crm_leads_backend/platform/db"
	"crm_leads_backend/platform/logger"
	"crm_leads_backend/platform/phone"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"
)

type fixture struct {
	Users []struct {
		Username string `yaml:"username"`
		FullName string `yaml:"fullName"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
		Phone    string `yaml:"phone"`
	} `yaml:"users"`
	Products []struct {
		Name     string `yaml:"name"`
		Packages []struct {
			Name         string `yaml:"name"`
			DefaultPrice int64  `yaml:"defaultPrice"`
		} `yaml:"packages"`
	} `yaml:"products"`
	Obstacles []referenceItem `yaml:"obstacles"`
	Promos    []referenceItem `yaml:"promos"`
}

type referenceItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func main() {
	var fixturePath string
	flag.StringVar(&fixturePath, "file", "seed.yaml", "path to the YAML fixture file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	ctx := context.Background()

	data, err := os.ReadFile(fixturePath)
	if err != nil {
		log.Error("failed to read fixture file", "path", fixturePath, "error", err)
		os.Exit(1)
	}

	var fix fixture
	if err := yaml.Unmarshal(data, &fix); err != nil {
		log.Error("failed to parse fixture file", "path", fixturePath, "error", err)
		os.Exit(1)
	}

	if err := db.RunMigrations(ctx, cfg, migrations.FS, "."); err != nil {
		log.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, pool, fix, log); err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	log.Info("seeding complete",
		"users", len(fix.Users),
		"products", len(fix.Products),
		"obstacles", len(fix.Obstacles),
		"promos", len(fix.Promos),
	)
}

func seed(ctx context.Context, pool *pgxpool.Pool, fix fixture, log *logger.Logger) error {
	for _, u := range fix.Users {
		hash, err := password.Hash(u.Password)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO users (username, full_name, email, role, phone, password_hash)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (username) DO NOTHING
		`, strings.ToLower(u.Username), u.FullName, strings.ToLower(u.Email), u.Role, phone.NormalizeE164(u.Phone), hash)
		if err != nil {
			return err
		}
		log.Info("seeded user", "username", u.Username, "role", u.Role)
	}

	for _, p := range fix.Products {
		var productID string
		err := pool.QueryRow(ctx, `
			WITH inserted AS (
				INSERT INTO products (name)
				SELECT $1 WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
				RETURNING id
			)
			SELECT id FROM inserted
			UNION ALL
			SELECT id FROM products WHERE name = $1
			LIMIT 1
		`, p.Name).Scan(&productID)
		if err != nil {
			return err
		}

		for _, pkg := range p.Packages {
			_, err := pool.Exec(ctx, `
				INSERT INTO packages (product_id, name, default_price)
				SELECT $1, $2, $3
				WHERE NOT EXISTS (
					SELECT 1 FROM packages WHERE product_id = $1 AND name = $2
				)
			`, productID, pkg.Name, pkg.DefaultPrice)
			if err != nil {
				return err
			}
		}
		log.Info("seeded product", "name", p.Name, "packages", len(p.Packages))
	}

	if err := seedReference(ctx, pool, "obstacles", fix.Obstacles); err != nil {
		return err
	}
	return seedReference(ctx, pool, "promos", fix.Promos)
}

func seedReference(ctx context.Context, pool *pgxpool.Pool, table string, items []referenceItem) error {
	for _, item := range items {
		query := `
			INSERT INTO ` + table + ` (name, description)
			SELECT $1, $2
			WHERE NOT EXISTS (SELECT 1 FROM ` + table + ` WHERE name = $1)
		`
		if _, err := pool.Exec(ctx, query, item.Name, item.Description); err != nil {
			return err
		}
	}
	return nil
}
