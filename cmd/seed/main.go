// cmd/seed/main.go
//
// Seeds the planner database: creates the schema and loads the product
// catalog, vendor terms and stock history from CSV files.
package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		unit TEXT NOT NULL DEFAULT '',
		image_url TEXT,
		remaining_stock INT NOT NULL DEFAULT 0,
		min_stock INT NOT NULL DEFAULT 0,
		max_stock INT NOT NULL DEFAULT 0,
		last_year_prediction INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS vendors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		shipping_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
		free_shipping_threshold NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS vendor_products (
		vendor_id TEXT NOT NULL REFERENCES vendors(id),
		product_id TEXT NOT NULL REFERENCES products(id),
		price NUMERIC(12,2) NOT NULL,
		bundles JSONB NOT NULL DEFAULT '[]',
		PRIMARY KEY (vendor_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_history (
		product_id TEXT NOT NULL REFERENCES products(id),
		record_date DATE NOT NULL,
		remaining_stock INT NOT NULL,
		PRIMARY KEY (product_id, record_date)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id BIGSERIAL PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES products(id),
		movement_type TEXT NOT NULL,
		quantity INT NOT NULL,
		movement_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id BIGSERIAL PRIMARY KEY,
		strategy TEXT NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func runMigrate(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	log.Println("schema is up to date")
	return nil
}

func runCatalogSeed(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	dataDir := c.String("data-dir")

	if err := seedProducts(db, filepath.Join(dataDir, "products.csv")); err != nil {
		return err
	}
	if err := seedVendors(db, filepath.Join(dataDir, "vendors.csv")); err != nil {
		return err
	}
	if err := seedVendorProducts(db, filepath.Join(dataDir, "vendor_products.csv")); err != nil {
		return err
	}

	log.Println("catalog seed complete")
	return nil
}

// seedProducts expects columns: id,name,unit,remaining_stock,min_stock,max_stock,last_year_prediction
func seedProducts(db *sql.DB, path string) error {
	return forEachRecord(path, func(record []string) error {
		if len(record) < 7 {
			return fmt.Errorf("products row needs 7 columns, got %d", len(record))
		}
		remaining, err := strconv.Atoi(record[3])
		if err != nil {
			return fmt.Errorf("bad remaining_stock %q: %w", record[3], err)
		}
		min, err := strconv.Atoi(record[4])
		if err != nil {
			return fmt.Errorf("bad min_stock %q: %w", record[4], err)
		}
		max, err := strconv.Atoi(record[5])
		if err != nil {
			return fmt.Errorf("bad max_stock %q: %w", record[5], err)
		}
		prediction, err := strconv.Atoi(record[6])
		if err != nil {
			return fmt.Errorf("bad last_year_prediction %q: %w", record[6], err)
		}

		_, err = db.Exec(`
			INSERT INTO products (id, name, unit, remaining_stock, min_stock, max_stock, last_year_prediction)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				unit = EXCLUDED.unit,
				remaining_stock = EXCLUDED.remaining_stock,
				min_stock = EXCLUDED.min_stock,
				max_stock = EXCLUDED.max_stock,
				last_year_prediction = EXCLUDED.last_year_prediction
		`, record[0], record[1], record[2], remaining, min, max, prediction)
		return err
	})
}

// seedVendors expects columns: id,name,shipping_cost,free_shipping_threshold
func seedVendors(db *sql.DB, path string) error {
	return forEachRecord(path, func(record []string) error {
		if len(record) < 4 {
			return fmt.Errorf("vendors row needs 4 columns, got %d", len(record))
		}
		_, err := db.Exec(`
			INSERT INTO vendors (id, name, shipping_cost, free_shipping_threshold)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				shipping_cost = EXCLUDED.shipping_cost,
				free_shipping_threshold = EXCLUDED.free_shipping_threshold
		`, record[0], record[1], record[2], record[3])
		return err
	})
}

// seedVendorProducts expects columns: vendor_id,product_id,price,bundles
// where bundles is a JSON array like [{"quantity":50,"price":90.00}].
func seedVendorProducts(db *sql.DB, path string) error {
	return forEachRecord(path, func(record []string) error {
		if len(record) < 3 {
			return fmt.Errorf("vendor_products row needs at least 3 columns, got %d", len(record))
		}
		bundles := "[]"
		if len(record) > 3 && record[3] != "" {
			bundles = record[3]
		}
		_, err := db.Exec(`
			INSERT INTO vendor_products (vendor_id, product_id, price, bundles)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (vendor_id, product_id) DO UPDATE SET
				price = EXCLUDED.price,
				bundles = EXCLUDED.bundles
		`, record[0], record[1], record[2], bundles)
		return err
	})
}

func runStockSeed(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	path := c.String("history-file")

	// Columns: product_id,record_date,remaining_stock
	err = forEachRecord(path, func(record []string) error {
		if len(record) < 3 {
			return fmt.Errorf("stock history row needs 3 columns, got %d", len(record))
		}
		remaining, err := strconv.Atoi(record[2])
		if err != nil {
			return fmt.Errorf("bad remaining_stock %q: %w", record[2], err)
		}
		_, err = db.Exec(`
			INSERT INTO stock_history (product_id, record_date, remaining_stock)
			VALUES ($1, $2, $3)
			ON CONFLICT (product_id, record_date) DO UPDATE
			SET remaining_stock = EXCLUDED.remaining_stock
		`, record[0], record[1], remaining)
		return err
	})
	if err != nil {
		return err
	}

	log.Println("stock history seed complete")
	return nil
}

// forEachRecord streams a CSV file, skipping the header row.
func forEachRecord(path string, fn func(record []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		line++
		if err := fn(record); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Create the schema and seed the planner database",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create the database schema",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runMigrate,
			},
			{
				Name:  "catalog",
				Usage: "Seed products, vendors and vendor pricing from CSV",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing products.csv, vendors.csv and vendor_products.csv",
						Value:   "./data/seeds",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
				},
				Action: runCatalogSeed,
			},
			{
				Name:  "stock",
				Usage: "Seed stock history from CSV",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "history-file",
						Usage:   "CSV file with product_id,record_date,remaining_stock rows",
						Value:   "./data/seeds/stock_history.csv",
						EnvVars: []string{"STOCK_HISTORY_FILE"},
					},
				},
				Action: runStockSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
