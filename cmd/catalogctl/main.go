package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"customizer/internal/domain"
	"customizer/internal/infra"
	"customizer/internal/sqlinline"
)

// catalogFile is the JSON document catalogctl consumes. One file describes
// one product with its shape variants and customization fields.
type catalogFile struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Variants []struct {
		Shape               string `json:"shape"`
		StorefrontVariantID string `json:"storefront_variant_id"`
		Position            int    `json:"position"`
	} `json:"variants"`
	Fields []struct {
		Key            string   `json:"key"`
		Kind           string   `json:"kind"`
		Label          string   `json:"label"`
		MaxWords       int      `json:"max_words"`
		MaxBytes       int64    `json:"max_bytes"`
		Required       bool     `json:"required"`
		RequiredShapes []string `json:"required_shapes"`
	} `json:"fields"`
}

func main() {
	var fileFlag string
	flag.StringVar(&fileFlag, "file", "", "path to the product catalog JSON file")
	flag.Parse()

	_ = godotenv.Load()

	if strings.TrimSpace(fileFlag) == "" {
		exitWithError(errors.New("-file is required"))
	}

	data, err := os.ReadFile(fileFlag)
	if err != nil {
		exitWithError(fmt.Errorf("read catalog file: %w", err))
	}
	var catalog catalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		exitWithError(fmt.Errorf("parse catalog file: %w", err))
	}
	if err := validateCatalog(catalog); err != nil {
		exitWithError(err)
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger(os.Getenv("APP_ENV"))
	runner := infra.NewSQLRunner(pool, logger)

	row := runner.QueryRow(ctx, sqlinline.QUpsertProduct, catalog.Slug, catalog.Title)
	var productID string
	if err := row.Scan(&productID); err != nil {
		exitWithError(fmt.Errorf("upsert product: %w", err))
	}

	for _, v := range catalog.Variants {
		row := runner.QueryRow(ctx, sqlinline.QUpsertProductVariant, productID, v.Shape, v.StorefrontVariantID, v.Position)
		var variantID string
		if err := row.Scan(&variantID); err != nil {
			exitWithError(fmt.Errorf("upsert variant %q: %w", v.Shape, err))
		}
	}

	for _, f := range catalog.Fields {
		shapes := f.RequiredShapes
		if shapes == nil {
			shapes = []string{}
		}
		row := runner.QueryRow(ctx, sqlinline.QUpsertProductField,
			productID, f.Key, f.Kind, f.Label, f.MaxWords, f.MaxBytes, f.Required, shapes)
		var fieldID string
		if err := row.Scan(&fieldID); err != nil {
			exitWithError(fmt.Errorf("upsert field %q: %w", f.Key, err))
		}
	}

	fmt.Printf("catalog applied: product %s (%s), %d variants, %d fields\n",
		catalog.Slug, productID, len(catalog.Variants), len(catalog.Fields))
}

func validateCatalog(c catalogFile) error {
	if strings.TrimSpace(c.Slug) == "" {
		return errors.New("catalog: slug is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("catalog: title is required")
	}
	for _, f := range c.Fields {
		switch domain.FieldKind(f.Kind) {
		case domain.FieldKindText, domain.FieldKindUpload, domain.FieldKindShape:
		default:
			return fmt.Errorf("catalog: field %q has unsupported kind %q", f.Key, f.Kind)
		}
		if strings.TrimSpace(f.Key) == "" {
			return errors.New("catalog: every field needs a key")
		}
	}
	return nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "catalogctl:", err)
	os.Exit(1)
}
