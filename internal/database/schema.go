package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tables lists the managed tables in creation order
var Tables = []string{"users", "categories", "brands"}

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		email VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		english_title VARCHAR(255),
		description TEXT,
		image VARCHAR(500),
		icon VARCHAR(500),
		category_parent_id INTEGER,
		brand VARCHAR(255),
		display_order INTEGER NOT NULL DEFAULT 0,
		visible BOOLEAN NOT NULL DEFAULT TRUE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		filterable_by_brand BOOLEAN NOT NULL DEFAULT FALSE,
		background_color VARCHAR(20),
		absolute_url VARCHAR(500),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ,
		CONSTRAINT fk_categories_parent FOREIGN KEY (category_parent_id) REFERENCES categories(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_parent ON categories (category_parent_id)`,
	`CREATE TABLE IF NOT EXISTS brands (
		id INTEGER PRIMARY KEY,
		slug VARCHAR(255) UNIQUE NOT NULL,
		name1 VARCHAR(255) NOT NULL,
		name2 VARCHAR(255) NOT NULL,
		category_id INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ,
		CONSTRAINT brands_id_not_undetected CHECK (id <> -1),
		CONSTRAINT fk_brands_category FOREIGN KEY (category_id) REFERENCES categories(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_brands_category ON brands (category_id)`,
	`CREATE OR REPLACE FUNCTION set_updated_at() RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS trg_categories_updated_at ON categories`,
	`CREATE TRIGGER trg_categories_updated_at BEFORE UPDATE ON categories
		FOR EACH ROW EXECUTE FUNCTION set_updated_at()`,
	`DROP TRIGGER IF EXISTS trg_brands_updated_at ON brands`,
	`CREATE TRIGGER trg_brands_updated_at BEFORE UPDATE ON brands
		FOR EACH ROW EXECUTE FUNCTION set_updated_at()`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS brands`,
	`DROP TABLE IF EXISTS categories`,
	`DROP TABLE IF EXISTS users`,
	`DROP FUNCTION IF EXISTS set_updated_at()`,
}

// CreateSchema creates every managed table. Existing tables are kept.
func CreateSchema(ctx context.Context, db sqlx.ExecerContext) error {
	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops every managed table and its data
func DropSchema(ctx context.Context, db sqlx.ExecerContext) error {
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}
	return nil
}
