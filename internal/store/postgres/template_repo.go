// Package postgres reads parsing templates from the application database.
// The table is owned by the template-authoring side; this repository never
// writes it.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/retailops/poextract/internal/model"
)

// ErrTemplateNotFound is returned when a template id does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// Open connects to postgres via the pgx stdlib driver.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return db, nil
}

// TemplateRepo is a read-only repository over the parsing_templates table.
type TemplateRepo struct {
	db *sqlx.DB
}

// NewTemplateRepo creates a new postgres-backed template repository.
func NewTemplateRepo(db *sqlx.DB) *TemplateRepo {
	return &TemplateRepo{db: db}
}

// templateRow mirrors the table layout; the config columns are JSONB.
type templateRow struct {
	ID             uuid.UUID  `db:"id"`
	Name           string     `db:"name"`
	SupplierID     *uuid.UUID `db:"supplier_id"`
	Active         bool       `db:"active"`
	DetectKeywords []byte     `db:"detect_keywords"`
	HeaderConfig   []byte     `db:"header_config"`
	ProductsConfig []byte     `db:"products_config"`
}

// ListActive returns active templates ordered most recently updated
// first, which is the selection tie-break order.
func (r *TemplateRepo) ListActive(ctx context.Context) ([]model.ParsingTemplate, error) {
	var rows []templateRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name, supplier_id, active, detect_keywords, header_config, products_config
		 FROM parsing_templates
		 WHERE active = TRUE
		 ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("templateRepo.ListActive: %w", err)
	}

	templates := make([]model.ParsingTemplate, 0, len(rows))
	for i := range rows {
		tpl, err := rows[i].toModel()
		if err != nil {
			return nil, fmt.Errorf("templateRepo.ListActive: row %s: %w", rows[i].ID, err)
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// GetByID returns one template regardless of its active flag; authoring
// tools dry-run inactive templates too.
func (r *TemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.ParsingTemplate, error) {
	var row templateRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, name, supplier_id, active, detect_keywords, header_config, products_config
		 FROM parsing_templates
		 WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("templateRepo.GetByID: %w", err)
	}

	tpl, err := row.toModel()
	if err != nil {
		return nil, fmt.Errorf("templateRepo.GetByID: %w", err)
	}
	return &tpl, nil
}

func (row *templateRow) toModel() (model.ParsingTemplate, error) {
	tpl := model.ParsingTemplate{
		ID:         row.ID,
		Name:       row.Name,
		SupplierID: row.SupplierID,
		Active:     row.Active,
	}

	if len(row.DetectKeywords) > 0 {
		if err := json.Unmarshal(row.DetectKeywords, &tpl.DetectKeywords); err != nil {
			return tpl, fmt.Errorf("decoding detect_keywords: %w", err)
		}
	}
	if len(row.HeaderConfig) > 0 {
		var header model.HeaderConfig
		if err := json.Unmarshal(row.HeaderConfig, &header); err != nil {
			return tpl, fmt.Errorf("decoding header_config: %w", err)
		}
		tpl.Header = &header
	}
	if len(row.ProductsConfig) > 0 {
		if err := json.Unmarshal(row.ProductsConfig, &tpl.Products); err != nil {
			return tpl, fmt.Errorf("decoding products_config: %w", err)
		}
	}

	return tpl, nil
}
