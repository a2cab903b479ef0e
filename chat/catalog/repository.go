package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ryuvi/carchat/core/logger"
)

// Repository loads the cars table into an immutable in-memory Catalog.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps an open database handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const loadQuery = `
SELECT id, marca, modelo, ano, categoria, combustivel, quilometragem,
       transmissao, qtt_portas, motor, consumo_cidade, consumo_estrada,
       preco, cor
FROM cars
ORDER BY inserted_at, id`

// Load reads the full record set once. The returned Catalog is read-only
// for the process lifetime; restart the server to pick up new rows.
func (r *Repository) Load(ctx context.Context) (*Catalog, error) {
	start := time.Now()
	var cars []Car
	if err := r.db.SelectContext(ctx, &cars, loadQuery); err != nil {
		logger.DB.Error("cars load failed",
			slog.String("event", "cars.load"),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("load cars: %w", err)
	}

	logger.DB.Info("cars loaded",
		slog.String("event", "cars.load"),
		slog.Int("rows", len(cars)),
		slog.Duration("duration", logger.Took(start)),
	)
	return New(cars), nil
}
