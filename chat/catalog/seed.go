package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jmoiron/sqlx"

	"github.com/ryuvi/carchat/core/logger"
)

const insertCar = `
INSERT INTO cars (marca, modelo, ano, categoria, combustivel, quilometragem,
                  transmissao, qtt_portas, motor, consumo_cidade,
                  consumo_estrada, preco, cor)
VALUES (:marca, :modelo, :ano, :categoria, :combustivel, :quilometragem,
        :transmissao, :qtt_portas, :motor, :consumo_cidade,
        :consumo_estrada, :preco, :cor)`

// Seed populates the cars table with n synthetic vehicles when it is empty.
// An already populated table is left untouched.
func Seed(ctx context.Context, db *sqlx.DB, n int) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM cars"); err != nil {
		return fmt.Errorf("seed: count cars: %w", err)
	}
	if count > 0 {
		logger.SEED.Debug("cars table already populated",
			slog.String("event", "skip"),
			slog.Int("rows", count),
		)
		return nil
	}

	faker := gofakeit.New(0)
	start := time.Now()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := 0; i < n; i++ {
		if _, err := tx.NamedExecContext(ctx, insertCar, generateCar(faker)); err != nil {
			return fmt.Errorf("seed: insert car: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}

	logger.SEED.Info("cars table seeded",
		slog.String("event", "summary"),
		slog.Int("rows", n),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

func generateCar(faker *gofakeit.Faker) Car {
	info := faker.Car()

	doors := 2
	if faker.Bool() {
		doors = 4
	}

	return Car{
		Marca:          info.Brand,
		Modelo:         info.Model,
		Ano:            info.Year,
		Categoria:      info.Type,
		Combustivel:    pick(faker, Combustiveis),
		Quilometragem:  faker.Number(0, 500000),
		Transmissao:    pick(faker, Transmissoes),
		QttPortas:      doors,
		Motor:          round1(faker.Float64Range(1.0, 6.0)),
		ConsumoCidade:  round2(faker.Float64Range(5.0, 15.0)),
		ConsumoEstrada: round2(faker.Float64Range(8.0, 20.0)),
		Preco:          round2(faker.Float64Range(20000, 150000)),
		Cor:            pick(faker, Cores),
	}
}

func pick(faker *gofakeit.Faker, options []string) string {
	return options[faker.Number(0, len(options)-1)]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
