package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bus-booking-api/internal/model"
)

type BusRepository struct {
	pool *pgxpool.Pool
}

func NewBusRepository(pool *pgxpool.Pool) *BusRepository {
	return &BusRepository{pool: pool}
}

func (r *BusRepository) List(ctx context.Context) ([]model.Bus, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, bus_number, seats, route, departure_point, destination_point,
		        departure_time, created_at, updated_at
		 FROM buses
		 ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}
	defer rows.Close()

	buses := make([]model.Bus, 0)
	for rows.Next() {
		var b model.Bus
		if err := rows.Scan(&b.ID, &b.BusNumber, &b.Seats, &b.Route, &b.DeparturePoint,
			&b.DestinationPoint, &b.DepartureTime, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bus: %w", err)
		}
		buses = append(buses, b)
	}
	return buses, rows.Err()
}

func (r *BusRepository) Create(ctx context.Context, b model.Bus) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO buses (id, bus_number, seats, route, departure_point,
		                    destination_point, departure_time, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.BusNumber, b.Seats, b.Route, b.DeparturePoint,
		b.DestinationPoint, b.DepartureTime, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create bus: %w", err)
	}
	return nil
}

// Update replaces every business field of the record. The original
// created_at survives; the stored row is returned so the caller sees
// exactly what was persisted.
func (r *BusRepository) Update(ctx context.Context, b model.Bus) (model.Bus, error) {
	var updated model.Bus
	err := r.pool.QueryRow(ctx,
		`UPDATE buses
		 SET bus_number = $2, seats = $3, route = $4, departure_point = $5,
		     destination_point = $6, departure_time = $7, updated_at = $8
		 WHERE id = $1
		 RETURNING id, bus_number, seats, route, departure_point, destination_point,
		           departure_time, created_at, updated_at`,
		b.ID, b.BusNumber, b.Seats, b.Route, b.DeparturePoint,
		b.DestinationPoint, b.DepartureTime, b.UpdatedAt).
		Scan(&updated.ID, &updated.BusNumber, &updated.Seats, &updated.Route,
			&updated.DeparturePoint, &updated.DestinationPoint, &updated.DepartureTime,
			&updated.CreatedAt, &updated.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bus{}, model.ErrBusNotFound
	}
	if err != nil {
		return model.Bus{}, fmt.Errorf("update bus: %w", err)
	}
	return updated, nil
}

func (r *BusRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM buses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBusNotFound
	}
	return nil
}
