package repository

import (
	"context"
	"fmt"
	"go-gin-seat-reservation/internal/model"
	apperrors "go-gin-seat-reservation/pkg/app_errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository interface {
	List(ctx context.Context) ([]*model.Reservation, error)
	FindByID(ctx context.Context, id int) (*model.Reservation, error)
	FindByEventID(ctx context.Context, eventID int) ([]*model.Reservation, error)
	SeatsByReservationID(ctx context.Context, id int) ([]model.ReservationSeat, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, reservation *model.Reservation) (*model.Reservation, error)
	UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.ReservationStatus) (*model.Reservation, error)
}

type ReservationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &ReservationRepositoryImpl{
		pool: pool,
	}
}

func (r *ReservationRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, reservation *model.Reservation) (*model.Reservation, error) {
	query := `
		INSERT INTO reservations (
			reservation_uuid, event_id, ticket_type_id, quantity, total_amount, status, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, reservation_uuid, event_id, ticket_type_id, quantity, total_amount, status, notes, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		reservation.ReservationID, reservation.EventID, reservation.TicketTypeID,
		reservation.Quantity, reservation.TotalAmount, reservation.Status, reservation.Notes,
	).Scan(
		&reservation.ID,
		&reservation.ReservationID,
		&reservation.EventID,
		&reservation.TicketTypeID,
		&reservation.Quantity,
		&reservation.TotalAmount,
		&reservation.Status,
		&reservation.Notes,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	seatQuery := `
		INSERT INTO reservation_seats (
			reservation_id, zone_id, seat_row, seat_col, row_label, seat_number, price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	for i := range reservation.Seats {
		seat := &reservation.Seats[i]
		seat.ReservationID = reservation.ID
		err := tx.QueryRow(ctx, seatQuery,
			reservation.ID, seat.ZoneID, seat.Row, seat.Col,
			seat.RowLabel, seat.SeatNumber, seat.Price,
		).Scan(&seat.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create reservation seat: %w", err)
		}
	}

	return reservation, nil
}

func (r *ReservationRepositoryImpl) List(ctx context.Context) ([]*model.Reservation, error) {
	query := `
		SELECT id, reservation_uuid, event_id, ticket_type_id, quantity, total_amount, status, notes,
		       created_at, updated_at, deleted_at
		FROM reservations
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	return r.queryReservations(ctx, query)
}

func (r *ReservationRepositoryImpl) FindByEventID(ctx context.Context, eventID int) ([]*model.Reservation, error) {
	query := `
		SELECT id, reservation_uuid, event_id, ticket_type_id, quantity, total_amount, status, notes,
		       created_at, updated_at, deleted_at
		FROM reservations
		WHERE event_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	return r.queryReservations(ctx, query, eventID)
}

func (r *ReservationRepositoryImpl) queryReservations(ctx context.Context, query string, args ...interface{}) ([]*model.Reservation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*model.Reservation

	for rows.Next() {
		var reservation model.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.ReservationID,
			&reservation.EventID,
			&reservation.TicketTypeID,
			&reservation.Quantity,
			&reservation.TotalAmount,
			&reservation.Status,
			&reservation.Notes,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
			&reservation.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Reservation, error) {
	query := `
		SELECT id, reservation_uuid, event_id, ticket_type_id, quantity, total_amount, status, notes,
		       created_at, updated_at, deleted_at
		FROM reservations
		WHERE id = $1 AND deleted_at IS NULL
	`

	var reservation model.Reservation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.ReservationID,
		&reservation.EventID,
		&reservation.TicketTypeID,
		&reservation.Quantity,
		&reservation.TotalAmount,
		&reservation.Status,
		&reservation.Notes,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
		&reservation.DeletedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	seats, err := r.SeatsByReservationID(ctx, id)
	if err != nil {
		return nil, err
	}
	reservation.Seats = seats

	return &reservation, nil
}

func (r *ReservationRepositoryImpl) SeatsByReservationID(ctx context.Context, id int) ([]model.ReservationSeat, error) {
	query := `
		SELECT id, reservation_id, zone_id, seat_row, seat_col, row_label, seat_number, price
		FROM reservation_seats
		WHERE reservation_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]model.ReservationSeat, 0)
	for rows.Next() {
		var seat model.ReservationSeat
		err := rows.Scan(
			&seat.ID,
			&seat.ReservationID,
			&seat.ZoneID,
			&seat.Row,
			&seat.Col,
			&seat.RowLabel,
			&seat.SeatNumber,
			&seat.Price,
		)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (r *ReservationRepositoryImpl) UpdateStatusWithLock(
	ctx context.Context,
	tx pgx.Tx,
	id int,
	status model.ReservationStatus,
) (*model.Reservation, error) {
	var current model.ReservationStatus
	err := tx.QueryRow(ctx, `
		SELECT status FROM reservations
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, id).Scan(&current)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	if !current.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidReservationStatus
	}

	query := `
		UPDATE reservations
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, reservation_uuid, event_id, ticket_type_id, quantity, total_amount, status, notes, created_at, updated_at
	`

	var reservation model.Reservation

	err = tx.QueryRow(ctx, query, status, time.Now().UTC(), id).Scan(
		&reservation.ID,
		&reservation.ReservationID,
		&reservation.EventID,
		&reservation.TicketTypeID,
		&reservation.Quantity,
		&reservation.TotalAmount,
		&reservation.Status,
		&reservation.Notes,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	return &reservation, nil
}

func (r *ReservationRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE reservations
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`
	now := time.Now().UTC()
	result, err := r.pool.Exec(ctx, query, now, now, id)
	if err != nil {
		return err
	}

	// check if reservation exists and not already deleted
	if result.RowsAffected() == 0 {
		return apperrors.ErrReservationNotFound
	}

	return nil
}
