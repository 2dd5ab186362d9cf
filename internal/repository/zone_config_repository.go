package repository

import (
	"context"
	"fmt"
	"time"

	"go-gin-seat-reservation/internal/model"
	apperrors "go-gin-seat-reservation/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ZoneConfigRepository interface {
	FindByEventID(ctx context.Context, eventID int) (*model.ZoneConfig, error)
	Create(ctx context.Context, eventID int, payload *model.NormalizedZoneConfig) (*model.ZoneConfig, error)
	Replace(ctx context.Context, eventID int, payload *model.NormalizedZoneConfig) (*model.ZoneConfig, error)
	// OccupiedSeats 從未取消的訂位彙整每個分區的已售座位
	OccupiedSeats(ctx context.Context, eventID int) (map[string][]model.SeatCoord, error)
}

type ZoneConfigRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewZoneConfigRepository(pool *pgxpool.Pool) ZoneConfigRepository {
	return &ZoneConfigRepositoryImpl{
		pool: pool,
	}
}

func (r *ZoneConfigRepositoryImpl) FindByEventID(ctx context.Context, eventID int) (*model.ZoneConfig, error) {
	query := `
		SELECT id, event_id, global_rows, global_cols, min_per_order, max_per_order,
		       sales_start, sales_end, active, created_at, updated_at
		FROM zone_configs
		WHERE event_id = $1
	`

	var config model.ZoneConfig
	err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&config.ID,
		&config.EventID,
		&config.GlobalRows,
		&config.GlobalCols,
		&config.MinPerOrder,
		&config.MaxPerOrder,
		&config.SalesStart,
		&config.SalesEnd,
		&config.Active,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrZoneConfigNotFound
		}
		return nil, err
	}

	zones, err := r.listZones(ctx, config.ID)
	if err != nil {
		return nil, err
	}
	config.Zones = zones

	return &config, nil
}

func (r *ZoneConfigRepositoryImpl) listZones(ctx context.Context, configID int) ([]model.ZoneRecord, error) {
	query := `
		SELECT id, config_id, position, zone_id, name, code, price, rows, cols, ticket_type_id
		FROM zone_config_zones
		WHERE config_id = $1
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, configID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	zones := make([]model.ZoneRecord, 0)
	for rows.Next() {
		var zone model.ZoneRecord
		err := rows.Scan(
			&zone.ID,
			&zone.ConfigID,
			&zone.Position,
			&zone.ZoneID,
			&zone.Name,
			&zone.Code,
			&zone.Price,
			&zone.Rows,
			&zone.Cols,
			&zone.TicketTypeID,
		)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return zones, nil
}

func (r *ZoneConfigRepositoryImpl) Create(ctx context.Context, eventID int, payload *model.NormalizedZoneConfig) (*model.ZoneConfig, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO zone_configs (
			event_id, global_rows, global_cols, min_per_order, max_per_order,
			sales_start, sales_end, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, event_id, global_rows, global_cols, min_per_order, max_per_order,
		          sales_start, sales_end, active, created_at, updated_at
	`

	var config model.ZoneConfig
	err = tx.QueryRow(ctx, query,
		eventID, payload.GlobalRows, payload.GlobalCols,
		payload.MinPerOrder, payload.MaxPerOrder,
		payload.SalesStart, payload.SalesEnd, payload.Active,
	).Scan(
		&config.ID,
		&config.EventID,
		&config.GlobalRows,
		&config.GlobalCols,
		&config.MinPerOrder,
		&config.MaxPerOrder,
		&config.SalesStart,
		&config.SalesEnd,
		&config.Active,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zone config: %w", err)
	}

	zones, err := r.insertZones(ctx, tx, config.ID, payload.Zones)
	if err != nil {
		return nil, err
	}
	config.Zones = zones

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &config, nil
}

func (r *ZoneConfigRepositoryImpl) Replace(ctx context.Context, eventID int, payload *model.NormalizedZoneConfig) (*model.ZoneConfig, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE zone_configs
		SET global_rows = $1, global_cols = $2, min_per_order = $3, max_per_order = $4,
		    sales_start = $5, sales_end = $6, active = $7, updated_at = $8
		WHERE event_id = $9
		RETURNING id, event_id, global_rows, global_cols, min_per_order, max_per_order,
		          sales_start, sales_end, active, created_at, updated_at
	`

	var config model.ZoneConfig
	err = tx.QueryRow(ctx, query,
		payload.GlobalRows, payload.GlobalCols,
		payload.MinPerOrder, payload.MaxPerOrder,
		payload.SalesStart, payload.SalesEnd, payload.Active,
		time.Now().UTC(), eventID,
	).Scan(
		&config.ID,
		&config.EventID,
		&config.GlobalRows,
		&config.GlobalCols,
		&config.MinPerOrder,
		&config.MaxPerOrder,
		&config.SalesStart,
		&config.SalesEnd,
		&config.Active,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrZoneConfigNotFound
		}
		return nil, err
	}

	// 分區整批重建，沿用編輯順序
	_, err = tx.Exec(ctx, `DELETE FROM zone_config_zones WHERE config_id = $1`, config.ID)
	if err != nil {
		return nil, err
	}

	zones, err := r.insertZones(ctx, tx, config.ID, payload.Zones)
	if err != nil {
		return nil, err
	}
	config.Zones = zones

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &config, nil
}

func (r *ZoneConfigRepositoryImpl) insertZones(ctx context.Context, tx pgx.Tx, configID int, zones []model.NormalizedZone) ([]model.ZoneRecord, error) {
	query := `
		INSERT INTO zone_config_zones (
			config_id, position, zone_id, name, code, price, rows, cols, ticket_type_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, config_id, position, zone_id, name, code, price, rows, cols, ticket_type_id
	`

	records := make([]model.ZoneRecord, 0, len(zones))
	for i, zone := range zones {
		var record model.ZoneRecord
		err := tx.QueryRow(ctx, query,
			configID, i, zone.ID, zone.Name, zone.Code,
			zone.Price, zone.Rows, zone.Cols, zone.TicketTypeID,
		).Scan(
			&record.ID,
			&record.ConfigID,
			&record.Position,
			&record.ZoneID,
			&record.Name,
			&record.Code,
			&record.Price,
			&record.Rows,
			&record.Cols,
			&record.TicketTypeID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert zone: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *ZoneConfigRepositoryImpl) OccupiedSeats(ctx context.Context, eventID int) (map[string][]model.SeatCoord, error) {
	query := `
		SELECT s.zone_id, s.seat_row, s.seat_col
		FROM reservation_seats s
		JOIN reservations r ON r.id = s.reservation_id
		WHERE r.event_id = $1
		  AND r.status != $2
		  AND r.deleted_at IS NULL
		ORDER BY s.zone_id, s.seat_row, s.seat_col
	`

	rows, err := r.pool.Query(ctx, query, eventID, model.ReservationStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupied := make(map[string][]model.SeatCoord)
	for rows.Next() {
		var zoneID string
		var seat model.SeatCoord
		if err := rows.Scan(&zoneID, &seat.Row, &seat.Col); err != nil {
			return nil, err
		}
		occupied[zoneID] = append(occupied[zoneID], seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return occupied, nil
}
