package repository

import (
	"context"
	"fmt"
	"go-gin-seat-reservation/internal/model"
	apperrors "go-gin-seat-reservation/pkg/app_errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UpdateOrganizerParams struct {
	Name *string
}

type OrganizerRepository interface {
	Create(ctx context.Context, organizer *model.Organizer) (*model.Organizer, error)
	List(ctx context.Context) ([]*model.Organizer, error)
	FindByID(ctx context.Context, id int) (*model.Organizer, error)
	FindByEmail(ctx context.Context, email string) (*model.Organizer, error)
	Update(ctx context.Context, id int, params UpdateOrganizerParams) (*model.Organizer, error)
	Delete(ctx context.Context, id int) error
}

type OrganizerRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewOrganizerRepository(pool *pgxpool.Pool) OrganizerRepository {
	return &OrganizerRepositoryImpl{
		pool: pool,
	}
}

func (r *OrganizerRepositoryImpl) Create(ctx context.Context, organizer *model.Organizer) (*model.Organizer, error) {
	query := `
		INSERT INTO organizers (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		organizer.Name, organizer.Email,
	).Scan(
		&organizer.ID,
		&organizer.Name,
		&organizer.Email,
		&organizer.CreatedAt,
		&organizer.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return organizer, nil
}

func (r *OrganizerRepositoryImpl) List(ctx context.Context) ([]*model.Organizer, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM organizers
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	organizers := make([]*model.Organizer, 0)
	for rows.Next() {
		var organizer model.Organizer
		err := rows.Scan(
			&organizer.ID,
			&organizer.Name,
			&organizer.Email,
			&organizer.CreatedAt,
			&organizer.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		organizers = append(organizers, &organizer)
	}

	return organizers, nil
}

func (r *OrganizerRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Organizer, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM organizers
		WHERE id = $1 AND deleted_at IS NULL
	`

	var organizer model.Organizer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&organizer.ID,
		&organizer.Name,
		&organizer.Email,
		&organizer.CreatedAt,
		&organizer.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrganizerNotFound
		}
		return nil, err
	}
	return &organizer, nil
}

func (r *OrganizerRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.Organizer, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM organizers
		WHERE email = $1 AND deleted_at IS NULL
	`

	var organizer model.Organizer
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&organizer.ID,
		&organizer.Name,
		&organizer.Email,
		&organizer.CreatedAt,
		&organizer.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrganizerNotFound
		}
		return nil, err
	}
	return &organizer, nil
}

func (r *OrganizerRepositoryImpl) Update(ctx context.Context, id int, params UpdateOrganizerParams) (*model.Organizer, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE organizers
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING id, name, email, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)

	var updated model.Organizer
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Email,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrganizerNotFound
		}
		return nil, err
	}

	return &updated, nil
}

func (r *OrganizerRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE organizers
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	now := time.Now().UTC()
	result, err := r.pool.Exec(ctx, query, now, now, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrOrganizerNotFound
	}

	return nil
}
