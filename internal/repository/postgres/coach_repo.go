package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

const uniqueViolation = "23505"

// pgCoachRepository implements repository.CoachRepository on Postgres.
type pgCoachRepository struct {
	db *pgxpool.Pool
}

// NewPgCoachRepository creates a new instance of pgCoachRepository.
func NewPgCoachRepository(db *pgxpool.Pool) repository.CoachRepository {
	return &pgCoachRepository{db: db}
}

func (r *pgCoachRepository) Create(ctx context.Context, coach *domain.Coach) (int64, error) {
	if coach.Email == "" || coach.PasswordHash == "" {
		return 0, errors.New("coach email and password hash are required")
	}

	coach.CreadoEn = time.Now().UTC()

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO coaches (nombre, email, password_hash, creado_en)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		coach.Nombre, coach.Email, coach.PasswordHash, coach.CreadoEn,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, repository.ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

func (r *pgCoachRepository) GetByEmail(ctx context.Context, email string) (*domain.Coach, error) {
	return r.getOne(ctx,
		`SELECT id, nombre, email, password_hash, creado_en FROM coaches WHERE email = $1`,
		email)
}

func (r *pgCoachRepository) GetByID(ctx context.Context, id int64) (*domain.Coach, error) {
	return r.getOne(ctx,
		`SELECT id, nombre, email, password_hash, creado_en FROM coaches WHERE id = $1`,
		id)
}

func (r *pgCoachRepository) getOne(ctx context.Context, query string, arg any) (*domain.Coach, error) {
	var c domain.Coach
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&c.ID, &c.Nombre, &c.Email, &c.PasswordHash, &c.CreadoEn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
