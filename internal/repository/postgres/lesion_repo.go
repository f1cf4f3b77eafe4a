package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// pgLesionRepository implements repository.LesionRepository on Postgres.
type pgLesionRepository struct {
	db *pgxpool.Pool
}

// NewPgLesionRepository creates a new instance of pgLesionRepository.
func NewPgLesionRepository(db *pgxpool.Pool) repository.LesionRepository {
	return &pgLesionRepository{db: db}
}

func (r *pgLesionRepository) Create(ctx context.Context, lesion *domain.Lesion) (int64, error) {
	lesion.CreadaEn = time.Now().UTC()
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO lesiones (alumno_id, nombre, descripcion, es_cronica, fecha_inicio, fecha_fin, activa, creada_en)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7) RETURNING id`,
		lesion.AlumnoID, lesion.Nombre, lesion.Descripcion, lesion.EsCronica,
		lesion.FechaInicio, lesion.FechaFin, lesion.CreadaEn,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	lesion.Activa = true
	return id, nil
}

func (r *pgLesionRepository) GetByAlumnoID(ctx context.Context, alumnoID int64) ([]domain.Lesion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, alumno_id, nombre, descripcion, es_cronica, fecha_inicio, fecha_fin, activa, creada_en
		 FROM lesiones WHERE alumno_id = $1 ORDER BY id`, alumnoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lesiones := []domain.Lesion{}
	for rows.Next() {
		var l domain.Lesion
		err := rows.Scan(&l.ID, &l.AlumnoID, &l.Nombre, &l.Descripcion, &l.EsCronica,
			&l.FechaInicio, &l.FechaFin, &l.Activa, &l.CreadaEn)
		if err != nil {
			return nil, err
		}
		lesiones = append(lesiones, l)
	}
	return lesiones, rows.Err()
}

func (r *pgLesionRepository) GetByID(ctx context.Context, id, coachID int64) (*domain.Lesion, error) {
	var l domain.Lesion
	err := r.db.QueryRow(ctx,
		`SELECT l.id, l.alumno_id, l.nombre, l.descripcion, l.es_cronica, l.fecha_inicio,
			l.fecha_fin, l.activa, l.creada_en
		 FROM lesiones l JOIN alumnos a ON a.id = l.alumno_id
		 WHERE l.id = $1 AND a.coach_id = $2`,
		id, coachID).Scan(&l.ID, &l.AlumnoID, &l.Nombre, &l.Descripcion, &l.EsCronica,
		&l.FechaInicio, &l.FechaFin, &l.Activa, &l.CreadaEn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *pgLesionRepository) Update(ctx context.Context, lesion *domain.Lesion) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE lesiones SET nombre = $1, descripcion = $2, es_cronica = $3,
			fecha_inicio = $4, fecha_fin = $5, activa = $6
		 WHERE id = $7`,
		lesion.Nombre, lesion.Descripcion, lesion.EsCronica, lesion.FechaInicio,
		lesion.FechaFin, lesion.Activa, lesion.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgLesionRepository) Delete(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM lesiones l USING alumnos a
		 WHERE l.alumno_id = a.id AND l.id = $1 AND a.coach_id = $2`, id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
