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

const alumnoColumns = `id, coach_id, nombre, email, fecha_nacimiento, altura, objetivo,
	fecha_cobro, notificaciones_activas, ultima_notificacion, creado_en`

// pgAlumnoRepository implements repository.AlumnoRepository on Postgres.
type pgAlumnoRepository struct {
	db *pgxpool.Pool
}

// NewPgAlumnoRepository creates a new instance of pgAlumnoRepository.
func NewPgAlumnoRepository(db *pgxpool.Pool) repository.AlumnoRepository {
	return &pgAlumnoRepository{db: db}
}

func scanAlumno(row pgx.Row) (*domain.Alumno, error) {
	var a domain.Alumno
	err := row.Scan(&a.ID, &a.CoachID, &a.Nombre, &a.Email, &a.FechaNacimiento,
		&a.Altura, &a.Objetivo, &a.FechaCobro, &a.NotificacionesActivas,
		&a.UltimaNotificacion, &a.CreadoEn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *pgAlumnoRepository) collectAlumnos(rows pgx.Rows) ([]domain.Alumno, error) {
	defer rows.Close()
	alumnos := []domain.Alumno{}
	for rows.Next() {
		a, err := scanAlumno(rows)
		if err != nil {
			return nil, err
		}
		alumnos = append(alumnos, *a)
	}
	return alumnos, rows.Err()
}

func (r *pgAlumnoRepository) Create(ctx context.Context, alumno *domain.Alumno) (int64, error) {
	alumno.CreadoEn = time.Now().UTC()

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO alumnos (coach_id, nombre, email, fecha_nacimiento, altura, objetivo,
			fecha_cobro, notificaciones_activas, creado_en)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8) RETURNING id`,
		alumno.CoachID, alumno.Nombre, alumno.Email, alumno.FechaNacimiento,
		alumno.Altura, alumno.Objetivo, alumno.FechaCobro, alumno.CreadoEn,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	alumno.NotificacionesActivas = true
	return id, nil
}

func (r *pgAlumnoRepository) GetByCoachID(ctx context.Context, coachID int64) ([]domain.Alumno, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+alumnoColumns+` FROM alumnos WHERE coach_id = $1 ORDER BY id`, coachID)
	if err != nil {
		return nil, err
	}
	return r.collectAlumnos(rows)
}

func (r *pgAlumnoRepository) GetByID(ctx context.Context, id, coachID int64) (*domain.Alumno, error) {
	return scanAlumno(r.db.QueryRow(ctx,
		`SELECT `+alumnoColumns+` FROM alumnos WHERE id = $1 AND coach_id = $2`,
		id, coachID))
}

func (r *pgAlumnoRepository) GetOwnedByIDs(ctx context.Context, ids []int64, coachID int64) ([]domain.Alumno, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+alumnoColumns+` FROM alumnos WHERE id = ANY($1) AND coach_id = $2 ORDER BY id`,
		ids, coachID)
	if err != nil {
		return nil, err
	}
	return r.collectAlumnos(rows)
}

func (r *pgAlumnoRepository) Update(ctx context.Context, alumno *domain.Alumno) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE alumnos SET nombre = $1, email = $2, fecha_nacimiento = $3, altura = $4,
			objetivo = $5, fecha_cobro = $6, notificaciones_activas = $7
		 WHERE id = $8 AND coach_id = $9`,
		alumno.Nombre, alumno.Email, alumno.FechaNacimiento, alumno.Altura,
		alumno.Objetivo, alumno.FechaCobro, alumno.NotificacionesActivas,
		alumno.ID, alumno.CoachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgAlumnoRepository) Delete(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM alumnos WHERE id = $1 AND coach_id = $2`, id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgAlumnoRepository) CountByCoachID(ctx context.Context, coachID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM alumnos WHERE coach_id = $1`, coachID).Scan(&count)
	return count, err
}

func (r *pgAlumnoRepository) Recent(ctx context.Context, coachID int64, limit int) ([]domain.Alumno, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+alumnoColumns+` FROM alumnos WHERE coach_id = $1
		 ORDER BY creado_en DESC LIMIT $2`, coachID, limit)
	if err != nil {
		return nil, err
	}
	return r.collectAlumnos(rows)
}

func (r *pgAlumnoRepository) AddPeso(ctx context.Context, peso *domain.PesoAlumno) (int64, error) {
	if peso.Fecha.IsZero() {
		peso.Fecha = time.Now().UTC()
	}
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO pesos_alumno (alumno_id, peso, fecha) VALUES ($1, $2, $3) RETURNING id`,
		peso.AlumnoID, peso.Peso, peso.Fecha).Scan(&id)
	return id, err
}

func (r *pgAlumnoRepository) GetPesos(ctx context.Context, alumnoID int64) ([]domain.PesoAlumno, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, alumno_id, peso, fecha FROM pesos_alumno WHERE alumno_id = $1 ORDER BY fecha`,
		alumnoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pesos := []domain.PesoAlumno{}
	for rows.Next() {
		var p domain.PesoAlumno
		if err := rows.Scan(&p.ID, &p.AlumnoID, &p.Peso, &p.Fecha); err != nil {
			return nil, err
		}
		pesos = append(pesos, p)
	}
	return pesos, rows.Err()
}

func (r *pgAlumnoRepository) GetPesoByID(ctx context.Context, id, coachID int64) (*domain.PesoAlumno, error) {
	var p domain.PesoAlumno
	err := r.db.QueryRow(ctx,
		`SELECT p.id, p.alumno_id, p.peso, p.fecha
		 FROM pesos_alumno p JOIN alumnos a ON a.id = p.alumno_id
		 WHERE p.id = $1 AND a.coach_id = $2`,
		id, coachID).Scan(&p.ID, &p.AlumnoID, &p.Peso, &p.Fecha)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *pgAlumnoRepository) UpdatePeso(ctx context.Context, peso *domain.PesoAlumno) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE pesos_alumno SET peso = $1, fecha = $2 WHERE id = $3`,
		peso.Peso, peso.Fecha, peso.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgAlumnoRepository) DeletePeso(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM pesos_alumno p USING alumnos a
		 WHERE p.alumno_id = a.id AND p.id = $1 AND a.coach_id = $2`, id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgAlumnoRepository) ListDueForReminder(ctx context.Context, now, cutoff time.Time) ([]repository.ReminderTarget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.coach_id, a.nombre, a.email, a.fecha_nacimiento, a.altura, a.objetivo,
			a.fecha_cobro, a.notificaciones_activas, a.ultima_notificacion, a.creado_en,
			c.nombre
		 FROM alumnos a JOIN coaches c ON c.id = a.coach_id
		 WHERE a.fecha_cobro IS NOT NULL
		   AND a.fecha_cobro <= $1
		   AND a.notificaciones_activas
		   AND (a.ultima_notificacion IS NULL OR a.ultima_notificacion <= $2)
		 ORDER BY a.id`,
		now, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := []repository.ReminderTarget{}
	for rows.Next() {
		var t repository.ReminderTarget
		a := &t.Alumno
		err := rows.Scan(&a.ID, &a.CoachID, &a.Nombre, &a.Email, &a.FechaNacimiento,
			&a.Altura, &a.Objetivo, &a.FechaCobro, &a.NotificacionesActivas,
			&a.UltimaNotificacion, &a.CreadoEn, &t.CoachNombre)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func (r *pgAlumnoRepository) StampNotified(ctx context.Context, alumnoIDs []int64, now time.Time) error {
	if len(alumnoIDs) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE alumnos SET ultima_notificacion = $1 WHERE id = ANY($2)`,
		now, alumnoIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
