package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// pgRutinaRepository implements repository.RutinaRepository on Postgres.
type pgRutinaRepository struct {
	db *pgxpool.Pool
}

// NewPgRutinaRepository creates a new instance of pgRutinaRepository.
func NewPgRutinaRepository(db *pgxpool.Pool) repository.RutinaRepository {
	return &pgRutinaRepository{db: db}
}

const rutinaColumns = `r.id, r.alumno_id, r.nombre, r.fecha_inicio, r.fecha_vencimiento,
	r.notas, r.entrenamientos_semana, r.activa, r.eliminado`

func scanRutina(row pgx.Row) (*domain.Rutina, error) {
	var r domain.Rutina
	err := row.Scan(&r.ID, &r.AlumnoID, &r.Nombre, &r.FechaInicio, &r.FechaVencimiento,
		&r.Notas, &r.EntrenamientosSemana, &r.Activa, &r.Eliminado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// retireActiveRutina soft-retires the student's currently active routine,
// if any, inside the caller's transaction.
func retireActiveRutina(ctx context.Context, tx pgx.Tx, alumnoID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE rutinas SET eliminado = TRUE, activa = FALSE
		 WHERE alumno_id = $1 AND activa AND NOT eliminado`, alumnoID)
	return err
}

func insertEjercicioTx(ctx context.Context, tx pgx.Tx, e *domain.Ejercicio) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`INSERT INTO ejercicios (rutina_id, ejercicio_base_id, dia, series, repeticiones, peso, descanso, notas)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		e.RutinaID, e.EjercicioBaseID, e.Dia, e.Series, e.Repeticiones, e.Peso, e.Descanso, e.Notas,
	).Scan(&id)
	return id, err
}

// Create inserts the routine, retiring the student's prior active routine
// and inserting any carried exercises, all in one transaction.
func (r *pgRutinaRepository) Create(ctx context.Context, rutina *domain.Rutina) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if rutina.AlumnoID != nil {
		if err := retireActiveRutina(ctx, tx, *rutina.AlumnoID); err != nil {
			return 0, err
		}
	}

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO rutinas (alumno_id, nombre, fecha_inicio, fecha_vencimiento, notas, entrenamientos_semana, activa, eliminado)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, FALSE) RETURNING id`,
		rutina.AlumnoID, rutina.Nombre, rutina.FechaInicio, rutina.FechaVencimiento,
		rutina.Notas, rutina.EntrenamientosSemana,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, repository.ErrDuplicateActive
		}
		return 0, err
	}

	for i := range rutina.Ejercicios {
		rutina.Ejercicios[i].RutinaID = id
		eid, err := insertEjercicioTx(ctx, tx, &rutina.Ejercicios[i])
		if err != nil {
			return 0, err
		}
		rutina.Ejercicios[i].ID = eid
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	rutina.ID = id
	rutina.Activa = true
	rutina.Eliminado = false
	return id, nil
}

// loadEjercicios attaches exercises (with their catalog entries) to the
// given routines, ordered by day then id.
func (r *pgRutinaRepository) loadEjercicios(ctx context.Context, rutinas map[int64]*domain.Rutina) error {
	ids := make([]int64, 0, len(rutinas))
	for id := range rutinas {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.rutina_id, e.ejercicio_base_id, e.dia, e.series, e.repeticiones,
			e.peso, e.descanso, COALESCE(e.notas, ''),
			b.id, b.nombre, b.categoria, b.creado_en
		 FROM ejercicios e JOIN ejercicios_base b ON b.id = e.ejercicio_base_id
		 WHERE e.rutina_id = ANY($1)
		 ORDER BY e.dia, e.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.Ejercicio
		var b domain.EjercicioBase
		err := rows.Scan(&e.ID, &e.RutinaID, &e.EjercicioBaseID, &e.Dia, &e.Series,
			&e.Repeticiones, &e.Peso, &e.Descanso, &e.Notas,
			&b.ID, &b.Nombre, &b.Categoria, &b.CreadoEn)
		if err != nil {
			return err
		}
		e.EjercicioBase = &b
		rutina := rutinas[e.RutinaID]
		rutina.Ejercicios = append(rutina.Ejercicios, e)
	}
	return rows.Err()
}

func (r *pgRutinaRepository) GetByAlumnoID(ctx context.Context, alumnoID int64) ([]domain.Rutina, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+rutinaColumns+` FROM rutinas r
		 WHERE r.alumno_id = $1 AND NOT r.eliminado
		 ORDER BY r.activa DESC, r.id DESC`, alumnoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rutinas := []domain.Rutina{}
	for rows.Next() {
		rt, err := scanRutina(rows)
		if err != nil {
			return nil, err
		}
		rutinas = append(rutinas, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Rutina, len(rutinas))
	for i := range rutinas {
		byID[rutinas[i].ID] = &rutinas[i]
	}
	if err := r.loadEjercicios(ctx, byID); err != nil {
		return nil, err
	}
	return rutinas, nil
}

func (r *pgRutinaRepository) GetByID(ctx context.Context, id, coachID int64) (*domain.Rutina, error) {
	rutina, err := scanRutina(r.db.QueryRow(ctx,
		`SELECT `+rutinaColumns+` FROM rutinas r
		 JOIN alumnos a ON a.id = r.alumno_id
		 WHERE r.id = $1 AND a.coach_id = $2 AND NOT r.eliminado`,
		id, coachID))
	if err != nil {
		return nil, err
	}
	if err := r.loadEjercicios(ctx, map[int64]*domain.Rutina{rutina.ID: rutina}); err != nil {
		return nil, err
	}
	return rutina, nil
}

func (r *pgRutinaRepository) Update(ctx context.Context, rutina *domain.Rutina) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE rutinas SET nombre = $1, fecha_inicio = $2, fecha_vencimiento = $3,
			notas = $4, entrenamientos_semana = $5, activa = $6
		 WHERE id = $7 AND NOT eliminado`,
		rutina.Nombre, rutina.FechaInicio, rutina.FechaVencimiento, rutina.Notas,
		rutina.EntrenamientosSemana, rutina.Activa, rutina.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgRutinaRepository) SoftDelete(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE rutinas r SET eliminado = TRUE, activa = FALSE
		 FROM alumnos a
		 WHERE a.id = r.alumno_id AND r.id = $1 AND a.coach_id = $2 AND NOT r.eliminado`,
		id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgRutinaRepository) CountActivasByCoachID(ctx context.Context, coachID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM rutinas r JOIN alumnos a ON a.id = r.alumno_id
		 WHERE a.coach_id = $1 AND r.activa AND NOT r.eliminado`, coachID).Scan(&count)
	return count, err
}

func (r *pgRutinaRepository) AddEjercicio(ctx context.Context, ejercicio *domain.Ejercicio) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO ejercicios (rutina_id, ejercicio_base_id, dia, series, repeticiones, peso, descanso, notas)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		ejercicio.RutinaID, ejercicio.EjercicioBaseID, ejercicio.Dia, ejercicio.Series,
		ejercicio.Repeticiones, ejercicio.Peso, ejercicio.Descanso, ejercicio.Notas,
	).Scan(&id)
	return id, err
}

func (r *pgRutinaRepository) GetEjercicioByID(ctx context.Context, id, coachID int64) (*domain.Ejercicio, error) {
	var e domain.Ejercicio
	err := r.db.QueryRow(ctx,
		`SELECT e.id, e.rutina_id, e.ejercicio_base_id, e.dia, e.series, e.repeticiones,
			e.peso, e.descanso, COALESCE(e.notas, '')
		 FROM ejercicios e
		 JOIN rutinas r ON r.id = e.rutina_id
		 JOIN alumnos a ON a.id = r.alumno_id
		 WHERE e.id = $1 AND a.coach_id = $2`,
		id, coachID).Scan(&e.ID, &e.RutinaID, &e.EjercicioBaseID, &e.Dia, &e.Series,
		&e.Repeticiones, &e.Peso, &e.Descanso, &e.Notas)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *pgRutinaRepository) UpdateEjercicio(ctx context.Context, ejercicio *domain.Ejercicio) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE ejercicios SET dia = $1, series = $2, repeticiones = $3, peso = $4,
			descanso = $5, notas = $6
		 WHERE id = $7`,
		ejercicio.Dia, ejercicio.Series, ejercicio.Repeticiones, ejercicio.Peso,
		ejercicio.Descanso, ejercicio.Notas, ejercicio.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgRutinaRepository) DeleteEjercicio(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM ejercicios e USING rutinas r, alumnos a
		 WHERE r.id = e.rutina_id AND a.id = r.alumno_id
		   AND e.id = $1 AND a.coach_id = $2`, id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CopyDay overwrites the target day with clones of the source day's
// exercises. Delete and clone commit as one unit.
func (r *pgRutinaRepository) CopyDay(ctx context.Context, rutinaID int64, sourceDay, targetDay int) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var sourceCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM ejercicios WHERE rutina_id = $1 AND dia = $2`,
		rutinaID, sourceDay).Scan(&sourceCount)
	if err != nil {
		return 0, err
	}
	if sourceCount == 0 {
		return 0, repository.ErrEmptySourceDay
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM ejercicios WHERE rutina_id = $1 AND dia = $2`,
		rutinaID, targetDay); err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO ejercicios (rutina_id, ejercicio_base_id, dia, series, repeticiones, peso, descanso, notas)
		 SELECT rutina_id, ejercicio_base_id, $3, series, repeticiones, peso, descanso, notas
		 FROM ejercicios WHERE rutina_id = $1 AND dia = $2`,
		rutinaID, sourceDay, targetDay)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
