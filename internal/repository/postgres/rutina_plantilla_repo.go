package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// pgRutinaPlantillaRepository implements repository.RutinaPlantillaRepository.
type pgRutinaPlantillaRepository struct {
	db *pgxpool.Pool
}

// NewPgRutinaPlantillaRepository creates a new instance of pgRutinaPlantillaRepository.
func NewPgRutinaPlantillaRepository(db *pgxpool.Pool) repository.RutinaPlantillaRepository {
	return &pgRutinaPlantillaRepository{db: db}
}

// Create inserts the template and its exercises in one transaction.
func (r *pgRutinaPlantillaRepository) Create(ctx context.Context, plantilla *domain.RutinaPlantilla) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO rutina_plantillas (coach_id, nombre, notas, entrenamientos_semana)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		plantilla.CoachID, plantilla.Nombre, plantilla.Notas, plantilla.EntrenamientosSemana,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	for i := range plantilla.Ejercicios {
		e := &plantilla.Ejercicios[i]
		e.RutinaPlantillaID = id
		err := tx.QueryRow(ctx,
			`INSERT INTO ejercicio_plantillas (rutina_plantilla_id, ejercicio_base_id, dia, series, repeticiones, peso, descanso, notas)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
			e.RutinaPlantillaID, e.EjercicioBaseID, e.Dia, e.Series, e.Repeticiones,
			e.Peso, e.Descanso, e.Notas,
		).Scan(&e.ID)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	plantilla.ID = id
	return id, nil
}

func (r *pgRutinaPlantillaRepository) loadEjercicios(ctx context.Context, plantillas map[int64]*domain.RutinaPlantilla) error {
	ids := make([]int64, 0, len(plantillas))
	for id := range plantillas {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.rutina_plantilla_id, e.ejercicio_base_id, e.dia, e.series,
			e.repeticiones, e.peso, e.descanso, COALESCE(e.notas, ''),
			b.id, b.nombre, b.categoria, b.creado_en
		 FROM ejercicio_plantillas e JOIN ejercicios_base b ON b.id = e.ejercicio_base_id
		 WHERE e.rutina_plantilla_id = ANY($1)
		 ORDER BY e.dia, e.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.EjercicioPlantilla
		var b domain.EjercicioBase
		err := rows.Scan(&e.ID, &e.RutinaPlantillaID, &e.EjercicioBaseID, &e.Dia,
			&e.Series, &e.Repeticiones, &e.Peso, &e.Descanso, &e.Notas,
			&b.ID, &b.Nombre, &b.Categoria, &b.CreadoEn)
		if err != nil {
			return err
		}
		e.EjercicioBase = &b
		p := plantillas[e.RutinaPlantillaID]
		p.Ejercicios = append(p.Ejercicios, e)
	}
	return rows.Err()
}

func (r *pgRutinaPlantillaRepository) GetByCoachID(ctx context.Context, coachID int64) ([]domain.RutinaPlantilla, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, coach_id, nombre, notas, entrenamientos_semana
		 FROM rutina_plantillas WHERE coach_id = $1 ORDER BY id DESC`, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plantillas := []domain.RutinaPlantilla{}
	for rows.Next() {
		var p domain.RutinaPlantilla
		if err := rows.Scan(&p.ID, &p.CoachID, &p.Nombre, &p.Notas, &p.EntrenamientosSemana); err != nil {
			return nil, err
		}
		plantillas = append(plantillas, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.RutinaPlantilla, len(plantillas))
	for i := range plantillas {
		byID[plantillas[i].ID] = &plantillas[i]
	}
	if err := r.loadEjercicios(ctx, byID); err != nil {
		return nil, err
	}
	return plantillas, nil
}

func (r *pgRutinaPlantillaRepository) GetByID(ctx context.Context, id, coachID int64) (*domain.RutinaPlantilla, error) {
	var p domain.RutinaPlantilla
	err := r.db.QueryRow(ctx,
		`SELECT id, coach_id, nombre, notas, entrenamientos_semana
		 FROM rutina_plantillas WHERE id = $1 AND coach_id = $2`,
		id, coachID).Scan(&p.ID, &p.CoachID, &p.Nombre, &p.Notas, &p.EntrenamientosSemana)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadEjercicios(ctx, map[int64]*domain.RutinaPlantilla{p.ID: &p}); err != nil {
		return nil, err
	}
	return &p, nil
}
