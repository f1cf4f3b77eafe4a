package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// pgDietaPlantillaRepository implements repository.DietaPlantillaRepository.
type pgDietaPlantillaRepository struct {
	db *pgxpool.Pool
}

// NewPgDietaPlantillaRepository creates a new instance of pgDietaPlantillaRepository.
func NewPgDietaPlantillaRepository(db *pgxpool.Pool) repository.DietaPlantillaRepository {
	return &pgDietaPlantillaRepository{db: db}
}

// Create inserts the template with its meals and food lines in one
// transaction.
func (r *pgDietaPlantillaRepository) Create(ctx context.Context, plantilla *domain.DietaPlantilla) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO dieta_plantillas (coach_id, nombre, notas) VALUES ($1, $2, $3) RETURNING id`,
		plantilla.CoachID, plantilla.Nombre, plantilla.Notas).Scan(&id)
	if err != nil {
		return 0, err
	}

	for i := range plantilla.Comidas {
		c := &plantilla.Comidas[i]
		c.DietaPlantillaID = id
		err := tx.QueryRow(ctx,
			`INSERT INTO comida_plantillas (dieta_plantilla_id, nombre, orden, dia)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			c.DietaPlantillaID, c.Nombre, c.Orden, c.Dia).Scan(&c.ID)
		if err != nil {
			return 0, err
		}
		for j := range c.Alimentos {
			l := &c.Alimentos[j]
			l.ComidaPlantillaID = c.ID
			err := tx.QueryRow(ctx,
				`INSERT INTO comida_plantilla_alimentos (comida_plantilla_id, alimento_id, cantidad_gramos)
				 VALUES ($1, $2, $3) RETURNING id`,
				l.ComidaPlantillaID, l.AlimentoID, l.CantidadGramos).Scan(&l.ID)
			if err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	plantilla.ID = id
	return id, nil
}

func (r *pgDietaPlantillaRepository) loadComidas(ctx context.Context, plantillas map[int64]*domain.DietaPlantilla) error {
	ids := make([]int64, 0, len(plantillas))
	for id := range plantillas {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, dieta_plantilla_id, nombre, orden, dia FROM comida_plantillas
		 WHERE dieta_plantilla_id = ANY($1) ORDER BY dia, orden, id`, ids)
	if err != nil {
		return err
	}

	comidasByID := map[int64]*domain.ComidaPlantilla{}
	order := []int64{}
	for rows.Next() {
		var c domain.ComidaPlantilla
		if err := rows.Scan(&c.ID, &c.DietaPlantillaID, &c.Nombre, &c.Orden, &c.Dia); err != nil {
			rows.Close()
			return err
		}
		comidasByID[c.ID] = &c
		order = append(order, c.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	if len(order) > 0 {
		lineRows, err := r.db.Query(ctx,
			`SELECT cpa.id, cpa.comida_plantilla_id, cpa.alimento_id, cpa.cantidad_gramos,
				al.id, al.nombre, al.calorias_100g, al.proteinas_100g, al.carbohidratos_100g, al.grasas_100g
			 FROM comida_plantilla_alimentos cpa JOIN alimentos al ON al.id = cpa.alimento_id
			 WHERE cpa.comida_plantilla_id = ANY($1) ORDER BY cpa.id`, order)
		if err != nil {
			return err
		}
		defer lineRows.Close()

		for lineRows.Next() {
			var l domain.ComidaPlantillaAlimento
			var al domain.Alimento
			err := lineRows.Scan(&l.ID, &l.ComidaPlantillaID, &l.AlimentoID, &l.CantidadGramos,
				&al.ID, &al.Nombre, &al.Calorias100g, &al.Proteinas100g,
				&al.Carbohidratos100g, &al.Grasas100g)
			if err != nil {
				return err
			}
			l.Alimento = &al
			c := comidasByID[l.ComidaPlantillaID]
			c.Alimentos = append(c.Alimentos, l)
		}
		if err := lineRows.Err(); err != nil {
			return err
		}
	}

	for _, id := range order {
		c := comidasByID[id]
		p := plantillas[c.DietaPlantillaID]
		p.Comidas = append(p.Comidas, *c)
	}
	return nil
}

func (r *pgDietaPlantillaRepository) GetByCoachID(ctx context.Context, coachID int64) ([]domain.DietaPlantilla, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, coach_id, nombre, notas FROM dieta_plantillas
		 WHERE coach_id = $1 ORDER BY id DESC`, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plantillas := []domain.DietaPlantilla{}
	for rows.Next() {
		var p domain.DietaPlantilla
		if err := rows.Scan(&p.ID, &p.CoachID, &p.Nombre, &p.Notas); err != nil {
			return nil, err
		}
		plantillas = append(plantillas, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.DietaPlantilla, len(plantillas))
	for i := range plantillas {
		byID[plantillas[i].ID] = &plantillas[i]
	}
	if err := r.loadComidas(ctx, byID); err != nil {
		return nil, err
	}
	return plantillas, nil
}

func (r *pgDietaPlantillaRepository) GetByID(ctx context.Context, id, coachID int64) (*domain.DietaPlantilla, error) {
	var p domain.DietaPlantilla
	err := r.db.QueryRow(ctx,
		`SELECT id, coach_id, nombre, notas FROM dieta_plantillas
		 WHERE id = $1 AND coach_id = $2`,
		id, coachID).Scan(&p.ID, &p.CoachID, &p.Nombre, &p.Notas)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadComidas(ctx, map[int64]*domain.DietaPlantilla{p.ID: &p}); err != nil {
		return nil, err
	}
	return &p, nil
}
