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

// pgDietaRepository implements repository.DietaRepository on Postgres.
type pgDietaRepository struct {
	db *pgxpool.Pool
}

// NewPgDietaRepository creates a new instance of pgDietaRepository.
func NewPgDietaRepository(db *pgxpool.Pool) repository.DietaRepository {
	return &pgDietaRepository{db: db}
}

func scanDieta(row pgx.Row) (*domain.Dieta, error) {
	var d domain.Dieta
	err := row.Scan(&d.ID, &d.AlumnoID, &d.Nombre, &d.FechaInicio, &d.Notas, &d.Activa, &d.Eliminado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func insertComidaTx(ctx context.Context, tx pgx.Tx, c *domain.Comida) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO comidas (dieta_id, nombre, orden, dia) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.DietaID, c.Nombre, c.Orden, c.Dia).Scan(&c.ID)
	if err != nil {
		return err
	}
	for i := range c.Alimentos {
		l := &c.Alimentos[i]
		l.ComidaID = c.ID
		err := tx.QueryRow(ctx,
			`INSERT INTO comida_alimentos (comida_id, alimento_id, cantidad_gramos)
			 VALUES ($1, $2, $3) RETURNING id`,
			l.ComidaID, l.AlimentoID, l.CantidadGramos).Scan(&l.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// Create inserts the diet, retiring the student's prior active diet and
// inserting any carried meals with their food lines, all in one
// transaction.
func (r *pgDietaRepository) Create(ctx context.Context, dieta *domain.Dieta) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE dietas SET eliminado = TRUE, activa = FALSE
		 WHERE alumno_id = $1 AND activa AND NOT eliminado`, dieta.AlumnoID); err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO dietas (alumno_id, nombre, fecha_inicio, notas, activa, eliminado)
		 VALUES ($1, $2, $3, $4, TRUE, FALSE) RETURNING id`,
		dieta.AlumnoID, dieta.Nombre, dieta.FechaInicio, dieta.Notas,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, repository.ErrDuplicateActive
		}
		return 0, err
	}

	for i := range dieta.Comidas {
		dieta.Comidas[i].DietaID = id
		if err := insertComidaTx(ctx, tx, &dieta.Comidas[i]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	dieta.ID = id
	dieta.Activa = true
	dieta.Eliminado = false
	return id, nil
}

// loadComidas attaches meals and their food lines (with catalog foods) to
// the given diets, ordered by day then meal order.
func (r *pgDietaRepository) loadComidas(ctx context.Context, dietas map[int64]*domain.Dieta) error {
	ids := make([]int64, 0, len(dietas))
	for id := range dietas {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, dieta_id, nombre, orden, dia FROM comidas
		 WHERE dieta_id = ANY($1) ORDER BY dia, orden, id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	comidasByID := map[int64]*domain.Comida{}
	order := []int64{}
	for rows.Next() {
		var c domain.Comida
		if err := rows.Scan(&c.ID, &c.DietaID, &c.Nombre, &c.Orden, &c.Dia); err != nil {
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
			`SELECT ca.id, ca.comida_id, ca.alimento_id, ca.cantidad_gramos,
				al.id, al.nombre, al.calorias_100g, al.proteinas_100g, al.carbohidratos_100g, al.grasas_100g
			 FROM comida_alimentos ca JOIN alimentos al ON al.id = ca.alimento_id
			 WHERE ca.comida_id = ANY($1) ORDER BY ca.id`, order)
		if err != nil {
			return err
		}
		defer lineRows.Close()

		for lineRows.Next() {
			var l domain.ComidaAlimento
			var al domain.Alimento
			err := lineRows.Scan(&l.ID, &l.ComidaID, &l.AlimentoID, &l.CantidadGramos,
				&al.ID, &al.Nombre, &al.Calorias100g, &al.Proteinas100g,
				&al.Carbohidratos100g, &al.Grasas100g)
			if err != nil {
				return err
			}
			l.Alimento = &al
			c := comidasByID[l.ComidaID]
			c.Alimentos = append(c.Alimentos, l)
		}
		if err := lineRows.Err(); err != nil {
			return err
		}
	}

	for _, id := range order {
		c := comidasByID[id]
		d := dietas[c.DietaID]
		d.Comidas = append(d.Comidas, *c)
	}
	return nil
}

func (r *pgDietaRepository) GetByAlumnoID(ctx context.Context, alumnoID int64) ([]domain.Dieta, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, alumno_id, nombre, fecha_inicio, notas, activa, eliminado
		 FROM dietas WHERE alumno_id = $1 AND NOT eliminado
		 ORDER BY activa DESC, id DESC`, alumnoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dietas := []domain.Dieta{}
	for rows.Next() {
		d, err := scanDieta(rows)
		if err != nil {
			return nil, err
		}
		dietas = append(dietas, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Dieta, len(dietas))
	for i := range dietas {
		byID[dietas[i].ID] = &dietas[i]
	}
	if err := r.loadComidas(ctx, byID); err != nil {
		return nil, err
	}
	return dietas, nil
}

func (r *pgDietaRepository) GetByID(ctx context.Context, id, coachID int64) (*domain.Dieta, error) {
	dieta, err := scanDieta(r.db.QueryRow(ctx,
		`SELECT d.id, d.alumno_id, d.nombre, d.fecha_inicio, d.notas, d.activa, d.eliminado
		 FROM dietas d JOIN alumnos a ON a.id = d.alumno_id
		 WHERE d.id = $1 AND a.coach_id = $2 AND NOT d.eliminado`,
		id, coachID))
	if err != nil {
		return nil, err
	}
	if err := r.loadComidas(ctx, map[int64]*domain.Dieta{dieta.ID: dieta}); err != nil {
		return nil, err
	}
	return dieta, nil
}

func (r *pgDietaRepository) Update(ctx context.Context, dieta *domain.Dieta) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE dietas SET nombre = $1, fecha_inicio = $2, notas = $3, activa = $4
		 WHERE id = $5 AND NOT eliminado`,
		dieta.Nombre, dieta.FechaInicio, dieta.Notas, dieta.Activa, dieta.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgDietaRepository) SoftDelete(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE dietas d SET eliminado = TRUE, activa = FALSE
		 FROM alumnos a
		 WHERE a.id = d.alumno_id AND d.id = $1 AND a.coach_id = $2 AND NOT d.eliminado`,
		id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgDietaRepository) AddComida(ctx context.Context, comida *domain.Comida) (int64, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO comidas (dieta_id, nombre, orden, dia) VALUES ($1, $2, $3, $4) RETURNING id`,
		comida.DietaID, comida.Nombre, comida.Orden, comida.Dia).Scan(&comida.ID)
	return comida.ID, err
}

func (r *pgDietaRepository) GetComidaByID(ctx context.Context, id, coachID int64) (*domain.Comida, error) {
	var c domain.Comida
	err := r.db.QueryRow(ctx,
		`SELECT c.id, c.dieta_id, c.nombre, c.orden, c.dia
		 FROM comidas c
		 JOIN dietas d ON d.id = c.dieta_id
		 JOIN alumnos a ON a.id = d.alumno_id
		 WHERE c.id = $1 AND a.coach_id = $2`,
		id, coachID).Scan(&c.ID, &c.DietaID, &c.Nombre, &c.Orden, &c.Dia)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *pgDietaRepository) UpdateComida(ctx context.Context, comida *domain.Comida) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE comidas SET nombre = $1, orden = $2, dia = $3 WHERE id = $4`,
		comida.Nombre, comida.Orden, comida.Dia, comida.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgDietaRepository) DeleteComida(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM comidas c USING dietas d, alumnos a
		 WHERE d.id = c.dieta_id AND a.id = d.alumno_id
		   AND c.id = $1 AND a.coach_id = $2`, id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgDietaRepository) AddComidaAlimento(ctx context.Context, linea *domain.ComidaAlimento) (int64, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO comida_alimentos (comida_id, alimento_id, cantidad_gramos)
		 VALUES ($1, $2, $3) RETURNING id`,
		linea.ComidaID, linea.AlimentoID, linea.CantidadGramos).Scan(&linea.ID)
	return linea.ID, err
}

func (r *pgDietaRepository) DeleteComidaAlimento(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM comida_alimentos ca USING comidas c, dietas d, alumnos a
		 WHERE c.id = ca.comida_id AND d.id = c.dieta_id AND a.id = d.alumno_id
		   AND ca.id = $1 AND a.coach_id = $2`, id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CopyDay overwrites the target day's meals with clones of the source
// day's meals and their food lines. Delete and clone commit as one unit.
func (r *pgDietaRepository) CopyDay(ctx context.Context, dietaID int64, sourceDay, targetDay int) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id, nombre, orden FROM comidas
		 WHERE dieta_id = $1 AND dia = $2 ORDER BY orden, id`,
		dietaID, sourceDay)
	if err != nil {
		return 0, err
	}

	type sourceComida struct {
		id     int64
		nombre string
		orden  int
	}
	sources := []sourceComida{}
	for rows.Next() {
		var s sourceComida
		if err := rows.Scan(&s.id, &s.nombre, &s.orden); err != nil {
			rows.Close()
			return 0, err
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	rows.Close()

	if len(sources) == 0 {
		return 0, repository.ErrEmptySourceDay
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM comidas WHERE dieta_id = $1 AND dia = $2`,
		dietaID, targetDay); err != nil {
		return 0, err
	}

	for _, s := range sources {
		var newID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO comidas (dieta_id, nombre, orden, dia)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			dietaID, s.nombre, s.orden, targetDay).Scan(&newID)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO comida_alimentos (comida_id, alimento_id, cantidad_gramos)
			 SELECT $1, alimento_id, cantidad_gramos FROM comida_alimentos WHERE comida_id = $2`,
			newID, s.id); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(sources), nil
}
