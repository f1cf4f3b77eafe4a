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

// pgCatalogRepository implements repository.CatalogRepository on Postgres.
type pgCatalogRepository struct {
	db *pgxpool.Pool
}

// NewPgCatalogRepository creates a new instance of pgCatalogRepository.
func NewPgCatalogRepository(db *pgxpool.Pool) repository.CatalogRepository {
	return &pgCatalogRepository{db: db}
}

func (r *pgCatalogRepository) collectEjercicios(rows pgx.Rows) ([]domain.EjercicioBase, error) {
	defer rows.Close()
	ejercicios := []domain.EjercicioBase{}
	for rows.Next() {
		var e domain.EjercicioBase
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Categoria, &e.CreadoEn); err != nil {
			return nil, err
		}
		ejercicios = append(ejercicios, e)
	}
	return ejercicios, rows.Err()
}

func (r *pgCatalogRepository) ListEjerciciosBase(ctx context.Context) ([]domain.EjercicioBase, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, nombre, categoria, creado_en FROM ejercicios_base ORDER BY categoria, nombre`)
	if err != nil {
		return nil, err
	}
	return r.collectEjercicios(rows)
}

func (r *pgCatalogRepository) SearchEjerciciosBase(ctx context.Context, query string, limit int) ([]domain.EjercicioBase, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, nombre, categoria, creado_en FROM ejercicios_base
		 WHERE nombre ILIKE '%' || $1 || '%' ORDER BY nombre LIMIT $2`, query, limit)
	if err != nil {
		return nil, err
	}
	return r.collectEjercicios(rows)
}

func (r *pgCatalogRepository) GetOrCreateEjercicioBase(ctx context.Context, ejercicio *domain.EjercicioBase) (*domain.EjercicioBase, error) {
	var existing domain.EjercicioBase
	err := r.db.QueryRow(ctx,
		`SELECT id, nombre, categoria, creado_en FROM ejercicios_base WHERE nombre ILIKE $1`,
		ejercicio.Nombre).Scan(&existing.ID, &existing.Nombre, &existing.Categoria, &existing.CreadoEn)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	ejercicio.CreadoEn = time.Now().UTC()
	err = r.db.QueryRow(ctx,
		`INSERT INTO ejercicios_base (nombre, categoria, creado_en) VALUES ($1, $2, $3) RETURNING id`,
		ejercicio.Nombre, ejercicio.Categoria, ejercicio.CreadoEn).Scan(&ejercicio.ID)
	if err != nil {
		return nil, err
	}
	return ejercicio, nil
}

func (r *pgCatalogRepository) collectAlimentos(rows pgx.Rows) ([]domain.Alimento, error) {
	defer rows.Close()
	alimentos := []domain.Alimento{}
	for rows.Next() {
		var a domain.Alimento
		err := rows.Scan(&a.ID, &a.Nombre, &a.Calorias100g, &a.Proteinas100g,
			&a.Carbohidratos100g, &a.Grasas100g)
		if err != nil {
			return nil, err
		}
		alimentos = append(alimentos, a)
	}
	return alimentos, rows.Err()
}

func (r *pgCatalogRepository) ListAlimentos(ctx context.Context) ([]domain.Alimento, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, nombre, calorias_100g, proteinas_100g, carbohidratos_100g, grasas_100g
		 FROM alimentos ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	return r.collectAlimentos(rows)
}

func (r *pgCatalogRepository) SearchAlimentos(ctx context.Context, query string, limit int) ([]domain.Alimento, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, nombre, calorias_100g, proteinas_100g, carbohidratos_100g, grasas_100g
		 FROM alimentos WHERE nombre ILIKE '%' || $1 || '%' ORDER BY nombre LIMIT $2`,
		query, limit)
	if err != nil {
		return nil, err
	}
	return r.collectAlimentos(rows)
}

func (r *pgCatalogRepository) GetOrCreateAlimento(ctx context.Context, alimento *domain.Alimento) (*domain.Alimento, error) {
	var existing domain.Alimento
	err := r.db.QueryRow(ctx,
		`SELECT id, nombre, calorias_100g, proteinas_100g, carbohidratos_100g, grasas_100g
		 FROM alimentos WHERE nombre ILIKE $1`,
		alimento.Nombre).Scan(&existing.ID, &existing.Nombre, &existing.Calorias100g,
		&existing.Proteinas100g, &existing.Carbohidratos100g, &existing.Grasas100g)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO alimentos (nombre, calorias_100g, proteinas_100g, carbohidratos_100g, grasas_100g)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		alimento.Nombre, alimento.Calorias100g, alimento.Proteinas100g,
		alimento.Carbohidratos100g, alimento.Grasas100g).Scan(&alimento.ID)
	if err != nil {
		return nil, err
	}
	return alimento, nil
}
