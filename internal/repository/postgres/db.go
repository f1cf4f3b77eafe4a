package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Default connection timeout.
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a pgx connection pool using the provided URL and
// verifies it with a ping.
func ConnectDB(url string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// schemaStatements is applied in order at startup. Evolution is strictly
// additive: new tables, columns and indexes only, each guarded with
// IF NOT EXISTS so re-running is safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS coaches (
		id BIGSERIAL PRIMARY KEY,
		nombre VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		creado_en TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS alumnos (
		id BIGSERIAL PRIMARY KEY,
		coach_id BIGINT NOT NULL REFERENCES coaches(id),
		nombre VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL,
		fecha_nacimiento TIMESTAMPTZ NOT NULL,
		altura DOUBLE PRECISION NOT NULL,
		objetivo VARCHAR(255) NOT NULL DEFAULT '',
		fecha_cobro TIMESTAMPTZ,
		notificaciones_activas BOOLEAN NOT NULL DEFAULT TRUE,
		ultima_notificacion TIMESTAMPTZ,
		creado_en TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alumnos_coach_id ON alumnos (coach_id)`,
	`CREATE TABLE IF NOT EXISTS pesos_alumno (
		id BIGSERIAL PRIMARY KEY,
		alumno_id BIGINT NOT NULL REFERENCES alumnos(id) ON DELETE CASCADE,
		peso DOUBLE PRECISION NOT NULL,
		fecha TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pesos_alumno_alumno_id ON pesos_alumno (alumno_id)`,
	`CREATE TABLE IF NOT EXISTS rutinas (
		id BIGSERIAL PRIMARY KEY,
		alumno_id BIGINT REFERENCES alumnos(id) ON DELETE CASCADE,
		nombre VARCHAR(100) NOT NULL,
		fecha_inicio TIMESTAMPTZ,
		notas TEXT NOT NULL DEFAULT '',
		entrenamientos_semana INTEGER NOT NULL DEFAULT 3,
		activa BOOLEAN NOT NULL DEFAULT TRUE,
		eliminado BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`ALTER TABLE rutinas ADD COLUMN IF NOT EXISTS fecha_vencimiento TIMESTAMPTZ`,
	`CREATE INDEX IF NOT EXISTS idx_rutinas_alumno_id ON rutinas (alumno_id)`,
	// Second line of defense for the one-active-routine invariant; the
	// retire-then-insert transaction is the first.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_rutinas_activa_por_alumno
		ON rutinas (alumno_id) WHERE activa AND NOT eliminado`,
	`CREATE TABLE IF NOT EXISTS ejercicios_base (
		id BIGSERIAL PRIMARY KEY,
		nombre VARCHAR(100) NOT NULL UNIQUE,
		categoria VARCHAR(50) NOT NULL DEFAULT '',
		creado_en TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ejercicios (
		id BIGSERIAL PRIMARY KEY,
		rutina_id BIGINT NOT NULL REFERENCES rutinas(id) ON DELETE CASCADE,
		ejercicio_base_id BIGINT NOT NULL REFERENCES ejercicios_base(id),
		series INTEGER NOT NULL,
		repeticiones INTEGER NOT NULL,
		peso DOUBLE PRECISION,
		descanso INTEGER NOT NULL DEFAULT 60,
		notas TEXT
	)`,
	`ALTER TABLE ejercicios ADD COLUMN IF NOT EXISTS dia INTEGER NOT NULL DEFAULT 1`,
	`CREATE INDEX IF NOT EXISTS idx_ejercicios_rutina_id ON ejercicios (rutina_id)`,
	`CREATE INDEX IF NOT EXISTS idx_ejercicios_rutina_dia ON ejercicios (rutina_id, dia)`,
	`CREATE TABLE IF NOT EXISTS rutina_plantillas (
		id BIGSERIAL PRIMARY KEY,
		coach_id BIGINT NOT NULL REFERENCES coaches(id) ON DELETE CASCADE,
		nombre VARCHAR(100) NOT NULL,
		notas TEXT NOT NULL DEFAULT '',
		entrenamientos_semana INTEGER NOT NULL DEFAULT 3
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rutina_plantillas_coach_id ON rutina_plantillas (coach_id)`,
	`CREATE TABLE IF NOT EXISTS ejercicio_plantillas (
		id BIGSERIAL PRIMARY KEY,
		rutina_plantilla_id BIGINT NOT NULL REFERENCES rutina_plantillas(id) ON DELETE CASCADE,
		ejercicio_base_id BIGINT NOT NULL REFERENCES ejercicios_base(id),
		dia INTEGER NOT NULL DEFAULT 1,
		series INTEGER NOT NULL,
		repeticiones INTEGER NOT NULL,
		peso DOUBLE PRECISION,
		descanso INTEGER NOT NULL DEFAULT 60,
		notas TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ejercicio_plantillas_plantilla_id
		ON ejercicio_plantillas (rutina_plantilla_id)`,
	`CREATE TABLE IF NOT EXISTS dietas (
		id BIGSERIAL PRIMARY KEY,
		alumno_id BIGINT NOT NULL REFERENCES alumnos(id) ON DELETE CASCADE,
		nombre VARCHAR(100) NOT NULL,
		fecha_inicio TIMESTAMPTZ,
		notas TEXT NOT NULL DEFAULT '',
		activa BOOLEAN NOT NULL DEFAULT TRUE,
		eliminado BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dietas_alumno_id ON dietas (alumno_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_dietas_activa_por_alumno
		ON dietas (alumno_id) WHERE activa AND NOT eliminado`,
	`CREATE TABLE IF NOT EXISTS comidas (
		id BIGSERIAL PRIMARY KEY,
		dieta_id BIGINT NOT NULL REFERENCES dietas(id) ON DELETE CASCADE,
		nombre VARCHAR(100) NOT NULL,
		orden INTEGER NOT NULL DEFAULT 1
	)`,
	`ALTER TABLE comidas ADD COLUMN IF NOT EXISTS dia INTEGER NOT NULL DEFAULT 1`,
	`CREATE INDEX IF NOT EXISTS idx_comidas_dieta_id ON comidas (dieta_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comidas_dieta_dia ON comidas (dieta_id, dia)`,
	`CREATE TABLE IF NOT EXISTS alimentos (
		id BIGSERIAL PRIMARY KEY,
		nombre VARCHAR(100) NOT NULL,
		calorias_100g DOUBLE PRECISION NOT NULL,
		proteinas_100g DOUBLE PRECISION NOT NULL,
		carbohidratos_100g DOUBLE PRECISION NOT NULL,
		grasas_100g DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comida_alimentos (
		id BIGSERIAL PRIMARY KEY,
		comida_id BIGINT NOT NULL REFERENCES comidas(id) ON DELETE CASCADE,
		alimento_id BIGINT NOT NULL REFERENCES alimentos(id),
		cantidad_gramos DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comida_alimentos_comida_id ON comida_alimentos (comida_id)`,
	`CREATE TABLE IF NOT EXISTS dieta_plantillas (
		id BIGSERIAL PRIMARY KEY,
		coach_id BIGINT NOT NULL REFERENCES coaches(id) ON DELETE CASCADE,
		nombre VARCHAR(100) NOT NULL,
		notas TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dieta_plantillas_coach_id ON dieta_plantillas (coach_id)`,
	`CREATE TABLE IF NOT EXISTS comida_plantillas (
		id BIGSERIAL PRIMARY KEY,
		dieta_plantilla_id BIGINT NOT NULL REFERENCES dieta_plantillas(id) ON DELETE CASCADE,
		nombre VARCHAR(100) NOT NULL,
		orden INTEGER NOT NULL DEFAULT 1,
		dia INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS comida_plantilla_alimentos (
		id BIGSERIAL PRIMARY KEY,
		comida_plantilla_id BIGINT NOT NULL REFERENCES comida_plantillas(id) ON DELETE CASCADE,
		alimento_id BIGINT NOT NULL REFERENCES alimentos(id),
		cantidad_gramos DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS personal_records (
		id BIGSERIAL PRIMARY KEY,
		alumno_id BIGINT NOT NULL REFERENCES alumnos(id) ON DELETE CASCADE,
		ejercicio VARCHAR(50) NOT NULL,
		peso DOUBLE PRECISION NOT NULL,
		repeticiones INTEGER NOT NULL,
		fecha TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_personal_records_alumno_id ON personal_records (alumno_id)`,
	`CREATE INDEX IF NOT EXISTS idx_personal_records_ejercicio ON personal_records (ejercicio)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		coach_id BIGINT NOT NULL REFERENCES coaches(id) ON DELETE CASCADE,
		alumno_id BIGINT REFERENCES alumnos(id) ON DELETE SET NULL,
		tipo VARCHAR(50) NOT NULL,
		titulo VARCHAR(200) NOT NULL,
		mensaje TEXT NOT NULL,
		leida BOOLEAN NOT NULL DEFAULT FALSE,
		creada_en TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_coach_id ON notifications (coach_id)`,
	`CREATE TABLE IF NOT EXISTS lesiones (
		id BIGSERIAL PRIMARY KEY,
		alumno_id BIGINT NOT NULL REFERENCES alumnos(id) ON DELETE CASCADE,
		nombre VARCHAR(100) NOT NULL,
		descripcion TEXT NOT NULL DEFAULT '',
		es_cronica BOOLEAN NOT NULL DEFAULT FALSE,
		fecha_inicio TIMESTAMPTZ,
		fecha_fin TIMESTAMPTZ,
		activa BOOLEAN NOT NULL DEFAULT TRUE,
		creada_en TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_lesiones_alumno_id ON lesiones (alumno_id)`,
}

// EnsureSchema creates missing tables, columns and indexes.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
