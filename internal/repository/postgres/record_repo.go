package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// pgRecordRepository implements repository.RecordRepository on Postgres.
type pgRecordRepository struct {
	db *pgxpool.Pool
}

// NewPgRecordRepository creates a new instance of pgRecordRepository.
func NewPgRecordRepository(db *pgxpool.Pool) repository.RecordRepository {
	return &pgRecordRepository{db: db}
}

func (r *pgRecordRepository) Create(ctx context.Context, record *domain.PersonalRecord) (int64, error) {
	if record.Fecha.IsZero() {
		record.Fecha = time.Now().UTC()
	}
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO personal_records (alumno_id, ejercicio, peso, repeticiones, fecha)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		record.AlumnoID, record.Ejercicio, record.Peso, record.Repeticiones, record.Fecha,
	).Scan(&id)
	return id, err
}

func (r *pgRecordRepository) GetByAlumnoID(ctx context.Context, alumnoID int64) ([]domain.PersonalRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, alumno_id, ejercicio, peso, repeticiones, fecha
		 FROM personal_records WHERE alumno_id = $1 ORDER BY fecha, id`, alumnoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.PersonalRecord{}
	for rows.Next() {
		var rec domain.PersonalRecord
		err := rows.Scan(&rec.ID, &rec.AlumnoID, &rec.Ejercicio, &rec.Peso,
			&rec.Repeticiones, &rec.Fecha)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *pgRecordRepository) Delete(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM personal_records pr USING alumnos a
		 WHERE pr.alumno_id = a.id AND pr.id = $1 AND a.coach_id = $2`, id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
