package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

// pgNotificationRepository implements repository.NotificationRepository.
type pgNotificationRepository struct {
	db *pgxpool.Pool
}

// NewPgNotificationRepository creates a new instance of pgNotificationRepository.
func NewPgNotificationRepository(db *pgxpool.Pool) repository.NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) Create(ctx context.Context, notification *domain.Notification) (int64, error) {
	notification.CreadaEn = time.Now().UTC()
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO notifications (coach_id, alumno_id, tipo, titulo, mensaje, leida, creada_en)
		 VALUES ($1, $2, $3, $4, $5, FALSE, $6) RETURNING id`,
		notification.CoachID, notification.AlumnoID, notification.Tipo,
		notification.Titulo, notification.Mensaje, notification.CreadaEn,
	).Scan(&id)
	return id, err
}

func (r *pgNotificationRepository) GetByCoachID(ctx context.Context, coachID int64) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, coach_id, alumno_id, tipo, titulo, mensaje, leida, creada_en
		 FROM notifications WHERE coach_id = $1 ORDER BY creada_en DESC`, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(&n.ID, &n.CoachID, &n.AlumnoID, &n.Tipo, &n.Titulo,
			&n.Mensaje, &n.Leida, &n.CreadaEn)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *pgNotificationRepository) UnreadCount(ctx context.Context, coachID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE coach_id = $1 AND NOT leida`,
		coachID).Scan(&count)
	return count, err
}

func (r *pgNotificationRepository) MarkRead(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET leida = TRUE WHERE id = $1 AND coach_id = $2`, id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgNotificationRepository) Delete(ctx context.Context, id, coachID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND coach_id = $2`, id, coachID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
