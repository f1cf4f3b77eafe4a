package domain

import "time"

// Notification type tags.
const (
	NotificationRutinaVencida   = "rutina_vencida"
	NotificationDietaVencida    = "dieta_vencida"
	NotificationMeetSeguimiento = "meet_seguimiento"
	NotificationPagoRecordado   = "pago_recordado"
)

// Notification is an in-app notice for a coach, optionally referencing
// one of their students.
type Notification struct {
	ID       int64     `json:"id"`
	CoachID  int64     `json:"coach_id"`
	AlumnoID *int64    `json:"alumno_id,omitempty"`
	Tipo     string    `json:"tipo"`
	Titulo   string    `json:"titulo"`
	Mensaje  string    `json:"mensaje"`
	Leida    bool      `json:"leida"`
	CreadaEn time.Time `json:"creada_en"`
}
