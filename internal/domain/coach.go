package domain

import "time"

// Coach is the authenticated account holder. Every other entity in the
// system is owned by a coach, directly or through an Alumno.
type Coach struct {
	ID           int64     `json:"id"`
	Nombre       string    `json:"nombre"`
	Email        string    `json:"email"` // unique
	PasswordHash string    `json:"-"`     // never exposed via JSON
	CreadoEn     time.Time `json:"creado_en"`
}
