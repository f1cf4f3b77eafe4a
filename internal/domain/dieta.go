package domain

import "time"

// Dieta is a diet plan. It follows the same lifecycle as Rutina: at most
// one active, non-deleted diet per student.
type Dieta struct {
	ID          int64      `json:"id"`
	AlumnoID    int64      `json:"alumno_id"`
	Nombre      string     `json:"nombre"`
	FechaInicio *time.Time `json:"fecha_inicio,omitempty"`
	Notas       string     `json:"notas"`
	Activa      bool       `json:"activa"`
	Eliminado   bool       `json:"eliminado"`

	Comidas []Comida `json:"comidas,omitempty"`
}

// Comida is one meal inside a diet, tagged with a weekday and an order
// within that day.
type Comida struct {
	ID      int64  `json:"id"`
	DietaID int64  `json:"dieta_id"`
	Nombre  string `json:"nombre"`
	Orden   int    `json:"orden"`
	Dia     int    `json:"dia"`

	Alimentos []ComidaAlimento `json:"alimentos,omitempty"`
}

// Alimento is a catalog food with macros per 100g.
type Alimento struct {
	ID                int64   `json:"id"`
	Nombre            string  `json:"nombre"`
	Calorias100g      float64 `json:"calorias_100g"`
	Proteinas100g     float64 `json:"proteinas_100g"`
	Carbohidratos100g float64 `json:"carbohidratos_100g"`
	Grasas100g        float64 `json:"grasas_100g"`
}

// ComidaAlimento is one food line of a meal: a quantity of a catalog food.
type ComidaAlimento struct {
	ID             int64   `json:"id"`
	ComidaID       int64   `json:"comida_id"`
	AlimentoID     int64   `json:"alimento_id"`
	CantidadGramos float64 `json:"cantidad_gramos"`

	Alimento *Alimento `json:"alimento,omitempty"`
}

// DietaPlantilla is a coach-owned diet template used as a copy source.
type DietaPlantilla struct {
	ID      int64  `json:"id"`
	CoachID int64  `json:"coach_id"`
	Nombre  string `json:"nombre"`
	Notas   string `json:"notas"`

	Comidas []ComidaPlantilla `json:"comidas,omitempty"`
}

// ComidaPlantilla mirrors Comida for diet templates.
type ComidaPlantilla struct {
	ID               int64  `json:"id"`
	DietaPlantillaID int64  `json:"dieta_plantilla_id"`
	Nombre           string `json:"nombre"`
	Orden            int    `json:"orden"`
	Dia              int    `json:"dia"`

	Alimentos []ComidaPlantillaAlimento `json:"alimentos,omitempty"`
}

// ComidaPlantillaAlimento mirrors ComidaAlimento for diet templates.
type ComidaPlantillaAlimento struct {
	ID                int64   `json:"id"`
	ComidaPlantillaID int64   `json:"comida_plantilla_id"`
	AlimentoID        int64   `json:"alimento_id"`
	CantidadGramos    float64 `json:"cantidad_gramos"`

	Alimento *Alimento `json:"alimento,omitempty"`
}
