// Package export renders routines and diets as downloadable PDF and XLSX
// documents.
package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"

	"fittrack/backoffice/internal/domain"
)

func newPDF() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	// Core fonts are cp1252; translate the UTF-8 strings we render.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	return pdf, tr
}

// RutinaPDF renders a routine grouped by day, one block per exercise.
func RutinaPDF(rutina *domain.Rutina, alumnoNombre string) ([]byte, error) {
	pdf, tr := newPDF()

	if alumnoNombre == "" {
		alumnoNombre = "Sin asignar"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Rutina: "+rutina.Nombre))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr("Alumno: "+alumnoNombre))
	pdf.Ln(7)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Entrenamientos/semana: %d", rutina.EntrenamientosSemana)))
	pdf.Ln(12)

	for _, dia := range diasConEjercicios(rutina.Ejercicios) {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Día %d", dia)))
		pdf.Ln(9)

		for _, e := range rutina.Ejercicios {
			if e.Dia != dia {
				continue
			}
			nombre := "Ejercicio"
			if e.EjercicioBase != nil {
				nombre = e.EjercicioBase.Nombre
			}
			pesoText := ""
			if e.Peso != nil {
				pesoText = fmt.Sprintf(" × %gkg", *e.Peso)
			}

			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetX(20)
			pdf.Cell(0, 6, tr(nombre))
			pdf.Ln(6)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetX(25)
			pdf.Cell(0, 5, tr(fmt.Sprintf("%d series × %d reps%s - Descanso: %ds",
				e.Series, e.Repeticiones, pesoText, e.Descanso)))
			pdf.Ln(5)
			if e.Notas != "" {
				pdf.SetX(25)
				pdf.Cell(0, 5, tr(e.Notas))
				pdf.Ln(5)
			}
			pdf.Ln(2)
		}
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering routine pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// DietaPDF renders a diet as a flat meal list with its food lines.
func DietaPDF(dieta *domain.Dieta, alumnoNombre string) ([]byte, error) {
	pdf, tr := newPDF()

	if alumnoNombre == "" {
		alumnoNombre = "Sin asignar"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Dieta: "+orDefault(dieta.Nombre, "Sin nombre")))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr("Alumno: "+alumnoNombre))
	pdf.Ln(7)
	fechaInicio := "No especificada"
	if dieta.FechaInicio != nil {
		fechaInicio = dieta.FechaInicio.Format("02/01/2006")
	}
	pdf.Cell(0, 6, tr("Fecha inicio: "+fechaInicio))
	pdf.Ln(7)
	pdf.Cell(0, 6, tr("Notas: "+orDefault(dieta.Notas, "Sin notas")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, tr("Comidas:"))
	pdf.Ln(9)

	if len(dieta.Comidas) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetX(20)
		pdf.Cell(0, 5, tr("No hay comidas registradas"))
		pdf.Ln(5)
	}
	for _, c := range dieta.Comidas {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetX(20)
		pdf.Cell(0, 6, tr(fmt.Sprintf("- %s (Día %d)", orDefault(c.Nombre, "Sin nombre"), c.Dia)))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		for _, ca := range c.Alimentos {
			nombre := "Alimento desconocido"
			if ca.Alimento != nil {
				nombre = ca.Alimento.Nombre
			}
			pdf.SetX(25)
			pdf.Cell(0, 5, tr(fmt.Sprintf("· %s: %gg", nombre, ca.CantidadGramos)))
			pdf.Ln(5)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering diet pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// diasConEjercicios returns the sorted distinct day indexes present.
func diasConEjercicios(ejercicios []domain.Ejercicio) []int {
	seen := map[int]bool{}
	var dias []int
	for _, e := range ejercicios {
		if !seen[e.Dia] {
			seen[e.Dia] = true
			dias = append(dias, e.Dia)
		}
	}
	sort.Ints(dias)
	return dias
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
