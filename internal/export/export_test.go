package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fittrack/backoffice/internal/domain"
)

func sampleRutina() *domain.Rutina {
	peso := 80.0
	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Rutina{
		ID:                   1,
		Nombre:               "Hipertrofia",
		FechaInicio:          &inicio,
		EntrenamientosSemana: 4,
		Notas:                "Semana de carga",
		Ejercicios: []domain.Ejercicio{
			{
				Dia: 1, Series: 4, Repeticiones: 8, Peso: &peso, Descanso: 90,
				EjercicioBase: &domain.EjercicioBase{Nombre: "Press banca"},
			},
			{
				Dia: 3, Series: 3, Repeticiones: 12, Descanso: 60, Notas: "Tempo lento",
				EjercicioBase: &domain.EjercicioBase{Nombre: "Sentadilla búlgara"},
			},
		},
	}
}

func sampleDieta() *domain.Dieta {
	return &domain.Dieta{
		ID:     2,
		Nombre: "Definición",
		Comidas: []domain.Comida{
			{
				Nombre: "Desayuno", Orden: 1, Dia: 1,
				Alimentos: []domain.ComidaAlimento{
					{
						CantidadGramos: 150,
						Alimento:       &domain.Alimento{Nombre: "Avena", Calorias100g: 380},
					},
				},
			},
			{Nombre: "Cena", Orden: 2, Dia: 1},
		},
	}
}

func TestRutinaPDF(t *testing.T) {
	data, err := RutinaPDF(sampleRutina(), "Pedro")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(data), 500)
}

func TestRutinaPDFStandalone(t *testing.T) {
	data, err := RutinaPDF(sampleRutina(), "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestDietaPDF(t *testing.T) {
	data, err := DietaPDF(sampleDieta(), "Pedro")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestDietaPDFEmpty(t *testing.T) {
	data, err := DietaPDF(&domain.Dieta{ID: 3}, "Pedro")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRutinaExcel(t *testing.T) {
	data, err := RutinaExcel(sampleRutina(), "Pedro")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	nombre, err := f.GetCellValue("Rutina", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Hipertrofia", nombre)

	ejercicio, err := f.GetCellValue("Rutina", "A8")
	require.NoError(t, err)
	assert.Equal(t, "Press banca", ejercicio)
}

func TestDietaExcel(t *testing.T) {
	data, err := DietaExcel(sampleDieta(), "Pedro")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	nombre, err := f.GetCellValue("Dieta", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Definición", nombre)

	// Day header sits below the four info rows.
	menu, err := f.GetCellValue("Dieta", "A6")
	require.NoError(t, err)
	assert.Equal(t, "MENÚ 1", menu)

	// 150g of oats at 380 kcal/100g.
	calorias, err := f.GetCellValue("Dieta", "D8")
	require.NoError(t, err)
	assert.Equal(t, "570.0", calorias)
}

func TestDiasConEjercicios(t *testing.T) {
	dias := diasConEjercicios([]domain.Ejercicio{{Dia: 5}, {Dia: 1}, {Dia: 5}, {Dia: 3}})
	assert.Equal(t, []int{1, 3, 5}, dias)
}
