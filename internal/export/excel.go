package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"fittrack/backoffice/internal/domain"
)

// RutinaExcel renders a routine as a single-sheet workbook: routine info
// on top, one row per exercise below.
func RutinaExcel(rutina *domain.Rutina, alumnoNombre string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Rutina"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if alumnoNombre == "" {
		alumnoNombre = "Sin asignar"
	}
	fechaInicio := "No especificada"
	if rutina.FechaInicio != nil {
		fechaInicio = rutina.FechaInicio.Format("02/01/2006")
	}
	info := [][2]any{
		{"Rutina:", rutina.Nombre},
		{"Alumno:", alumnoNombre},
		{"Fecha de inicio:", fechaInicio},
		{"Entrenamientos/semana:", rutina.EntrenamientosSemana},
		{"Notas:", orDefault(rutina.Notas, "Sin notas")},
	}
	for i, kv := range info {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), kv[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), kv[1])
	}

	headers := []string{"Ejercicio", "Series", "Repeticiones", "Peso (kg)", "Descanso (seg)", "Notas"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c7", 'A'+i)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 8
	for _, e := range rutina.Ejercicios {
		nombre := ""
		if e.EjercicioBase != nil {
			nombre = e.EjercicioBase.Nombre
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), nombre)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Series)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.Repeticiones)
		if e.Peso != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), *e.Peso)
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "-")
		}
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.Descanso)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), orDefault(e.Notas, "-"))
		row++
	}

	widths := map[string]float64{"A": 20, "B": 10, "C": 15, "D": 12, "E": 15, "F": 20}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering routine xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// DietaExcel renders a diet as a single-sheet workbook grouped by day,
// with per-line calories computed from the food's macros.
func DietaExcel(dieta *domain.Dieta, alumnoNombre string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Dieta"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"7B68EE"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	dayStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	mealStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "4B0082"},
	})
	if err != nil {
		return nil, err
	}

	if alumnoNombre == "" {
		alumnoNombre = "Sin asignar"
	}
	fechaInicio := "No especificada"
	if dieta.FechaInicio != nil {
		fechaInicio = dieta.FechaInicio.Format("02/01/2006")
	}
	info := [][2]any{
		{"Dieta:", dieta.Nombre},
		{"Alumno:", alumnoNombre},
		{"Fecha de inicio:", fechaInicio},
		{"Notas:", orDefault(dieta.Notas, "Sin notas")},
	}
	for i, kv := range info {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), kv[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), kv[1])
	}

	porDia := map[int][]domain.Comida{}
	for _, c := range dieta.Comidas {
		porDia[c.Dia] = append(porDia[c.Dia], c)
	}
	var dias []int
	for d := range porDia {
		dias = append(dias, d)
	}
	sort.Ints(dias)

	row := 6
	for _, dia := range dias {
		cell := fmt.Sprintf("A%d", row)
		f.SetCellValue(sheet, cell, fmt.Sprintf("MENÚ %d", dia))
		f.SetCellStyle(sheet, cell, fmt.Sprintf("D%d", row), dayStyle)
		row++

		for i, h := range []string{"Comida", "Alimento", "Cantidad (g)", "Calorías"} {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			f.SetCellValue(sheet, cell, h)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
		row++

		comidas := porDia[dia]
		sort.SliceStable(comidas, func(i, j int) bool { return comidas[i].Orden < comidas[j].Orden })
		for _, comida := range comidas {
			if len(comida.Alimentos) == 0 {
				cell := fmt.Sprintf("A%d", row)
				f.SetCellValue(sheet, cell, comida.Nombre)
				f.SetCellStyle(sheet, cell, cell, mealStyle)
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Sin alimentos")
				row++
				continue
			}
			for i, ca := range comida.Alimentos {
				if i == 0 {
					cell := fmt.Sprintf("A%d", row)
					f.SetCellValue(sheet, cell, comida.Nombre)
					f.SetCellStyle(sheet, cell, cell, mealStyle)
				}
				nombre := ""
				var calorias float64
				if ca.Alimento != nil {
					nombre = ca.Alimento.Nombre
					calorias = ca.Alimento.Calorias100g * ca.CantidadGramos / 100
				}
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), nombre)
				f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ca.CantidadGramos)
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%.1f", calorias))
				row++
			}
		}
		row++
	}

	widths := map[string]float64{"A": 20, "B": 25, "C": 15, "D": 12}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering diet xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
