package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

func newDietaFixture() (*fakeAlumnoRepo, *fakeDietaRepo, *fakeDietaPlantillaRepo, DietaService) {
	alumnos := newFakeAlumnoRepo()
	dietas := newFakeDietaRepo(alumnos)
	plantillas := newFakeDietaPlantillaRepo()
	svc := NewDietaService(dietas, plantillas, alumnos)
	return alumnos, dietas, plantillas, svc
}

func TestCreateDietaRetiresPreviousActive(t *testing.T) {
	alumnos, dietas, _, svc := newDietaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	first, err := svc.Create(ctx, &domain.Dieta{AlumnoID: alumno.ID, Nombre: "Definición"}, 1)
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.Dieta{AlumnoID: alumno.ID, Nombre: "Volumen"}, 1)
	require.NoError(t, err)

	old := dietas.dietas[first.ID]
	assert.False(t, old.Activa)
	assert.True(t, old.Eliminado)
}

func TestCreateDietaForeignAlumno(t *testing.T) {
	alumnos, _, _, svc := newDietaFixture()
	alumno := alumnos.addAlumno(2, "Ajeno")

	_, err := svc.Create(context.Background(), &domain.Dieta{AlumnoID: alumno.ID, Nombre: "X"}, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDietaCopyDayValidation(t *testing.T) {
	alumnos, dietas, _, svc := newDietaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()
	created, err := svc.Create(ctx, &domain.Dieta{AlumnoID: alumno.ID, Nombre: "X"}, 1)
	require.NoError(t, err)

	_, err = svc.CopyDay(ctx, created.ID, 1, 9, 1)
	assert.ErrorIs(t, err, ErrInvalidDia)
	_, err = svc.CopyDay(ctx, created.ID, 1, 4, 4)
	assert.ErrorIs(t, err, ErrSameDay)

	dietas.copyDayErr = repository.ErrEmptySourceDay
	_, err = svc.CopyDay(ctx, created.ID, 1, 1, 2)
	assert.ErrorIs(t, err, repository.ErrEmptySourceDay)

	dietas.copyDayErr = nil
	dietas.copyDayCount = 3
	copied, err := svc.CopyDay(ctx, created.ID, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, copied)
}

func TestDietaSaveAsTemplateDeepCopies(t *testing.T) {
	alumnos, _, _, svc := newDietaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.Dieta{
		AlumnoID: alumno.ID,
		Nombre:   "Definición",
		Comidas: []domain.Comida{
			{Nombre: "Desayuno", Orden: 1, Dia: 1, Alimentos: []domain.ComidaAlimento{
				{AlimentoID: 10, CantidadGramos: 100},
				{AlimentoID: 11, CantidadGramos: 50},
			}},
		},
	}, 1)
	require.NoError(t, err)

	plantilla, err := svc.SaveAsTemplate(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Definición (Plantilla)", plantilla.Nombre)
	require.Len(t, plantilla.Comidas, 1)
	assert.Equal(t, "Desayuno", plantilla.Comidas[0].Nombre)
	assert.Len(t, plantilla.Comidas[0].Alimentos, 2)
}

func TestDietaCreateFromTemplate(t *testing.T) {
	alumnos, dietas, plantillas, svc := newDietaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	id, err := plantillas.Create(ctx, &domain.DietaPlantilla{
		CoachID: 1,
		Nombre:  "Definición (Plantilla)",
		Comidas: []domain.ComidaPlantilla{
			{Nombre: "Cena", Orden: 3, Dia: 2, Alimentos: []domain.ComidaPlantillaAlimento{
				{AlimentoID: 10, CantidadGramos: 200},
			}},
		},
	})
	require.NoError(t, err)

	dieta, err := svc.CreateFromTemplate(ctx, id, alumno.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Definición", dieta.Nombre)
	assert.True(t, dieta.Activa)

	stored := dietas.dietas[dieta.ID]
	require.Len(t, stored.Comidas, 1)
	assert.Equal(t, 2, stored.Comidas[0].Dia)
	assert.Equal(t, 3, stored.Comidas[0].Orden)
}

func TestAddComidaAlimentoValidation(t *testing.T) {
	alumnos, _, _, svc := newDietaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	dieta, err := svc.Create(ctx, &domain.Dieta{AlumnoID: alumno.ID, Nombre: "X"}, 1)
	require.NoError(t, err)
	comida, err := svc.AddComida(ctx, &domain.Comida{DietaID: dieta.ID, Nombre: "Almuerzo", Dia: 1}, 1)
	require.NoError(t, err)

	_, err = svc.AddComidaAlimento(ctx, comida.ID, 1, 10, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddComidaAlimento(ctx, comida.ID, 1, 10, -50)
	assert.ErrorIs(t, err, ErrValidation)

	linea, err := svc.AddComidaAlimento(ctx, comida.ID, 1, 10, 150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, linea.CantidadGramos)
}
