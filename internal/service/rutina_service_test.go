package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

func newRutinaFixture() (*fakeAlumnoRepo, *fakeRutinaRepo, *fakeRutinaPlantillaRepo, RutinaService) {
	alumnos := newFakeAlumnoRepo()
	rutinas := newFakeRutinaRepo(alumnos)
	plantillas := newFakeRutinaPlantillaRepo()
	svc := NewRutinaService(rutinas, plantillas, alumnos)
	return alumnos, rutinas, plantillas, svc
}

func TestCreateRutinaRetiresPreviousActive(t *testing.T) {
	alumnos, rutinas, _, svc := newRutinaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	first, err := svc.Create(ctx, &domain.Rutina{AlumnoID: &alumno.ID, Nombre: "Fuerza A"}, 1)
	require.NoError(t, err)
	assert.True(t, first.Activa)

	second, err := svc.Create(ctx, &domain.Rutina{AlumnoID: &alumno.ID, Nombre: "Fuerza B"}, 1)
	require.NoError(t, err)
	assert.True(t, second.Activa)

	old := rutinas.rutinas[first.ID]
	assert.False(t, old.Activa)
	assert.True(t, old.Eliminado)
}

func TestCreateRutinaForeignAlumno(t *testing.T) {
	alumnos, _, _, svc := newRutinaFixture()
	alumno := alumnos.addAlumno(2, "Ajeno")

	_, err := svc.Create(context.Background(), &domain.Rutina{AlumnoID: &alumno.ID, Nombre: "X"}, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateStandaloneRutina(t *testing.T) {
	_, rutinas, _, svc := newRutinaFixture()

	created, err := svc.Create(context.Background(), &domain.Rutina{Nombre: "Base"}, 1)
	require.NoError(t, err)
	assert.Nil(t, created.AlumnoID)
	assert.True(t, created.Activa)

	// Standalone routines are invisible to the owner-filtered detail query.
	_, err = svc.Get(context.Background(), created.ID, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, rutinas.rutinas, created.ID)
}

func TestCreateRutinaRejectsBadDia(t *testing.T) {
	alumnos, _, _, svc := newRutinaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")

	_, err := svc.Create(context.Background(), &domain.Rutina{
		AlumnoID:   &alumno.ID,
		Nombre:     "X",
		Ejercicios: []domain.Ejercicio{{EjercicioBaseID: 1, Dia: 8, Series: 3, Repeticiones: 10}},
	}, 1)
	assert.ErrorIs(t, err, ErrInvalidDia)
}

func TestCopyDayValidation(t *testing.T) {
	alumnos, rutinas, _, svc := newRutinaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()
	created, err := svc.Create(ctx, &domain.Rutina{AlumnoID: &alumno.ID, Nombre: "X"}, 1)
	require.NoError(t, err)

	_, err = svc.CopyDay(ctx, created.ID, 1, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidDia)
	_, err = svc.CopyDay(ctx, created.ID, 1, 1, 8)
	assert.ErrorIs(t, err, ErrInvalidDia)
	_, err = svc.CopyDay(ctx, created.ID, 1, 2, 2)
	assert.ErrorIs(t, err, ErrSameDay)
	assert.Zero(t, rutinas.copyDayCalls, "invalid input must not reach the repository")

	_, err = svc.CopyDay(ctx, created.ID+99, 1, 1, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCopyDayEmptySource(t *testing.T) {
	alumnos, rutinas, _, svc := newRutinaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()
	created, err := svc.Create(ctx, &domain.Rutina{AlumnoID: &alumno.ID, Nombre: "X"}, 1)
	require.NoError(t, err)

	rutinas.copyDayErr = repository.ErrEmptySourceDay
	_, err = svc.CopyDay(ctx, created.ID, 1, 1, 2)
	assert.ErrorIs(t, err, repository.ErrEmptySourceDay)

	rutinas.copyDayErr = nil
	rutinas.copyDayCount = 4
	copied, err := svc.CopyDay(ctx, created.ID, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, copied)
}

func TestSaveAsTemplateAppendsSuffix(t *testing.T) {
	alumnos, _, _, svc := newRutinaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	peso := 80.0
	created, err := svc.Create(ctx, &domain.Rutina{
		AlumnoID: &alumno.ID,
		Nombre:   "Hipertrofia",
		Ejercicios: []domain.Ejercicio{
			{EjercicioBaseID: 7, Dia: 1, Series: 4, Repeticiones: 8, Peso: &peso, Descanso: 90},
		},
	}, 1)
	require.NoError(t, err)

	plantilla, err := svc.SaveAsTemplate(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hipertrofia (Plantilla)", plantilla.Nombre)
	require.Len(t, plantilla.Ejercicios, 1)
	assert.Equal(t, int64(7), plantilla.Ejercicios[0].EjercicioBaseID)
	assert.Equal(t, 4, plantilla.Ejercicios[0].Series)
}

func TestCreateFromTemplateStripsSuffix(t *testing.T) {
	alumnos, rutinas, plantillas, svc := newRutinaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	id, err := plantillas.Create(ctx, &domain.RutinaPlantilla{
		CoachID: 1,
		Nombre:  "Hipertrofia (Plantilla)",
		Ejercicios: []domain.EjercicioPlantilla{
			{EjercicioBaseID: 7, Dia: 2, Series: 3, Repeticiones: 12},
		},
	})
	require.NoError(t, err)

	rutina, err := svc.CreateFromTemplate(ctx, id, alumno.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hipertrofia", rutina.Nombre)
	assert.True(t, rutina.Activa)
	require.NotNil(t, rutina.AlumnoID)
	assert.Equal(t, alumno.ID, *rutina.AlumnoID)
	require.Len(t, rutinas.rutinas[rutina.ID].Ejercicios, 1)
	assert.Equal(t, 2, rutinas.rutinas[rutina.ID].Ejercicios[0].Dia)
}

func TestCreateFromTemplateForeignTemplate(t *testing.T) {
	alumnos, _, plantillas, svc := newRutinaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	id, err := plantillas.Create(ctx, &domain.RutinaPlantilla{CoachID: 2, Nombre: "Ajena"})
	require.NoError(t, err)

	_, err = svc.CreateFromTemplate(ctx, id, alumno.ID, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCopyToAlumnoClonesExercises(t *testing.T) {
	alumnos, rutinas, _, svc := newRutinaFixture()
	origen := alumnos.addAlumno(1, "Pedro")
	destino := alumnos.addAlumno(1, "Lucia")
	ctx := context.Background()

	source, err := svc.Create(ctx, &domain.Rutina{
		AlumnoID: &origen.ID,
		Nombre:   "Fuerza",
		Ejercicios: []domain.Ejercicio{
			{EjercicioBaseID: 1, Dia: 1, Series: 5, Repeticiones: 5},
			{EjercicioBaseID: 2, Dia: 3, Series: 3, Repeticiones: 10},
		},
	}, 1)
	require.NoError(t, err)

	clone, err := svc.CopyToAlumno(ctx, source.ID, destino.ID, 1)
	require.NoError(t, err)
	assert.NotEqual(t, source.ID, clone.ID)
	assert.Equal(t, destino.ID, *clone.AlumnoID)
	assert.Len(t, rutinas.rutinas[clone.ID].Ejercicios, 2)

	// Source stays untouched.
	src := rutinas.rutinas[source.ID]
	assert.True(t, src.Activa)
	assert.False(t, src.Eliminado)
}

func TestAddEjercicioRejectsNonPositiveValues(t *testing.T) {
	alumnos, _, _, svc := newRutinaFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	rutina, err := svc.Create(ctx, &domain.Rutina{AlumnoID: &alumno.ID, Nombre: "Fuerza"}, 1)
	require.NoError(t, err)

	for _, e := range []domain.Ejercicio{
		{RutinaID: rutina.ID, EjercicioBaseID: 1, Dia: 1, Series: -1, Repeticiones: 10},
		{RutinaID: rutina.ID, EjercicioBaseID: 1, Dia: 1, Series: 3, Repeticiones: 0},
	} {
		_, err := svc.AddEjercicio(ctx, &e, 1)
		assert.ErrorIs(t, err, ErrValidation)
	}

	added, err := svc.AddEjercicio(ctx, &domain.Ejercicio{
		RutinaID: rutina.ID, EjercicioBaseID: 1, Dia: 1, Series: 3, Repeticiones: 10,
	}, 1)
	require.NoError(t, err)
	assert.NotZero(t, added.ID)
}
