package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/repository"
)

func newAlumnoFixture() (*fakeAlumnoRepo, AlumnoService) {
	alumnos := newFakeAlumnoRepo()
	rutinas := newFakeRutinaRepo(alumnos)
	dietas := newFakeDietaRepo(alumnos)
	lesiones := newFakeLesionRepo(alumnos)
	records := newFakeRecordRepo(alumnos)
	svc := NewAlumnoService(alumnos, rutinas, dietas, lesiones, records)
	return alumnos, svc
}

func TestCreateAlumnoValidatesAltura(t *testing.T) {
	_, svc := newAlumnoFixture()
	ctx := context.Background()

	for _, altura := range []float64{0.2, 3.5, -1} {
		_, err := svc.Create(ctx, &domain.Alumno{CoachID: 1, Nombre: "Pedro", Altura: altura})
		assert.ErrorIs(t, err, ErrInvalidAltura, "altura %v", altura)
	}

	created, err := svc.Create(ctx, &domain.Alumno{CoachID: 1, Nombre: "Pedro", Altura: 1.8})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestAddPesoValidatesRange(t *testing.T) {
	alumnos, svc := newAlumnoFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	_, err := svc.AddPeso(ctx, alumno.ID, 1, 10, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidPeso)
	_, err = svc.AddPeso(ctx, alumno.ID, 1, 600, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidPeso)

	entry, err := svc.AddPeso(ctx, alumno.ID, 1, 82.5, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 82.5, entry.Peso)
	assert.False(t, entry.Fecha.IsZero())
}

func TestAddPesoForeignAlumno(t *testing.T) {
	alumnos, svc := newAlumnoFixture()
	alumno := alumnos.addAlumno(2, "Ajeno")

	_, err := svc.AddPeso(context.Background(), alumno.ID, 1, 80, time.Time{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddRecordValidatesKind(t *testing.T) {
	alumnos, svc := newAlumnoFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, &domain.PersonalRecord{
		AlumnoID:     alumno.ID,
		Ejercicio:    "curl_biceps",
		Peso:         40,
		Repeticiones: 8,
	}, 1)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	record, err := svc.AddRecord(ctx, &domain.PersonalRecord{
		AlumnoID:     alumno.ID,
		Ejercicio:    domain.RecordPressBanca,
		Peso:         100,
		Repeticiones: 1,
	}, 1)
	require.NoError(t, err)
	assert.NotZero(t, record.ID)
}

func TestRecordChartGroupsByLift(t *testing.T) {
	alumnos, svc := newAlumnoFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	for _, r := range []struct {
		kind domain.RecordEjercicio
		peso float64
	}{
		{domain.RecordPressBanca, 90},
		{domain.RecordPressBanca, 95},
		{domain.RecordSentadilla, 120},
	} {
		_, err := svc.AddRecord(ctx, &domain.PersonalRecord{
			AlumnoID: alumno.ID, Ejercicio: r.kind, Peso: r.peso, Repeticiones: 1,
		}, 1)
		require.NoError(t, err)
	}

	chart, err := svc.RecordChart(ctx, alumno.ID, 1)
	require.NoError(t, err)
	// All four lifts are present, empty or not.
	assert.Len(t, chart, 4)
	assert.Len(t, chart[domain.RecordPressBanca], 2)
	assert.Len(t, chart[domain.RecordSentadilla], 1)
	assert.Empty(t, chart[domain.RecordPesoMuerto])
	assert.Empty(t, chart[domain.RecordDominadas])
}

func TestAlumnoDashboard(t *testing.T) {
	alumnos, svc := newAlumnoFixture()
	alumno := alumnos.addAlumno(1, "Pedro")
	ctx := context.Background()

	_, err := svc.AddPeso(ctx, alumno.ID, 1, 80, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.AddPeso(ctx, alumno.ID, 1, 78.5, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	dash, err := svc.Dashboard(ctx, alumno.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, alumno.ID, dash.Alumno.ID)
	assert.Len(t, dash.Pesos, 2)
	require.NotNil(t, dash.PesoActual)
	assert.Equal(t, 78.5, *dash.PesoActual)
	assert.Positive(t, dash.Edad)
}

func TestEdadComputation(t *testing.T) {
	a := domain.Alumno{FechaNacimiento: time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 26, a.Edad(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, a.Edad(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
}
