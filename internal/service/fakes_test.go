package service

import (
	"context"
	"sort"
	"time"

	"fittrack/backoffice/internal/domain"
	"fittrack/backoffice/internal/email"
	"fittrack/backoffice/internal/repository"
)

// In-memory repository fakes. Ownership filtering mirrors the real
// repositories: foreign-owned rows are reported as ErrNotFound.

type fakeCoachRepo struct {
	coaches map[int64]*domain.Coach
	nextID  int64
}

func newFakeCoachRepo() *fakeCoachRepo {
	return &fakeCoachRepo{coaches: map[int64]*domain.Coach{}}
}

func (f *fakeCoachRepo) Create(_ context.Context, coach *domain.Coach) (int64, error) {
	for _, c := range f.coaches {
		if c.Email == coach.Email {
			return 0, repository.ErrEmailTaken
		}
	}
	f.nextID++
	cp := *coach
	cp.ID = f.nextID
	f.coaches[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeCoachRepo) GetByEmail(_ context.Context, email string) (*domain.Coach, error) {
	for _, c := range f.coaches {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCoachRepo) GetByID(_ context.Context, id int64) (*domain.Coach, error) {
	c, ok := f.coaches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

type fakeAlumnoRepo struct {
	alumnos map[int64]*domain.Alumno
	pesos   map[int64]*domain.PesoAlumno
	nextID  int64

	due      []repository.ReminderTarget
	stamped  []int64
	stampErr error
}

func newFakeAlumnoRepo() *fakeAlumnoRepo {
	return &fakeAlumnoRepo{
		alumnos: map[int64]*domain.Alumno{},
		pesos:   map[int64]*domain.PesoAlumno{},
	}
}

func (f *fakeAlumnoRepo) addAlumno(coachID int64, nombre string) *domain.Alumno {
	f.nextID++
	a := &domain.Alumno{
		ID:              f.nextID,
		CoachID:         coachID,
		Nombre:          nombre,
		Email:           nombre + "@test.local",
		FechaNacimiento: time.Date(1995, 3, 10, 0, 0, 0, 0, time.UTC),
		Altura:          1.75,
	}
	f.alumnos[a.ID] = a
	return a
}

func (f *fakeAlumnoRepo) Create(_ context.Context, alumno *domain.Alumno) (int64, error) {
	f.nextID++
	cp := *alumno
	cp.ID = f.nextID
	f.alumnos[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeAlumnoRepo) GetByCoachID(_ context.Context, coachID int64) ([]domain.Alumno, error) {
	var out []domain.Alumno
	for _, a := range f.alumnos {
		if a.CoachID == coachID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAlumnoRepo) GetByID(_ context.Context, id, coachID int64) (*domain.Alumno, error) {
	a, ok := f.alumnos[id]
	if !ok || a.CoachID != coachID {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAlumnoRepo) GetOwnedByIDs(_ context.Context, ids []int64, coachID int64) ([]domain.Alumno, error) {
	var out []domain.Alumno
	for _, id := range ids {
		if a, ok := f.alumnos[id]; ok && a.CoachID == coachID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAlumnoRepo) Update(_ context.Context, alumno *domain.Alumno) error {
	if _, ok := f.alumnos[alumno.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *alumno
	f.alumnos[cp.ID] = &cp
	return nil
}

func (f *fakeAlumnoRepo) Delete(_ context.Context, id, coachID int64) error {
	a, ok := f.alumnos[id]
	if !ok || a.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(f.alumnos, id)
	return nil
}

func (f *fakeAlumnoRepo) CountByCoachID(ctx context.Context, coachID int64) (int, error) {
	all, _ := f.GetByCoachID(ctx, coachID)
	return len(all), nil
}

func (f *fakeAlumnoRepo) Recent(ctx context.Context, coachID int64, limit int) ([]domain.Alumno, error) {
	all, _ := f.GetByCoachID(ctx, coachID)
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeAlumnoRepo) AddPeso(_ context.Context, peso *domain.PesoAlumno) (int64, error) {
	f.nextID++
	cp := *peso
	cp.ID = f.nextID
	f.pesos[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeAlumnoRepo) GetPesos(_ context.Context, alumnoID int64) ([]domain.PesoAlumno, error) {
	var out []domain.PesoAlumno
	for _, p := range f.pesos {
		if p.AlumnoID == alumnoID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

func (f *fakeAlumnoRepo) GetPesoByID(_ context.Context, id, coachID int64) (*domain.PesoAlumno, error) {
	p, ok := f.pesos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	owner, okA := f.alumnos[p.AlumnoID]
	if !okA || owner.CoachID != coachID {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeAlumnoRepo) UpdatePeso(_ context.Context, peso *domain.PesoAlumno) error {
	if _, ok := f.pesos[peso.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *peso
	f.pesos[cp.ID] = &cp
	return nil
}

func (f *fakeAlumnoRepo) DeletePeso(ctx context.Context, id, coachID int64) error {
	if _, err := f.GetPesoByID(ctx, id, coachID); err != nil {
		return err
	}
	delete(f.pesos, id)
	return nil
}

func (f *fakeAlumnoRepo) ListDueForReminder(_ context.Context, _, _ time.Time) ([]repository.ReminderTarget, error) {
	return f.due, nil
}

func (f *fakeAlumnoRepo) StampNotified(_ context.Context, alumnoIDs []int64, _ time.Time) error {
	if f.stampErr != nil {
		return f.stampErr
	}
	f.stamped = append(f.stamped, alumnoIDs...)
	return nil
}

type fakeRutinaRepo struct {
	rutinas    map[int64]*domain.Rutina
	ejercicios map[int64]*domain.Ejercicio
	alumnos    *fakeAlumnoRepo
	nextID     int64

	copyDayCalls int
	copyDayErr   error
	copyDayCount int
}

func newFakeRutinaRepo(alumnos *fakeAlumnoRepo) *fakeRutinaRepo {
	return &fakeRutinaRepo{
		rutinas:    map[int64]*domain.Rutina{},
		ejercicios: map[int64]*domain.Ejercicio{},
		alumnos:    alumnos,
	}
}

func (f *fakeRutinaRepo) Create(_ context.Context, rutina *domain.Rutina) (int64, error) {
	if rutina.AlumnoID != nil {
		for _, r := range f.rutinas {
			if r.AlumnoID != nil && *r.AlumnoID == *rutina.AlumnoID && r.Activa && !r.Eliminado {
				r.Activa = false
				r.Eliminado = true
			}
		}
	}
	f.nextID++
	cp := *rutina
	cp.ID = f.nextID
	cp.Ejercicios = nil
	for _, e := range rutina.Ejercicios {
		f.nextID++
		ec := e
		ec.ID = f.nextID
		ec.RutinaID = cp.ID
		f.ejercicios[ec.ID] = &ec
		cp.Ejercicios = append(cp.Ejercicios, ec)
	}
	f.rutinas[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeRutinaRepo) GetByAlumnoID(_ context.Context, alumnoID int64) ([]domain.Rutina, error) {
	var out []domain.Rutina
	for _, r := range f.rutinas {
		if r.AlumnoID != nil && *r.AlumnoID == alumnoID && !r.Eliminado {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeRutinaRepo) GetByID(_ context.Context, id, coachID int64) (*domain.Rutina, error) {
	r, ok := f.rutinas[id]
	if !ok || r.Eliminado || r.AlumnoID == nil {
		return nil, repository.ErrNotFound
	}
	owner, okA := f.alumnos.alumnos[*r.AlumnoID]
	if !okA || owner.CoachID != coachID {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRutinaRepo) Update(_ context.Context, rutina *domain.Rutina) error {
	existing, ok := f.rutinas[rutina.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := *rutina
	cp.Ejercicios = existing.Ejercicios
	f.rutinas[cp.ID] = &cp
	return nil
}

func (f *fakeRutinaRepo) SoftDelete(ctx context.Context, id, coachID int64) error {
	if _, err := f.GetByID(ctx, id, coachID); err != nil {
		return err
	}
	f.rutinas[id].Eliminado = true
	f.rutinas[id].Activa = false
	return nil
}

func (f *fakeRutinaRepo) CountActivasByCoachID(_ context.Context, coachID int64) (int, error) {
	count := 0
	for _, r := range f.rutinas {
		if r.AlumnoID == nil || r.Eliminado || !r.Activa {
			continue
		}
		if owner, ok := f.alumnos.alumnos[*r.AlumnoID]; ok && owner.CoachID == coachID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRutinaRepo) AddEjercicio(_ context.Context, ejercicio *domain.Ejercicio) (int64, error) {
	f.nextID++
	cp := *ejercicio
	cp.ID = f.nextID
	f.ejercicios[cp.ID] = &cp
	if r, ok := f.rutinas[cp.RutinaID]; ok {
		r.Ejercicios = append(r.Ejercicios, cp)
	}
	return cp.ID, nil
}

func (f *fakeRutinaRepo) GetEjercicioByID(ctx context.Context, id, coachID int64) (*domain.Ejercicio, error) {
	e, ok := f.ejercicios[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if _, err := f.GetByID(ctx, e.RutinaID, coachID); err != nil {
		return nil, err
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRutinaRepo) UpdateEjercicio(_ context.Context, ejercicio *domain.Ejercicio) error {
	if _, ok := f.ejercicios[ejercicio.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *ejercicio
	f.ejercicios[cp.ID] = &cp
	return nil
}

func (f *fakeRutinaRepo) DeleteEjercicio(ctx context.Context, id, coachID int64) error {
	if _, err := f.GetEjercicioByID(ctx, id, coachID); err != nil {
		return err
	}
	delete(f.ejercicios, id)
	return nil
}

func (f *fakeRutinaRepo) CopyDay(_ context.Context, _ int64, _, _ int) (int, error) {
	f.copyDayCalls++
	if f.copyDayErr != nil {
		return 0, f.copyDayErr
	}
	return f.copyDayCount, nil
}

type fakeRutinaPlantillaRepo struct {
	plantillas map[int64]*domain.RutinaPlantilla
	nextID     int64
}

func newFakeRutinaPlantillaRepo() *fakeRutinaPlantillaRepo {
	return &fakeRutinaPlantillaRepo{plantillas: map[int64]*domain.RutinaPlantilla{}}
}

func (f *fakeRutinaPlantillaRepo) Create(_ context.Context, plantilla *domain.RutinaPlantilla) (int64, error) {
	f.nextID++
	cp := *plantilla
	cp.ID = f.nextID
	f.plantillas[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeRutinaPlantillaRepo) GetByCoachID(_ context.Context, coachID int64) ([]domain.RutinaPlantilla, error) {
	var out []domain.RutinaPlantilla
	for _, p := range f.plantillas {
		if p.CoachID == coachID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRutinaPlantillaRepo) GetByID(_ context.Context, id, coachID int64) (*domain.RutinaPlantilla, error) {
	p, ok := f.plantillas[id]
	if !ok || p.CoachID != coachID {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeDietaRepo struct {
	dietas  map[int64]*domain.Dieta
	comidas map[int64]*domain.Comida
	lineas  map[int64]*domain.ComidaAlimento
	alumnos *fakeAlumnoRepo
	nextID  int64

	copyDayErr   error
	copyDayCount int
}

func newFakeDietaRepo(alumnos *fakeAlumnoRepo) *fakeDietaRepo {
	return &fakeDietaRepo{
		dietas:  map[int64]*domain.Dieta{},
		comidas: map[int64]*domain.Comida{},
		lineas:  map[int64]*domain.ComidaAlimento{},
		alumnos: alumnos,
	}
}

func (f *fakeDietaRepo) Create(_ context.Context, dieta *domain.Dieta) (int64, error) {
	for _, d := range f.dietas {
		if d.AlumnoID == dieta.AlumnoID && d.Activa && !d.Eliminado {
			d.Activa = false
			d.Eliminado = true
		}
	}
	f.nextID++
	cp := *dieta
	cp.ID = f.nextID
	cp.Comidas = nil
	for _, c := range dieta.Comidas {
		f.nextID++
		cc := c
		cc.ID = f.nextID
		cc.DietaID = cp.ID
		f.comidas[cc.ID] = &cc
		cp.Comidas = append(cp.Comidas, cc)
	}
	f.dietas[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeDietaRepo) GetByAlumnoID(_ context.Context, alumnoID int64) ([]domain.Dieta, error) {
	var out []domain.Dieta
	for _, d := range f.dietas {
		if d.AlumnoID == alumnoID && !d.Eliminado {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeDietaRepo) GetByID(_ context.Context, id, coachID int64) (*domain.Dieta, error) {
	d, ok := f.dietas[id]
	if !ok || d.Eliminado {
		return nil, repository.ErrNotFound
	}
	owner, okA := f.alumnos.alumnos[d.AlumnoID]
	if !okA || owner.CoachID != coachID {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDietaRepo) Update(_ context.Context, dieta *domain.Dieta) error {
	existing, ok := f.dietas[dieta.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := *dieta
	cp.Comidas = existing.Comidas
	f.dietas[cp.ID] = &cp
	return nil
}

func (f *fakeDietaRepo) SoftDelete(ctx context.Context, id, coachID int64) error {
	if _, err := f.GetByID(ctx, id, coachID); err != nil {
		return err
	}
	f.dietas[id].Eliminado = true
	f.dietas[id].Activa = false
	return nil
}

func (f *fakeDietaRepo) AddComida(_ context.Context, comida *domain.Comida) (int64, error) {
	f.nextID++
	cp := *comida
	cp.ID = f.nextID
	f.comidas[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeDietaRepo) GetComidaByID(ctx context.Context, id, coachID int64) (*domain.Comida, error) {
	c, ok := f.comidas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if _, err := f.GetByID(ctx, c.DietaID, coachID); err != nil {
		return nil, err
	}
	cp := *c
	return &cp, nil
}

func (f *fakeDietaRepo) UpdateComida(_ context.Context, comida *domain.Comida) error {
	if _, ok := f.comidas[comida.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *comida
	f.comidas[cp.ID] = &cp
	return nil
}

func (f *fakeDietaRepo) DeleteComida(ctx context.Context, id, coachID int64) error {
	if _, err := f.GetComidaByID(ctx, id, coachID); err != nil {
		return err
	}
	delete(f.comidas, id)
	return nil
}

func (f *fakeDietaRepo) AddComidaAlimento(_ context.Context, linea *domain.ComidaAlimento) (int64, error) {
	f.nextID++
	cp := *linea
	cp.ID = f.nextID
	f.lineas[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeDietaRepo) DeleteComidaAlimento(_ context.Context, id, _ int64) error {
	if _, ok := f.lineas[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.lineas, id)
	return nil
}

func (f *fakeDietaRepo) CopyDay(_ context.Context, _ int64, _, _ int) (int, error) {
	if f.copyDayErr != nil {
		return 0, f.copyDayErr
	}
	return f.copyDayCount, nil
}

type fakeDietaPlantillaRepo struct {
	plantillas map[int64]*domain.DietaPlantilla
	nextID     int64
}

func newFakeDietaPlantillaRepo() *fakeDietaPlantillaRepo {
	return &fakeDietaPlantillaRepo{plantillas: map[int64]*domain.DietaPlantilla{}}
}

func (f *fakeDietaPlantillaRepo) Create(_ context.Context, plantilla *domain.DietaPlantilla) (int64, error) {
	f.nextID++
	cp := *plantilla
	cp.ID = f.nextID
	f.plantillas[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeDietaPlantillaRepo) GetByCoachID(_ context.Context, coachID int64) ([]domain.DietaPlantilla, error) {
	var out []domain.DietaPlantilla
	for _, p := range f.plantillas {
		if p.CoachID == coachID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeDietaPlantillaRepo) GetByID(_ context.Context, id, coachID int64) (*domain.DietaPlantilla, error) {
	p, ok := f.plantillas[id]
	if !ok || p.CoachID != coachID {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeRecordRepo struct {
	records map[int64]*domain.PersonalRecord
	alumnos *fakeAlumnoRepo
	nextID  int64
}

func newFakeRecordRepo(alumnos *fakeAlumnoRepo) *fakeRecordRepo {
	return &fakeRecordRepo{records: map[int64]*domain.PersonalRecord{}, alumnos: alumnos}
}

func (f *fakeRecordRepo) Create(_ context.Context, record *domain.PersonalRecord) (int64, error) {
	f.nextID++
	cp := *record
	cp.ID = f.nextID
	f.records[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeRecordRepo) GetByAlumnoID(_ context.Context, alumnoID int64) ([]domain.PersonalRecord, error) {
	var out []domain.PersonalRecord
	for _, r := range f.records {
		if r.AlumnoID == alumnoID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRecordRepo) Delete(_ context.Context, id, coachID int64) error {
	r, ok := f.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	owner, okA := f.alumnos.alumnos[r.AlumnoID]
	if !okA || owner.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeLesionRepo struct {
	lesiones map[int64]*domain.Lesion
	alumnos  *fakeAlumnoRepo
	nextID   int64
}

func newFakeLesionRepo(alumnos *fakeAlumnoRepo) *fakeLesionRepo {
	return &fakeLesionRepo{lesiones: map[int64]*domain.Lesion{}, alumnos: alumnos}
}

func (f *fakeLesionRepo) Create(_ context.Context, lesion *domain.Lesion) (int64, error) {
	f.nextID++
	cp := *lesion
	cp.ID = f.nextID
	cp.Activa = true
	f.lesiones[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeLesionRepo) GetByAlumnoID(_ context.Context, alumnoID int64) ([]domain.Lesion, error) {
	var out []domain.Lesion
	for _, l := range f.lesiones {
		if l.AlumnoID == alumnoID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLesionRepo) GetByID(_ context.Context, id, coachID int64) (*domain.Lesion, error) {
	l, ok := f.lesiones[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	owner, okA := f.alumnos.alumnos[l.AlumnoID]
	if !okA || owner.CoachID != coachID {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLesionRepo) Update(_ context.Context, lesion *domain.Lesion) error {
	if _, ok := f.lesiones[lesion.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *lesion
	f.lesiones[cp.ID] = &cp
	return nil
}

func (f *fakeLesionRepo) Delete(ctx context.Context, id, coachID int64) error {
	if _, err := f.GetByID(ctx, id, coachID); err != nil {
		return err
	}
	delete(f.lesiones, id)
	return nil
}

type fakeNotificationRepo struct {
	notifications map[int64]*domain.Notification
	nextID        int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[int64]*domain.Notification{}}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) (int64, error) {
	f.nextID++
	cp := *n
	cp.ID = f.nextID
	f.notifications[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeNotificationRepo) GetByCoachID(_ context.Context, coachID int64) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.CoachID == coachID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) UnreadCount(_ context.Context, coachID int64) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.CoachID == coachID && !n.Leida {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, coachID int64) error {
	n, ok := f.notifications[id]
	if !ok || n.CoachID != coachID {
		return repository.ErrNotFound
	}
	n.Leida = true
	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id, coachID int64) error {
	n, ok := f.notifications[id]
	if !ok || n.CoachID != coachID {
		return repository.ErrNotFound
	}
	delete(f.notifications, id)
	return nil
}

// fakeSender records every message and can be told to fail per recipient.
type fakeSender struct {
	configured bool
	failFor    map[string]bool
	sent       []email.Message
}

func newFakeSender() *fakeSender {
	return &fakeSender{configured: true, failFor: map[string]bool{}}
}

func (f *fakeSender) Configured() bool { return f.configured }

func (f *fakeSender) Send(_ context.Context, msg email.Message) error {
	if f.failFor[msg.To] {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, msg)
	return nil
}
