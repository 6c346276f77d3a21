package academic

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/cumaze/registro-consorcio/core"
)

var (
	// errors
	ErrStudentNotFound = errors.New("estudiante no encontrado")
	ErrCourseNotFound  = errors.New("curso no encontrado")
	ErrBatchNotFound   = errors.New("lote no encontrado")
	ErrNoRoster        = errors.New("no hay datos académicos cargados")

	errBlankCourseName = "El nombre del curso no puede estar vacío."
)

type (
	// Repository holds the session state. Every write replaces the whole value.
	Repository interface {
		LoadRoster() (Roster, error)
		SaveRoster(r Roster) error
		ClearRoster() error
		// SaveSpecialization remembers the last specialization pool uploaded for spec.Tier.
		SaveSpecialization(spec Specialization) error
		Specializations() (map[Tier]Specialization, error)
		ClearSpecializations() error
	}

	// Batch is the set of students created by one import.
	Batch struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Students int    `json:"students"`
	}

	Service struct {
		repo     Repository
		importer *Importer
		logger   core.Logger
		now      func() time.Time
		loc      *time.Location

		// serializes read-modify-write sequences on the roster
		mu sync.Mutex
	}
)

func NewService(repo Repository, importer *Importer, logger core.Logger) *Service {
	return &Service{repo: repo, importer: importer, logger: logger, now: time.Now, loc: time.Local}
}

// Import parses wb for tier t and merges it into the session. A failed import changes nothing.
func (svc *Service) Import(t Tier, wb Workbook) (ImportResult, error) {
	res, err := svc.importer.Import(t, wb)
	if err != nil {
		return ImportResult{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	current, err := svc.repo.LoadRoster()
	if err != nil {
		return ImportResult{}, errors.Wrap(err, "loading roster")
	}
	if err = svc.repo.SaveRoster(current.Merge(res.Roster)); err != nil {
		return ImportResult{}, errors.Wrap(err, "saving roster")
	}
	svc.logger.Info("roster imported", map[string]interface{}{
		"batchId": res.BatchID, "students": res.Students, "sheetCourses": res.SheetCourses,
	})
	return res, nil
}

// Roster returns a copy of the whole session state.
func (svc *Service) Roster() (Roster, error) {
	return svc.repo.LoadRoster()
}

func (svc *Service) Students(filter QueryFilter) ([]Student, error) {
	r, err := svc.repo.LoadRoster()
	if err != nil {
		return nil, err
	}
	return FilterStudents(r.Students, filter), nil
}

// Student returns the student with its course list.
func (svc *Service) Student(id string) (Student, []Course, error) {
	r, err := svc.repo.LoadRoster()
	if err != nil {
		return Student{}, nil, err
	}
	if len(r.Students) == 0 {
		return Student{}, nil, ErrNoRoster
	}
	s, ok := findStudent(r, id)
	if !ok {
		return Student{}, nil, ErrStudentNotFound
	}
	courses := r.CoursesByStudent[s.StudentID]
	if courses == nil {
		courses = []Course{}
	}
	return s, courses, nil
}

// RenameCourse sets the (trimmed) name of one course of a student.
func (svc *Service) RenameCourse(studentID, courseID, name string) (Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Course{}, core.NewValidationError(nil, core.FieldError{Field: "name", Error: errBlankCourseName})
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, err := svc.repo.LoadRoster()
	if err != nil {
		return Course{}, err
	}
	if _, ok := findStudent(r, studentID); !ok {
		return Course{}, ErrStudentNotFound
	}
	courses := r.CoursesByStudent[studentID]
	for i := range courses {
		if courses[i].ID == courseID {
			courses[i].Name = name
			if err = svc.repo.SaveRoster(r); err != nil {
				return Course{}, errors.Wrap(err, "saving roster")
			}
			return courses[i], nil
		}
	}
	return Course{}, ErrCourseNotFound
}

// Batches lists the import batches still present, in roster order.
func (svc *Service) Batches() ([]Batch, error) {
	r, err := svc.repo.LoadRoster()
	if err != nil {
		return nil, err
	}
	batches := make([]Batch, 0)
	index := make(map[string]int)
	for _, s := range r.Students {
		if i, ok := index[s.BatchID]; ok {
			batches[i].Students++
			continue
		}
		index[s.BatchID] = len(batches)
		batches = append(batches, Batch{ID: s.BatchID, Name: BatchDisplayName(s.BatchID, svc.loc), Students: 1})
	}
	return batches, nil
}

// DeleteBatch removes every student of the batch and their course lists.
// Deleting the last batch resets the session.
func (svc *Service) DeleteBatch(batchID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, err := svc.repo.LoadRoster()
	if err != nil {
		return err
	}
	if len(r.Students) == 0 {
		return ErrNoRoster
	}
	remaining := NewRoster()
	found := false
	for _, s := range r.Students {
		if s.BatchID == batchID {
			found = true
			continue
		}
		remaining.Students = append(remaining.Students, s)
		if cs, ok := r.CoursesByStudent[s.StudentID]; ok {
			remaining.CoursesByStudent[s.StudentID] = cs
		}
	}
	if !found {
		return ErrBatchNotFound
	}
	if len(remaining.Students) == 0 {
		return svc.reset()
	}
	return svc.repo.SaveRoster(remaining)
}

// Reset clears the roster and the specialization pools.
func (svc *Service) Reset() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.reset()
}

func (svc *Service) reset() error {
	if err := svc.repo.ClearRoster(); err != nil {
		return errors.Wrap(err, "clearing roster")
	}
	if err := svc.repo.ClearSpecializations(); err != nil {
		// the roster is already gone: a half reset session cannot be served
		return errors.Wrap(core.NewShutdownError(err.Error()), "clearing specializations")
	}
	return nil
}

// UploadSpecialization parses a specialization workbook, remembers its pool and
// replaces the specialization courses of the student with a draw from it.
func (svc *Service) UploadSpecialization(studentID string, wb Workbook) ([]Course, error) {
	spec, err := ParseSpecialization(wb)
	if err != nil {
		return nil, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, err := svc.repo.LoadRoster()
	if err != nil {
		return nil, err
	}
	s, ok := findStudent(r, studentID)
	if !ok {
		return nil, ErrStudentNotFound
	}
	if err = svc.repo.SaveSpecialization(spec); err != nil {
		return nil, errors.Wrap(err, "saving specialization pool")
	}

	courses, changed := spec.Inject(s, r.CoursesByStudent[s.StudentID], svc.now().UnixMilli())
	if !changed {
		svc.logger.Info("specialization pool saved without changing courses", map[string]interface{}{
			"studentId": s.StudentID, "tier": spec.Tier.Key(),
		})
		return courses, nil
	}
	r.CoursesByStudent[s.StudentID] = courses
	if err = svc.repo.SaveRoster(r); err != nil {
		return nil, errors.Wrap(err, "saving roster")
	}
	return courses, nil
}

// Specializations returns the remembered pools sorted by tier.
func (svc *Service) Specializations() ([]Specialization, error) {
	pools, err := svc.repo.Specializations()
	if err != nil {
		return nil, err
	}
	out := make([]Specialization, 0, len(pools))
	for _, p := range pools {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tier < out[j].Tier })
	return out, nil
}

// Document builds a document view of a student.
func (svc *Service) Document(kind DocumentKind, studentID string, ctx DocumentContext) (Document, error) {
	s, courses, err := svc.Student(studentID)
	if err != nil {
		return Document{}, err
	}
	if ctx.Now.IsZero() {
		ctx.Now = svc.now()
	}
	return BuildDocument(kind, s, courses, ctx)
}

func findStudent(r Roster, id string) (Student, bool) {
	for _, s := range r.Students {
		if s.StudentID == id {
			if s.Tier == TierUnknown {
				s.Tier, _ = ParseTier(s.GradeLevel)
			}
			return s, true
		}
	}
	return Student{}, false
}

// BatchDisplayName renders a batch id ("Maestria-1700000000000") as "Lote: Maestria @ 22:13".
func BatchDisplayName(batchID string, loc *time.Location) string {
	grade, rest, _ := strings.Cut(batchID, "-")
	clock := "--:--"
	if ms, err := strconv.ParseInt(rest, 10, 64); err == nil {
		if loc == nil {
			loc = time.Local
		}
		clock = time.UnixMilli(ms).In(loc).Format("15:04")
	}
	return "Lote: " + grade + " @ " + clock
}
