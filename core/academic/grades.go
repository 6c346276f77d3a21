package academic

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
)

// TableStyle selects the transcript layout and its grading rules.
type TableStyle int

const (
	// MaestriaStyle: 25 rows, per-course grade rules.
	MaestriaStyle TableStyle = iota
	// DoctorateStyle: 24 rows, every course in [80,100], average hours/credits columns.
	DoctorateStyle
)

// StyleFor returns the transcript style of a tier.
func StyleFor(t Tier) TableStyle {
	if t.DoctorateStyle() {
		return DoctorateStyle
	}
	return MaestriaStyle
}

// Rows is the fixed transcript length. Averages always divide by it.
func (s TableStyle) Rows() int {
	if s == DoctorateStyle {
		return 24
	}
	return 25
}

// gradeRange is an inclusive numeric range.
type gradeRange struct {
	min, max int
}

var (
	rangeTop       = gradeRange{90, 100}
	rangeThesis    = gradeRange{83, 100}
	rangeDoctorate = gradeRange{80, 100}

	// per-course overrides, checked in order; the first match wins
	maestriaRules = []struct {
		match func(name string) bool
		rng   gradeRange
	}{
		{match: equals("Hombre Trabajo y Sociedad"), rng: gradeRange{70, 79}},
		{match: equals("Microeconomía"), rng: gradeRange{1, 69}},
		{match: equals("Dirección del Factor Humano", "Logística Administrativa", "Operaciones Financieras"), rng: gradeRange{80, 89}},
		{match: startsWith("Análisis", "Marco"), rng: gradeRange{73, 89}},
		{match: equals("Metodología de la investigación"), rng: gradeRange{83, 100}},
	}
)

func equals(names ...string) func(string) bool {
	return func(name string) bool {
		for _, n := range names {
			if name == n {
				return true
			}
		}
		return false
	}
}

func startsWith(prefixes ...string) func(string) bool {
	return func(name string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(name, p) {
				return true
			}
		}
		return false
	}
}

// GradeDetails is a numeric grade with its letter and its "Sistema E" label.
type GradeDetails struct {
	Numeric int    `json:"numeric"`
	Letter  string `json:"alphabetic"`
	Scale   string `json:"systemE"`
}

// Details maps a numeric grade to letter and scale. Lower bounds are inclusive.
func Details(numeric int) GradeDetails {
	d := GradeDetails{Numeric: numeric}
	switch {
	case numeric >= 90:
		d.Letter, d.Scale = "A", "EXCELENTE"
	case numeric >= 83:
		d.Letter, d.Scale = "A", "BUENO"
	case numeric >= 80:
		d.Letter, d.Scale = "B", "BUENO"
	case numeric >= 73:
		d.Letter, d.Scale = "B", "SUFICIENTE"
	case numeric >= 70:
		d.Letter, d.Scale = "C", "SUFICIENTE"
	case numeric >= 1:
		d.Letter, d.Scale = "D", "INSUFICIENTE"
	default:
		d.Letter, d.Scale = "F", "INSUFICIENTE"
	}
	return d
}

// Synthesizer draws grades. It is not safe for concurrent use.
type Synthesizer struct {
	rnd *rand.Rand
}

func NewSynthesizer(src rand.Source) *Synthesizer {
	return &Synthesizer{rnd: rand.New(src)}
}

// SeededSynthesizer returns a Synthesizer whose draws only depend on seed,
// so every view of the same student shows the same grades.
func SeededSynthesizer(seed string) *Synthesizer {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return NewSynthesizer(rand.NewSource(int64(h.Sum64())))
}

func (s *Synthesizer) draw(r gradeRange) int {
	return s.rnd.Intn(r.max-r.min+1) + r.min
}

// Grade draws the grade of a course named name for a transcript of the given style.
func (s *Synthesizer) Grade(style TableStyle, name string) int {
	if style == DoctorateStyle {
		return s.draw(rangeDoctorate)
	}
	for _, rule := range maestriaRules {
		if rule.match(name) {
			return s.draw(rule.rng)
		}
	}
	return s.draw(rangeTop)
}

// Thesis draws a thesis grade.
func (s *Synthesizer) Thesis() int {
	return s.draw(rangeThesis)
}

// Average pads (with zeros) or truncates grades to rows entries and returns their rounded mean.
func Average(grades []int, rows int) int {
	if rows <= 0 {
		return 0
	}
	sum := 0
	for i, g := range grades {
		if i == rows {
			break
		}
		sum += g
	}
	return int(math.Floor(float64(sum)/float64(rows) + .5))
}
