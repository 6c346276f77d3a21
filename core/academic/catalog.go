package academic

import "github.com/shopspring/decimal"

// Catalog tables. They are never mutated: every accessor hands out a copy.
var (
	inductionCourses = templates("5.4",
		"Formación virtual",
		"Epistemología del conocimiento científico",
		"Técnicas de enseñanza y aprendizaje",
		"Metodologías de la investigación científica",
		"Entorno económico, social y ambiental en el ámbito mundial y nacional",
	)

	maestriaBasicCourses = templates("5.4",
		"Teorías Administrativas y desarrollo organizacional",
		"Metodología de la investigación",
		"Análisis del entorno económico",
		"Marco legal y derecho corporativo",
		"Desarrollo de competencias directivas y liderazgo",
		"Contabilidad general y financiera",
		"Definición del proyecto de investigación",
	)

	maestriaProfessionalCourses = templates("5.4",
		"Entorno Tecnológico y Sistemas de Información",
		"Gestión de Proyectos Y plan de negocios",
		"Ética Empresarial y Responsabilidad Social Corporación",
		"Marketing y Gestión comercial",
		"Planeación financiera y Control de Presupuesto",
		"Gestión de Capital Humano",
		"Decisiones de Inversión y Financiamiento",
		"Dirección y gobierno de la empresa familiar",
		"Estrategias Fiscales y Financieras",
		"Innovación y Desarrollo de Negocios",
		"Derechos de las Obligaciones y Contratos",
	)

	licenciaturaBasicCourses = templates("5.7",
		"Teoría Económica",
		"Economía Aplicada a los negocios",
		"Bases Jurídicas de la empresa",
		"Fundamentos de la administración",
		"Fundamentos de Contabilidad",
		"Contabilidad Aplicada a los Negocios",
		"Derecho Mercantil",
		"Desarrollo de Habilidades digitales",
		"Estadística Aplicada a los Negocios",
		"Contabilidad de Costos",
		"Ética y Responsabilidad Social Empresarial",
		"Contabilidad Administrativa",
		"Programación y Presupuestos",
		"Derecho Fiscal",
		"Productividad y Calidad total",
		"Estrategias competitivas y Plan de Negocios",
		"Cultura Emprendedora",
		"Formulación y Evaluación de Proyectos I",
		"Formulación y Evaluación de Proyectos II",
		"Inteligencia de los Negocios",
	)

	licenciaturaProfessionalCourses = templates("5.7",
		"Marketing digital",
		"Publicidad, promoción y manejo de medios",
		"Aspectos legales y etica en la mercadotecnia",
		"Cadena de suministros",
		"Finanzas internacionales",
		"Finanzas corporativas",
		"Administración fiscal financiera",
		"Provisión y capacitación del factor humano",
		"Administración de nóminas",
		"Derecho laboral",
		"Seguridad social",
		"Teoría del comercio internacional",
		"Cotizaciones y contratos internacionales",
		"Legislación aduanera y aranceles",
		"Fuentes e instrumentos de financiamiento a empresas",
		"Competencias gerenciales",
		"Liderazgo y conducción de equipos",
		"Comunicación eficaz",
		"Innovaciones tecnológicas en la administración",
		"Ingeniería financiera y valuación",
		"Creatividad e innovación aplicada",
		"Psicología y conducta del consumidor",
		"Estrategias de negociación y ventas",
	)

	tecnicoProfessionalCourses = templates("4.33",
		"Marketing digital",
		"Publicidad, promoción y manejo de medios",
		"Liderazgo y conducción de equipos",
		"Comunicación eficaz",
		"Finanzas internacionales y corporativas",
		"Competencias gerenciales",
		"Administración fiscal financiera",
		"Provisión y capacitación del factor humano",
		"Innovaciones tecnológicas en la administración",
		"Derecho laboral",
		"Seguridad social",
		"Teoría del comercio internacional",
		"Ingeniería financiera y valuación",
		"Creatividad e innovación aplicada",
		"Estrategias de negociación y ventas",
	)

	doctoradoBasicCourses = templates("5.4",
		"Ingeniería económica",
		"Métodos y diseño del protocolo de investigación",
		"Instrumento para la toma de decisiones (Contables y Financieras)",
		"Análisis cuantitativos aplicados",
		"Liderazgo y talento empresarial",
		"Proceso del proyecto de investigación",
	)

	doctoradoProfessionalCourses = append(
		templates("5.4",
			"Tópicos de gestión fiscal y financiera",
			"Tópicos sobre la empresa corporativa o familiar",
		),
		templates("5.25",
			"Marketing e inteligencia en los negocios",
			"Gobierno, empresa y corporativismo",
			"Innovación y emprendimiento",
			"Tópicos de humanismo y empresa",
			"Ética y responsabilidad social empresarial",
			"Tópicos sobre el estado del arte y la globalidad",
		)...,
	)

	// course names of the origin institution, served as a reference table by the catalog API
	usmCourses = templates("3",
		"Teorías Administrativas y Desarrollo Organizacional",
		"Metodología de la Investigación",
		"Análisis del Entorno Económico",
		"Marco Legal y Derecho Corporativo",
		"Desarrollo de Competencias Directivas y Liderazgo",
		"Contabilidad General y Financiera",
		"Definición del Proyecto de Investigación",
		"Entorno Tecnológico y Sistemas de Información",
		"Gestión de Proyectos y Plan de Negocios",
		"Ética Empresarial y Responsabilidad Social Corporativa",
		"Marketing y Gestión Comercial",
		"Planeación Financiera y Control de Presupuesto",
		"Gestión de Capital Humano",
		"Decisiones de Inversión y Financiamiento",
		"Dirección y Gobierno de la Empresa Familiar",
		"Estrategias Fiscales y Financieras",
		"Innovación y Desarrollo de Negocios",
		"Derechos de las Obligaciones y Contratos",
		"Trabajo de Grado I",
		"Trabajo de Grado II",
	)
)

// Curriculum is the catalog slice of one tier.
type Curriculum struct {
	Tier Tier `json:"tier"`
	// Induction and Basic are always taken whole.
	Induction []CourseTemplate `json:"induction"`
	Basic     []CourseTemplate `json:"basic"`
	// Electives is the pool ElectiveCount courses are drawn from.
	Electives     []CourseTemplate `json:"electives"`
	ElectiveCount int              `json:"electiveCount"`

	basicPrefix    string
	electivePrefix string
	seedSuffix     string
}

// CurriculumFor returns a copy of the catalog for t. Unknown tiers get the Maestría curriculum.
func CurriculumFor(t Tier) Curriculum {
	c := Curriculum{Tier: t, Induction: clone(inductionCourses)}
	switch t {
	case TierLicenciatura:
		c.Basic, c.basicPrefix = clone(licenciaturaBasicCourses), prefixLicenciaturaBasic
		c.Electives, c.electivePrefix, c.seedSuffix = clone(licenciaturaProfessionalCourses), prefixLicenciaturaProf, "lic-prof"
		c.ElectiveCount = 10
	case TierDoctorado, TierPosdoctorado:
		c.Basic, c.basicPrefix = clone(doctoradoBasicCourses), prefixDoctoradoBasic
		c.Electives, c.electivePrefix, c.seedSuffix = clone(doctoradoProfessionalCourses), prefixDoctoradoProf, "doc-prof"
		c.ElectiveCount = 4
	case TierTecnico:
		c.Basic = []CourseTemplate{}
		c.Electives, c.electivePrefix, c.seedSuffix = clone(tecnicoProfessionalCourses), prefixTecnicoProf, "tec-prof"
		c.ElectiveCount = 5
	default:
		c.Tier = TierMaestria
		c.Basic, c.basicPrefix = clone(maestriaBasicCourses), prefixMaestriaBasic
		c.Electives, c.electivePrefix, c.seedSuffix = clone(maestriaProfessionalCourses), prefixMaestriaProf, "prof"
		c.ElectiveCount = 5
	}
	return c
}

// InductionCourses returns the induction block shared by every tier.
func InductionCourses() []CourseTemplate { return clone(inductionCourses) }

// USMCourses returns the course names of the origin institution.
func USMCourses() []CourseTemplate { return clone(usmCourses) }

func templates(credits string, names ...string) []CourseTemplate {
	cr := decimal.RequireFromString(credits)
	out := make([]CourseTemplate, len(names))
	for i, n := range names {
		out[i] = CourseTemplate{Name: n, Credits: cr}
	}
	return out
}

func clone(ts []CourseTemplate) []CourseTemplate {
	return append([]CourseTemplate(nil), ts...)
}
