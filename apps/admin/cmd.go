package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cumaze/registro-consorcio/core"
	"github.com/cumaze/registro-consorcio/core/academic"
	"github.com/cumaze/registro-consorcio/core/branding"
	"github.com/cumaze/registro-consorcio/services/render"
	"github.com/cumaze/registro-consorcio/services/spreadsheet"
	inmemdb "github.com/cumaze/registro-consorcio/storage/database/inmem"
	"github.com/cumaze/registro-consorcio/storage/prefs"
)

// commandLine runs one command against a fresh in-memory session.
type commandLine struct {
	conf   *core.Config
	logger core.Logger
	out    io.Writer
}

// session is what one invocation works with.
type session struct {
	academic *academic.Service
	branding *branding.Service
}

func newCommandLine(conf *core.Config, logger core.Logger, out io.Writer) *commandLine {
	return &commandLine{conf: conf, logger: logger, out: out}
}

func (cli *commandLine) newSession() *session {
	validate, translator := core.NewValidator()
	check := academic.InitValidators(validate, translator)
	db := inmemdb.Open()
	return &session{
		academic: academic.NewService(inmemdb.NewRosterRepository(db), academic.NewImporter(cli.logger, check), cli.logger),
		branding: branding.NewService(inmemdb.NewAssetRepository(db), prefs.NewYAMLStore(cli.conf.PrefsPath), cli.conf, cli.logger),
	}
}

// run executes args (program name included).
func (cli *commandLine) run(args []string) error {
	root := cli.newRootCmd()
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}
	return root.Execute()
}

func (cli *commandLine) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "registro",
		Short:         "Importa planillas de estudiantes y genera sus documentos académicos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.out)
	cmd.AddCommand(
		cli.newImportCmd(),
		cli.newCurriculumCmd(),
		cli.newRenderCmd(),
		cli.newTemplateCmd(),
	)
	return cmd
}

func tierFlag(cmd *cobra.Command, tier *string) {
	cmd.Flags().StringVar(tier, "tier", "", "Nivel académico: licenciatura, maestria, doctorado, tecnico, posdoctorado (obligatorio)")
	_ = cmd.MarkFlagRequired("tier")
}

func (cli *commandLine) newImportCmd() *cobra.Command {
	var (
		tier   string
		search string
		grade  string
	)
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Importa una planilla de estudiantes y lista sus estudiantes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := academic.ParseTier(tier)
			if err != nil {
				return err
			}
			sess := cli.newSession()
			res, err := sess.importFile(t, args[0])
			if err != nil {
				return err
			}
			students, err := sess.academic.Students(academic.QueryFilter{Search: search, Grade: grade})
			if err != nil {
				return err
			}
			r, err := sess.academic.Roster()
			if err != nil {
				return err
			}
			return cli.printImport(res, students, r)
		},
	}
	tierFlag(cmd, &tier)
	cmd.Flags().StringVar(&search, "search", "", "Filtra por nombre, apellido o id")
	cmd.Flags().StringVar(&grade, "grade", academic.GradeAll, "Filtra por nivel académico")
	return cmd
}

func (cli *commandLine) newCurriculumCmd() *cobra.Command {
	var (
		tier    string
		student string
	)
	cmd := &cobra.Command{
		Use:   "curriculum",
		Short: "Muestra la lista de cursos que recibe un estudiante del nivel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := academic.ParseTier(tier)
			if err != nil {
				return err
			}
			courses := academic.CurriculumFor(t).Assemble(student)
			w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCURSO\tCRÉDITOS")
			for _, c := range courses {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Credits)
			}
			return w.Flush()
		},
	}
	tierFlag(cmd, &tier)
	cmd.Flags().StringVar(&student, "student", "", "Id del estudiante que fija la selección de electivas (obligatorio)")
	_ = cmd.MarkFlagRequired("student")
	return cmd
}

func (cli *commandLine) newRenderCmd() *cobra.Command {
	var (
		tier         string
		student      string
		doc          string
		outDir       string
		institution  string
		observations string
		images       map[string]string
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Importa una planilla y escribe el documento de un estudiante en PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := academic.ParseTier(tier)
			if err != nil {
				return err
			}
			kind, err := academic.ParseDocumentKind(doc)
			if err != nil {
				return err
			}
			sess := cli.newSession()
			if _, err = sess.importFile(t, args[0]); err != nil {
				return err
			}
			if err = sess.loadImages(images); err != nil {
				return err
			}

			assets := sess.branding.Assets()
			if strings.TrimSpace(institution) != "" {
				assets.Institution = strings.TrimSpace(institution)
			}
			document, err := sess.academic.Document(kind, student, academic.NewDocumentContext(assets, observations))
			if err != nil {
				return err
			}

			renderer, err := render.NewRenderer()
			if err != nil {
				return err
			}
			name, data, err := render.NewExporter(renderer).Export(document, assets)
			if err != nil {
				return err
			}
			if err = os.MkdirAll(outDir, 0o755); err != nil {
				return errors.Wrap(err, "creating output dir")
			}
			path := filepath.Join(outDir, name)
			if err = os.WriteFile(path, data, 0o644); err != nil {
				return errors.Wrap(err, "writing pdf")
			}
			fmt.Fprintln(cli.out, path)
			return nil
		},
	}
	tierFlag(cmd, &tier)
	cmd.Flags().StringVar(&student, "student", "", "Id del estudiante (obligatorio)")
	cmd.Flags().StringVar(&doc, "doc", string(academic.KindKardex), "Documento: kardex, homologacion, tesis, cierre")
	cmd.Flags().StringVar(&outDir, "out", ".", "Directorio de salida")
	cmd.Flags().StringVar(&institution, "institution", "", "Nombre de la institución para este documento (por defecto el guardado)")
	cmd.Flags().StringVar(&observations, "observations", "", "Texto de Observaciones del kardex")
	cmd.Flags().StringToStringVar(&images, "image", nil, "Imagen por rol, p. ej. --image logo=logo.png,secretary=firma.jpg")
	_ = cmd.MarkFlagRequired("student")
	return cmd
}

func (cli *commandLine) newTemplateCmd() *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "template OUT.xlsx",
		Short: "Escribe una planilla de estudiantes vacía",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := academic.ParseTier(tier)
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return errors.Wrap(err, "creating template")
			}
			if err = spreadsheet.Template(t, f); err != nil {
				_ = f.Close()
				return err
			}
			if err = f.Close(); err != nil {
				return errors.Wrap(err, "closing template")
			}
			fmt.Fprintln(cli.out, args[0])
			return nil
		},
	}
	tierFlag(cmd, &tier)
	return cmd
}

func (sess *session) importFile(t academic.Tier, path string) (academic.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return academic.ImportResult{}, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	wb, err := spreadsheet.Read(f, filepath.Base(path))
	if err != nil {
		return academic.ImportResult{}, err
	}
	return sess.academic.Import(t, wb)
}

// loadImages uploads role=path pairs into the session.
func (sess *session) loadImages(images map[string]string) error {
	for r, path := range images {
		role, err := branding.ParseRole(r)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s image", role)
		}
		if _, err = sess.branding.SetImage(role, data); err != nil {
			return errors.Wrapf(err, "loading %s image", role)
		}
	}
	return nil
}

func (cli *commandLine) printImport(res academic.ImportResult, students []academic.Student, r academic.Roster) error {
	fmt.Fprintf(cli.out, "%s: %d estudiantes, %d cursos de planilla\n", academic.BatchDisplayName(res.BatchID, nil), res.Students, res.SheetCourses)
	for _, h := range res.UnknownHeaders {
		if h.Suggestion != "" {
			fmt.Fprintf(cli.out, "columna desconocida %q en %s (¿%s?)\n", h.Header, h.Sheet, h.Suggestion)
		} else {
			fmt.Fprintf(cli.out, "columna desconocida %q en %s\n", h.Header, h.Sheet)
		}
	}
	for _, issue := range res.CourseIssues {
		fmt.Fprintf(cli.out, "%s / %s: %s\n", issue.StudentID, issue.CourseID, strings.Join(issue.Messages, " "))
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tGRADO\tCURSOS")
	for _, s := range students {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.StudentID, s.FullName(), s.GradeLevel, len(r.CoursesByStudent[s.StudentID]))
	}
	return w.Flush()
}
