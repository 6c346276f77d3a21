package echoapi_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/cumaze/registro-consorcio/apps/api/echo"
	"github.com/cumaze/registro-consorcio/core"
	"github.com/cumaze/registro-consorcio/core/academic"
	"github.com/cumaze/registro-consorcio/core/branding"
	"github.com/cumaze/registro-consorcio/services/metrics"
	"github.com/cumaze/registro-consorcio/services/render"
	"github.com/cumaze/registro-consorcio/services/spreadsheet"
	inmemdb "github.com/cumaze/registro-consorcio/storage/database/inmem"
	"github.com/cumaze/registro-consorcio/storage/prefs"
)

func setup(t *testing.T) *Server {
	t.Helper()
	conf := core.NewTestConfig(t.TempDir())
	logger := core.NopLogger()

	validate, translator := core.NewValidator()
	check := academic.InitValidators(validate, translator)

	db := inmemdb.Open()
	academicSvc := academic.NewService(inmemdb.NewRosterRepository(db), academic.NewImporter(logger, check), logger)
	brandingSvc := branding.NewService(inmemdb.NewAssetRepository(db), prefs.NewYAMLStore(conf.PrefsPath), conf, logger)

	renderer, err := render.NewRenderer()
	require.NoError(t, err)

	return NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Academic:   academicSvc,
		Branding:   brandingSvc,
		Exporter:   render.NewExporter(renderer),
		Metrics:    metrics.New(),
		Validate:   validate,
		Translator: translator,
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	upload   bool
	fileName string
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

// newUploadRequest sends data as the multipart "file" field; an empty fileName sends no file at all.
func newUploadRequest(t *testing.T, method, path, fileName string, data []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("other", "x"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req, httptest.NewRecorder()
}

func do(t *testing.T, app *Server, tt httpTest) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	var rec *httptest.ResponseRecorder
	if tt.upload {
		req, rec = newUploadRequest(t, tt.method, tt.path, tt.fileName, tt.body)
	} else {
		req, rec = newRequest(tt.method, tt.path, tt.body)
	}
	app.ServeHTTP(rec, req)
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// rosterXLSX builds a student sheet with one row per id ("Ana" for the first, "Beto" after).
func rosterXLSX(t *testing.T, ids ...string) []byte {
	t.Helper()
	rows := make([][]string, len(ids))
	for i, id := range ids {
		name := "Beto"
		if i == 0 {
			name = "Ana"
		}
		rows[i] = []string{id, name, "Pérez", "Negocios"}
	}
	return workbookXLSX(t, academic.Sheet{
		Name:   spreadsheet.StudentSheetName,
		Header: []string{"ID de Estudiante", "Nombre Alumno", "Apellido Alumno", "Nombre de la Facultad"},
		Rows:   rows,
	})
}

func workbookXLSX(t *testing.T, sheets ...academic.Sheet) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.Write(academic.Workbook{Sheets: sheets}, &buf))
	return buf.Bytes()
}
