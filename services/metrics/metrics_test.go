package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ImportDone("Maestria", 3, nil)
	m.ImportDone("Maestria", 2, nil)
	m.ImportDone("Maestria", 0, errors.New("bad file"))
	m.DocumentBuilt("kardex", "pdf")
	m.SessionSize(5)
	m.RequestDone(http.MethodGet, "/v1/students", "200", 20*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.imports.WithLabelValues("Maestria", ResultOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.imports.WithLabelValues("Maestria", ResultError)))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.studentsImported.WithLabelValues("Maestria")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.documents.WithLabelValues("kardex", "pdf")))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.sessionStudents))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `registro_imports_total{result="ok",tier="Maestria"} 2`)
	assert.Contains(t, rec.Body.String(), "registro_http_request_duration_seconds_bucket")
}
