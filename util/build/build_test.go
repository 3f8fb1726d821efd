package build

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlers(t *testing.T) {
	VERSION = "v1.0.0"
	BUILD_DATE = "2026-10-17"
	defer func() {
		VERSION = defaultValue
		BUILD_DATE = defaultValue
	}()

	rec := httptest.NewRecorder()
	HandleVersion(rec, httptest.NewRequest("GET", "/version", nil))
	assert.Equal(t, "v1.0.0", rec.Body.String())

	rec = httptest.NewRecorder()
	HandleBuildDate(rec, httptest.NewRequest("GET", "/builddate", nil))
	assert.Equal(t, "2026-10-17", rec.Body.String())

	assert.Equal(t, "v1.0.0 (built 2026-10-17)", String())
}
