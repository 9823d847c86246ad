package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRequestIDRouter returns a router whose handler reports the stored ID.
func newRequestIDRouter(captured *string) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		*captured = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRequestID_GeneratesUUIDv4(t *testing.T) {
	var captured string
	router := newRequestIDRouter(&captured)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, captured)
	assert.Equal(t, captured, w.Header().Get(RequestIDHeader))

	parsed, err := uuid.Parse(captured)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestRequestID_PreservesIncomingHeader(t *testing.T) {
	var captured string
	router := newRequestIDRouter(&captured)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "test-request-id-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "test-request-id-123", captured)
	assert.Equal(t, "test-request-id-123", w.Header().Get(RequestIDHeader))
}

func TestRequestID_RejectsInvalidHeaders(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "too long", id: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "newline", id: "abc\ndef"},
		{name: "tab", id: "abc\tdef"},
		{name: "delete char", id: "abc\x7fdef"},
		{name: "non ascii", id: "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			router := newRequestIDRouter(&captured)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.id)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.NotEqual(t, tt.id, captured)
			_, err := uuid.Parse(captured)
			assert.NoError(t, err, "invalid header should be replaced with a UUID")
			assert.Equal(t, captured, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestIsValidRequestID(t *testing.T) {
	assert.False(t, isValidRequestID(""))
	assert.True(t, isValidRequestID("a"))
	assert.True(t, isValidRequestID("with space ~"))
	assert.True(t, isValidRequestID(strings.Repeat("x", maxRequestIDLength)))
	assert.False(t, isValidRequestID(strings.Repeat("x", maxRequestIDLength+1)))
}

func TestGetRequestID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}
