package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/notesnap/notesnap-api/auth"
	"github.com/notesnap/notesnap-api/config"
	"github.com/notesnap/notesnap-api/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func protected(db *gorm.DB) (http.HandlerFunc, *models.User) {
	seen := &models.User{}
	handler := RequireSession(db, testSecret)(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r)
		if ok {
			*seen = *user
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return handler, seen
}

func TestRequireSessionAttachesUser(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.User{Username: "alice"}).Error)

	token, err := auth.CreateToken(testSecret, "alice")
	require.NoError(t, err)

	handler, seen := protected(db)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "alice", seen.Username)
}

func TestRequireSessionRejectsMissingCookie(t *testing.T) {
	handler, _ := protected(newTestDB(t))
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionRejectsBadToken(t *testing.T) {
	handler, _ := protected(newTestDB(t))
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionRejectsUnknownUser(t *testing.T) {
	// A valid token for a user that was never created (or has been removed)
	// must not open a session.
	db := newTestDB(t)
	token, err := auth.CreateToken(testSecret, "ghost")
	require.NoError(t, err)

	handler, _ := protected(db)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf)

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/decks/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"path":"/api/decks/nope"`)
}
