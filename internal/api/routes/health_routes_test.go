package routes

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northpole96/habit/internal/infrastructure/persistence/sqlite/connection"
	"github.com/northpole96/habit/pkg/config"
)

func TestHealthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "health.db")
	db, err := connection.NewDatabase(cfg)
	require.NoError(t, err)

	router := gin.New()
	SetupHealthRoutes(router, db)

	t.Run("liveness and readiness with a reachable store", func(t *testing.T) {
		for _, path := range []string{"/health", "/health/ready"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("readiness fails once the store is gone", func(t *testing.T) {
		sqlDB, err := db.DB.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		// Liveness stays green; the process itself is fine.
		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
