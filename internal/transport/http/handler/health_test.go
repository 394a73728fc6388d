package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"onboardhub/internal/bootstrap"
	"onboardhub/internal/config"
	"onboardhub/internal/knowledge"
	"onboardhub/internal/model"
	"onboardhub/internal/repository"
)

func newHealthApp(t *testing.T, migrate bool) *bootstrap.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	if migrate {
		require.NoError(t, db.AutoMigrate(&model.KnowledgeEntry{}))
	}

	log := zap.NewNop().Sugar()
	return &bootstrap.App{
		Config:    &config.Config{App: config.AppConfig{Name: "onboardhub", Env: "test"}},
		Log:       log,
		DB:        db,
		Store:     knowledge.NewStore(repository.NewKnowledgeEntryRepository(db), nil, log),
		StartedAt: time.Now(),
	}
}

func serveHealth(t *testing.T, app *bootstrap.App) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/healthz", NewHealthHandler(app).Check)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

func TestHealthCheck_ReportsDependencies(t *testing.T) {
	app := newHealthApp(t, true)

	w, payload := serveHealth(t, app)

	// no rabbitmq connection in the test app, so overall health degrades
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "onboardhub", payload["app"])
	assert.Contains(t, payload, "indexed_chunks")

	deps, ok := payload["dependencies"].(map[string]interface{})
	require.True(t, ok)
	assert.True(t, deps["database"].(map[string]interface{})["ok"].(bool))
	assert.True(t, deps["redis"].(map[string]interface{})["ok"].(bool))
	assert.False(t, deps["rabbitmq"].(map[string]interface{})["ok"].(bool))
}

// A failing chunk count must not break the health report; it is logged and
// the payload still renders.
func TestHealthCheck_CountFailureStillResponds(t *testing.T) {
	app := newHealthApp(t, false)

	w, payload := serveHealth(t, app)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, payload, "indexed_chunks")
	assert.Contains(t, payload, "dependencies")
}
