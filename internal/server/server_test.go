package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fittrack/internal/ai"
	"fittrack/internal/config"
	"fittrack/internal/credentials"
	"fittrack/internal/database"
	"fittrack/internal/featureflags"
	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubGenerator satisfies ai.Generator with canned plans, recording what the
// handlers passed in.
type stubGenerator struct {
	workoutPlan *models.WorkoutPlanInput
	dietPlan    *models.DietPlanInput
	err         error
	gotProfile  models.Profile
	gotFoods    []string
}

func (g *stubGenerator) GenerateWorkoutPlan(_ context.Context, profile models.Profile, _ ai.WorkoutPreferences) (*models.WorkoutPlanInput, error) {
	g.gotProfile = profile
	if g.err != nil {
		return nil, g.err
	}
	return g.workoutPlan, nil
}

func (g *stubGenerator) GenerateDietPlan(_ context.Context, profile models.Profile, foods []string, _ ai.DietaryGoals) (*models.DietPlanInput, error) {
	g.gotProfile = profile
	g.gotFoods = foods
	if g.err != nil {
		return nil, g.err
	}
	return g.dietPlan, nil
}

func newTestServer(t *testing.T, gen ai.Generator) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.MigrateAll(db))

	dietRepo := repository.NewDietRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	s := &Server{
		config:        &config.Config{Env: "test", Port: "0", SessionTTLHours: 1},
		db:            db,
		creds:         credentials.NewStore(sessionRepo, time.Hour),
		generator:     gen,
		userRepo:      repository.NewUserRepository(db),
		sessionRepo:   sessionRepo,
		workoutRepo:   repository.NewWorkoutRepository(db),
		dietRepo:      dietRepo,
		nutritionRepo: repository.NewNutritionRepository(db, dietRepo),
		progressRepo:  repository.NewProgressRepository(db),
		featureFlags:  featureflags.NewManager("ai_generation=on,new_insights=50%"),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func jsonRequest(t *testing.T, method, target, token string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerTestUser registers a user through the API and returns the issued
// session token.
func registerTestUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	req := jsonRequest(t, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"username":  username,
		"email":     fmt.Sprintf("%s@example.com", username),
		"password":  "secret123",
		"age":       30,
		"height_cm": 180,
		"weight_kg": 80,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLivenessCheck(t *testing.T) {
	_, app := newTestServer(t, &stubGenerator{})

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/health/live", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "up", body["status"])
}

func TestReadinessCheckReportsRedisUnavailable(t *testing.T) {
	_, app := newTestServer(t, &stubGenerator{})

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/health/ready", "", nil))
	require.NoError(t, err)
	// Redis is absent in tests; only the database is required for readiness.
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unavailable", checks["redis"])
}

func TestGetFeatureFlags(t *testing.T) {
	_, app := newTestServer(t, &stubGenerator{})
	token := registerTestUser(t, app, "flaguser")

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/api/feature-flags", token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	flags := body["flags"].(map[string]interface{})
	assert.Equal(t, true, flags["ai_generation"])
	_, hasRollout := flags["new_insights"]
	assert.True(t, hasRollout)
}
