package server

import (
	"fmt"
	"testing"

	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workoutPlanBody() fiber.Map {
	return fiber.Map{
		"name":           "Push Pull Legs",
		"description":    "Classic split",
		"duration_weeks": 6,
		"days": []fiber.Map{
			{
				"day_number": 1,
				"day_name":   "Push",
				"focus_area": "Chest",
				"exercises": []fiber.Map{
					{"name": "Bench Press", "sets": 4, "reps": "5", "weight_kg": 60, "rest_seconds": 150},
				},
			},
		},
	}
}

func TestWorkoutPlanCRUD(t *testing.T) {
	_, app := newTestServer(t, &stubGenerator{})
	token := registerTestUser(t, app, "lifter")

	// Create
	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/workouts/plans", token, workoutPlanBody()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	created := decodeBody(t, resp)
	planID := int(created["id"].(float64))
	assert.Equal(t, "Push Pull Legs", created["name"])
	days := created["days"].([]interface{})
	require.Len(t, days, 1)

	// List
	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, "/api/workouts/plans", token, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decodeBody(t, resp)
	assert.Len(t, list["plans"].([]interface{}), 1)

	// Detail
	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, fmt.Sprintf("/api/workouts/plans/%d", planID), token, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decodeBody(t, resp)
	day := detail["days"].([]interface{})[0].(map[string]interface{})
	exercise := day["exercises"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Bench Press", exercise["exercise"].(map[string]interface{})["name"])

	// Delete
	resp, err = app.Test(jsonRequest(t, fiber.MethodDelete, fmt.Sprintf("/api/workouts/plans/%d", planID), token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, fmt.Sprintf("/api/workouts/plans/%d", planID), token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWorkoutPlanNotVisibleToOtherUsers(t *testing.T) {
	_, app := newTestServer(t, &stubGenerator{})
	owner := registerTestUser(t, app, "owner")
	intruder := registerTestUser(t, app, "intruder")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/workouts/plans", owner, workoutPlanBody()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	planID := int(decodeBody(t, resp)["id"].(float64))

	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, fmt.Sprintf("/api/workouts/plans/%d", planID), intruder, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodDelete, fmt.Sprintf("/api/workouts/plans/%d", planID), intruder, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWorkoutPlanInvalidID(t *testing.T) {
	_, app := newTestServer(t, &stubGenerator{})
	token := registerTestUser(t, app, "badid")

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/api/workouts/plans/abc", token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateWorkoutPlan(t *testing.T) {
	gen := &stubGenerator{
		workoutPlan: &models.WorkoutPlanInput{
			Name:             "Generated Block",
			Description:      "From the model",
			DurationWeeks:    4,
			AIGenerated:      true,
			GenerationPrompt: "Create a plan...",
			Days: []models.WorkoutDayInput{
				{
					DayNumber: 1,
					DayName:   "Full Body",
					Exercises: []models.WorkoutExerciseInput{
						{Name: "Goblet Squat", Sets: 3, Reps: "10"},
					},
				},
			},
		},
	}
	_, app := newTestServer(t, gen)
	token := registerTestUser(t, app, "genuser")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/workouts/generate", token, fiber.Map{
		"days_per_week": 3,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Generated Block", body["name"])
	assert.Equal(t, true, body["ai_generated"])
	assert.NotZero(t, body["id"])

	// The profile from registration feeds generation.
	assert.Equal(t, 80.0, gen.gotProfile.WeightKg)
	assert.Equal(t, 180.0, gen.gotProfile.HeightCm)

	// The generated plan is persisted, not just echoed.
	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, "/api/workouts/plans", token, nil))
	require.NoError(t, err)
	list := decodeBody(t, resp)
	assert.Len(t, list["plans"].([]interface{}), 1)
}

func TestGenerateWorkoutPlanServiceUnavailable(t *testing.T) {
	gen := &stubGenerator{err: models.NewServiceUnavailableError("Plan generation is not configured")}
	_, app := newTestServer(t, gen)
	token := registerTestUser(t, app, "nogen")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/workouts/generate", token, fiber.Map{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "EXTERNAL_SERVICE_UNAVAILABLE", body["code"])
}

func TestLogWorkoutAndHistory(t *testing.T) {
	_, app := newTestServer(t, &stubGenerator{})
	token := registerTestUser(t, app, "logger")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/workouts/plans", token, workoutPlanBody()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	day := created["days"].([]interface{})[0].(map[string]interface{})
	dayID := int(day["id"].(float64))
	exercise := day["exercises"].([]interface{})[0].(map[string]interface{})
	exerciseID := int(exercise["exercise_id"].(float64))

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/workouts/logs", token, fiber.Map{
		"workout_day_id":   dayID,
		"duration_minutes": 50,
		"exercises": []fiber.Map{
			{"exercise_id": exerciseID, "sets_completed": 4, "reps_completed": 5, "weight_used_kg": 60},
		},
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotZero(t, decodeBody(t, resp)["id"])

	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, "/api/workouts/history?range=1+Week", token, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	history := decodeBody(t, resp)["history"].([]interface{})
	require.Len(t, history, 1)
	row := history[0].(map[string]interface{})
	assert.Equal(t, "Push Pull Legs", row["name"])
	assert.Equal(t, 1200.0, row["volume"])
}

func TestLogWorkoutRequiresDayID(t *testing.T) {
	_, app := newTestServer(t, &stubGenerator{})
	token := registerTestUser(t, app, "noday")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/workouts/logs", token, fiber.Map{
		"duration_minutes": 30,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
