// Package ai generates workout and diet plans through an OpenAI-compatible
// chat completions API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fittrack/internal/middleware"
	"fittrack/internal/models"
)

const (
	// DefaultBaseURL points at Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"

	requestTimeout = 60 * time.Second
	maxTokens      = 4096

	// promptProvenanceLimit caps the prompt copy stored with generated plans.
	promptProvenanceLimit = 500
)

// Generator produces structured plans ready for persistence.
type Generator interface {
	GenerateWorkoutPlan(ctx context.Context, profile models.Profile, prefs WorkoutPreferences) (*models.WorkoutPlanInput, error)
	GenerateDietPlan(ctx context.Context, profile models.Profile, availableFoods []string, goals DietaryGoals) (*models.DietPlanInput, error)
}

// WorkoutPreferences are the client-supplied knobs for workout generation.
type WorkoutPreferences struct {
	Name            string `json:"name"`
	DaysPerWeek     int    `json:"days_per_week"`
	SessionDuration string `json:"session_duration"`
	Equipment       string `json:"equipment"`
	WorkoutType     string `json:"workout_type"`
}

// DietaryGoals are the client-supplied targets for diet generation.
type DietaryGoals struct {
	Name          string  `json:"name"`
	CalorieTarget float64 `json:"calorie_target"`
	ProteinTarget float64 `json:"protein_target"`
	CarbTarget    float64 `json:"carb_target"`
	FatTarget     float64 `json:"fat_target"`
	Restrictions  string  `json:"restrictions"`
	MealsPerDay   int     `json:"meals_per_day"`
	SnacksPerDay  int     `json:"snacks_per_day"`
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient builds a Client. Empty baseURL and model fall back to the Groq
// defaults. An empty apiKey produces a client whose calls all fail with
// EXTERNAL_SERVICE_UNAVAILABLE.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Available reports whether the client has credentials configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// chat sends one completion request and returns the first choice's content.
// Every failure here is terminal for the request; there are no retries.
func (c *Client) chat(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	if !c.Available() {
		return "", models.NewServiceUnavailableError("Plan generation is not configured")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "chat completion request failed", "error", err)
		return "", models.NewServiceUnavailableError("Plan generation service is unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", models.NewServiceUnavailableError("Plan generation service returned an unreadable response")
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		middleware.Logger.ErrorContext(ctx, "chat completion response unparseable",
			"status", resp.StatusCode, "error", err)
		return "", models.NewServiceUnavailableError("Plan generation service returned an invalid response")
	}
	if chatResp.Error != nil {
		middleware.Logger.ErrorContext(ctx, "chat completion API error",
			"status", resp.StatusCode, "type", chatResp.Error.Type, "message", chatResp.Error.Message)
		return "", models.NewServiceUnavailableError("Plan generation service rejected the request")
	}
	if resp.StatusCode != http.StatusOK || len(chatResp.Choices) == 0 {
		return "", models.NewServiceUnavailableError(
			fmt.Sprintf("Plan generation service returned status %d", resp.StatusCode))
	}

	return chatResp.Choices[0].Message.Content, nil
}

// GenerateWorkoutPlan asks the model for a structured workout plan. Malformed
// model output degrades to a minimal single-day plan rather than failing.
func (c *Client) GenerateWorkoutPlan(ctx context.Context, profile models.Profile, prefs WorkoutPreferences) (*models.WorkoutPlanInput, error) {
	prompt := workoutPrompt(profile, prefs)

	content, err := c.chat(ctx, trainerPersona, prompt, 0.7)
	if err != nil {
		middleware.PlanGenerations.WithLabelValues("workout", "error").Inc()
		return nil, err
	}

	plan, degraded := parseWorkoutPlan(ctx, content)
	middleware.PlanGenerations.WithLabelValues("workout", generationOutcome(degraded)).Inc()
	plan.AIGenerated = true
	plan.GenerationPrompt = truncate(prompt, promptProvenanceLimit)
	if prefs.Name != "" {
		plan.Name = prefs.Name
	}
	return plan, nil
}

// GenerateDietPlan asks the model for a structured meal plan built around the
// user's food inventory. Malformed model output degrades to a minimal
// single-meal plan rather than failing.
func (c *Client) GenerateDietPlan(ctx context.Context, profile models.Profile, availableFoods []string, goals DietaryGoals) (*models.DietPlanInput, error) {
	prompt := dietPrompt(profile, availableFoods, goals)

	content, err := c.chat(ctx, dietitianPersona, prompt, 0.7)
	if err != nil {
		middleware.PlanGenerations.WithLabelValues("diet", "error").Inc()
		return nil, err
	}

	plan, degraded := parseDietPlan(ctx, content)
	middleware.PlanGenerations.WithLabelValues("diet", generationOutcome(degraded)).Inc()
	plan.AIGenerated = true
	plan.GenerationPrompt = truncate(prompt, promptProvenanceLimit)
	if goals.Name != "" {
		plan.Name = goals.Name
	}
	return plan, nil
}

func generationOutcome(degraded bool) string {
	if degraded {
		return "fallback"
	}
	return "ok"
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
