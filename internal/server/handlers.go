package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthassist/backend/internal/assistant"
)

type chatRequest struct {
	Message       string                  `json:"message"`
	Category      string                  `json:"category"`
	UpdateProfile bool                    `json:"update_profile"`
	ProfileData   *assistant.ProfilePatch `json:"profile_data"`
}

type symptomRequest struct {
	Symptoms string `json:"symptoms"`
}

type bmiRequest struct {
	WeightKg float64 `json:"weight"`
	HeightCm float64 `json:"height"`
}

type waterRequest struct {
	WeightKg        float64 `json:"weight"`
	ActivityMinutes int     `json:"activity_minutes"`
}

func (a *App) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": assistant.Categories})
}

func (a *App) chat(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		writeError(c, http.StatusInternalServerError, "Session not initialized")
		return
	}

	var payload chatRequest
	if !mustJSON(c, &payload) {
		return
	}

	var patch *assistant.ProfilePatch
	if payload.UpdateProfile && payload.ProfileData != nil {
		patch = payload.ProfileData
	}

	result, err := a.assistant.Chat(c.Request.Context(), sessionID, assistant.ChatRequest{
		Message:  payload.Message,
		Category: payload.Category,
		Patch:    patch,
	})
	if err != nil {
		a.writeAssistantError(c, err)
		return
	}

	response := gin.H{
		"response":               result.Response,
		"category":               result.Category,
		"suggest_profile_update": result.SuggestProfileUpdate,
	}
	if result.SuggestProfileUpdate {
		response["extracted_info"] = result.ExtractedInfo
	}
	c.JSON(http.StatusOK, response)
}

func (a *App) getProfile(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		writeError(c, http.StatusInternalServerError, "Session not initialized")
		return
	}

	profile, err := a.assistant.Profile(c.Request.Context(), sessionID)
	if err != nil {
		a.writeAssistantError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (a *App) saveProfile(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		writeError(c, http.StatusInternalServerError, "Session not initialized")
		return
	}

	var patch assistant.ProfilePatch
	if !mustJSON(c, &patch) {
		return
	}

	profile, err := a.assistant.UpdateProfile(c.Request.Context(), sessionID, patch)
	if err != nil {
		a.writeAssistantError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

func (a *App) getHistory(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		writeError(c, http.StatusInternalServerError, "Session not initialized")
		return
	}

	history, err := a.assistant.History(c.Request.Context(), sessionID)
	if err != nil {
		a.writeAssistantError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (a *App) clearHistory(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		writeError(c, http.StatusInternalServerError, "Session not initialized")
		return
	}

	if err := a.assistant.ClearHistory(c.Request.Context(), sessionID); err != nil {
		a.writeAssistantError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *App) healthTips(c *gin.Context) {
	tips, err := a.assistant.HealthTips(c.Request.Context(), c.Query("category"))
	if err != nil {
		a.writeAssistantError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

func (a *App) analyzeSymptoms(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		writeError(c, http.StatusInternalServerError, "Session not initialized")
		return
	}

	var payload symptomRequest
	if !mustJSON(c, &payload) {
		return
	}

	analysis, err := a.assistant.AnalyzeSymptoms(c.Request.Context(), sessionID, payload.Symptoms)
	if err != nil {
		a.writeAssistantError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

func (a *App) calculateBMI(c *gin.Context) {
	sessionID, ok := sessionIDFromContext(c)
	if !ok {
		writeError(c, http.StatusInternalServerError, "Session not initialized")
		return
	}

	var payload bmiRequest
	if !mustJSON(c, &payload) {
		return
	}

	result, err := a.assistant.CalculateBMI(c.Request.Context(), sessionID, payload.WeightKg, payload.HeightCm)
	if err != nil {
		a.writeAssistantError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bmi":      result.BMI,
		"category": result.Category,
		"weight":   result.WeightKg,
		"height":   result.HeightCm,
	})
}

func (a *App) waterIntake(c *gin.Context) {
	var payload waterRequest
	if !mustJSON(c, &payload) {
		return
	}

	liters, err := assistant.WaterIntakeLiters(payload.WeightKg, payload.ActivityMinutes)
	if err != nil {
		a.writeAssistantError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"liters":           liters,
		"weight":           payload.WeightKg,
		"activity_minutes": payload.ActivityMinutes,
	})
}

// writeAssistantError maps core errors onto HTTP statuses: caller mistakes
// are 400, upstream model failures are 502, everything else is 500. Each
// request fails independently.
func (a *App) writeAssistantError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var validationErr *assistant.ValidationError
	if errors.As(err, &validationErr) {
		writeError(c, http.StatusBadRequest, validationErr.Detail)
		return
	}
	var generationErr *assistant.GenerationError
	if errors.As(err, &generationErr) {
		log.Printf("model generation failed: %v", generationErr.Err)
		lowered := strings.ToLower(generationErr.Err.Error())
		if strings.Contains(lowered, "gemini_api_key is not configured") {
			writeError(c, http.StatusServiceUnavailable, "AI provider is not configured: set GEMINI_API_KEY")
			return
		}
		if strings.Contains(lowered, "context deadline exceeded") {
			writeError(c, http.StatusBadGateway, "AI provider request timed out")
			return
		}
		writeError(c, http.StatusBadGateway, "AI provider request failed")
		return
	}
	log.Printf("request failed: %v", err)
	writeError(c, http.StatusInternalServerError, "Internal server error")
}
