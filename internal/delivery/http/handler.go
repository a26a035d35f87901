package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/macrolens/nutrilog/internal/app"
	"github.com/macrolens/nutrilog/internal/domain"
	"github.com/macrolens/nutrilog/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	foods     *usecase.FoodService
	meals     *usecase.MealService
	settings  *usecase.SettingsService
	totals    *usecase.TotalsService
	hydration *usecase.HydrationService
	log       *usecase.LogService
}

// NewHandler creates a new HTTP handler
func NewHandler(a *app.App) *Handler {
	return &Handler{
		foods:     a.Foods,
		meals:     a.Meals,
		settings:  a.Settings,
		totals:    a.Totals,
		hydration: a.Hydration,
		log:       a.Log,
	}
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error       string `json:"error"`
	RateLimited bool   `json:"rateLimited,omitempty"`
}

// respondError maps a domain error onto a status code and body
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error:       "USDA rate limit reached, try again later",
			RateLimited: true,
		})
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidProfile):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrFoodNotFound),
		errors.Is(err, domain.ErrMealNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUSDAAPIFailure):
		log.Printf("[HTTP] %s %s: upstream failure: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "USDA API request failed"})
	default:
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutrilog",
		"version": "1.0.0",
	})
}

// SearchFoods handles GET /foods/search?query=
func (h *Handler) SearchFoods(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		badRequest(c, "query parameter is required")
		return
	}

	result, err := h.foods.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetFood handles GET /foods/:fdcId
func (h *Handler) GetFood(c *gin.Context) {
	fdcID, err := strconv.Atoi(c.Param("fdcId"))
	if err != nil || fdcID <= 0 {
		badRequest(c, "fdcId must be a positive integer")
		return
	}

	food, err := h.foods.Details(c.Request.Context(), fdcID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// ListSavedFoods handles GET /foods/saved
func (h *Handler) ListSavedFoods(c *gin.Context) {
	saved, err := h.foods.SavedFoods(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": saved})
}

// ToggleSavedFood handles POST /foods/saved
func (h *Handler) ToggleSavedFood(c *gin.Context) {
	var req domain.SavedFood
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	saved, err := h.foods.ToggleSaved(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": saved})
}

// LogEntryView is a log entry with the text shown in the log list
type LogEntryView struct {
	domain.LogEntry
	Label string `json:"label"`
}

// ListLog handles GET /log
func (h *Handler) ListLog(c *gin.Context) {
	entries, err := h.log.Entries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]LogEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, LogEntryView{LogEntry: entry, Label: entry.Label()})
	}
	c.JSON(http.StatusOK, gin.H{"entries": views})
}

// LogFoodRequest is the body of POST /log/foods
type LogFoodRequest struct {
	FdcID int     `json:"fdcId" binding:"required,gt=0"`
	Grams float64 `json:"grams" binding:"required,gt=0"`
}

// LogFood handles POST /log/foods
func (h *Handler) LogFood(c *gin.Context) {
	var req LogFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "fdcId and a positive grams value are required")
		return
	}

	entry, err := h.log.AddFood(c.Request.Context(), req.FdcID, req.Grams)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// LogMeal handles POST /log/meals/:mealId
func (h *Handler) LogMeal(c *gin.Context) {
	entry, err := h.log.AddMeal(c.Request.Context(), c.Param("mealId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// DeleteLogEntry handles DELETE /log/:entryId
func (h *Handler) DeleteLogEntry(c *gin.Context) {
	if err := h.log.Delete(c.Request.Context(), c.Param("entryId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetToday handles DELETE /log/today
func (h *Handler) ResetToday(c *gin.Context) {
	removed, err := h.log.ResetToday(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// GetTotals handles GET /totals?profile=
func (h *Handler) GetTotals(c *gin.Context) {
	snapshot, err := h.log.Snapshot(c.Request.Context(), domain.Profile(c.Query("profile")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ListMeals handles GET /meals
func (h *Handler) ListMeals(c *gin.Context) {
	meals, err := h.meals.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// CreateMeal handles POST /meals
func (h *Handler) CreateMeal(c *gin.Context) {
	var req domain.MealInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	meal, err := h.meals.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// GetMeal handles GET /meals/:id
func (h *Handler) GetMeal(c *gin.Context) {
	meal, err := h.meals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// UpdateMeal handles PUT /meals/:id
func (h *Handler) UpdateMeal(c *gin.Context) {
	var req domain.MealInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	meal, err := h.meals.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DeleteMeal handles DELETE /meals/:id
func (h *Handler) DeleteMeal(c *gin.Context) {
	if err := h.meals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MealCaloriesResponse is the calorie preview of a meal template
type MealCaloriesResponse struct {
	MealID   string   `json:"mealId"`
	Calories *float64 `json:"calories"`
	Hydrated []int    `json:"hydrated"`
}

// GetMealCalories handles GET /meals/:id/calories. Uncached ingredients are
// fetched first; a null calorie value means none of them reports energy yet.
func (h *Handler) GetMealCalories(c *gin.Context) {
	ctx := c.Request.Context()

	meal, err := h.meals.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	hydrated := h.hydration.EnsureCached(ctx, h.hydration.MissingFoodIDs(ctx, meal.Ingredients))

	resp := MealCaloriesResponse{MealID: meal.ID, Hydrated: hydrated}
	if calories, ok := h.totals.MealCalories(ctx, meal.Ingredients); ok {
		resp.Calories = &calories
	}
	c.JSON(http.StatusOK, resp)
}

// HydrateRequest is the body of POST /meals/hydrate
type HydrateRequest struct {
	FdcIDs []int `json:"fdcIds" binding:"required"`
}

// HydrateFoods handles POST /meals/hydrate
func (h *Handler) HydrateFoods(c *gin.Context) {
	var req HydrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "fdcIds is required")
		return
	}

	fetched := h.hydration.EnsureCached(c.Request.Context(), req.FdcIDs)
	c.JSON(http.StatusOK, gin.H{"fetched": fetched})
}

// ProfileRequest is the body of PUT /settings/profile
type ProfileRequest struct {
	Profile domain.Profile `json:"profile" binding:"required"`
}

func profileBody(profile domain.Profile) gin.H {
	return gin.H{"profile": profile, "label": profile.Label()}
}

// GetProfile handles GET /settings/profile
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.settings.Profile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileBody(profile))
}

// SetProfile handles PUT /settings/profile
func (h *Handler) SetProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "profile is required")
		return
	}

	if err := h.settings.SetProfile(c.Request.Context(), req.Profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileBody(req.Profile))
}
