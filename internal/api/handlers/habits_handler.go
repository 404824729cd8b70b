package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/northpole96/habit/internal/api/dto"
	"github.com/northpole96/habit/internal/domain/habits"
)

// HabitsHandler handles HTTP requests for habits operations
type HabitsHandler struct {
	service habits.Service
}

// NewHabitsHandler creates a new HabitsHandler instance
func NewHabitsHandler(service habits.Service) *HabitsHandler {
	return &HabitsHandler{service: service}
}

// today resolves the grid/stats anchor date. The engine never reads the
// wall clock itself; an explicit ?today=YYYY-MM-DD overrides the server
// clock, which keeps responses reproducible for clients and tests.
func today(c *gin.Context) (time.Time, bool) {
	if s := c.Query("today"); s != "" {
		t, err := time.Parse(habits.DayLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid today format, expected YYYY-MM-DD"})
			return time.Time{}, false
		}
		return t, true
	}
	return time.Now(), true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, habits.ErrHabitNotFound):
		return http.StatusNotFound
	case errors.Is(err, habits.ErrInvalidInput), errors.Is(err, habits.ErrInvalidDay):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateHabit handles POST /api/habits
func (h *HabitsHandler) CreateHabit(c *gin.Context) {
	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := habits.CreateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Kind:        habits.Kind(req.Kind),
		Target:      req.Target,
		Unit:        req.Unit,
	}

	created, err := h.service.CreateHabit(c.Request.Context(), input)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": HabitToResponse(created)})
}

// GetHabit handles GET /api/habits/:id
func (h *HabitsHandler) GetHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	habit, err := h.service.GetHabit(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": HabitToResponse(habit)})
}

// ListHabits handles GET /api/habits
func (h *HabitsHandler) ListHabits(c *gin.Context) {
	habitsData, err := h.service.ListHabits(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.HabitListResponse{
		Habits:     HabitsToResponse(habitsData),
		TotalCount: len(habitsData),
	}})
}

// UpdateHabit handles PUT /api/habits/:id
func (h *HabitsHandler) UpdateHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	var req dto.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := habits.UpdateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Target:      req.Target,
		Unit:        req.Unit,
	}

	updated, err := h.service.UpdateHabit(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": HabitToResponse(updated)})
}

// DeleteHabit handles DELETE /api/habits/:id
func (h *HabitsHandler) DeleteHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	if err := h.service.DeleteHabit(c.Request.Context(), id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderHabits handles POST /api/habits/reorder
func (h *HabitsHandler) ReorderHabits(c *gin.Context) {
	var req dto.ReorderHabitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ReorderHabits(c.Request.Context(), req.IDs); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "habits reordered"})
}

// ToggleDay handles POST /api/habits/:id/toggle
func (h *HabitsHandler) ToggleDay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	var req dto.ToggleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.ToggleDay(c.Request.Context(), id, req.Day)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": HabitToResponse(updated)})
}

// SetEntry handles POST /api/habits/:id/entries
func (h *HabitsHandler) SetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	var req dto.SetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.SetEntry(c.Request.Context(), id, req.Day, req.Value)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": HabitToResponse(updated)})
}

// GetHabitStats handles GET /api/habits/:id/stats
func (h *HabitsHandler) GetHabitStats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	anchor, ok := today(c)
	if !ok {
		return
	}

	stats, err := h.service.HabitStats(c.Request.Context(), id, anchor)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": StatsToResponse(stats)})
}

// GetHabitGrid handles GET /api/habits/:id/grid
func (h *HabitsHandler) GetHabitGrid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	anchor, ok := today(c)
	if !ok {
		return
	}

	grid, err := h.service.HabitGrid(c.Request.Context(), id, anchor)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": GridToResponse(grid, anchor.Format(habits.DayLayout))})
}

// GetHeatmap handles GET /api/habits/heatmap
func (h *HabitsHandler) GetHeatmap(c *gin.Context) {
	anchor, ok := today(c)
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "364"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
		return
	}

	data, err := h.service.Heatmap(c.Request.Context(), anchor, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	maxValue := 0
	for _, count := range data {
		if count > maxValue {
			maxValue = count
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.HeatmapResponse{
		Data:     data,
		Days:     days,
		MinValue: 0,
		MaxValue: maxValue,
	}})
}

// GetHabitActivity handles GET /api/habits/:id/activity
func (h *HabitsHandler) GetHabitActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit ID"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	entries, err := h.service.ListActivity(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ActivityToResponse(entries)})
}
