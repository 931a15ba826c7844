package service

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/apperr"
	"github.com/flowstate/api/internal/models"
	"github.com/flowstate/api/internal/storage"
)

func seedRecord(t *testing.T, store *storage.Store, userID, category, day string, duration int) {
	t.Helper()

	record := models.TimeRecord{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      "Block",
		Duration:   duration,
		Category:   category,
		Color:      "indigo",
		RecordDate: day,
		CreatedAt:  time.Now(),
	}
	if err := store.CreateTimeRecord(record); err != nil {
		t.Fatalf("failed to create record: %v", err)
	}
}

func TestGetTimeAllocation(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	svc := NewAnalyticsService(store)

	seedRecord(t, store, user.ID, "工作", "2026-08-28", 60)
	seedRecord(t, store, user.ID, "工作", "2026-08-29", 30)
	seedRecord(t, store, user.ID, "学习", "2026-08-29", 30)

	allocation, err := svc.GetTimeAllocation(user.ID, "2026-08-28", "2026-08-29")
	if err != nil {
		t.Fatalf("failed to compute allocation: %v", err)
	}

	if allocation.TotalFocus != "2h" {
		t.Errorf("expected total 2h, got %q", allocation.TotalFocus)
	}
	if len(allocation.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(allocation.Categories))
	}

	// Ordered by minutes descending, percentages of the grand total.
	first := allocation.Categories[0]
	if first.Category != "工作" || first.Minutes != 90 || first.Formatted != "1h30min" {
		t.Errorf("unexpected first category: %+v", first)
	}
	if math.Abs(first.Percentage-75.0) > 1e-9 {
		t.Errorf("expected 75%%, got %f", first.Percentage)
	}

	var percentageSum float64
	for _, c := range allocation.Categories {
		percentageSum += c.Percentage
	}
	if math.Abs(percentageSum-100.0) > 1e-9 {
		t.Errorf("percentages should sum to 100, got %f", percentageSum)
	}

	if len(allocation.DailyData) != 2 {
		t.Fatalf("expected 2 days, got %d", len(allocation.DailyData))
	}
	day2 := allocation.DailyData[1]
	if day2.Date != "2026-08-29" || day2.TotalMinutes != 60 {
		t.Errorf("unexpected day breakdown: %+v", day2)
	}
	if day2.CategoryMinutes["工作"] != 30 || day2.CategoryMinutes["学习"] != 30 {
		t.Errorf("unexpected category minutes: %+v", day2.CategoryMinutes)
	}
}

func TestGetTimeAllocationEmpty(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	svc := NewAnalyticsService(store)

	allocation, err := svc.GetTimeAllocation(user.ID, "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("failed to compute allocation: %v", err)
	}
	if allocation.TotalFocus != "0min" {
		t.Errorf("expected 0min total, got %q", allocation.TotalFocus)
	}
	if len(allocation.Categories) != 0 || len(allocation.DailyData) != 0 {
		t.Errorf("expected empty breakdowns: %+v", allocation)
	}
}

func TestGetHabitConsistency(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	habits := NewHabitService(store)
	svc := NewAnalyticsService(store)

	h1, err := habits.CreateHabit(user.ID, CreateHabitInput{Name: "Run"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	h2, err := habits.CreateHabit(user.ID, CreateHabitInput{Name: "Read"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	// Day 1: one of two habits completed. Day 2: one of one.
	insertLog(t, store, h1.ID, "2026-08-28", 1, true)
	insertLog(t, store, h2.ID, "2026-08-28", 0, false)
	insertLog(t, store, h1.ID, "2026-08-29", 1, true)

	consistency, err := svc.GetHabitConsistency(user.ID, "2026-08-28", "2026-08-29")
	if err != nil {
		t.Fatalf("failed to compute consistency: %v", err)
	}

	if len(consistency.DailyData) != 2 {
		t.Fatalf("expected 2 days, got %d", len(consistency.DailyData))
	}
	day1 := consistency.DailyData[0]
	if day1.Date != "2026-08-28" || day1.TotalHabits != 2 || day1.CompletedHabits != 1 {
		t.Errorf("unexpected day 1: %+v", day1)
	}
	if math.Abs(day1.CompletionRate-50.0) > 1e-9 {
		t.Errorf("expected 50%% on day 1, got %f", day1.CompletionRate)
	}
	if day1.Label != "08-28" {
		t.Errorf("expected label 08-28, got %q", day1.Label)
	}
	if math.Abs(consistency.AverageCompletionRate-75.0) > 1e-9 {
		t.Errorf("expected average 75%%, got %f", consistency.AverageCompletionRate)
	}
}

func TestGetHeatmap(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	habits := NewHabitService(store)
	svc := NewAnalyticsService(store)

	habit, err := habits.CreateHabit(user.ID, CreateHabitInput{Name: "Write"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	insertLog(t, store, habit.ID, "2026-03-15", 1, true)
	insertLog(t, store, habit.ID, "2026-03-16", 0, false)

	byYear, err := svc.GetHeatmapForYear(user.ID, 2026)
	if err != nil {
		t.Fatalf("failed to compute heatmap: %v", err)
	}
	if byYear.Year == nil || *byYear.Year != 2026 {
		t.Errorf("year should be set, got %v", byYear.Year)
	}
	if len(byYear.Data) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(byYear.Data))
	}
	if byYear.Data[0].Date != "2026-03-15" || byYear.Data[0].Count != 1 || byYear.Data[0].Completion != 100.0 {
		t.Errorf("unexpected first cell: %+v", byYear.Data[0])
	}
	if byYear.Data[1].Count != 0 || byYear.Data[1].Completion != 0.0 {
		t.Errorf("unexpected second cell: %+v", byYear.Data[1])
	}

	byRange, err := svc.GetHeatmapForRange(user.ID, "2026-03-01", "2026-03-15")
	if err != nil {
		t.Fatalf("failed to compute heatmap: %v", err)
	}
	if byRange.Year != nil {
		t.Error("range heatmap should not carry a year")
	}
	if len(byRange.Data) != 1 {
		t.Errorf("expected 1 cell in the narrower range, got %d", len(byRange.Data))
	}
}

func TestGetAchievements(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	habits := NewHabitService(store)
	categories := NewCategoryService(store)
	svc := NewAnalyticsService(store)

	h1, err := habits.CreateHabit(user.ID, CreateHabitInput{Name: "Run"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	h2, err := habits.CreateHabit(user.ID, CreateHabitInput{Name: "Read"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	// Day 1: 50% completion. Day 2: 100% completion, the best day.
	insertLog(t, store, h1.ID, "2026-08-28", 1, true)
	insertLog(t, store, h2.ID, "2026-08-28", 0, false)
	insertLog(t, store, h1.ID, "2026-08-29", 1, true)
	insertLog(t, store, h2.ID, "2026-08-29", 1, true)

	category, err := categories.Create(user.ID, "工作", "indigo", "work")
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	start := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	session := models.FocusSession{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		CategoryID: &category.ID,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Duration:   60,
		Status:     models.SessionCompleted,
		CreatedAt:  time.Now(),
	}
	if err := store.CreateFocusSession(session); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	achievement, err := svc.GetAchievements(user.ID, "2026-08-28", "2026-08-29")
	if err != nil {
		t.Fatalf("failed to compute achievements: %v", err)
	}

	if achievement.BestDay != "2026-08-29" {
		t.Errorf("expected best day 2026-08-29, got %q", achievement.BestDay)
	}
	if math.Abs(achievement.CompletionRate-100.0) > 1e-9 {
		t.Errorf("expected 100%%, got %f", achievement.CompletionRate)
	}
	if achievement.FocusHours != "1.0" {
		t.Errorf("expected 1.0 focus hours, got %q", achievement.FocusHours)
	}
	// min(100, 100*0.7 + 1*3) = 73
	if achievement.ProductivityScore != 73 {
		t.Errorf("expected score 73, got %d", achievement.ProductivityScore)
	}
	if achievement.CompletedTasks != 3 {
		t.Errorf("expected 3 completed tasks over the range, got %d", achievement.CompletedTasks)
	}
	if achievement.TaskGrowth != "N/A" {
		t.Errorf("unexpected task growth %q", achievement.TaskGrowth)
	}
}

func TestGetAchievementsPrefersEarlierEqualBestDay(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	habits := NewHabitService(store)
	svc := NewAnalyticsService(store)

	var ids []string
	for _, name := range []string{"Run", "Read", "Write", "Swim", "Stretch"} {
		h, err := habits.CreateHabit(user.ID, CreateHabitInput{Name: name})
		if err != nil {
			t.Fatalf("failed to create habit: %v", err)
		}
		ids = append(ids, h.ID)
	}

	// Day 1: 50%. Days 2 and 3: 80% each. With equal rates the earlier
	// day stays the best day.
	insertLog(t, store, ids[0], "2026-08-27", 1, true)
	insertLog(t, store, ids[1], "2026-08-27", 0, false)
	for _, day := range []string{"2026-08-28", "2026-08-29"} {
		for i, id := range ids {
			insertLog(t, store, id, day, 1, i < 4)
		}
	}

	achievement, err := svc.GetAchievements(user.ID, "2026-08-27", "2026-08-29")
	if err != nil {
		t.Fatalf("failed to compute achievements: %v", err)
	}

	if achievement.BestDay != "2026-08-28" {
		t.Errorf("expected the earlier 80%% day 2026-08-28, got %q", achievement.BestDay)
	}
	if math.Abs(achievement.CompletionRate-80.0) > 1e-9 {
		t.Errorf("expected 80%%, got %f", achievement.CompletionRate)
	}
}

func TestAnalyticsUnknownUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewAnalyticsService(store)

	if _, err := svc.GetTimeAllocation("nobody", "2026-08-01", "2026-08-31"); !apperr.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if _, err := svc.GetHabitConsistency("nobody", "2026-08-01", "2026-08-31"); !apperr.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if _, err := svc.GetHeatmapForYear("nobody", 2026); !apperr.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if _, err := svc.GetAchievements("nobody", "2026-08-01", "2026-08-31"); !apperr.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
