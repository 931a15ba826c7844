package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/flowstate/api/internal/apperr"
	"github.com/flowstate/api/internal/constants"
	"github.com/flowstate/api/internal/storage"
	"github.com/flowstate/api/internal/utils"
)

// AnalyticsService computes read-only, date-bucketed aggregations over
// time records, habit logs, and focus sessions.
type AnalyticsService struct {
	store *storage.Store
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(store *storage.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// CategoryTime is one category's share of the time allocation.
type CategoryTime struct {
	Category    string  `json:"category"`
	DisplayName string  `json:"displayName"`
	Minutes     int64   `json:"minutes"`
	Formatted   string  `json:"formatted"`
	Percentage  float64 `json:"percentage"`
}

// DailyTime is one day's per-category minute breakdown.
type DailyTime struct {
	Date            string           `json:"date"`
	CategoryMinutes map[string]int64 `json:"categoryMinutes"`
	TotalMinutes    int64            `json:"totalMinutes"`
}

// TimeAllocation summarizes how a user's recorded time splits across
// categories over a date range.
type TimeAllocation struct {
	TotalFocus string         `json:"totalFocus"`
	Comparison string         `json:"comparison"`
	Categories []CategoryTime `json:"categories"`
	DailyData  []DailyTime    `json:"dailyData"`
}

// ConsistencyDay is one day's habit completion stats.
type ConsistencyDay struct {
	Date            string  `json:"date"`
	Label           string  `json:"label"`
	TotalHabits     int     `json:"totalHabits"`
	CompletedHabits int     `json:"completedHabits"`
	CompletionRate  float64 `json:"completionRate"`
}

// HabitConsistency is the per-day completion series with its average.
type HabitConsistency struct {
	AverageCompletionRate float64          `json:"averageCompletionRate"`
	DailyData             []ConsistencyDay `json:"dailyData"`
}

// HeatmapDay is one cell of the habit heatmap.
type HeatmapDay struct {
	Date       string  `json:"date"`
	Count      int     `json:"count"`
	Completion float64 `json:"completion"`
}

// HabitHeatmap is the per-day completion heatmap. Year is nil for
// explicit-range queries.
type HabitHeatmap struct {
	Year *int         `json:"year"`
	Data []HeatmapDay `json:"data"`
}

// Achievement summarizes the user's best day in a date range.
type Achievement struct {
	BestDay           string  `json:"bestDay"`
	BestDate          string  `json:"bestDate"`
	CompletionRate    float64 `json:"completionRate"`
	FocusHours        string  `json:"focusHours"`
	ProductivityScore int     `json:"productivityScore"`
	Summary           string  `json:"summary"`
	StreakDays        int64   `json:"streakDays"`
	CompletedTasks    int     `json:"completedTasks"`
	TaskGrowth        string  `json:"taskGrowth"`
}

// GetTimeAllocation groups the user's time records over [fromDay,
// toDay] by category and by (day, category), with percentages of the
// grand total and formatted durations.
func (s *AnalyticsService) GetTimeAllocation(userID, fromDay, toDay string) (TimeAllocation, error) {
	if err := s.requireUser(userID); err != nil {
		return TimeAllocation{}, err
	}

	categorySums, err := s.store.SumTimeByCategory(userID, fromDay, toDay)
	if err != nil {
		return TimeAllocation{}, fmt.Errorf("failed to sum time by category: %w", err)
	}

	var totalMinutes int64
	for _, c := range categorySums {
		totalMinutes += c.Minutes
	}

	categories := make([]CategoryTime, 0, len(categorySums))
	for _, c := range categorySums {
		percentage := 0.0
		if totalMinutes > 0 {
			percentage = float64(c.Minutes) * 100.0 / float64(totalMinutes)
		}
		categories = append(categories, CategoryTime{
			Category:    c.Category,
			DisplayName: c.Category,
			Minutes:     c.Minutes,
			Formatted:   utils.FormatMinutes(c.Minutes),
			Percentage:  percentage,
		})
	}

	dailySums, err := s.store.SumTimeByDateAndCategory(userID, fromDay, toDay)
	if err != nil {
		return TimeAllocation{}, fmt.Errorf("failed to sum time by day: %w", err)
	}

	byDay := make(map[string]map[string]int64)
	for _, d := range dailySums {
		if byDay[d.Day] == nil {
			byDay[d.Day] = make(map[string]int64)
		}
		byDay[d.Day][d.Category] += d.Minutes
	}

	dailyData := make([]DailyTime, 0, len(byDay))
	for day, minutes := range byDay {
		var dayTotal int64
		for _, m := range minutes {
			dayTotal += m
		}
		dailyData = append(dailyData, DailyTime{
			Date:            day,
			CategoryMinutes: minutes,
			TotalMinutes:    dayTotal,
		})
	}
	sort.Slice(dailyData, func(i, j int) bool { return dailyData[i].Date < dailyData[j].Date })

	return TimeAllocation{
		TotalFocus: utils.FormatMinutes(totalMinutes),
		Comparison: "数据统计中",
		Categories: categories,
		DailyData:  dailyData,
	}, nil
}

// GetHabitConsistency computes per-day completion rates over [fromDay,
// toDay] and their average. Only days with at least one log appear in
// the series, matching the grouped query it is built on.
func (s *AnalyticsService) GetHabitConsistency(userID, fromDay, toDay string) (HabitConsistency, error) {
	if err := s.requireUser(userID); err != nil {
		return HabitConsistency{}, err
	}

	stats, err := s.store.GetDailyHabitStats(userID, fromDay, toDay)
	if err != nil {
		return HabitConsistency{}, fmt.Errorf("failed to load daily habit stats: %w", err)
	}

	dailyData := make([]ConsistencyDay, 0, len(stats))
	var rateSum float64
	for _, st := range stats {
		rate := 0.0
		if st.TotalHabits > 0 {
			rate = float64(st.CompletedHabits) * 100.0 / float64(st.TotalHabits)
		}
		rateSum += rate

		label := st.Day
		if d, err := utils.ParseDay(st.Day); err == nil {
			label = d.Format(constants.DayLabelFormat)
		}
		dailyData = append(dailyData, ConsistencyDay{
			Date:            st.Day,
			Label:           label,
			TotalHabits:     st.TotalHabits,
			CompletedHabits: st.CompletedHabits,
			CompletionRate:  rate,
		})
	}

	avg := 0.0
	if len(dailyData) > 0 {
		avg = rateSum / float64(len(dailyData))
	}

	return HabitConsistency{
		AverageCompletionRate: avg,
		DailyData:             dailyData,
	}, nil
}

// GetHeatmapForYear builds the completion heatmap for a full calendar
// year.
func (s *AnalyticsService) GetHeatmapForYear(userID string, year int) (HabitHeatmap, error) {
	fromDay := fmt.Sprintf("%04d-01-01", year)
	toDay := fmt.Sprintf("%04d-12-31", year)

	heatmap, err := s.GetHeatmapForRange(userID, fromDay, toDay)
	if err != nil {
		return HabitHeatmap{}, err
	}
	heatmap.Year = &year
	return heatmap, nil
}

// GetHeatmapForRange builds the completion heatmap for an explicit date
// range.
func (s *AnalyticsService) GetHeatmapForRange(userID, fromDay, toDay string) (HabitHeatmap, error) {
	if err := s.requireUser(userID); err != nil {
		return HabitHeatmap{}, err
	}

	stats, err := s.store.GetDailyHabitStats(userID, fromDay, toDay)
	if err != nil {
		return HabitHeatmap{}, fmt.Errorf("failed to load heatmap stats: %w", err)
	}

	data := make([]HeatmapDay, 0, len(stats))
	for _, st := range stats {
		completion := 0.0
		if st.TotalHabits > 0 {
			completion = float64(st.CompletedHabits) * 100.0 / float64(st.TotalHabits)
		}
		data = append(data, HeatmapDay{
			Date:       st.Day,
			Count:      st.CompletedHabits,
			Completion: completion,
		})
	}

	return HabitHeatmap{Data: data}, nil
}

// GetAchievements finds the best-performing day in the range (first
// strict maximum wins; defaults to today when no day beats zero), sums
// that day's focus minutes, and derives a bounded productivity score.
func (s *AnalyticsService) GetAchievements(userID, fromDay, toDay string) (Achievement, error) {
	if err := s.requireUser(userID); err != nil {
		return Achievement{}, err
	}

	stats, err := s.store.GetDailyHabitStats(userID, fromDay, toDay)
	if err != nil {
		return Achievement{}, fmt.Errorf("failed to load daily habit stats: %w", err)
	}

	bestDay := utils.Today()
	bestRate := 0.0
	completedTasks := 0
	for _, st := range stats {
		completedTasks += st.CompletedHabits
		rate := 0.0
		if st.TotalHabits > 0 {
			rate = float64(st.CompletedHabits) * 100.0 / float64(st.TotalHabits)
		}
		if rate > bestRate {
			bestRate = rate
			bestDay = st.Day
		}
	}

	focusSums, err := s.store.SumFocusByCategory(userID, bestDay, bestDay)
	if err != nil {
		return Achievement{}, fmt.Errorf("failed to sum focus minutes: %w", err)
	}
	var focusMinutes int64
	for _, c := range focusSums {
		focusMinutes += c.Minutes
	}
	focusHours := float64(focusMinutes) / 60.0

	score := int(math.Min(100, bestRate*0.7+focusHours*3))

	return Achievement{
		BestDay:           bestDay,
		BestDate:          bestDay,
		CompletionRate:    bestRate,
		FocusHours:        fmt.Sprintf("%.1f", focusHours),
		ProductivityScore: score,
		Summary: fmt.Sprintf("您保持了 %.0f%% 的任务完成率，并进行了 %.1f 小时的深度专注。",
			bestRate, focusHours),
		StreakDays:     0,
		CompletedTasks: completedTasks,
		TaskGrowth:     "N/A",
	}, nil
}

func (s *AnalyticsService) requireUser(userID string) error {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	return nil
}

// CurrentYear is the default heatmap year when the request names
// neither a year nor a range.
func CurrentYear() int {
	return time.Now().Year()
}
