package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/models"
)

func TestIncrementHabitLogAccumulates(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	habit := seedHabit(t, store, user.ID, "Drink water", 5)

	day := "2026-08-30"
	if err := store.IncrementHabitLog(habit.ID, day, 2, habit.GoalValue); err != nil {
		t.Fatalf("first increment failed: %v", err)
	}

	logs, err := store.GetHabitLogsInRange(habit.ID, day, day)
	if err != nil {
		t.Fatalf("failed to load logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].CurrentValue != 2 {
		t.Errorf("expected value 2, got %d", logs[0].CurrentValue)
	}
	if logs[0].IsCompleted {
		t.Error("2 of 5 should not be completed")
	}

	// A second increment updates the same row and flips completion once
	// the goal is reached.
	if err := store.IncrementHabitLog(habit.ID, day, 3, habit.GoalValue); err != nil {
		t.Fatalf("second increment failed: %v", err)
	}

	logs, err = store.GetHabitLogsInRange(habit.ID, day, day)
	if err != nil {
		t.Fatalf("failed to reload logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected a single row after upsert, got %d", len(logs))
	}
	if logs[0].CurrentValue != 5 {
		t.Errorf("expected value 5, got %d", logs[0].CurrentValue)
	}
	if !logs[0].IsCompleted {
		t.Error("5 of 5 should be completed")
	}
}

func TestInsertHabitLogKeepsExistingRow(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	habit := seedHabit(t, store, user.ID, "Read", 1)

	day := "2026-08-29"
	first := models.HabitLog{
		ID:           uuid.New().String(),
		HabitID:      habit.ID,
		Day:          day,
		CurrentValue: 3,
		IsCompleted:  true,
		CreatedAt:    time.Now(),
	}
	if err := store.InsertHabitLog(first); err != nil {
		t.Fatalf("failed to insert log: %v", err)
	}

	second := first
	second.ID = uuid.New().String()
	second.CurrentValue = 99
	if err := store.InsertHabitLog(second); err != nil {
		t.Fatalf("duplicate insert should be a no-op, got: %v", err)
	}

	logs, err := store.GetHabitLogsInRange(habit.ID, day, day)
	if err != nil {
		t.Fatalf("failed to load logs: %v", err)
	}
	if len(logs) != 1 || logs[0].CurrentValue != 3 {
		t.Errorf("existing row should be kept, got %+v", logs)
	}
}

func TestGetHabitLogsSinceOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	habit := seedHabit(t, store, user.ID, "Stretch", 1)

	for _, day := range []string{"2026-08-25", "2026-08-27", "2026-08-26"} {
		log := models.HabitLog{
			ID:           uuid.New().String(),
			HabitID:      habit.ID,
			Day:          day,
			CurrentValue: 1,
			IsCompleted:  true,
			CreatedAt:    time.Now(),
		}
		if err := store.InsertHabitLog(log); err != nil {
			t.Fatalf("failed to insert log for %s: %v", day, err)
		}
	}

	logs, err := store.GetHabitLogsSince(habit.ID, "2026-08-24")
	if err != nil {
		t.Fatalf("failed to load logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	want := []string{"2026-08-27", "2026-08-26", "2026-08-25"}
	for i, day := range want {
		if logs[i].Day != day {
			t.Errorf("position %d: expected %s, got %s", i, day, logs[i].Day)
		}
	}

	// afterDay is exclusive.
	logs, err = store.GetHabitLogsSince(habit.ID, "2026-08-25")
	if err != nil {
		t.Fatalf("failed to load logs: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("expected 2 logs after 2026-08-25, got %d", len(logs))
	}
}

func TestGetDailyHabitStats(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	h1 := seedHabit(t, store, user.ID, "Run", 1)
	h2 := seedHabit(t, store, user.ID, "Meditate", 1)

	insert := func(habitID, day string, completed bool) {
		t.Helper()
		log := models.HabitLog{
			ID:           uuid.New().String(),
			HabitID:      habitID,
			Day:          day,
			CurrentValue: 1,
			IsCompleted:  completed,
			CreatedAt:    time.Now(),
		}
		if err := store.InsertHabitLog(log); err != nil {
			t.Fatalf("failed to insert log: %v", err)
		}
	}

	insert(h1.ID, "2026-08-28", true)
	insert(h2.ID, "2026-08-28", false)
	insert(h1.ID, "2026-08-29", true)

	stats, err := store.GetDailyHabitStats(user.ID, "2026-08-28", "2026-08-29")
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 days, got %d", len(stats))
	}

	if stats[0].Day != "2026-08-28" || stats[0].TotalHabits != 2 || stats[0].CompletedHabits != 1 {
		t.Errorf("day 1 stats wrong: %+v", stats[0])
	}
	if stats[1].Day != "2026-08-29" || stats[1].TotalHabits != 1 || stats[1].CompletedHabits != 1 {
		t.Errorf("day 2 stats wrong: %+v", stats[1])
	}
}

func TestActiveHabitNameExistsIsCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	seedHabit(t, store, user.ID, "Morning Run", 1)

	exists, err := store.ActiveHabitNameExists(user.ID, "morning run")
	if err != nil {
		t.Fatalf("name check failed: %v", err)
	}
	if !exists {
		t.Error("expected case-insensitive match")
	}

	exists, err = store.ActiveHabitNameExists(user.ID, "evening run")
	if err != nil {
		t.Fatalf("name check failed: %v", err)
	}
	if exists {
		t.Error("unexpected match for different name")
	}
}
