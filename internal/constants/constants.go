// Package constants holds application-wide defaults and formats.
package constants

// DateFormat is the standard calendar-date format (YYYY-MM-DD) used for
// habit log days, record dates, and date-range query parameters.
const DateFormat = "2006-01-02"

// DayLabelFormat is the short MM-dd label attached to per-day analytics rows.
const DayLabelFormat = "01-02"

// Defaults applied when a create-habit request omits optional fields.
const (
	DefaultHabitCategory = "通用"
	DefaultHabitGoal     = 1
	DefaultHabitUnit     = "次"
	DefaultHabitIcon     = "check_circle"
	DefaultHabitColor    = "bg-primary"
)

// Defaults for time records projected from completed focus sessions.
const (
	DefaultFocusTitle    = "深度专注"
	FocusTitlePrefix     = "专注: "
	FocusRecordSubtitle  = "通过专注模式自动记录"
	DefaultFocusCategory = "工作"
	DefaultFocusColor    = "indigo"
)

// StreakLookbackMonths bounds how far back the streak calculator walks.
const StreakLookbackMonths = 12

// LastSevenDays is the length of the trailing completion-status window.
const LastSevenDays = 7

// DefaultCategory describes one of the starter categories seeded for a
// user who has none yet.
type DefaultCategory struct {
	Name  string
	Color string
	Icon  string
}

// DefaultCategories are seeded per user on first category access.
var DefaultCategories = []DefaultCategory{
	{Name: "工作", Color: "indigo", Icon: "work"},
	{Name: "学习", Color: "amber", Icon: "school"},
	{Name: "运动", Color: "emerald", Icon: "fitness_center"},
	{Name: "社交", Color: "rose", Icon: "group"},
	{Name: "休息", Color: "purple", Icon: "bedtime"},
}
