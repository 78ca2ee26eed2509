package services

import (
	"strings"
	"time"

	"PlannerGo/models"
)

// RecurrenceKind classifies a blueprint's day selector.
type RecurrenceKind int

const (
	RecurrenceUnscheduled RecurrenceKind = iota // no date, lands in the inbox
	RecurrenceSingleDay
	RecurrenceEveryday
	RecurrenceWeekdays
	RecurrenceWeekend
)

// Recurrence is the decoded form of a blueprint's stored day_of_week
// column (0-6 weekday with 0=Sunday, 7/8/9 shorthand codes, null).
type Recurrence struct {
	Kind    RecurrenceKind
	Weekday int // 0=Sunday..6=Saturday, only set for RecurrenceSingleDay
}

// RecurrenceFromCode decodes the nullable day_of_week column.
func RecurrenceFromCode(code *int) Recurrence {
	if code == nil {
		return Recurrence{Kind: RecurrenceUnscheduled}
	}
	switch *code {
	case models.DayCodeEveryday:
		return Recurrence{Kind: RecurrenceEveryday}
	case models.DayCodeWeekdays:
		return Recurrence{Kind: RecurrenceWeekdays}
	case models.DayCodeWeekend:
		return Recurrence{Kind: RecurrenceWeekend}
	default:
		return Recurrence{Kind: RecurrenceSingleDay, Weekday: *code}
	}
}

// Offsets returns the Monday-anchored day offsets (0=Monday..6=Sunday)
// the recurrence expands to within a week, or nil for unscheduled.
// Weekdays are numbered 0=Sunday elsewhere in the app, so a single day
// maps through (w+6)%7: Monday->0, ..., Sunday->6.
func (r Recurrence) Offsets() []int {
	switch r.Kind {
	case RecurrenceEveryday:
		return []int{0, 1, 2, 3, 4, 5, 6}
	case RecurrenceWeekdays:
		return []int{0, 1, 2, 3, 4}
	case RecurrenceWeekend:
		return []int{5, 6}
	case RecurrenceSingleDay:
		return []int{(r.Weekday + 6) % 7}
	default:
		return nil
	}
}

// ExistingTask is the title+date pair of a task already scheduled in the
// target week, used for duplicate suppression.
type ExistingTask struct {
	Title   string
	DueDate *string
}

// WeekStart returns the Monday of the week containing date (YYYY-MM-DD).
func WeekStart(date string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, err
	}
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset), nil
}

// taskSignature normalizes a title+date pair for duplicate lookup. Title
// matching is case-insensitive and whitespace-trimmed; duration, priority
// and goal do not participate.
func taskSignature(title string, dueDate *string) string {
	due := ""
	if dueDate != nil {
		due = *dueDate
	}
	return strings.ToLower(strings.TrimSpace(title)) + "|" + due
}

// ExpandBlueprints expands the user's blueprints into concrete task rows
// for the week containing targetDate, skipping dated instances whose
// title+date already exists in that week. Undated (inbox) instances are
// always created. The returned tasks carry title, duration, priority and
// due date only; the caller stamps IDs, the user and timestamps before
// inserting. An empty blueprint list or an unparseable date yields nil.
//
// The duplicate lookup is a snapshot of existing tasks taken before the
// run: two blueprints expanding to the same title+date within one call
// are both returned. Accepted limitation.
func ExpandBlueprints(blueprints []models.Blueprint, existing []ExistingTask, targetDate string) []models.Task {
	if len(blueprints) == 0 {
		return nil
	}
	monday, err := WeekStart(targetDate)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[taskSignature(t.Title, t.DueDate)] = struct{}{}
	}

	var out []models.Task
	for _, bp := range blueprints {
		rec := RecurrenceFromCode(bp.DayOfWeek)
		if rec.Kind == RecurrenceUnscheduled {
			out = append(out, blueprintInstance(bp, nil))
			continue
		}
		for _, off := range rec.Offsets() {
			date := monday.AddDate(0, 0, off).Format("2006-01-02")
			if _, dup := seen[taskSignature(bp.Title, &date)]; dup {
				continue
			}
			d := date
			out = append(out, blueprintInstance(bp, &d))
		}
	}
	return out
}

func blueprintInstance(bp models.Blueprint, dueDate *string) models.Task {
	duration := bp.Duration
	if duration <= 0 {
		duration = 60
	}
	priority := bp.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	return models.Task{
		Title:       bp.Title,
		DueDate:     dueDate,
		Duration:    duration,
		Priority:    priority,
		IsCompleted: false,
	}
}
