package services

import (
	"testing"

	"PlannerGo/models"
)

// week under test: Monday 2024-06-03 .. Sunday 2024-06-09
const targetWeekDate = "2024-06-05"

func intp(v int) *int       { return &v }
func strp(s string) *string { return &s }

func blueprint(title string, dayOfWeek *int) models.Blueprint {
	return models.Blueprint{
		ID:        "bp-" + title,
		UserID:    "u1",
		Title:     title,
		Duration:  30,
		Priority:  models.PriorityHigh,
		DayOfWeek: dayOfWeek,
	}
}

func dates(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		if t.DueDate == nil {
			out[i] = ""
		} else {
			out[i] = *t.DueDate
		}
	}
	return out
}

func TestWeekStart(t *testing.T) {
	cases := map[string]string{
		"2024-06-03": "2024-06-03", // Monday maps to itself
		"2024-06-05": "2024-06-03",
		"2024-06-09": "2024-06-03", // Sunday belongs to the preceding Monday
		"2024-06-10": "2024-06-10",
	}
	for in, want := range cases {
		monday, err := WeekStart(in)
		if err != nil {
			t.Fatalf("WeekStart(%s): %v", in, err)
		}
		if got := monday.Format("2006-01-02"); got != want {
			t.Fatalf("WeekStart(%s)=%s, want %s", in, got, want)
		}
	}

	if _, err := WeekStart("not-a-date"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestExpandEverydayCoversWholeWeek(t *testing.T) {
	got := ExpandBlueprints([]models.Blueprint{blueprint("Stretch", intp(models.DayCodeEveryday))}, nil, targetWeekDate)
	want := []string{"2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07", "2024-06-08", "2024-06-09"}
	if len(got) != 7 {
		t.Fatalf("expected 7 instances, got %d", len(got))
	}
	for i, date := range dates(got) {
		if date != want[i] {
			t.Fatalf("instance %d date=%s, want %s", i, date, want[i])
		}
	}
}

func TestExpandWeekdaysAndWeekend(t *testing.T) {
	weekdays := ExpandBlueprints([]models.Blueprint{blueprint("Standup", intp(models.DayCodeWeekdays))}, nil, targetWeekDate)
	want := []string{"2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07"}
	if len(weekdays) != 5 {
		t.Fatalf("expected 5 weekday instances, got %d", len(weekdays))
	}
	for i, date := range dates(weekdays) {
		if date != want[i] {
			t.Fatalf("weekday instance %d date=%s, want %s", i, date, want[i])
		}
	}

	weekend := ExpandBlueprints([]models.Blueprint{blueprint("Hike", intp(models.DayCodeWeekend))}, nil, targetWeekDate)
	if len(weekend) != 2 {
		t.Fatalf("expected 2 weekend instances, got %d", len(weekend))
	}
	if got := dates(weekend); got[0] != "2024-06-08" || got[1] != "2024-06-09" {
		t.Fatalf("weekend dates=%v, want [2024-06-08 2024-06-09]", got)
	}
}

// Weekdays are numbered 0=Sunday, but the week is laid out Monday-first:
// Monday lands on offset 0 and Sunday on offset 6.
func TestExpandSingleWeekdayMapping(t *testing.T) {
	cases := map[int]string{
		0: "2024-06-09", // Sunday
		1: "2024-06-03", // Monday
		3: "2024-06-05",
		6: "2024-06-08", // Saturday
	}
	for dow, want := range cases {
		got := ExpandBlueprints([]models.Blueprint{blueprint("Solo", intp(dow))}, nil, targetWeekDate)
		if len(got) != 1 {
			t.Fatalf("dow=%d: expected 1 instance, got %d", dow, len(got))
		}
		if *got[0].DueDate != want {
			t.Fatalf("dow=%d: date=%s, want %s", dow, *got[0].DueDate, want)
		}
	}
}

func TestExpandUnscheduledAlwaysCreated(t *testing.T) {
	existing := []ExistingTask{
		{Title: "Inbox chore", DueDate: nil},
		{Title: "Inbox chore", DueDate: strp("2024-06-03")},
	}
	got := ExpandBlueprints([]models.Blueprint{blueprint("Inbox chore", nil)}, existing, targetWeekDate)
	if len(got) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(got))
	}
	if got[0].DueDate != nil {
		t.Fatalf("expected nil due date, got %s", *got[0].DueDate)
	}
}

func TestExpandSuppressesExistingTitleAndDate(t *testing.T) {
	existing := []ExistingTask{{Title: "Gym", DueDate: strp("2024-06-03")}}
	got := ExpandBlueprints([]models.Blueprint{blueprint("Gym", intp(1))}, existing, targetWeekDate)
	if len(got) != 0 {
		t.Fatalf("expected suppression, got %d instances", len(got))
	}
}

func TestExpandDedupIsCaseAndWhitespaceInsensitive(t *testing.T) {
	existing := []ExistingTask{{Title: "  GYM  ", DueDate: strp("2024-06-03")}}
	got := ExpandBlueprints([]models.Blueprint{blueprint("gym", intp(1))}, existing, targetWeekDate)
	if len(got) != 0 {
		t.Fatalf("expected case-insensitive suppression, got %d instances", len(got))
	}
}

func TestExpandPartialSuppression(t *testing.T) {
	// Tuesday already exists; the other six days of an everyday template survive
	existing := []ExistingTask{{Title: "Stretch", DueDate: strp("2024-06-04")}}
	got := ExpandBlueprints([]models.Blueprint{blueprint("Stretch", intp(models.DayCodeEveryday))}, existing, targetWeekDate)
	if len(got) != 6 {
		t.Fatalf("expected 6 instances, got %d", len(got))
	}
	for _, date := range dates(got) {
		if date == "2024-06-04" {
			t.Fatalf("suppressed date was produced")
		}
	}
}

func TestExpandEmptyBlueprintsProducesNothing(t *testing.T) {
	if got := ExpandBlueprints(nil, nil, targetWeekDate); got != nil {
		t.Fatalf("expected nil, got %d instances", len(got))
	}
}

// The dedup lookup is seeded from existing tasks only, so two templates
// expanding to the same title+date within one run both come back.
func TestExpandSameRunDuplicatesNotSuppressed(t *testing.T) {
	bps := []models.Blueprint{
		blueprint("Gym", intp(1)),
		blueprint("Gym", intp(1)),
	}
	got := ExpandBlueprints(bps, nil, targetWeekDate)
	if len(got) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(got))
	}
}

func TestExpandInstanceFieldsAndDefaults(t *testing.T) {
	bp := models.Blueprint{Title: "Review notes", DayOfWeek: intp(1)}
	got := ExpandBlueprints([]models.Blueprint{bp}, nil, targetWeekDate)
	if len(got) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(got))
	}
	inst := got[0]
	if inst.Duration != 60 {
		t.Fatalf("duration=%d, want default 60", inst.Duration)
	}
	if inst.Priority != models.PriorityMedium {
		t.Fatalf("priority=%s, want default medium", inst.Priority)
	}
	if inst.IsCompleted {
		t.Fatalf("new instance must not be completed")
	}

	custom := ExpandBlueprints([]models.Blueprint{blueprint("Gym", intp(1))}, nil, targetWeekDate)
	if custom[0].Duration != 30 || custom[0].Priority != models.PriorityHigh {
		t.Fatalf("template duration/priority not copied: %+v", custom[0])
	}
}

func TestRecurrenceFromCode(t *testing.T) {
	if rec := RecurrenceFromCode(nil); rec.Kind != RecurrenceUnscheduled {
		t.Fatalf("nil code: kind=%v, want unscheduled", rec.Kind)
	}
	if rec := RecurrenceFromCode(intp(7)); rec.Kind != RecurrenceEveryday {
		t.Fatalf("code 7: kind=%v, want everyday", rec.Kind)
	}
	if rec := RecurrenceFromCode(intp(8)); rec.Kind != RecurrenceWeekdays {
		t.Fatalf("code 8: kind=%v, want weekdays", rec.Kind)
	}
	if rec := RecurrenceFromCode(intp(9)); rec.Kind != RecurrenceWeekend {
		t.Fatalf("code 9: kind=%v, want weekend", rec.Kind)
	}
	rec := RecurrenceFromCode(intp(4))
	if rec.Kind != RecurrenceSingleDay || rec.Weekday != 4 {
		t.Fatalf("code 4: got %+v, want single day 4", rec)
	}
}
