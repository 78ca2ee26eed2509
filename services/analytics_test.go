package services

import (
	"testing"
	"time"

	"PlannerGo/models"
)

// window under test: Monday 2024-06-03 .. Sunday 2024-06-09
func testWeek(t *testing.T) ReportWindow {
	t.Helper()
	anchor, err := time.Parse("2006-01-02", "2024-06-05")
	if err != nil {
		t.Fatalf("parse anchor: %v", err)
	}
	return WindowFor(WindowWeek, anchor)
}

type taskOpt func(*models.Task)

func withGoal(id, title string) taskOpt {
	return func(t *models.Task) {
		t.GoalID = &id
		t.Goal = &models.Goal{ID: id, Title: title}
	}
}

func withActual(minutes int) taskOpt {
	return func(t *models.Task) { t.ActualDuration = minutes }
}

func withDuration(minutes int) taskOpt {
	return func(t *models.Task) { t.Duration = minutes }
}

func completedAt(hour int) taskOpt {
	return func(t *models.Task) {
		at := time.Date(2024, 6, 5, hour, 30, 0, 0, time.UTC)
		t.CompletedAt = &at
	}
}

func task(due string, completed bool, opts ...taskOpt) models.Task {
	t := models.Task{
		Title:       "task",
		UserID:      "u1",
		Duration:    60,
		IsCompleted: completed,
	}
	if due != "" {
		t.DueDate = &due
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func TestWindowFor(t *testing.T) {
	week := testWeek(t)
	if week.Start.Format("2006-01-02") != "2024-06-03" || week.Days != 7 {
		t.Fatalf("week window=%s/%d, want 2024-06-03/7", week.Start.Format("2006-01-02"), week.Days)
	}
	if week.End() != "2024-06-09" {
		t.Fatalf("week end=%s, want 2024-06-09", week.End())
	}

	// a Sunday anchor still belongs to the Monday-started week
	sunday, _ := time.Parse("2006-01-02", "2024-06-09")
	if w := WindowFor(WindowWeek, sunday); w.Start.Format("2006-01-02") != "2024-06-03" {
		t.Fatalf("sunday anchor start=%s, want 2024-06-03", w.Start.Format("2006-01-02"))
	}

	leapFeb, _ := time.Parse("2006-01-02", "2024-02-15")
	month := WindowFor(WindowMonth, leapFeb)
	if month.Start.Format("2006-01-02") != "2024-02-01" || month.Days != 29 {
		t.Fatalf("month window=%s/%d, want 2024-02-01/29", month.Start.Format("2006-01-02"), month.Days)
	}
}

func TestBuildReportScore(t *testing.T) {
	var tasks []models.Task
	for i := 0; i < 10; i++ {
		tasks = append(tasks, task("2024-06-03", i < 6))
	}
	report := BuildReport(tasks, testWeek(t))
	if report.Total != 10 || report.Completed != 6 {
		t.Fatalf("total/completed=%d/%d, want 10/6", report.Total, report.Completed)
	}
	if report.Score != 60 {
		t.Fatalf("score=%d, want 60", report.Score)
	}
}

func TestBuildReportEmptyWindow(t *testing.T) {
	report := BuildReport(nil, testWeek(t))
	if report.Total != 0 || report.Completed != 0 || report.Score != 0 {
		t.Fatalf("expected zeroed counts, got %+v", report)
	}
	if len(report.ActivityByDay) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(report.ActivityByDay))
	}
	for _, bucket := range report.ActivityByDay {
		if bucket.Total != 0 || bucket.Completed != 0 {
			t.Fatalf("expected zero-filled bucket, got %+v", bucket)
		}
	}
	if len(report.GoalBreakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %v", report.GoalBreakdown)
	}
	if report.PeakTime != PeakNeutral {
		t.Fatalf("peakTime=%s, want neutral", report.PeakTime)
	}
	if report.PlanningAccuracy != AccuracyCalibrated {
		t.Fatalf("planningAccuracy=%s, want calibrated default", report.PlanningAccuracy)
	}
	if report.BusiestDay != "" {
		t.Fatalf("busiestDay=%s, want empty", report.BusiestDay)
	}
}

func TestBuildReportDayBucketsMondayFirst(t *testing.T) {
	tasks := []models.Task{
		task("2024-06-03", true),
		task("2024-06-03", false),
		task("2024-06-09", true),
	}
	report := BuildReport(tasks, testWeek(t))

	if report.ActivityByDay[0].Label != "Mon" || report.ActivityByDay[0].Date != "2024-06-03" {
		t.Fatalf("first bucket=%+v, want Monday 2024-06-03", report.ActivityByDay[0])
	}
	if report.ActivityByDay[0].Total != 2 || report.ActivityByDay[0].Completed != 1 {
		t.Fatalf("monday bucket=%+v, want 2/1", report.ActivityByDay[0])
	}
	if report.ActivityByDay[6].Label != "Sun" || report.ActivityByDay[6].Total != 1 {
		t.Fatalf("sunday bucket=%+v, want 1 task", report.ActivityByDay[6])
	}

	// summing the buckets reproduces the window totals
	sumTotal, sumCompleted := 0, 0
	for _, bucket := range report.ActivityByDay {
		sumTotal += bucket.Total
		sumCompleted += bucket.Completed
	}
	if sumTotal != report.Total || sumCompleted != report.Completed {
		t.Fatalf("bucket sums %d/%d != report %d/%d", sumTotal, sumCompleted, report.Total, report.Completed)
	}
}

func TestBuildReportGoalBreakdown(t *testing.T) {
	tasks := []models.Task{
		task("2024-06-03", true, withGoal("g1", "Health")),
		task("2024-06-04", false, withGoal("g1", "Health")),
		task("2024-06-04", true, withGoal("g1", "Health")),
		task("2024-06-05", true, withGoal("g2", "Career")),
		task("2024-06-05", false),
		task("2024-06-06", false),
	}
	report := BuildReport(tasks, testWeek(t))

	if len(report.GoalBreakdown) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(report.GoalBreakdown))
	}
	if report.GoalBreakdown[0].Title != "Health" || report.GoalBreakdown[0].Total != 3 || report.GoalBreakdown[0].Completed != 2 {
		t.Fatalf("top group=%+v, want Health 3/2", report.GoalBreakdown[0])
	}

	sum := 0
	sawUncategorized := false
	for _, group := range report.GoalBreakdown {
		sum += group.Total
		if group.Title == "Uncategorized" {
			sawUncategorized = true
			if group.Total != 2 {
				t.Fatalf("Uncategorized total=%d, want 2", group.Total)
			}
		}
	}
	if !sawUncategorized {
		t.Fatalf("expected an Uncategorized group")
	}
	if sum != report.Total {
		t.Fatalf("group totals sum to %d, want %d", sum, report.Total)
	}
}

func TestTopGoalGroups(t *testing.T) {
	groups := []GoalGroup{{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}, {Title: "e"}}
	if got := TopGoalGroups(groups, 4); len(got) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(got))
	}
	if got := TopGoalGroups(groups[:2], 4); len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
}

func TestBuildReportFlowSumsToTotal(t *testing.T) {
	tasks := []models.Task{
		task("2024-06-03", true, withGoal("g1", "Health")),
		task("2024-06-03", false, withGoal("g1", "Health")),
		task("2024-06-04", true),
		task("2024-06-04", false),
		task("2024-06-05", false),
	}
	report := BuildReport(tasks, testWeek(t))

	flow := report.Flow
	if flow.PlannedToCompleted != 1 || flow.PlannedToRolled != 1 || flow.AdHocToCompleted != 1 || flow.AdHocToRolled != 2 {
		t.Fatalf("flow=%+v, want 1/1/1/2", flow)
	}
	sum := flow.PlannedToCompleted + flow.PlannedToRolled + flow.AdHocToCompleted + flow.AdHocToRolled
	if sum != report.Total {
		t.Fatalf("flow sum=%d, want %d", sum, report.Total)
	}
}

func TestBuildReportFocusHours(t *testing.T) {
	tasks := []models.Task{
		task("2024-06-03", true, withActual(60)),
		task("2024-06-04", false, withActual(30)),
	}
	report := BuildReport(tasks, testWeek(t))
	if report.FocusHours != 1.5 {
		t.Fatalf("focusHours=%v, want 1.5", report.FocusHours)
	}
}

func TestBuildReportPeakTime(t *testing.T) {
	tasks := []models.Task{
		task("2024-06-03", true, completedAt(9)),
		task("2024-06-04", true, completedAt(10)),
		task("2024-06-05", true, completedAt(20)),
	}
	report := BuildReport(tasks, testWeek(t))
	if report.PeakTime != PeakMorning {
		t.Fatalf("peakTime=%s, want %s", report.PeakTime, PeakMorning)
	}

	night := []models.Task{
		task("2024-06-03", true, completedAt(23)),
		task("2024-06-04", true, completedAt(2)),
	}
	report = BuildReport(night, testWeek(t))
	if report.PeakTime != PeakNight {
		t.Fatalf("peakTime=%s, want %s", report.PeakTime, PeakNight)
	}
}

func TestBuildReportPlanningAccuracy(t *testing.T) {
	under := []models.Task{
		task("2024-06-03", true, withDuration(30), withActual(90)),
		task("2024-06-04", true, withDuration(30), withActual(60)),
	}
	if report := BuildReport(under, testWeek(t)); report.PlanningAccuracy != AccuracyUnderestimator {
		t.Fatalf("planningAccuracy=%s, want underestimator", report.PlanningAccuracy)
	}

	over := []models.Task{
		task("2024-06-03", true, withDuration(120), withActual(30)),
	}
	if report := BuildReport(over, testWeek(t)); report.PlanningAccuracy != AccuracyOverestimator {
		t.Fatalf("planningAccuracy=%s, want overestimator", report.PlanningAccuracy)
	}

	calibrated := []models.Task{
		task("2024-06-03", true, withDuration(60), withActual(70)),
		task("2024-06-04", true, withDuration(60), withActual(50)),
	}
	if report := BuildReport(calibrated, testWeek(t)); report.PlanningAccuracy != AccuracyCalibrated {
		t.Fatalf("planningAccuracy=%s, want calibrated", report.PlanningAccuracy)
	}

	// incomplete tasks and zero actuals contribute no samples
	noSamples := []models.Task{
		task("2024-06-03", false, withDuration(30), withActual(300)),
		task("2024-06-04", true, withDuration(30)),
	}
	if report := BuildReport(noSamples, testWeek(t)); report.PlanningAccuracy != AccuracyCalibrated {
		t.Fatalf("planningAccuracy=%s, want calibrated default", report.PlanningAccuracy)
	}
}

func TestBuildReportBusiestDay(t *testing.T) {
	tasks := []models.Task{
		task("2024-06-04", false),
		task("2024-06-04", false),
		task("2024-06-07", true),
	}
	report := BuildReport(tasks, testWeek(t))
	if report.BusiestDay != "Tue" {
		t.Fatalf("busiestDay=%s, want Tue", report.BusiestDay)
	}

	// ties break toward the earlier day, Monday first
	tie := []models.Task{
		task("2024-06-05", false),
		task("2024-06-08", false),
	}
	report = BuildReport(tie, testWeek(t))
	if report.BusiestDay != "Wed" {
		t.Fatalf("busiestDay=%s, want Wed on tie", report.BusiestDay)
	}
}

func TestBuildReportIsDeterministic(t *testing.T) {
	tasks := []models.Task{
		task("2024-06-03", true, withGoal("g1", "Health"), withActual(45)),
		task("2024-06-05", false),
		task("2024-06-08", true, completedAt(14)),
	}
	week := testWeek(t)
	first := BuildReport(tasks, week)
	second := BuildReport(tasks, week)

	if first.Score != second.Score || first.PeakTime != second.PeakTime ||
		first.Flow != second.Flow || first.BusiestDay != second.BusiestDay {
		t.Fatalf("reports differ across runs: %+v vs %+v", first, second)
	}
	for i := range first.ActivityByDay {
		if first.ActivityByDay[i] != second.ActivityByDay[i] {
			t.Fatalf("day bucket %d differs across runs", i)
		}
	}
	for i := range first.GoalBreakdown {
		if first.GoalBreakdown[i] != second.GoalBreakdown[i] {
			t.Fatalf("goal group %d differs across runs", i)
		}
	}
}
