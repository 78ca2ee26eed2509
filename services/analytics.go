package services

import (
	"math"
	"sort"
	"time"

	"PlannerGo/models"
)

// Report window kinds.
const (
	WindowWeek  = "week"
	WindowMonth = "month"
)

// ReportWindow is a contiguous run of calendar days the aggregator
// buckets tasks into.
type ReportWindow struct {
	Kind  string
	Start time.Time
	Days  int
}

// WindowFor computes the window containing anchor: Monday-anchored 7 days
// for "week", the full calendar month for "month". Unknown kinds fall
// back to "week".
func WindowFor(kind string, anchor time.Time) ReportWindow {
	if kind == WindowMonth {
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		days := start.AddDate(0, 1, -1).Day()
		return ReportWindow{Kind: WindowMonth, Start: start, Days: days}
	}
	offset := (int(anchor.Weekday()) + 6) % 7
	start := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location()).AddDate(0, 0, -offset)
	return ReportWindow{Kind: WindowWeek, Start: start, Days: 7}
}

// End returns the last date of the window, formatted YYYY-MM-DD.
func (w ReportWindow) End() string {
	return w.Start.AddDate(0, 0, w.Days-1).Format("2006-01-02")
}

// DayBucket is one calendar day's activity.
type DayBucket struct {
	Label     string `json:"label"`
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// GoalGroup is the per-goal task breakdown. Goal-less tasks roll up
// under "Uncategorized".
type GoalGroup struct {
	Title     string `json:"title"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// FlowData cross-tabulates planned (goal-linked) vs ad-hoc tasks against
// completed vs rolled-over. The four counts sum to the window total.
type FlowData struct {
	PlannedToCompleted int `json:"plannedToCompleted"`
	PlannedToRolled    int `json:"plannedToRolled"`
	AdHocToCompleted   int `json:"adHocToCompleted"`
	AdHocToRolled      int `json:"adHocToRolled"`
}

// Report is the aggregated productivity view of one window.
type Report struct {
	Window           string      `json:"window"`
	StartDate        string      `json:"startDate"`
	EndDate          string      `json:"endDate"`
	Total            int         `json:"total"`
	Completed        int         `json:"completed"`
	Score            int         `json:"score"`
	ActivityByDay    []DayBucket `json:"activityByDay"`
	GoalBreakdown    []GoalGroup `json:"goalBreakdown"`
	FocusHours       float64     `json:"focusHours"`
	PeakTime         string      `json:"peakTime"`
	PlanningAccuracy string      `json:"planningAccuracy"`
	Flow             FlowData    `json:"flowData"`
	BusiestDay       string      `json:"busiestDay"`
}

const uncategorizedGoal = "Uncategorized"

// planning accuracy tolerance: average deviation within this many minutes
// still counts as calibrated
const accuracyToleranceMinutes = 15.0

// Peak-time classifications.
const (
	PeakMorning   = "Morning worker"
	PeakAfternoon = "Afternoon worker"
	PeakEvening   = "Evening worker"
	PeakNight     = "Night owl"
	PeakNeutral   = "Flexible worker"
)

// Planning accuracy classifications.
const (
	AccuracyCalibrated     = "Calibrated"
	AccuracyUnderestimator = "Underestimator"
	AccuracyOverestimator  = "Overestimator"
)

// BuildReport reduces the tasks whose due date falls inside the window
// into a single report. It is a pure function of its inputs: no rows are
// mutated and re-running it on the same input yields the same report.
// An empty task list produces a zeroed report with one zero-filled bucket
// per day and neutral classifications.
func BuildReport(tasks []models.Task, window ReportWindow) Report {
	report := Report{
		Window:    window.Kind,
		StartDate: window.Start.Format("2006-01-02"),
		EndDate:   window.End(),
	}

	// zero-filled bucket per calendar day, Monday-first for weeks
	byDate := make(map[string]*DayBucket, window.Days)
	report.ActivityByDay = make([]DayBucket, window.Days)
	for i := 0; i < window.Days; i++ {
		day := window.Start.AddDate(0, 0, i)
		report.ActivityByDay[i] = DayBucket{
			Label: day.Format("Mon"),
			Date:  day.Format("2006-01-02"),
		}
		byDate[report.ActivityByDay[i].Date] = &report.ActivityByDay[i]
	}

	goalGroups := make(map[string]*GoalGroup)
	focusMinutes := 0
	peakVotes := make(map[string]int)
	deviationSum := 0.0
	deviationCount := 0

	for i := range tasks {
		t := &tasks[i]
		report.Total++
		if t.IsCompleted {
			report.Completed++
		}

		if t.DueDate != nil {
			if bucket, ok := byDate[*t.DueDate]; ok {
				bucket.Total++
				if t.IsCompleted {
					bucket.Completed++
				}
			}
		}

		title := t.GoalTitle()
		if title == "" {
			title = uncategorizedGoal
		}
		group, ok := goalGroups[title]
		if !ok {
			group = &GoalGroup{Title: title}
			goalGroups[title] = group
		}
		group.Total++
		if t.IsCompleted {
			group.Completed++
		}

		focusMinutes += t.ActualDuration

		if t.IsCompleted {
			if t.CompletedAt != nil {
				peakVotes[timeOfDayBucket(t.CompletedAt.Hour())]++
			}
			if t.ActualDuration > 0 {
				deviationSum += float64(t.ActualDuration - t.Duration)
				deviationCount++
			}
		}

		if t.GoalID != nil {
			if t.IsCompleted {
				report.Flow.PlannedToCompleted++
			} else {
				report.Flow.PlannedToRolled++
			}
		} else {
			if t.IsCompleted {
				report.Flow.AdHocToCompleted++
			} else {
				report.Flow.AdHocToRolled++
			}
		}
	}

	if report.Total > 0 {
		report.Score = int(math.Round(100 * float64(report.Completed) / float64(report.Total)))
	}

	report.GoalBreakdown = make([]GoalGroup, 0, len(goalGroups))
	for _, group := range goalGroups {
		report.GoalBreakdown = append(report.GoalBreakdown, *group)
	}
	sort.SliceStable(report.GoalBreakdown, func(i, j int) bool {
		if report.GoalBreakdown[i].Total != report.GoalBreakdown[j].Total {
			return report.GoalBreakdown[i].Total > report.GoalBreakdown[j].Total
		}
		return report.GoalBreakdown[i].Title < report.GoalBreakdown[j].Title
	})

	report.FocusHours = math.Round(float64(focusMinutes)/60*10) / 10

	report.PeakTime = peakTimeLabel(peakVotes)
	report.PlanningAccuracy = planningAccuracy(deviationSum, deviationCount)

	if report.Total > 0 {
		busiest := 0
		for i, bucket := range report.ActivityByDay {
			if bucket.Total > report.ActivityByDay[busiest].Total {
				busiest = i
			}
		}
		report.BusiestDay = report.ActivityByDay[busiest].Label
	}

	return report
}

func timeOfDayBucket(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return PeakMorning
	case hour >= 12 && hour < 17:
		return PeakAfternoon
	case hour >= 17 && hour < 22:
		return PeakEvening
	default:
		return PeakNight
	}
}

// peakTimeLabel picks the bucket with the most completions. Ties go to
// the earlier bucket of the day.
func peakTimeLabel(votes map[string]int) string {
	order := []string{PeakMorning, PeakAfternoon, PeakEvening, PeakNight}
	best := PeakNeutral
	bestVotes := 0
	for _, label := range order {
		if votes[label] > bestVotes {
			best = label
			bestVotes = votes[label]
		}
	}
	return best
}

// planningAccuracy classifies the average estimated-vs-actual deviation
// of completed tasks. Positive deviation means the work took longer than
// planned. No samples counts as calibrated.
func planningAccuracy(deviationSum float64, count int) string {
	if count == 0 {
		return AccuracyCalibrated
	}
	avg := deviationSum / float64(count)
	switch {
	case avg > accuracyToleranceMinutes:
		return AccuracyUnderestimator
	case avg < -accuracyToleranceMinutes:
		return AccuracyOverestimator
	default:
		return AccuracyCalibrated
	}
}

// TopGoalGroups returns at most n groups for display; the full breakdown
// stays on the report.
func TopGoalGroups(groups []GoalGroup, n int) []GoalGroup {
	if len(groups) <= n {
		return groups
	}
	return groups[:n]
}
