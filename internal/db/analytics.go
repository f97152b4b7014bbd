package db

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

// Summary holds rolling study totals in seconds.
type Summary struct {
	Daily   int64 `json:"daily"`
	Weekly  int64 `json:"weekly"`
	Monthly int64 `json:"monthly"`
	Total   int64 `json:"total"`
}

// ChartBucket is one bar of the dashboard chart. Minutes are signed:
// focus and manual sessions count positive, break sessions negative.
type ChartBucket struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

// Summarize sums session durations over today (local midnight), a
// rolling seven days, the current calendar month, and all time. Each
// sum is independent and zero when nothing matches.
func Summarize(dbh *sql.DB, loc *time.Location, now time.Time) (Summary, error) {
	now = now.In(loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	weekStart := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	var s Summary
	sums := []struct {
		dst   *int64
		since time.Time
	}{
		{&s.Daily, todayStart},
		{&s.Weekly, weekStart},
		{&s.Monthly, monthStart},
	}
	for _, q := range sums {
		err := dbh.QueryRow(
			`SELECT COALESCE(SUM(duration),0) FROM study_sessions WHERE start_time >= ?`,
			q.since.UTC().Format(time.RFC3339),
		).Scan(q.dst)
		if err != nil {
			return Summary{}, fmt.Errorf("summarize: %w", err)
		}
	}
	if err := dbh.QueryRow(`SELECT COALESCE(SUM(duration),0) FROM study_sessions`).Scan(&s.Total); err != nil {
		return Summary{}, fmt.Errorf("summarize: %w", err)
	}
	return s, nil
}

// ChartViews are the accepted values for Chart's view argument.
var ChartViews = map[string]bool{"daily": true, "weekly": true, "monthly": true}

// Chart builds the fixed bucket list for a view: the last 7 days, the
// last 4 Monday-aligned weeks, or the last 6 calendar months. Bucket
// identity is decided up front so empty periods still render as zero,
// and each session is assigned to a bucket from its own start
// timestamp rather than by matching formatted query output.
func Chart(dbh *sql.DB, loc *time.Location, view string, now time.Time) ([]ChartBucket, error) {
	now = now.In(loc)

	type bucket struct {
		key   string
		label string
	}
	var buckets []bucket
	var windowStart time.Time
	var keyOf func(t time.Time) string

	switch view {
	case "daily":
		for i := 6; i >= 0; i-- {
			d := now.AddDate(0, 0, -i)
			buckets = append(buckets, bucket{key: d.Format("2006-01-02"), label: d.Format("Mon")})
		}
		first := now.AddDate(0, 0, -6)
		windowStart = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)
		keyOf = func(t time.Time) string { return t.Format("2006-01-02") }
	case "weekly":
		for i := 3; i >= 0; i-- {
			monday := mondayOf(now.AddDate(0, 0, -7*i), loc)
			buckets = append(buckets, bucket{key: monday.Format("2006-01-02"), label: fmt.Sprintf("Week %d", 4-i)})
		}
		windowStart = mondayOf(now.AddDate(0, 0, -21), loc)
		keyOf = func(t time.Time) string { return mondayOf(t, loc).Format("2006-01-02") }
	case "monthly":
		// month stepping is anchored to the 1st: AddDate from a
		// month-end now normalizes (Mar 31 minus one month is Mar 2)
		// and would duplicate and skip months
		first := time.Date(now.Year(), now.Month()-5, 1, 0, 0, 0, 0, loc)
		for i := 0; i < 6; i++ {
			m := first.AddDate(0, i, 0)
			buckets = append(buckets, bucket{key: m.Format("2006-01"), label: m.Format("Jan")})
		}
		windowStart = first
		keyOf = func(t time.Time) string { return t.Format("2006-01") }
	default:
		return nil, fmt.Errorf("unknown chart view %q", view)
	}

	rows, err := dbh.Query(`
		SELECT start_time, duration, mode
		FROM study_sessions
		WHERE start_time >= ?
	`, windowStart.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("chart query: %w", err)
	}
	defer rows.Close()

	// signed seconds per bucket key, rounded to minutes only after
	// summation to keep rounding error per bucket, not per session
	seconds := make(map[string]int64)
	for rows.Next() {
		var ts, mode string
		var duration int64
		if err := rows.Scan(&ts, &duration, &mode); err != nil {
			return nil, err
		}
		start, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			continue
		}
		signed := duration
		if mode != "focus" && mode != "manual" {
			signed = -duration
		}
		seconds[keyOf(start.In(loc))] += signed
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]ChartBucket, 0, len(buckets))
	for _, b := range buckets {
		mins := int(math.Round(float64(seconds[b.key]) / 60.0))
		out = append(out, ChartBucket{Name: b.label, Minutes: mins})
	}
	return out, nil
}

// mondayOf returns local midnight of the Monday beginning the ISO
// week that contains t.
func mondayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	m := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(m.Year(), m.Month(), m.Day(), 0, 0, 0, 0, loc)
}
