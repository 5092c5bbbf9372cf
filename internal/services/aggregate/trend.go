package aggregate

import "sort"

// DayPoint is the team-wide activity of a single day.
type DayPoint struct {
	Day           string
	LinesAccepted int64
	MessagesSent  int64
}

// Trend accumulates day buckets across users.
type Trend struct {
	days map[string]*DayPoint
}

// NewTrend returns an empty trend.
func NewTrend() *Trend {
	return &Trend{days: make(map[string]*DayPoint)}
}

// Add folds one user's breakdown into the trend. Buckets with an empty day
// are not plotted.
func (t *Trend) Add(b Breakdown) {
	for _, day := range b.Days() {
		if day == "" {
			continue
		}
		p, ok := t.days[day]
		if !ok {
			p = &DayPoint{Day: day}
			t.days[day] = p
		}
		if l, ok := b.Lines[day]; ok {
			p.LinesAccepted += l.Accepted
		}
		if r, ok := b.Runs[day]; ok {
			p.MessagesSent += r.MessagesSent
		}
	}
}

// Points returns the trend ordered by day.
func (t *Trend) Points() []DayPoint {
	points := make([]DayPoint, 0, len(t.days))
	for _, p := range t.days {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Day < points[j].Day
	})
	return points
}
