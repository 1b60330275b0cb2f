package arxiv

import (
	"time"

	"github.com/MaoSong2022/arxiv-daily/internal/config"
)

// arXiv announces new papers at 20:00 ET Sunday through Thursday, covering
// submissions received before 14:00 ET roughly one business day earlier.
// See https://info.arxiv.org/help/availability.html for the schedule.
//
// The submission window for a given run date therefore depends on the
// weekday: a Monday run covers last Thursday 10:00 through last Friday
// 14:00, a Tuesday run covers Friday through Sunday, and mid-week runs
// cover the usual two-day span. Saturday and Sunday have no announcement.
var dayDeltas = map[time.Weekday][2]int{
	time.Monday:    {4, 3},
	time.Tuesday:   {4, 1},
	time.Wednesday: {2, 1},
	time.Thursday:  {2, 1},
	time.Friday:    {2, 1},
}

// est is the fixed offset arXiv uses for its submission deadlines.
var est = time.FixedZone("EST", -5*60*60)

// Window is the submission time range covered by one announcement day.
type Window struct {
	// Start is the exclusive lower bound; papers updated at or before
	// Start belong to an earlier announcement.
	Start time.Time

	// End is the upper bound of the covered submission range.
	End time.Time
}

// AnnouncementWindow computes the submission window for the given run date.
// It returns config.ErrNoAnnouncement for Saturday and Sunday.
func AnnouncementWindow(date time.Time) (Window, error) {
	deltas, ok := dayDeltas[date.Weekday()]
	if !ok {
		return Window{}, config.ErrNoAnnouncement
	}

	year, month, day := date.AddDate(0, 0, -deltas[0]).Date()
	start := time.Date(year, month, day, 10, 0, 0, 0, est)

	year, month, day = date.AddDate(0, 0, -deltas[1]).Date()
	end := time.Date(year, month, day, 14, 0, 0, 0, est)

	return Window{Start: start, End: end}, nil
}

// Contains reports whether a paper updated at t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return t.After(w.Start) && !t.After(w.End)
}
