package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

// force timezone to be eastern because the scoreboard's notion of "a
// day's games" is pinned to ET, a server in another zone would split
// late tipoffs onto the wrong date
func Now() time.Time {
	return time.Now().In(Location)
}

// DateRange returns every day from start to end, inclusive on both ends.
func DateRange(start, end time.Time) []time.Time {
	var days []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
