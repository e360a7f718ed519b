package streak

import "time"

// DayStartHour is the local hour at which a duty day begins.
const DayStartHour = 6

const dayCodeLayout = "2006-01-02"

// DutyDay returns the YYYY-MM-DD code of the duty day containing t, read in
// t's own location. Instants before 06:00 belong to the previous calendar day.
func DutyDay(t time.Time) string {
	return dutyDate(t).Format(dayCodeLayout)
}

// dutyDate maps t onto its duty day as a UTC midnight. UTC carries no DST, so
// differences between two dutyDates are always whole days.
func dutyDate(t time.Time) time.Time {
	y, m, d := t.Date()
	if t.Hour() < DayStartHour {
		d--
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayNumber counts days since the Unix epoch for a duty date.
func dayNumber(t time.Time) int64 {
	return dutyDate(t).Unix() / 86400
}
