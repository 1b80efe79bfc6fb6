package reports

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("invalid date range")

const dayLayout = "2006-01-02"

// DayRange is an inclusive range of whole calendar days in a location
type DayRange struct {
	Start time.Time
	End   time.Time
	start string
	end   string
}

// ParseDayRange parses YYYY-MM-DD bounds. The range runs from 00:00:00.000 on
// the start day to 23:59:59.999 on the end day, local to loc.
func ParseDayRange(start, end string, loc *time.Location) (DayRange, error) {
	if loc == nil {
		loc = time.Local
	}
	startDay, err := time.ParseInLocation(dayLayout, start, loc)
	if err != nil {
		return DayRange{}, fmt.Errorf("%w: start must be YYYY-MM-DD", ErrInvalidRange)
	}
	endDay, err := time.ParseInLocation(dayLayout, end, loc)
	if err != nil {
		return DayRange{}, fmt.Errorf("%w: end must be YYYY-MM-DD", ErrInvalidRange)
	}
	if endDay.Before(startDay) {
		return DayRange{}, fmt.Errorf("%w: end is before start", ErrInvalidRange)
	}

	return DayRange{
		Start: startDay,
		End:   endDay.AddDate(0, 0, 1).Add(-time.Millisecond),
		start: start,
		end:   end,
	}, nil
}

// Contains reports whether an epoch-millisecond timestamp falls in the range
func (r DayRange) Contains(ms int64) bool {
	return ms >= r.Start.UnixMilli() && ms <= r.End.UnixMilli()
}

// Label returns "<start>_to_<end>" for file names
func (r DayRange) Label() string {
	return r.start + "_to_" + r.end
}
