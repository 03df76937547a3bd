package jadwal

import (
	"time"

	"github.com/posyandu/posyandu/pkg/dates"
)

// Clock supplies "today" so age computation is testable. The production
// clock reads the configured zone; all date comparison downstream happens on
// calendar dates only.
type Clock interface {
	Today() dates.Date
}

type systemClock struct {
	loc *time.Location
}

// NewClock returns a Clock that reports today in the given zone.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Today() dates.Date {
	return dates.FromTime(time.Now().In(c.loc))
}
