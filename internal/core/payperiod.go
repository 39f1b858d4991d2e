package core

import "time"

const (
	// OutOfRange marks a date outside the current pay period, or any date
	// when no pay period end is set.
	OutOfRange Week = iota
	Week1
	Week2
)

// Week classifies an entry date relative to the pay period end.
type Week int

func (w Week) String() string {
	switch w {
	case Week1:
		return "1"
	case Week2:
		return "2"
	}
	return "?"
}

// PayPeriodWeeks is the pair of 7-day windows anchored by the period end.
// All bounds are inclusive.
type PayPeriodWeeks struct {
	Week1Start Date
	Week1End   Date
	Week2Start Date
	Week2End   Date
}

// Weeks derives the two week windows from the period end date. The period
// always spans exactly 14 days ending on end: week 1 is end-13 through
// end-7 and week 2 is end-6 through end. Returns the zero value when no
// end is set.
func Weeks(end Date) PayPeriodWeeks {
	if end.IsZero() {
		return PayPeriodWeeks{}
	}
	return PayPeriodWeeks{
		Week1Start: end.AddDays(-13),
		Week1End:   end.AddDays(-7),
		Week2Start: end.AddDays(-6),
		Week2End:   end,
	}
}

// Classify places a date into week 1, week 2 or out of range. Every date
// is out of range while no period end is set.
func Classify(d Date, end Date) Week {
	if d.IsZero() || end.IsZero() {
		return OutOfRange
	}
	w := Weeks(end)
	switch {
	case !d.Before(w.Week1Start.Time) && !d.After(w.Week1End.Time):
		return Week1
	case !d.Before(w.Week2Start.Time) && !d.After(w.Week2End.Time):
		return Week2
	}
	return OutOfRange
}

// IsStandardAnchor reports whether the period ends on a Saturday, the
// department's usual anchor. A non-Saturday end is allowed; callers treat
// this as advisory only.
func IsStandardAnchor(end Date) bool {
	return !end.IsZero() && end.Weekday() == time.Saturday
}
