package workflow

import "time"

// ProofDeadline advances from start one calendar day at a time, counting only
// Monday through Friday, until businessDays weekdays have been counted. The
// result therefore always lands on a weekday: pay on a Friday and the deadline
// for 3 business days is the following Wednesday.
func ProofDeadline(start time.Time, businessDays int) time.Time {
	deadline := start
	counted := 0
	for counted < businessDays {
		deadline = deadline.AddDate(0, 0, 1)
		if wd := deadline.Weekday(); wd != time.Saturday && wd != time.Sunday {
			counted++
		}
	}
	return deadline
}
