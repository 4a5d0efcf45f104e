// Package recurrence computes the next due date of a recurring chore.
package recurrence

import "time"

// Unit is the granularity of a recurrence period.
type Unit string

const (
	Days   Unit = "days"
	Months Unit = "months"
)

// IsValid reports whether u is a supported unit.
func (u Unit) IsValid() bool {
	switch u {
	case Days, Months:
		return true
	default:
		return false
	}
}

// DueDate returns reference advanced by value units.
//
// Month arithmetic follows time.AddDate normalization: Jan 31 plus one
// month lands on Mar 2 or Mar 3, never clamped to the end of February.
// The time of day is preserved.
func DueDate(reference time.Time, value int, unit Unit) time.Time {
	switch unit {
	case Months:
		return reference.AddDate(0, value, 0)
	default:
		return reference.AddDate(0, 0, value)
	}
}
