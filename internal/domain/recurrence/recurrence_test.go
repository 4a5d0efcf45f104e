package recurrence

import (
	"testing"
	"time"
)

func TestDueDate(t *testing.T) {
	ref := time.Date(2025, time.January, 15, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		ref   time.Time
		value int
		unit  Unit
		want  time.Time
	}{
		{
			name:  "Given 7 days When computing Then a week later at the same time",
			ref:   ref,
			value: 7,
			unit:  Days,
			want:  time.Date(2025, time.January, 22, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "Given days crossing a month boundary When computing Then the calendar rolls over",
			ref:   ref,
			value: 20,
			unit:  Days,
			want:  time.Date(2025, time.February, 4, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "Given 2 months When computing Then the same day two months later",
			ref:   ref,
			value: 2,
			unit:  Months,
			want:  time.Date(2025, time.March, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "Given Jan 31 plus one month When computing Then it normalizes into March",
			ref:   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
			value: 1,
			unit:  Months,
			want:  time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "Given twelve months When computing Then one year later",
			ref:   ref,
			value: 12,
			unit:  Months,
			want:  time.Date(2026, time.January, 15, 8, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueDate(tt.ref, tt.value, tt.unit)
			if !got.Equal(tt.want) {
				t.Errorf("DueDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDueDateIsStrictlyAfterReference(t *testing.T) {
	ref := time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC)
	for _, unit := range []Unit{Days, Months} {
		for value := 1; value <= 36; value++ {
			if got := DueDate(ref, value, unit); !got.After(ref) {
				t.Fatalf("DueDate(%v, %d, %s) = %v, not after reference", ref, value, unit, got)
			}
		}
	}
}

func TestUnitIsValid(t *testing.T) {
	if !Days.IsValid() || !Months.IsValid() {
		t.Fatal("expected days and months to be valid")
	}
	if Unit("weeks").IsValid() {
		t.Fatal("expected weeks to be invalid")
	}
}
