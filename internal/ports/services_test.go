package ports

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name           string
		page, limit    int
		total          int
		wantPages      int
		wantOutOfRange bool
	}{
		{"empty result has one page", 1, 20, 0, 1, false},
		{"empty result beyond page one is not out of range", 3, 20, 0, 1, false},
		{"exact multiple", 2, 10, 20, 2, false},
		{"partial last page", 3, 10, 21, 3, false},
		{"page past the end", 4, 10, 21, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.OutOfRange() != tt.wantOutOfRange {
				t.Errorf("OutOfRange() = %v, want %v", p.OutOfRange(), tt.wantOutOfRange)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in        string
		wantField string
		wantOrder string
	}{
		{"name.desc", "name", "desc"},
		{"due_date.asc", "due_date", "asc"},
		{"", "due_date", "asc"},
		{"name", "due_date", "asc"},
		{"name.sideways", "name", "asc"},
	}

	for _, tt := range tests {
		field, order := ParseSort(tt.in, "due_date", "asc")
		if field != tt.wantField || order != tt.wantOrder {
			t.Errorf("ParseSort(%q) = %s %s, want %s %s", tt.in, field, order, tt.wantField, tt.wantOrder)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 20); got != 0 {
		t.Errorf("Offset(1, 20) = %d", got)
	}
	if got := Offset(3, 20); got != 40 {
		t.Errorf("Offset(3, 20) = %d", got)
	}
	if got := Offset(0, 20); got != 0 {
		t.Errorf("Offset(0, 20) = %d", got)
	}
}
