package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/housekeep/core/internal/domain/recurrence"
)

const sampleCatalog = `
space_types:
  - code: balcony
    display_name: Balcony
    icon: "🌿"
    display_order: 8
task_templates:
  - space_type: balcony
    task_name: Water plants
    default_recurrence_value: 2
    default_recurrence_unit: days
    display_order: 1
  - space_type: kitchen
    task_name: Defrost the freezer
    default_recurrence_value: 6
    default_recurrence_unit: months
    display_order: 5
`

func TestLoad(t *testing.T) {
	in, err := Load(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(in.SpaceTypes) != 1 || in.SpaceTypes[0].Code != "balcony" || in.SpaceTypes[0].DisplayOrder != 8 {
		t.Errorf("SpaceTypes = %+v", in.SpaceTypes)
	}
	if in.SpaceTypes[0].Icon == nil || *in.SpaceTypes[0].Icon != "🌿" {
		t.Errorf("icon = %v", in.SpaceTypes[0].Icon)
	}
	if len(in.Templates) != 2 {
		t.Fatalf("got %d templates, want 2", len(in.Templates))
	}
	if in.Templates[1].DefaultRecurrenceUnit != recurrence.Months || in.Templates[1].DefaultRecurrenceValue != 6 {
		t.Errorf("template = %+v", in.Templates[1])
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "Given an unknown key When loading Then rejected",
			doc:  "space_types:\n  - code: a\n    display_name: A\n    colour: red\n",
			want: "colour",
		},
		{
			name: "Given a bad unit When loading Then rejected",
			doc:  "task_templates:\n  - space_type: a\n    task_name: T\n    default_recurrence_value: 1\n    default_recurrence_unit: weeks\n",
			want: "invalid recurrence",
		},
		{
			name: "Given a zero value When loading Then rejected",
			doc:  "task_templates:\n  - space_type: a\n    task_name: T\n    default_recurrence_value: 0\n    default_recurrence_unit: days\n",
			want: "invalid recurrence",
		},
		{
			name: "Given duplicate codes When loading Then rejected",
			doc:  "space_types:\n  - code: a\n    display_name: A\n  - code: a\n    display_name: B\n",
			want: "duplicate code",
		},
		{
			name: "Given an empty document When loading Then rejected",
			doc:  "",
			want: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o600); err != nil {
		t.Fatal(err)
	}

	in, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(in.Templates) != 2 {
		t.Errorf("got %d templates", len(in.Templates))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) succeeded")
	}
}
