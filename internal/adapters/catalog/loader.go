// Package catalog reads operator-maintained catalog files.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/housekeep/core/internal/ports"
)

// LoadFile reads a catalog import from a YAML file
func LoadFile(path string) (*ports.CatalogImport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and checks a catalog document. Unknown keys are rejected so
// typos do not silently drop fields.
func Load(r io.Reader) (*ports.CatalogImport, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var in ports.CatalogImport
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog file is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := validate(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

func validate(in *ports.CatalogImport) error {
	codes := make(map[string]bool, len(in.SpaceTypes))
	for i, st := range in.SpaceTypes {
		if st.Code == "" || st.DisplayName == "" {
			return fmt.Errorf("space_types[%d]: code and display_name are required", i)
		}
		if codes[st.Code] {
			return fmt.Errorf("space_types[%d]: duplicate code %q", i, st.Code)
		}
		codes[st.Code] = true
	}

	type key struct{ spaceType, name string }
	seen := make(map[key]bool, len(in.Templates))
	for i, tpl := range in.Templates {
		if tpl.SpaceType == "" || tpl.TaskName == "" {
			return fmt.Errorf("task_templates[%d]: space_type and task_name are required", i)
		}
		if tpl.DefaultRecurrenceValue <= 0 || !tpl.DefaultRecurrenceUnit.IsValid() {
			return fmt.Errorf("task_templates[%d]: invalid recurrence %d %q", i, tpl.DefaultRecurrenceValue, tpl.DefaultRecurrenceUnit)
		}
		k := key{tpl.SpaceType, tpl.TaskName}
		if seen[k] {
			return fmt.Errorf("task_templates[%d]: duplicate template %s/%s", i, tpl.SpaceType, tpl.TaskName)
		}
		seen[k] = true
	}

	return nil
}
