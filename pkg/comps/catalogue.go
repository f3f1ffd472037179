package comps

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalogue returns all seven components in enumeration order.
func Catalogue() []Component {
	return []Component{
		C3(), C4(), C5(), C6(), Large(), ComplexPath(), ComplexTree(),
	}
}

// ByShortName resolves a catalogue name such as "C5" or "Complex
// Tree".
func ByShortName(name string) (Component, bool) {
	for _, c := range Catalogue() {
		if c.ShortName() == name {
			return c, true
		}
	}
	return Component{}, false
}

// Selection names the components a proof run works with: the leaf
// (respectively last) components each case starts from, and the inner
// components the enumerators may append.
type Selection struct {
	Leaves []Component
	Inner  []Component
}

// DefaultSelection starts cases from every non-complex component and
// lets the enumerators append anything in the catalogue.
func DefaultSelection() *Selection {
	return &Selection{
		Leaves: []Component{C3(), C4(), C5(), C6(), Large()},
		Inner:  Catalogue(),
	}
}

type selectionFile struct {
	Leaves []string `yaml:"leaves"`
	Inner  []string `yaml:"inner"`
}

// LoadSelection reads a selection from a YAML file listing component
// short names under the keys "leaves" and "inner". Unknown fields and
// unknown component names are rejected.
func LoadSelection(path string) (*Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selection file: %w", err)
	}

	var file selectionFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse selection file: %w", err)
	}

	sel := &Selection{}
	if sel.Leaves, err = resolveNames(file.Leaves); err != nil {
		return nil, err
	}
	if sel.Inner, err = resolveNames(file.Inner); err != nil {
		return nil, err
	}
	if len(sel.Leaves) == 0 {
		return nil, fmt.Errorf("selection %s names no leaf components", path)
	}
	if len(sel.Inner) == 0 {
		return nil, fmt.Errorf("selection %s names no inner components", path)
	}
	return sel, nil
}

func resolveNames(names []string) ([]Component, error) {
	comps := make([]Component, 0, len(names))
	for _, name := range names {
		c, ok := ByShortName(name)
		if !ok {
			return nil, fmt.Errorf("unknown component %q", name)
		}
		comps = append(comps, c)
	}
	return comps, nil
}
