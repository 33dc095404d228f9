package detector

import "fmt"

// Registry holds detectors in registration order.
type Registry struct {
	order []Detector
	byKey map[string]Detector
}

// NewRegistry creates a registry holding detectors. Duplicate keys are rejected.
func NewRegistry(detectors ...Detector) (*Registry, error) {
	r := &Registry{byKey: make(map[string]Detector, len(detectors))}
	for _, d := range detectors {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register appends d to the registry.
func (r *Registry) Register(d Detector) error {
	if _, ok := r.byKey[d.Key()]; ok {
		return fmt.Errorf("detector %q already registered", d.Key())
	}

	r.byKey[d.Key()] = d
	r.order = append(r.order, d)

	return nil
}

// Get returns the detector registered under key.
func (r *Registry) Get(key string) (Detector, bool) {
	d, ok := r.byKey[key]

	return d, ok
}

// All returns every registered detector in registration order.
func (r *Registry) All() []Detector {
	out := make([]Detector, len(r.order))
	copy(out, r.order)

	return out
}

// Enabled returns the detectors not switched off in enabled. Keys missing
// from enabled count as enabled.
func (r *Registry) Enabled(enabled map[string]bool) []Detector {
	out := make([]Detector, 0, len(r.order))
	for _, d := range r.order {
		if IsEnabled(enabled, d.Key()) {
			out = append(out, d)
		}
	}

	return out
}

// IsEnabled reports whether key is enabled in the map; absent keys default to true.
func IsEnabled(enabled map[string]bool, key string) bool {
	on, ok := enabled[key]

	return !ok || on
}
