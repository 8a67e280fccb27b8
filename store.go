package envcast

import "strings"

// Pair is one environment entry: a variable name and its raw string value.
type Pair struct {
	Name  string
	Value string
}

// snapshot is an immutable name->value view of the pair list a driver was
// handed. It is built once per call and never touches the live process
// environment. When the same name appears more than once the first
// occurrence wins, matching how a process environment resolves duplicates.
type snapshot struct {
	values map[string]string
	names  []string // first-occurrence order, for prefix scans
}

func newSnapshot(pairs []Pair) *snapshot {
	s := &snapshot{
		values: make(map[string]string, len(pairs)),
		names:  make([]string, 0, len(pairs)),
	}
	for _, p := range pairs {
		if _, seen := s.values[p.Name]; seen {
			continue
		}
		s.values[p.Name] = p.Value
		s.names = append(s.names, p.Name)
	}
	return s
}

func (s *snapshot) lookup(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// scanPrefix returns every entry whose name starts with prefix, with the
// prefix stripped off the name. Order is input order; sequence decoding
// re-sorts by index afterwards.
func (s *snapshot) scanPrefix(prefix string) []Pair {
	var out []Pair
	for _, name := range s.names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, Pair{Name: name[len(prefix):], Value: s.values[name]})
		}
	}
	return out
}
