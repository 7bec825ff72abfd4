package tspath

import "sort"

// FileMap is a mapping keyed by normalized file paths. Keys are
// normalized on every operation, so two spellings of the same logical
// path always land on the same entry.
type FileMap[V any] struct {
	entries map[string]V
}

// NewFileMap returns an empty FileMap.
func NewFileMap[V any]() *FileMap[V] {
	return &FileMap[V]{entries: make(map[string]V)}
}

// Set stores value under the normalized key.
func (m *FileMap[V]) Set(key string, value V) {
	m.entries[Normalize(key)] = value
}

// Get returns the value for key and whether it was present.
func (m *FileMap[V]) Get(key string) (V, bool) {
	v, ok := m.entries[Normalize(key)]
	return v, ok
}

// Has reports whether key is present.
func (m *FileMap[V]) Has(key string) bool {
	_, ok := m.entries[Normalize(key)]
	return ok
}

// Len returns the number of entries.
func (m *FileMap[V]) Len() int {
	return len(m.entries)
}

// Keys returns all keys in sorted order for deterministic walks.
func (m *FileMap[V]) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
