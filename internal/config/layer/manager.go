package layer

import (
	"slices"
	"sync"
)

// Manager holds at most one layer per Source and merges them in
// precedence order.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // Sorted by Source (ascending)
}

// NewManager creates an empty layer manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add adds a layer, replacing any existing layer with the same Source.
func (m *Manager) Add(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = slices.DeleteFunc(m.layers, func(x *Layer) bool { return x.Source == l.Source })
	m.layers = append(m.layers, l)
	slices.SortFunc(m.layers, func(a, b *Layer) int { return int(a.Source) - int(b.Source) })
}

// Layer returns the layer for source, or nil.
func (m *Manager) Layer(source Source) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.layers {
		if l.Source == source {
			return l
		}
	}
	return nil
}

// Layers returns the layers in precedence order, lowest first.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.layers)
}

// Merge combines all layers into a new nested map.
func (m *Manager) Merge() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]any)
	for _, l := range m.layers {
		result = DeepMerge(result, l.Data)
	}
	return result
}

// Get returns the effective value for a setting path and the layer it
// came from.
func (m *Manager) Get(path string) (any, *Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Search layers from highest to lowest precedence
	for i := len(m.layers) - 1; i >= 0; i-- {
		if val, ok := GetByPath(m.layers[i].Data, path); ok {
			return val, m.layers[i], true
		}
	}
	return nil, nil, false
}

// WhichLayer returns the name of the layer that sets path, or "" if no
// layer does.
func (m *Manager) WhichLayer(path string) string {
	if _, l, ok := m.Get(path); ok {
		return l.Name()
	}
	return ""
}
