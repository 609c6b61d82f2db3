// Package status is the engine's metrics facade. Components fetch
// metric pointers once at construction and write to atomics on their
// hot paths; readers range over the maps for HUDs and stat dumps.
//
// Conventional keys:
//
//	engine.ticks        total elapsed ticks
//	engine.dots         dots evolved per run
//	engine.fingerprint  run fingerprint text
//	render.frames       frames rasterized
//	render.nanos        cumulative rasterization time
//	export.frames       frames handed to the recorder
//	export.dropped      frames refused over the recording budget
//	preview.paused      pause state of the live preview
//	preview.scrub       history offset while paused
//	preview.drift       latest mean per-tick displacement
package status

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Registry groups one Map per metric kind.
type Registry struct {
	Bools  *Map[atomic.Bool]
	Ints   *Map[atomic.Int64]
	Floats *Map[Float]
	Texts  *Map[Text]
}

// NewRegistry returns a Registry with all maps initialized.
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMap[atomic.Bool](),
		Ints:   NewMap[atomic.Int64](),
		Floats: NewMap[Float](),
		Texts:  NewMap[Text](),
	}
}

// Count reports the total number of registered metrics.
func (r *Registry) Count() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Texts.Count()
}

// Map is a keyed set of metrics of one kind. Registration takes the
// lock; the pointers it hands out are written lock-free afterwards.
type Map[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMap returns an empty metric map.
func NewMap[T any]() *Map[T] {
	return &Map[T]{items: make(map[string]*T)}
}

// Get returns the metric pointer for key, allocating on first use.
func (m *Map[T]) Get(key string) *T {
	m.mu.RLock()
	if ptr, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return ptr
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr := new(T)
	m.items[key] = ptr
	return ptr
}

// Has reports whether key has been registered.
func (m *Map[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Range visits every metric in sorted key order so dumps and HUD rows
// come out stable across runs.
func (m *Map[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.items) == 0 {
		return
	}
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.items[k])
	}
}

// Count reports the number of registered metrics.
func (m *Map[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Float is an atomic float64 built on bit conversion. The zero value
// reads as 0.0 and is ready to use.
type Float struct {
	bits atomic.Uint64
}

// Store sets the value atomically.
func (f *Float) Store(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Load returns the current value atomically.
func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add adds delta atomically and returns the new value.
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// maxTextLen bounds stored strings so a runaway writer cannot balloon
// the registry.
const maxTextLen = 64

// Text is an atomic string with a fixed maximum length. The zero
// value reads as the empty string.
type Text struct {
	ptr atomic.Pointer[string]
}

// Store sets the string, truncating to maxTextLen bytes.
func (t *Text) Store(val string) {
	if len(val) > maxTextLen {
		val = val[:maxTextLen]
	}
	t.ptr.Store(&val)
}

// Load returns the current string.
func (t *Text) Load() string {
	if p := t.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
