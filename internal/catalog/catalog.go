// Package catalog holds the descriptive metadata shown next to each
// sorting animation.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/algoviz/internal/trace"
)

var ErrNotFound = errors.New("catalog: algorithm not found")

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

type Complexity struct {
	Best    string `json:"best" yaml:"best"`
	Average string `json:"average" yaml:"average"`
	Worst   string `json:"worst" yaml:"worst"`
	Space   string `json:"space" yaml:"space"`
}

type Entry struct {
	Key         trace.Algorithm `json:"key"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Complexity  Complexity      `json:"complexity"`
	Stable      bool            `json:"stable"`
	InPlace     bool            `json:"in_place"`
	Difficulty  Difficulty      `json:"difficulty"`
	Steps       []string        `json:"steps"`
}

const sorting = "Sorting Algorithms"

type Registry struct {
	entries map[trace.Algorithm]Entry
	order   []trace.Algorithm
}

// NewRegistry returns a registry preloaded with every algorithm the trace
// generator supports.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[trace.Algorithm]Entry)}
	for _, e := range builtin {
		r.Register(e)
	}
	return r
}

// Register adds or replaces an entry. Replaced entries keep their position.
func (r *Registry) Register(e Entry) {
	if _, ok := r.entries[e.Key]; !ok {
		r.order = append(r.order, e.Key)
	}
	r.entries[e.Key] = e
}

func (r *Registry) Get(key string) (Entry, error) {
	alg, err := trace.ParseAlgorithm(key)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	e, ok := r.entries[alg]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return e, nil
}

// List returns entries in registration order.
func (r *Registry) List() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.entries[k])
	}
	return out
}

// Keys returns the registered keys sorted alphabetically.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

var defaultRegistry = NewRegistry()

func Get(key string) (Entry, error) { return defaultRegistry.Get(key) }
func List() []Entry                 { return defaultRegistry.List() }
func Keys() []string                { return defaultRegistry.Keys() }
