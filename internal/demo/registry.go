// ABOUTME: Registry of demo scripts addressable by name
// ABOUTME: Binds each script to its dependencies so the host can rerun it

package demo

import (
	"context"
	"math/rand/v2"
	"sort"

	"github.com/2389/widgetdash/internal/page"
)

// RunFunc executes one rerun of a script against p.
type RunFunc func(ctx context.Context, p *page.Page) error

// Script is a named, runnable demo page.
type Script struct {
	Name  string
	Title string
	Run   RunFunc
}

// Registry maps script names to scripts.
type Registry struct {
	scripts map[string]Script
}

// NewRegistry returns a registry with the dashboard and widgets scripts.
// A nil rng gives unseeded chart data and is safe for concurrent reruns;
// a non-nil rng is not.
func NewRegistry(sink CSVSink, rng *rand.Rand) *Registry {
	r := &Registry{scripts: make(map[string]Script)}

	r.Register(Script{
		Name:  "dashboard",
		Title: "Dashboard Demo",
		Run: func(ctx context.Context, p *page.Page) error {
			return Dashboard(ctx, p, rng)
		},
	})
	r.Register(Script{
		Name:  "widgets",
		Title: "Widgets Demo",
		Run: func(ctx context.Context, p *page.Page) error {
			return Widgets(ctx, p, sink)
		},
	})

	return r
}

// Register adds or replaces a script.
func (r *Registry) Register(s Script) {
	r.scripts[s.Name] = s
}

// Get returns the named script.
func (r *Registry) Get(name string) (Script, bool) {
	s, ok := r.scripts[name]
	return s, ok
}

// List returns all scripts sorted by name.
func (r *Registry) List() []Script {
	out := make([]Script, 0, len(r.scripts))
	for _, s := range r.scripts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
