// Copyright 2013 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"sync"

	"github.com/coremetrics/coremetrics/log"
	"github.com/coremetrics/coremetrics/model"
	"github.com/coremetrics/coremetrics/snapshot"
)

// Collector is anything the registry can snapshot. Every metric type in
// this package implements it; so do the callback variants.
type Collector interface {
	// Metadata returns the metric's name, type, help, and unit. It must be
	// constant over the collector's lifetime.
	Metadata() model.Metadata
	// Collect returns a point-in-time snapshot of the collector's state.
	// It must be safe to call concurrently with updates.
	Collect() snapshot.Metric
}

// Registry holds a set of collectors and snapshots them in registration
// order. The zero value is not usable; call NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]Collector
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Collector)}
}

// DefaultRegistry is the registry used by the package-level Register and
// Collect convenience functions.
var DefaultRegistry = NewRegistry()

// Register adds c to the registry. Registering a second collector under an
// already-taken name fails; exposing two metrics with the same name would
// produce an unparseable scrape.
func (r *Registry) Register(c Collector) error {
	name := c.Metadata().Name
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		log.With("metric", name).Warn("rejecting duplicate metric registration")
		return model.NewError(model.InvalidName, "metric %q is already registered", name)
	}
	r.byName[name] = c
	r.order = append(r.order, name)
	return nil
}

// MustRegister registers all given collectors and panics on the first
// failure.
func (r *Registry) MustRegister(cs ...Collector) {
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// Unregister removes the collector registered under c's name. It reports
// whether a collector was removed.
func (r *Registry) Unregister(c Collector) bool {
	name := c.Metadata().Name
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; !exists {
		return false
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Collect snapshots every registered collector, in registration order.
func (r *Registry) Collect() *snapshot.Set {
	r.mu.RLock()
	collectors := make([]Collector, 0, len(r.order))
	for _, name := range r.order {
		collectors = append(collectors, r.byName[name])
	}
	r.mu.RUnlock()

	set := snapshot.NewSet()
	for _, c := range collectors {
		set.Add(c.Collect())
	}
	return set
}

// Register adds c to the default registry.
func Register(c Collector) error { return DefaultRegistry.Register(c) }

// MustRegister adds collectors to the default registry and panics on the
// first failure.
func MustRegister(cs ...Collector) { DefaultRegistry.MustRegister(cs...) }

// Unregister removes c from the default registry.
func Unregister(c Collector) bool { return DefaultRegistry.Unregister(c) }

// Collect snapshots the default registry.
func Collect() *snapshot.Set { return DefaultRegistry.Collect() }
