package motion

import (
	"fmt"
	"math/rand"
	"sort"
)

type Factory func(p Params) Generator

// Registry maps behaviour names to generator factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns the default behaviour set: bounce, the four orbit
// variants and both spin directions.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register("bounce", func(p Params) Generator {
		return NewTriangle(0, 1, p.Max, p.Amplitude)
	})

	for _, dir := range []Direction{Clockwise, CounterClockwise} {
		for _, hand := range []Handedness{Standard, Mirrored} {
			name := NewOrbit(0, 1, dir, hand).Name()
			r.Register(name, func(p Params) Generator {
				return NewOrbit(p.Radius, p.Step, dir, hand)
			})
		}
		r.Register(NewSpin(dir).Name(), func(Params) Generator { return NewSpin(dir) })
	}

	return r
}

func (r *Registry) Register(name string, f Factory) { r.factories[name] = f }

func (r *Registry) Get(name string, p Params) (Generator, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBehavior, name)
	}
	return f(p), nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pick draws one name uniformly from allowed, or from every registered name
// when allowed is empty.
func (r *Registry) Pick(rng *rand.Rand, allowed []string) (string, error) {
	pool := allowed
	if len(pool) == 0 {
		pool = r.Names()
	}
	if len(pool) == 0 {
		return "", ErrNoBehaviors
	}
	name := pool[rng.Intn(len(pool))]
	if !r.Has(name) {
		return "", fmt.Errorf("%w: %s", ErrUnknownBehavior, name)
	}
	return name, nil
}
