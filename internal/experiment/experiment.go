// Package experiment assembles a scene, its surface and its driver from a
// config, and records headless traces.
package experiment

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/wobble/internal/config"
	"github.com/san-kum/wobble/internal/driver"
	"github.com/san-kum/wobble/internal/motion"
	"github.com/san-kum/wobble/internal/scene"
	"github.com/san-kum/wobble/internal/storage"
)

type Experiment struct {
	cfg      *config.Config
	grid     *scene.Grid
	driver   *driver.Driver
	elements []scene.Element
}

// New places the configured sprites on a fresh grid and assigns each a
// behaviour. Extra surfaces receive every write the grid does.
func New(cfg *config.Config, logger *zap.Logger, extra ...scene.Surface) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	elements := cfg.SceneElements()
	grid := scene.NewGrid(elements...)

	var surface scene.Surface = grid
	if len(extra) > 0 {
		surface = append(scene.Fanout{grid}, extra...)
	}

	d, err := driver.New(cfg.DriverConfig(), motion.NewRegistry(), surface, logger)
	if err != nil {
		return nil, err
	}
	if err := d.Add(elements...); err != nil {
		return nil, err
	}

	return &Experiment{cfg: cfg, grid: grid, driver: d, elements: elements}, nil
}

// Pin drives every sprite with the same behaviour.
func (e *Experiment) Pin(behavior string) error {
	for _, el := range e.elements {
		if err := e.driver.Assign(el, behavior); err != nil {
			return err
		}
	}
	return nil
}

func (e *Experiment) Config() *config.Config    { return e.cfg }
func (e *Experiment) Grid() *scene.Grid         { return e.grid }
func (e *Experiment) Driver() *driver.Driver    { return e.driver }
func (e *Experiment) Elements() []scene.Element { return e.elements }

// Record steps the driver ticks times on the calling goroutine and returns
// one sample per element per tick.
func (e *Experiment) Record(ticks int) ([]storage.Sample, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("ticks must be positive, got %d", ticks)
	}
	samples := make([]storage.Sample, 0, ticks*len(e.elements))
	for tick := 0; tick < ticks; tick++ {
		if err := e.driver.Step(); err != nil {
			return nil, err
		}
		for _, s := range e.grid.Snapshot() {
			samples = append(samples, storage.Sample{Tick: tick, Element: s.ID, Transform: s.Transform})
		}
	}
	return samples, nil
}

func (e *Experiment) Metadata(name string, ticks int) storage.TraceMetadata {
	behaviors := make(map[string]string)
	for _, a := range e.driver.Assignments() {
		behaviors[a.Element] = a.Behavior
	}
	return storage.TraceMetadata{
		Name:       name,
		Seed:       e.driver.Seed(),
		IntervalMs: e.cfg.IntervalMs,
		Ticks:      ticks,
		Params:     e.cfg.Params(),
		Behaviors:  behaviors,
	}
}
