package driver

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/wobble/internal/motion"
	"github.com/san-kum/wobble/internal/scene"
)

// Assignment records which behaviour drives an element.
type Assignment struct {
	Element  string
	Behavior string
}

type task struct {
	element  scene.Element
	behavior string
	gen      motion.Generator
}

// run ticks until ctx is done. Only this goroutine touches t.gen.
func (t *task) run(ctx context.Context, interval time.Duration, surface scene.Surface) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			surface.Apply(t.element.ID, t.gen.Next())
		}
	}
}

type Driver struct {
	cfg      Config
	registry *motion.Registry
	surface  scene.Surface
	logger   *zap.Logger

	mu      sync.Mutex
	rng     *rand.Rand
	seed    int64
	tasks   []*task
	index   map[string]*task
	cancel  context.CancelFunc
	group   *errgroup.Group
	running bool
}

// New validates cfg. A nil logger discards output.
func New(cfg Config, registry *motion.Registry, surface scene.Surface, logger *zap.Logger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = motion.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, name := range cfg.Behaviors {
		if !registry.Has(name) {
			return nil, fmt.Errorf("%w: %s", motion.ErrUnknownBehavior, name)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Driver{
		cfg:      cfg,
		registry: registry,
		surface:  surface,
		logger:   logger,
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		index:    make(map[string]*task),
	}, nil
}

func (d *Driver) Config() Config { return d.cfg }

// Seed is the effective seed, resolved from the clock when configured as 0.
func (d *Driver) Seed() int64 { return d.seed }

// Add draws a behaviour for each element. Elements cannot be added while
// the loops are running.
func (d *Driver) Add(elements ...scene.Element) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return ErrAlreadyRunning
	}
	for _, e := range elements {
		name, err := d.registry.Pick(d.rng, d.cfg.Behaviors)
		if err != nil {
			return err
		}
		if err := d.assignLocked(e, name); err != nil {
			return err
		}
	}
	return nil
}

// Assign pins an element to a named behaviour, adding it if needed.
func (d *Driver) Assign(e scene.Element, behavior string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return ErrAlreadyRunning
	}
	return d.assignLocked(e, behavior)
}

func (d *Driver) assignLocked(e scene.Element, behavior string) error {
	gen, err := d.registry.Get(behavior, d.cfg.Params)
	if err != nil {
		return err
	}
	if t, ok := d.index[e.ID]; ok {
		t.element, t.behavior, t.gen = e, behavior, gen
	} else {
		t := &task{element: e, behavior: behavior, gen: gen}
		d.tasks = append(d.tasks, t)
		d.index[e.ID] = t
	}
	d.logger.Debug("assigned behavior",
		zap.String("element", e.ID),
		zap.String("behavior", behavior))
	return nil
}

// Reroll draws a fresh behaviour for every element.
func (d *Driver) Reroll() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return ErrAlreadyRunning
	}
	for _, t := range d.tasks {
		name, err := d.registry.Pick(d.rng, d.cfg.Behaviors)
		if err != nil {
			return err
		}
		if err := d.assignLocked(t.element, name); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) Assignments() []Assignment {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Assignment, len(d.tasks))
	for i, t := range d.tasks {
		out[i] = Assignment{Element: t.element.ID, Behavior: t.behavior}
	}
	return out
}

func (d *Driver) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}

func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Start launches one loop per element and returns immediately. Loops pick
// up where their generators left off, so Stop followed by Start resumes.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range d.tasks {
		g.Go(func() error { return t.run(ctx, d.cfg.Interval, d.surface) })
	}

	d.cancel, d.group, d.running = cancel, g, true
	d.logger.Info("driver started",
		zap.Int("elements", len(d.tasks)),
		zap.Duration("interval", d.cfg.Interval),
		zap.Int64("seed", d.seed))
	return nil
}

// Stop cancels every loop and waits for them to exit. It is safe to call
// more than once and before Start.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}

	// Loops never take d.mu, so holding it here keeps a concurrent Start
	// from sharing generators with loops that have not exited yet.
	d.cancel()
	_ = d.group.Wait()
	d.running, d.cancel, d.group = false, nil, nil
	d.logger.Info("driver stopped")
}

// Wait blocks until the loops exit, which happens when the context given
// to Start is done or Stop is called.
func (d *Driver) Wait() error {
	d.mu.Lock()
	g, cancel := d.group, d.cancel
	d.mu.Unlock()
	if g == nil {
		return nil
	}
	err := g.Wait()

	d.mu.Lock()
	if d.group == g {
		d.running, d.cancel, d.group = false, nil, nil
		cancel()
	}
	d.mu.Unlock()
	return err
}

// Step advances every element by one tick on the calling goroutine, in
// insertion order.
func (d *Driver) Step() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return ErrAlreadyRunning
	}
	for _, t := range d.tasks {
		d.surface.Apply(t.element.ID, t.gen.Next())
	}
	return nil
}

// Reset restarts every generator from its initial state.
func (d *Driver) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return ErrAlreadyRunning
	}
	for _, t := range d.tasks {
		t.gen.Reset()
	}
	return nil
}

// Behavior reports the behaviour driving an element.
func (d *Driver) Behavior(id string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.index[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}
	return t.behavior, nil
}
