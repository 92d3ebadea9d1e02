// Package scene owns a listener, its emitters and their ears, and drives
// them one frame at a time.
//
// A Scene replaces process-wide state: every emitter gets its own models
// and memo table, configuration changes rebuild both, and Reset clears
// caches and motion. Scene is not thread-safe.
package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-spatial/internal/log"
	"github.com/cwbudde/algo-spatial/spatial/ear"
	"github.com/cwbudde/algo-spatial/spatial/physics"
)

// ErrUnknownEmitter is returned for an emitter ID the scene does not hold.
var ErrUnknownEmitter = errors.New("scene: unknown emitter")

// Frame is one tick of the external frame scheduler.
type Frame struct {
	// Delta is the elapsed time in seconds since the previous frame.
	Delta float64
	// Paused skips integration and ear updates entirely.
	Paused bool
}

// Emitter is a sound source in the scene.
type Emitter struct {
	ID   uuid.UUID
	Name string
	Body *physics.Body

	cfg    EmitterConfig
	ear    *ear.Ear
	output ear.Output
	wander *physics.Wander
}

// Ear returns the emitter's ear.
func (e *Emitter) Ear() *ear.Ear { return e.ear }

// Last returns the result of the emitter's most recent frame.
func (e *Emitter) Last() ear.Result { return e.ear.Last() }

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the scene logger. The default is the global logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scene is the explicit spatialization context.
type Scene struct {
	cfg      Config
	listener *physics.Body

	emitters map[uuid.UUID]*Emitter
	order    []uuid.UUID

	logger  *slog.Logger
	frames  uint64
	elapsed float64
}

// New builds a scene from cfg, creating the listener and every configured
// emitter.
func New(cfg Config, opts ...Option) (*Scene, error) {
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		cfg:      cfg,
		listener: cfg.Listener.Body(),
		emitters: make(map[uuid.UUID]*Emitter, len(cfg.Emitters)),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = log.L()
	}

	for _, ec := range cfg.Emitters {
		if _, err := s.add(ec); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("scene created",
		"gain", cfg.Gain.Kind,
		"filter", cfg.Filter.Kind,
		"emitters", len(s.order))

	return s, nil
}

// Config returns the active configuration. Emitters reflects the
// configuration each current emitter was created with.
func (s *Scene) Config() Config {
	cfg := s.cfg
	cfg.Emitters = make([]EmitterConfig, 0, len(s.order))
	for _, id := range s.order {
		cfg.Emitters = append(cfg.Emitters, s.emitters[id].cfg)
	}
	return cfg
}

// Listener returns the listener body.
func (s *Scene) Listener() *physics.Body { return s.listener }

// Frames returns the number of unpaused frames processed.
func (s *Scene) Frames() uint64 { return s.frames }

// Elapsed returns the unpaused time in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Len returns the number of emitters.
func (s *Scene) Len() int { return len(s.order) }

// Emitters returns the emitters in insertion order.
func (s *Scene) Emitters() []*Emitter {
	out := make([]*Emitter, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.emitters[id])
	}
	return out
}

// Emitter returns the emitter with the given ID.
func (s *Scene) Emitter(id uuid.UUID) (*Emitter, error) {
	e, ok := s.emitters[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEmitter, id)
	}
	return e, nil
}

// Add creates an emitter with its own models and memo table.
func (s *Scene) Add(ec EmitterConfig) (*Emitter, error) {
	if ec.Name == "" {
		ec.Name = fmt.Sprintf("emitter-%d", len(s.order)+1)
	}

	if err := ec.validate(); err != nil {
		return nil, fmt.Errorf("scene: emitter %s: %w", ec.Name, err)
	}

	e, err := s.add(ec)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("emitter added", "id", e.ID, "name", e.Name)
	return e, nil
}

func (s *Scene) add(ec EmitterConfig) (*Emitter, error) {
	a, err := s.newEar(ec)
	if err != nil {
		return nil, err
	}

	e := &Emitter{
		ID:   uuid.New(),
		Name: ec.Name,
		Body: ec.Body(),
		cfg:  ec,
		ear:  a,
	}
	if w := ec.Wander; w != nil {
		e.wander = physics.NewWander(w.Seed, w.Speed, w.Rate)
	}

	s.emitters[e.ID] = e
	s.order = append(s.order, e.ID)

	return e, nil
}

func (s *Scene) newEar(ec EmitterConfig) (*ear.Ear, error) {
	g, f, err := s.cfg.models(ec)
	if err != nil {
		return nil, fmt.Errorf("scene: emitter %s: %w", ec.Name, err)
	}

	a, err := ear.New(g, f, s.cfg.earOptions()...)
	if err != nil {
		return nil, fmt.Errorf("scene: emitter %s: %w", ec.Name, err)
	}
	return a, nil
}

// Remove deletes an emitter and releases its memo table.
func (s *Scene) Remove(id uuid.UUID) error {
	e, err := s.Emitter(id)
	if err != nil {
		return err
	}

	e.ear.Destroy()
	delete(s.emitters, id)

	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Debug("emitter removed", "id", id, "name", e.Name)
	return nil
}

// Attach connects an emitter to an output, typically a *binaural.Binaural.
// A nil output detaches it.
func (s *Scene) Attach(id uuid.UUID, out ear.Output) error {
	e, err := s.Emitter(id)
	if err != nil {
		return err
	}

	e.output = out
	e.ear.SetOutput(out)
	return nil
}

// Configure replaces the model and cache configuration. Every emitter gets
// fresh models and an empty memo table; bodies and outputs are kept.
// cfg.Emitters and cfg.Listener are ignored.
func (s *Scene) Configure(cfg Config) error {
	cfg.Listener = s.cfg.Listener
	cfg.Emitters = nil
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return err
	}

	prev := s.cfg
	s.cfg = cfg

	ears := make([]*ear.Ear, len(s.order))
	for i, id := range s.order {
		a, err := s.newEar(s.emitters[id].cfg)
		if err != nil {
			s.cfg = prev
			return err
		}
		ears[i] = a
	}

	for i, id := range s.order {
		e := s.emitters[id]
		e.ear.Destroy()
		e.ear = ears[i]
		e.ear.SetOutput(e.output)
	}

	s.logger.Info("scene reconfigured",
		"gain", cfg.Gain.Kind,
		"filter", cfg.Filter.Kind,
		"distanceStep", cfg.Cache.DistanceStep,
		"dotStep", cfg.Cache.DotStep)

	return nil
}

// Tick advances the scene by one frame: the listener and every emitter are
// integrated, then each emitter's ear pushes its snapshot. A paused frame
// does nothing. Output errors are joined; every emitter is still updated.
func (s *Scene) Tick(f Frame) error {
	if f.Paused {
		return nil
	}

	s.listener.UpdatePhysics(f.Delta)

	var errs []error
	for _, id := range s.order {
		e := s.emitters[id]
		if e.wander != nil {
			e.wander.Drive(e.Body, f.Delta)
		}
		e.Body.UpdatePhysics(f.Delta)

		if _, err := e.ear.Update(s.listener, e.Body); err != nil {
			errs = append(errs, fmt.Errorf("emitter %s: %w", e.Name, err))
		}
	}

	s.frames++
	if f.Delta > 0 {
		s.elapsed += f.Delta
	}

	return errors.Join(errs...)
}

// Reset clears every memo table and zeroes linear and angular velocity on
// the listener and every emitter. Positions and orientations are kept.
func (s *Scene) Reset() {
	s.listener.ResetPhysics()

	for _, id := range s.order {
		e := s.emitters[id]
		e.ear.Reset()
		e.Body.ResetPhysics()
	}

	s.logger.Info("scene reset", "emitters", len(s.order))
}
