package binaural

import (
	"errors"
	"fmt"
	"io"
)

// ErrDestroyed is returned when a destroyed pair is updated.
var ErrDestroyed = errors.New("binaural: destroyed")

// Sink receives automation targets for one output channel. How fast the
// channel moves toward a target is the sink's concern.
type Sink interface {
	SetGain(target float64)
	SetFrequency(target float64)
}

// Snapshot is the geometry-derived parameter set for one emitter in one
// frame.
type Snapshot struct {
	// Gain is the mono gain from the gain model.
	Gain float64
	// Frequency is the cutoff or color from the filter model, in Hz.
	Frequency float64
	// Pan places the source between left (-1) and right (+1).
	Pan float64
}

// Monaural is one channel of a binaural pair.
type Monaural struct {
	pan  float64
	sink Sink

	gain      float64
	frequency float64
}

// NewMonaural returns a path at channel position pan feeding sink.
func NewMonaural(pan float64, sink Sink) *Monaural {
	return &Monaural{pan: pan, sink: sink}
}

// Pan returns the channel position.
func (m *Monaural) Pan() float64 { return m.pan }

// Gain returns the last gain target pushed to the sink.
func (m *Monaural) Gain() float64 { return m.gain }

// Frequency returns the last frequency target pushed to the sink.
func (m *Monaural) Frequency() float64 { return m.frequency }

// Update applies the channel's pan law to s and pushes the targets.
func (m *Monaural) Update(s Snapshot) {
	m.gain = s.Gain * PanGain(m.pan, s.Pan)
	m.frequency = s.Frequency

	m.sink.SetGain(m.gain)
	m.sink.SetFrequency(m.frequency)
}

// State is the lifecycle stage of a binaural pair.
type State int

// Lifecycle stages.
const (
	StateConstructed State = iota
	StateActive
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateActive:
		return "active"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Binaural is a left/right pair of monaural paths.
//
// Binaural is not thread-safe.
type Binaural struct {
	left  *Monaural
	right *Monaural
	state State
}

// New returns a pair whose left path feeds left and right path feeds right.
func New(left, right Sink) (*Binaural, error) {
	if left == nil || right == nil {
		return nil, errors.New("binaural: left and right sinks must not be nil")
	}

	return &Binaural{
		left:  NewMonaural(-1, left),
		right: NewMonaural(1, right),
	}, nil
}

// Left returns the left path.
func (b *Binaural) Left() *Monaural { return b.left }

// Right returns the right path.
func (b *Binaural) Right() *Monaural { return b.right }

// State returns the lifecycle stage.
func (b *Binaural) State() State { return b.state }

// Update forwards s unchanged to both paths.
func (b *Binaural) Update(s Snapshot) error {
	if b.state == StateDestroyed {
		return ErrDestroyed
	}

	b.state = StateActive
	b.left.Update(s)
	b.right.Update(s)

	return nil
}

// Destroy disconnects both paths. Sinks implementing io.Closer are
// closed. Destroy is terminal; calling it again is a no-op.
func (b *Binaural) Destroy() error {
	if b.state == StateDestroyed {
		return nil
	}
	b.state = StateDestroyed

	var errs []error
	for _, m := range []*Monaural{b.left, b.right} {
		if c, ok := m.sink.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}
