package scene

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spatial/spatial/physics"
)

// State is a serializable snapshot of every body in a scene.
type State struct {
	Listener physics.Transform `yaml:"listener"`
	Emitters []EmitterState    `yaml:"emitters"`
}

// EmitterState is one emitter's entry in a State.
type EmitterState struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Transform physics.Transform `yaml:"transform"`
}

// Export captures the listener and emitter transforms.
func (s *Scene) Export() State {
	st := State{
		Listener: s.listener.Snapshot(),
		Emitters: make([]EmitterState, 0, len(s.order)),
	}

	for _, id := range s.order {
		e := s.emitters[id]
		st.Emitters = append(st.Emitters, EmitterState{
			ID:        id.String(),
			Name:      e.Name,
			Transform: e.Body.Snapshot(),
		})
	}

	return st
}

// Import restores transforms from st. Every emitter in st must exist in
// the scene; nothing is changed if one does not. Emitters missing from st
// keep their state.
func (s *Scene) Import(st State) error {
	targets := make([]*Emitter, len(st.Emitters))

	for i, es := range st.Emitters {
		id, err := uuid.Parse(es.ID)
		if err != nil {
			return fmt.Errorf("scene: import emitter %q: %w", es.Name, err)
		}

		e, err := s.Emitter(id)
		if err != nil {
			return err
		}
		targets[i] = e
	}

	s.listener.Restore(st.Listener)
	for i, e := range targets {
		e.Body.Restore(st.Emitters[i].Transform)
	}

	s.logger.Info("scene state imported", "emitters", len(targets))
	return nil
}

// EncodeState writes st as YAML.
func EncodeState(w io.Writer, st State) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("scene: encode state: %w", err)
	}
	return enc.Close()
}

// DecodeState reads a YAML state written by EncodeState.
func DecodeState(r io.Reader) (State, error) {
	var st State

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&st); err != nil {
		if errors.Is(err, io.EOF) {
			return State{}, errors.New("scene: decode state: empty document")
		}
		return State{}, fmt.Errorf("scene: decode state: %w", err)
	}

	return st, nil
}
