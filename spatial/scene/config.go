package scene

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spatial/dsp/core"
	"github.com/cwbudde/algo-spatial/spatial/ear"
	"github.com/cwbudde/algo-spatial/spatial/filter"
	"github.com/cwbudde/algo-spatial/spatial/gain"
	"github.com/cwbudde/algo-spatial/spatial/geom"
	"github.com/cwbudde/algo-spatial/spatial/physics"
)

// Config describes a scene: the models every ear uses, the memo
// granularity, the reverb send and the initial bodies.
//
// Model parameters are pointers so that a missing YAML field keeps the
// model's default.
type Config struct {
	Gain       GainConfig   `yaml:"gain"`
	Filter     FilterConfig `yaml:"filter"`
	Cache      CacheConfig  `yaml:"cache"`
	ReverbSend float64      `yaml:"reverbSend"`

	Listener BodyConfig      `yaml:"listener"`
	Emitters []EmitterConfig `yaml:"emitters"`
}

// GainConfig selects a gain model.
type GainConfig struct {
	Kind         string   `yaml:"kind"`
	MinDistance  *float64 `yaml:"minDistance,omitempty"`
	MaxDistance  *float64 `yaml:"maxDistance,omitempty"`
	MinGain      *float64 `yaml:"minGain,omitempty"`
	MaxGain      *float64 `yaml:"maxGain,omitempty"`
	Power        *float64 `yaml:"power,omitempty"`
	Base         *float64 `yaml:"base,omitempty"`
	HorizonPower *float64 `yaml:"horizonPower,omitempty"`
}

// FilterConfig selects a filter model.
type FilterConfig struct {
	Kind       string   `yaml:"kind"`
	ConeRadius *float64 `yaml:"coneRadius,omitempty"`
	Width      *float64 `yaml:"width,omitempty"`
	Frequency  *float64 `yaml:"frequency,omitempty"`
	MinColor   *float64 `yaml:"minColor,omitempty"`
	MaxColor   *float64 `yaml:"maxColor,omitempty"`
	Power      *float64 `yaml:"power,omitempty"`
}

// CacheConfig sets the memo quantization steps.
type CacheConfig struct {
	DistanceStep float64 `yaml:"distanceStep"`
	DotStep      float64 `yaml:"dotStep"`
}

// BodyConfig places a body. Angles are radians; YawRate is radians per
// second about +Y.
type BodyConfig struct {
	Position geom.Vector3d `yaml:"position"`
	Velocity geom.Vector3d `yaml:"velocity"`
	Yaw      float64       `yaml:"yaw"`
	Pitch    float64       `yaml:"pitch"`
	YawRate  float64       `yaml:"yawRate"`
}

// EmitterConfig places an emitter. Gain and Filter, when set, override the
// scene-wide models for this emitter only.
type EmitterConfig struct {
	Name       string        `yaml:"name"`
	BodyConfig `yaml:",inline"`
	Wander     *WanderConfig `yaml:"wander,omitempty"`
	Gain       *GainConfig   `yaml:"gain,omitempty"`
	Filter     *FilterConfig `yaml:"filter,omitempty"`
}

// WanderConfig attaches a noise motion driver to an emitter.
type WanderConfig struct {
	Seed  int64   `yaml:"seed"`
	Speed float64 `yaml:"speed"`
	Rate  float64 `yaml:"rate"`
}

// DefaultConfig returns a scene with realistic gain, head filter and no
// emitters.
func DefaultConfig() Config {
	return Config{
		Gain:   GainConfig{Kind: string(gain.KindRealistic)},
		Filter: FilterConfig{Kind: string(filter.KindHead)},
		Cache:  CacheConfig{DistanceStep: 0.01, DotStep: 0.01},
	}
}

// LoadConfig decodes a YAML scene, fills defaults for missing fields and
// validates the result.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("scene: decode config: %w", err)
	}

	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Encode writes cfg as YAML.
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("scene: encode config: %w", err)
	}
	return enc.Close()
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()

	if c.Gain.Kind == "" {
		c.Gain.Kind = def.Gain.Kind
	}
	if c.Filter.Kind == "" {
		c.Filter.Kind = def.Filter.Kind
	}
	if c.Cache.DistanceStep == 0 {
		c.Cache.DistanceStep = def.Cache.DistanceStep
	}
	if c.Cache.DotStep == 0 {
		c.Cache.DotStep = def.Cache.DotStep
	}

	for i := range c.Emitters {
		if c.Emitters[i].Name == "" {
			c.Emitters[i].Name = fmt.Sprintf("emitter-%d", i+1)
		}
	}
}

// Validate builds every model the config names and reports the first
// error.
func (c Config) Validate() error {
	if _, err := c.Gain.Build(); err != nil {
		return err
	}
	if _, err := c.Filter.Build(); err != nil {
		return err
	}
	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("scene: cache: %w", err)
	}
	if c.ReverbSend < 0 || c.ReverbSend > 1 || !core.IsFinite(c.ReverbSend) {
		return fmt.Errorf("scene: reverb send must be in [0, 1]: %f", c.ReverbSend)
	}
	if err := c.Listener.validate(); err != nil {
		return fmt.Errorf("scene: listener: %w", err)
	}

	for i, e := range c.Emitters {
		if _, _, err := c.models(e); err != nil {
			return fmt.Errorf("scene: emitter %d (%s): %w", i, e.Name, err)
		}
		if err := e.validate(); err != nil {
			return fmt.Errorf("scene: emitter %d (%s): %w", i, e.Name, err)
		}
	}

	return nil
}

func (c Config) earOptions() []ear.Option {
	return []ear.Option{
		ear.WithGranularity(c.Cache.DistanceStep, c.Cache.DotStep),
		ear.WithReverbSend(c.ReverbSend),
	}
}

// models builds the gain and filter models for one emitter.
func (c Config) models(e EmitterConfig) (gain.Model, filter.Model, error) {
	gc, fc := c.Gain, c.Filter
	if e.Gain != nil {
		gc = *e.Gain
	}
	if e.Filter != nil {
		fc = *e.Filter
	}

	g, err := gc.Build()
	if err != nil {
		return nil, nil, err
	}

	f, err := fc.Build()
	if err != nil {
		return nil, nil, err
	}

	return g, f, nil
}

// Build returns the configured gain model.
func (c GainConfig) Build() (gain.Model, error) {
	kind, err := gain.Parse(c.Kind)
	if err != nil {
		return nil, err
	}

	var opts []gain.Option
	add := func(v *float64, opt func(float64) gain.Option) {
		if v != nil {
			opts = append(opts, opt(*v))
		}
	}

	add(c.MinDistance, gain.WithMinDistance)
	add(c.MaxDistance, gain.WithMaxDistance)
	add(c.MinGain, gain.WithMinGain)
	add(c.MaxGain, gain.WithMaxGain)
	add(c.Power, gain.WithPower)
	add(c.Base, gain.WithBase)
	add(c.HorizonPower, gain.WithHorizonPower)

	return gain.New(kind, opts...)
}

// Build returns the configured filter model.
func (c FilterConfig) Build() (filter.Model, error) {
	kind, err := filter.Parse(c.Kind)
	if err != nil {
		return nil, err
	}

	var opts []filter.Option
	add := func(v *float64, opt func(float64) filter.Option) {
		if v != nil {
			opts = append(opts, opt(*v))
		}
	}

	add(c.ConeRadius, filter.WithConeRadius)
	add(c.Width, filter.WithWidth)
	add(c.Frequency, filter.WithFrequency)
	add(c.MinColor, filter.WithMinColor)
	add(c.MaxColor, filter.WithMaxColor)
	add(c.Power, filter.WithPower)

	return filter.New(kind, opts...)
}

func (c CacheConfig) validate() error {
	if !(c.DistanceStep > 0) || !(c.DotStep > 0) ||
		!core.IsFinite(c.DistanceStep) || !core.IsFinite(c.DotStep) {
		return fmt.Errorf("steps must be > 0 and finite: distance=%f dot=%f",
			c.DistanceStep, c.DotStep)
	}
	return nil
}

// Body returns a body placed as c describes.
func (c BodyConfig) Body() *physics.Body {
	b := physics.NewBody()
	b.Position = c.Position
	b.Velocity = c.Velocity
	b.Orientation = geom.FromEuler(c.Yaw, c.Pitch, 0)
	if c.YawRate != 0 {
		b.AngularVelocity = geom.FromEuler(c.YawRate, 0, 0)
	}
	return b
}

func (c BodyConfig) validate() error {
	for _, v := range []float64{
		c.Position.X, c.Position.Y, c.Position.Z,
		c.Velocity.X, c.Velocity.Y, c.Velocity.Z,
		c.Yaw, c.Pitch, c.YawRate,
	} {
		if !core.IsFinite(v) {
			return fmt.Errorf("non-finite placement value %f", v)
		}
	}
	return nil
}

func (c EmitterConfig) validate() error {
	if err := c.BodyConfig.validate(); err != nil {
		return err
	}
	if w := c.Wander; w != nil {
		if w.Speed < 0 || w.Rate < 0 || !core.IsFinite(w.Speed) || !core.IsFinite(w.Rate) {
			return fmt.Errorf("wander speed and rate must be >= 0 and finite: speed=%f rate=%f",
				w.Speed, w.Rate)
		}
	}
	return nil
}
