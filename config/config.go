// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Energy       EnergyConfig       `yaml:"energy"`
	Motion       MotionConfig       `yaml:"motion"`
	Senses       SensesConfig       `yaml:"senses"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Combat       CombatConfig       `yaml:"combat"`
	Lifecycle    LifecycleConfig    `yaml:"lifecycle"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// World can be larger than the screen; camera handles the viewport.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// PopulationConfig holds population seeding parameters.
type PopulationConfig struct {
	Initial int `yaml:"initial"`
}

// PhysicsConfig holds movement integration parameters.
type PhysicsConfig struct {
	Drag float64 `yaml:"drag"` // velocity multiplier per tick
}

// EnergyConfig holds the energy budget parameters.
type EnergyConfig struct {
	Rate float64 `yaml:"rate"` // scale on (photosynthesis - metabolism) per tick
}

// MotionConfig holds the motion impulse parameters.
type MotionConfig struct {
	TriggerScale float64 `yaml:"trigger_scale"` // impulse probability = this * motion trait
	ImpulseScale float64 `yaml:"impulse_scale"` // impulse speed = this * motion / weight
}

// SensesConfig holds prey detection parameters for intelligent biots.
type SensesConfig struct {
	DetectionScale float64 `yaml:"detection_scale"` // max squared range = intelligence^2 * this
	DirEpsilon     float64 `yaml:"dir_epsilon"`     // per-axis offset before normalizing the feed direction
}

// ReproductionConfig holds reproduction parameters.
type ReproductionConfig struct {
	AdultFactor        float64 `yaml:"adult_factor"`         // reproduce at energy >= this * base life
	CrowdingNeighbor   int     `yaml:"crowding_neighbor"`    // which nearest index point decides crowding (self counts)
	CrowdingDistanceSq float64 `yaml:"crowding_distance_sq"` // squared distance that neighbor must exceed
	MutationChance     float64 `yaml:"mutation_chance"`      // per-draw chance of one more offspring mutation
	BirthImpulse       float64 `yaml:"birth_impulse"`        // speed of the offspring's initial random kick
}

// CombatConfig holds combat resolution parameters.
type CombatConfig struct {
	CollisionRadius float64 `yaml:"collision_radius"` // pairs closer than this fight
	SpoilsFraction  float64 `yaml:"spoils_fraction"`  // share of the loser's energy the winner gains
	DefenseFactor   float64 `yaml:"defense_factor"`   // defense weighting in the strength comparison
}

// LifecycleConfig holds death predicate parameters.
type LifecycleConfig struct {
	MaxAge         int     `yaml:"max_age"`          // die at this age regardless of energy
	BaseLifeFactor float64 `yaml:"base_life_factor"` // base life = this * weight
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"` // stats window length in simulation ticks
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32         float32 // Screen.Width as float32
	ScreenH32         float32 // Screen.Height as float32
	WorldW32          float32 // Effective world width as float32
	WorldH32          float32 // Effective world height as float32
	CollisionRadiusSq float32 // Combat.CollisionRadius squared
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	c.Derived.CollisionRadiusSq = float32(c.Combat.CollisionRadius * c.Combat.CollisionRadius)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
