package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itohio/quadled/pkg/filter"
)

// Config represents the application configuration.
type Config struct {
	Serial  SerialConfig   `yaml:"serial"`
	Sampler SamplerConfig  `yaml:"sampler"`
	Filter  filter.Options `yaml:"filter"`
	Display DisplayConfig  `yaml:"display"`
	Mode    ModeConfig     `yaml:"mode"`
	Relay   RelayConfig    `yaml:"relay"`
	Alarm   AlarmConfig    `yaml:"alarm"`
	Accel   AccelConfig    `yaml:"accel"`
	Mock    MockConfig     `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// SamplerConfig describes the analog front end.
type SamplerConfig struct {
	Channel uint8  `yaml:"channel"`
	Max     uint16 `yaml:"max"`     // full scale reading
	Retries int    `yaml:"retries"` // busy polls before a conversion times out
}

// DisplayConfig describes the LED module.
type DisplayConfig struct {
	Digits   int           `yaml:"digits"`
	Dwell    time.Duration `yaml:"dwell"`
	Overflow string        `yaml:"overflow"` // clamp or dashes
	Refresh  time.Duration `yaml:"refresh"`  // GUI panel repaint interval
}

// ModeConfig contains timer and button settings.
type ModeConfig struct {
	Tick          time.Duration `yaml:"tick"`
	CycleTicks    int           `yaml:"cycle_ticks"`    // ticks before the next axis
	DebounceTicks int           `yaml:"debounce_ticks"` // 0 = accept every edge
}

// RelayConfig contains cross-board link parameters.
type RelayConfig struct {
	IdleTicks int `yaml:"idle_ticks"` // partial frame timeout
	MinDelta  int `yaml:"min_delta"`  // sender skips smaller changes
	Quantize  int `yaml:"quantize"`   // sender rounds down to a multiple
	LowCut    int `yaml:"low_cut"`    // receiver shows 0 at or below
	HighCut   int `yaml:"high_cut"`   // receiver shows full scale at or above, -1 disables
}

// AlarmConfig contains the range finder alarm parameters.
type AlarmConfig struct {
	Presets        []int         `yaml:"presets"` // cm
	Periods        []uint16      `yaml:"periods"` // buzzer period per preset
	LevelCenter    int           `yaml:"level_center"`
	LevelTolerance int           `yaml:"level_tolerance"`
	LevelPeriod    uint16        `yaml:"level_period"`
	Showcase       time.Duration `yaml:"showcase"` // startup hold per preset, 0 disables
}

// AccelConfig contains the accelerometer calibration.
type AccelConfig struct {
	Zero       uint16  `yaml:"zero"`         // reading at 0 g
	CountsPerG float32 `yaml:"counts_per_g"` // reading change per 1 g
	Address    uint16  `yaml:"address"`      // I2C address of a digital sensor
}

// MockConfig contains simulated sensor configuration.
type MockConfig struct {
	SetPoint   uint16        `yaml:"set_point"`   // initial reading on every channel
	Noise      float64       `yaml:"noise"`       // uniform noise amplitude (counts)
	Wobble     float64       `yaml:"wobble"`      // sine amplitude (counts)
	Period     int           `yaml:"period"`      // sine period (samples)
	Seed       uint64        `yaml:"seed"`        // random seed
	SampleRate time.Duration `yaml:"sample_rate"` // mock link message rate
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0",
			BaudRate: 9600,
		},
		Sampler: SamplerConfig{
			Channel: 7,
			Max:     1023,
			Retries: 10000,
		},
		Filter: filter.Options{
			Kind:    filter.KindAverage,
			Weight:  10,
			Samples: 11,
			Band:    3,
			Even:    "average",
			Settle:  time.Millisecond,
		},
		Display: DisplayConfig{
			Digits:   4,
			Dwell:    2 * time.Millisecond,
			Overflow: "clamp",
			Refresh:  20 * time.Millisecond,
		},
		Mode: ModeConfig{
			Tick:          10 * time.Millisecond,
			CycleTicks:    300,
			DebounceTicks: 0,
		},
		Relay: RelayConfig{
			IdleTicks: 10,
			MinDelta:  1,
			Quantize:  2,
			LowCut:    16,
			HighCut:   1000,
		},
		Alarm: AlarmConfig{
			Presets:        []int{5, 25, 50, 100, 250},
			Periods:        []uint16{300, 600, 1250, 2500, 20000},
			LevelCenter:    490,
			LevelTolerance: 10,
			LevelPeriod:    600,
			Showcase:       500 * time.Millisecond,
		},
		Accel: AccelConfig{
			Zero:       490,
			CountsPerG: 100,
			Address:    0x53,
		},
		Mock: MockConfig{
			SetPoint:   512,
			Noise:      4,
			Wobble:     40,
			Period:     500,
			Seed:       1,
			SampleRate: 100 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that have no usable default.
func (c *Config) Validate() error {
	if _, err := filter.New(c.Filter, nil); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if len(c.Alarm.Periods) != len(c.Alarm.Presets) {
		return fmt.Errorf("alarm: %d presets but %d periods", len(c.Alarm.Presets), len(c.Alarm.Periods))
	}
	switch c.Display.Overflow {
	case "clamp", "dashes":
	default:
		return fmt.Errorf("display: unknown overflow %q", c.Display.Overflow)
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Sampler.Max == 0 {
		c.Sampler.Max = def.Sampler.Max
	}
	if c.Sampler.Retries == 0 {
		c.Sampler.Retries = def.Sampler.Retries
	}

	if c.Filter.Kind == "" {
		c.Filter.Kind = def.Filter.Kind
	}
	if c.Filter.Samples == 0 {
		c.Filter.Samples = def.Filter.Samples
	}

	if c.Display.Digits == 0 {
		c.Display.Digits = def.Display.Digits
	}
	if c.Display.Dwell == 0 {
		c.Display.Dwell = def.Display.Dwell
	}
	if c.Display.Overflow == "" {
		c.Display.Overflow = def.Display.Overflow
	}
	if c.Display.Refresh == 0 {
		c.Display.Refresh = def.Display.Refresh
	}

	if c.Mode.Tick == 0 {
		c.Mode.Tick = def.Mode.Tick
	}
	if c.Mode.CycleTicks == 0 {
		c.Mode.CycleTicks = def.Mode.CycleTicks
	}

	if c.Relay.IdleTicks == 0 {
		c.Relay.IdleTicks = def.Relay.IdleTicks
	}
	if c.Relay.Quantize == 0 {
		c.Relay.Quantize = def.Relay.Quantize
	}
	if c.Relay.HighCut == 0 {
		c.Relay.HighCut = def.Relay.HighCut
	}

	if len(c.Alarm.Presets) == 0 {
		c.Alarm.Presets = def.Alarm.Presets
		c.Alarm.Periods = def.Alarm.Periods
	}
	if c.Alarm.LevelCenter == 0 {
		c.Alarm.LevelCenter = def.Alarm.LevelCenter
	}
	if c.Alarm.LevelTolerance == 0 {
		c.Alarm.LevelTolerance = def.Alarm.LevelTolerance
	}
	if c.Alarm.LevelPeriod == 0 {
		c.Alarm.LevelPeriod = def.Alarm.LevelPeriod
	}

	if c.Accel.Zero == 0 {
		c.Accel.Zero = def.Accel.Zero
	}
	if c.Accel.CountsPerG == 0 {
		c.Accel.CountsPerG = def.Accel.CountsPerG
	}
	if c.Accel.Address == 0 {
		c.Accel.Address = def.Accel.Address
	}

	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
	if c.Mock.Period == 0 {
		c.Mock.Period = def.Mock.Period
	}
}
