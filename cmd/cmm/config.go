package main

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mastercactapus/cmm/session"
)

// defaultStartupScript is sent to the firmware once at startup.
const defaultStartupScript = `M107 P1 ; turn off part fan
G28 ; home all axes
`

// Config is the fully resolved runtime configuration.
type Config struct {
	Port   string
	Baud   int
	Bridge string // websocket bridge URL; takes precedence over Port

	Output  string
	Monitor string

	SafeHeight   float64
	AwaitTimeout time.Duration
	Startup      string

	Grid  session.GridConfig
	Steps session.Steps
}

func DefaultConfig() Config {
	return Config{
		Port:         "/dev/ttyUSB0",
		Baud:         115200,
		Output:       "measurements.csv",
		SafeHeight:   5,
		AwaitTimeout: 2 * time.Second,
		Startup:      defaultStartupScript,
		Grid:         session.GridConfig{Rows: 3, Cols: 3, RowSpacing: 10, ColSpacing: 10},
		Steps:        session.DefaultSteps(),
	}
}

func (c Config) Validate() error {
	if c.Bridge == "" && c.Port == "" {
		return fmt.Errorf("a serial port or bridge URL is required")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("baud rate must be positive")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if c.AwaitTimeout <= 0 {
		return fmt.Errorf("await timeout must be positive")
	}
	return nil
}

// fileConfig mirrors Config with TOML-friendly types.
type fileConfig struct {
	Port   string `toml:"port"`
	Baud   int    `toml:"baud"`
	Bridge string `toml:"bridge"`

	Output  string `toml:"output"`
	Monitor string `toml:"monitor"`

	// pointer so an explicit safe_height = 0.0 is distinguishable
	// from the key being absent
	SafeHeight   *float64 `toml:"safe_height"`
	AwaitTimeout string  `toml:"await_timeout"`
	Startup      string  `toml:"startup_gcode"`

	Grid struct {
		Rows       uint    `toml:"rows"`
		Cols       uint    `toml:"cols"`
		RowSpacing float64 `toml:"row_spacing"`
		ColSpacing float64 `toml:"col_spacing"`
	} `toml:"grid"`

	Steps struct {
		XYCoarse float64 `toml:"xy_coarse"`
		XYFine   float64 `toml:"xy_fine"`
		ZCoarse  float64 `toml:"z_coarse"`
		ZFine    float64 `toml:"z_fine"`
	} `toml:"steps"`
}

// applyFile overlays file values onto cfg, skipping any field whose
// flag was set explicitly (flags win over the file).
func applyFile(cfg *Config, fc fileConfig, changed map[string]bool) error {
	setStr := func(flag, v string, dst *string) {
		if v != "" && !changed[flag] {
			*dst = v
		}
	}
	setF := func(flag string, v float64, dst *float64) {
		if v != 0 && !changed[flag] {
			*dst = v
		}
	}

	setStr("port", fc.Port, &cfg.Port)
	setStr("bridge", fc.Bridge, &cfg.Bridge)
	setStr("output", fc.Output, &cfg.Output)
	setStr("monitor", fc.Monitor, &cfg.Monitor)
	setStr("startup-gcode", fc.Startup, &cfg.Startup)
	if fc.Baud > 0 && !changed["baud"] {
		cfg.Baud = fc.Baud
	}
	if fc.SafeHeight != nil && !changed["safe-height"] {
		cfg.SafeHeight = *fc.SafeHeight
	}

	if fc.AwaitTimeout != "" && !changed["timeout"] {
		d, err := time.ParseDuration(fc.AwaitTimeout)
		if err != nil {
			return fmt.Errorf("await_timeout: %w", err)
		}
		cfg.AwaitTimeout = d
	}

	if fc.Grid.Rows > 0 && !changed["rows"] {
		cfg.Grid.Rows = fc.Grid.Rows
	}
	if fc.Grid.Cols > 0 && !changed["cols"] {
		cfg.Grid.Cols = fc.Grid.Cols
	}
	setF("row-spacing", fc.Grid.RowSpacing, &cfg.Grid.RowSpacing)
	setF("col-spacing", fc.Grid.ColSpacing, &cfg.Grid.ColSpacing)

	// step sizes have no flag counterparts
	if fc.Steps.XYCoarse > 0 {
		cfg.Steps.XYCoarse = fc.Steps.XYCoarse
	}
	if fc.Steps.XYFine > 0 {
		cfg.Steps.XYFine = fc.Steps.XYFine
	}
	if fc.Steps.ZCoarse > 0 {
		cfg.Steps.ZCoarse = fc.Steps.ZCoarse
	}
	if fc.Steps.ZFine > 0 {
		cfg.Steps.ZFine = fc.Steps.ZFine
	}

	return nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}
