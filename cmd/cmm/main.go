package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"github.com/tarm/serial"

	"github.com/mastercactapus/cmm/machine"
	"github.com/mastercactapus/cmm/machine/bridge"
	"github.com/mastercactapus/cmm/machine/marlin"
	"github.com/mastercactapus/cmm/mesh"
	"github.com/mastercactapus/cmm/monitor"
	"github.com/mastercactapus/cmm/report"
	"github.com/mastercactapus/cmm/session"
	"github.com/mastercactapus/cmm/ui"
)

// ctrl-c in raw mode arrives as a byte instead of a signal
const keyInterrupt = 0x03

func main() {
	cfg := DefaultConfig()
	var cfgPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "cmm",
		Short:         "Interactive coordinate measurement over a gcode machine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgPath != "" {
				fc, err := loadFileConfig(cfgPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := applyFile(&cfg, fc, changed); err != nil {
					return fmt.Errorf("load config: %w", err)
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()

			return run(cfg, logger)
		},
	}

	fl := root.Flags()
	fl.StringVarP(&cfgPath, "config", "c", "", "Path to a TOML config file.")
	fl.StringVar(&cfg.Port, "port", cfg.Port, "Serial port of the machine.")
	fl.IntVar(&cfg.Baud, "baud", cfg.Baud, "Serial baud rate.")
	fl.StringVar(&cfg.Bridge, "bridge", "", "Websocket URL of a serial bridge (overrides --port).")
	fl.StringVarP(&cfg.Output, "output", "o", cfg.Output, "CSV file for measurement output.")
	fl.StringVar(&cfg.Monitor, "monitor", "", "Address for the live HTTP monitor (disabled if empty).")
	fl.UintVar(&cfg.Grid.Rows, "rows", cfg.Grid.Rows, "Grid rows.")
	fl.UintVar(&cfg.Grid.Cols, "cols", cfg.Grid.Cols, "Grid columns.")
	fl.Float64Var(&cfg.Grid.RowSpacing, "row-spacing", cfg.Grid.RowSpacing, "Distance between grid rows (mm).")
	fl.Float64Var(&cfg.Grid.ColSpacing, "col-spacing", cfg.Grid.ColSpacing, "Distance between grid columns (mm).")
	fl.Float64Var(&cfg.SafeHeight, "safe-height", cfg.SafeHeight, "Z clearance above the origin for lateral travel (mm).")
	fl.DurationVar(&cfg.AwaitTimeout, "timeout", cfg.AwaitTimeout, "Bound on each command acknowledgement wait.")
	fl.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cmm:", err)
		os.Exit(1)
	}
}

func openTransport(cfg Config, logger zerolog.Logger) (io.ReadWriter, error) {
	if cfg.Bridge != "" {
		logger.Info().Str("url", cfg.Bridge).Msg("connecting to bridge")
		return bridge.Dial(cfg.Bridge)
	}
	logger.Info().Str("port", cfg.Port).Int("baud", cfg.Baud).Msg("opening serial port")
	return serial.OpenPort(&serial.Config{Name: cfg.Port, Baud: cfg.Baud})
}

func run(cfg Config, logger zerolog.Logger) error {
	rw, err := openTransport(cfg, logger)
	if err != nil {
		return err
	}
	if closer, ok := rw.(io.Closer); ok {
		defer closer.Close()
	}

	conn := marlin.NewConn(rw, logger)
	if err := conn.Wake(); err != nil {
		return fmt.Errorf("wake machine: %w", err)
	}
	logger.Info().Msg("sending startup gcode")
	if err := conn.SendScript(cfg.Startup); err != nil {
		return fmt.Errorf("startup gcode: %w", err)
	}

	start, err := conn.QueryPosition(cfg.AwaitTimeout)
	if err != nil {
		logger.Warn().Err(err).Msg("position query failed, assuming machine at zero")
	}
	tracker := machine.NewTracker(start)
	mover := machine.NewMover(conn, tracker, cfg.SafeHeight, cfg.AwaitTimeout)

	var onChange func(session.Snapshot)
	if cfg.Monitor != "" {
		mon := monitor.NewServer(logger)
		defer mon.Shutdown()
		go func() {
			if err := mon.ListenAndServe(cfg.Monitor); err != nil {
				logger.Error().Err(err).Msg("monitor server")
			}
		}()
		onChange = mon.Update
	}

	keymap := session.DefaultKeymap()

	kb, err := ui.OpenKeyboard(os.Stdin)
	if err != nil {
		return fmt.Errorf("raw keyboard: %w", err)
	}
	defer kb.Restore()

	sess, err := session.New(session.Config{
		Mover:    mover,
		Writer:   report.NewCSV(cfg.Output),
		Reporter: ui.NewConsole(os.Stdout, keymap),
		Grid:     cfg.Grid,
		Keymap:   keymap,
		Steps:    cfg.Steps,
		OnChange: onChange,
	})
	if err != nil {
		return err
	}

	for !sess.Done() {
		key, err := kb.ReadKey()
		if err != nil {
			return fmt.Errorf("read keystroke: %w", err)
		}
		if key == keyInterrupt {
			return errors.New("interrupted")
		}
		sess.HandleKey(key)
	}

	if sess.State() == session.StateAborted {
		return errors.New("session aborted")
	}

	logSummary(logger, sess)
	return nil
}

// logSummary reports a flatness analysis of a completed grid run.
func logSummary(logger zerolog.Logger, sess *session.Session) {
	records := sess.Records()
	logger.Info().Int("points", len(records)).Msg("session complete")

	if sess.Mode() != session.ModeRectangle || len(records) < 3 {
		return
	}
	surface, err := mesh.New(records)
	if err != nil {
		logger.Debug().Err(err).Msg("no surface analysis")
		return
	}
	f := surface.Flatness()
	logger.Info().
		Float64("z_min", f.Min).
		Float64("z_max", f.Max).
		Float64("z_mean", f.Mean).
		Float64("z_range", f.Range).
		Msg("surface flatness")
}
