package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sweeney/tinyml-panel/internal/config"
	"github.com/sweeney/tinyml-panel/internal/model"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	noColor    bool
}

// serveFlags override the loaded configuration when set explicitly.
type serveFlags struct {
	hardware  string
	broker    string
	httpAddr  string
	period    time.Duration
	heartbeat time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	sf := &serveFlags{}

	root := &cobra.Command{
		Use:   "tinyml-panel",
		Short: "Access point control panel with on-device anomaly classification",
		Long: `tinyml-panel serves a small control page for two RGB strips and a relay,
and classifies temperature/humidity readings once per period with an
embedded neural network, showing the result on an indicator strip.

Running without a subcommand is the same as 'tinyml-panel serve'.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, sf)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	addServeFlags(root, sf)

	root.AddCommand(
		newServeCmd(opts),
		newClassifyCmd(),
		newHostapdCmd(opts),
		newVersionCmd(),
	)
	return root
}

func addServeFlags(cmd *cobra.Command, sf *serveFlags) {
	f := cmd.Flags()
	f.StringVar(&sf.hardware, "hardware", config.HardwarePeriph, `hardware backend: "periph" or "sim"`)
	f.StringVar(&sf.broker, "broker", "", `MQTT broker address, e.g. "tcp://192.168.4.2:1883" (empty to disable)`)
	f.StringVar(&sf.httpAddr, "http", ":80", "HTTP control panel address")
	f.DurationVar(&sf.period, "period", time.Second, "inference period")
	f.DurationVar(&sf.heartbeat, "heartbeat", time.Minute, "MQTT heartbeat interval (0 to disable)")
}

// loadConfig layers explicitly set flags over the file and environment.
func loadConfig(cmd *cobra.Command, opts *rootOptions, sf *serveFlags) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}

	if sf != nil {
		f := cmd.Flags()
		if f.Changed("hardware") {
			cfg.Hardware = sf.hardware
		}
		if f.Changed("broker") {
			cfg.MQTT.Broker = sf.broker
		}
		if f.Changed("http") {
			cfg.HTTPAddr = sf.httpAddr
		}
		if f.Changed("period") {
			cfg.PeriodMs = sf.period.Milliseconds()
		}
		if f.Changed("heartbeat") {
			cfg.MQTT.HeartbeatMs = sf.heartbeat.Milliseconds()
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	sf := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the control panel and the inference task",
		Example: `  tinyml-panel serve --hardware sim --http :8080
  tinyml-panel serve -c /etc/tinyml-panel.toml --broker tcp://192.168.4.2:1883`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, sf)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	addServeFlags(cmd, sf)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tinyml-panel %s (model schema v%d)\n", version, model.SchemaVersion)
		},
	}
}
