package main

import (
	"github.com/spf13/cobra"

	"github.com/sweeney/tinyml-panel/internal/config"
)

func newHostapdCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hostapd",
		Short: "Print a hostapd.conf for the configured access point",
		Long: `hostapd renders the [ap] section of the configuration as a hostapd.conf.
The WPA2 key is written pre-derived (wpa_psk), never as the passphrase.`,
		Example: `  tinyml-panel hostapd -c panel.toml > /etc/hostapd/hostapd.conf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if err := cfg.AP.Validate(); err != nil {
				return err
			}
			return cfg.AP.WriteHostapd(cmd.OutOrStdout())
		},
	}
}
