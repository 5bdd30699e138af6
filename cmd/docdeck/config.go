package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/fredcamaral/docdeck/internal/domain/services"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the default global config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc := newConfigService(cmd)
				err := svc.CreateGlobalConfig(cmd.Context())
				if errors.Is(err, services.ErrConfigExists) {
					fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", svc.GlobalConfigPath())
					return nil
				}
				if err != nil {
					return fmt.Errorf("creating config: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", svc.GlobalConfigPath())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the resolved configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}

				// never echo the key
				if cfg.Generator.APIKey != "" {
					cfg.Generator.APIKey = "********"
				}

				encoder := toml.NewEncoder(cmd.OutOrStdout())
				encoder.Indent = "  "
				return encoder.Encode(cfg)
			},
		},
	)

	return cmd
}
