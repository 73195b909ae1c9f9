// Package cfg provides configuration and command-line interface setup for ytproxy.
package cfg

import (
	"context"
	"fmt"
	"strings"

	"ytproxy/internal/domain/keys"
	"ytproxy/internal/file"
	"ytproxy/internal/utils/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunFunc starts the program with resolved settings.
type RunFunc func(ctx context.Context, s *Settings) error

// NewRootCommand returns the ytproxy root command backed by its own Viper instance.
func NewRootCommand(run RunFunc) (*cobra.Command, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // "cookie-file" reads COOKIE_FILE

	cmd := &cobra.Command{
		Use:           "ytproxy",
		Short:         "ytproxy streams YouTube videos and audio through yt-dlp.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile := v.GetString(keys.ConfigFile); configFile != "" {
				if err := file.LoadConfigFile(v, configFile); err != nil {
					return err
				}
			}
			logging.SetupLogging(v.GetInt(keys.DebugLevel), nil)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := Resolve(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), s)
		},
	}

	if err := initProgramFlags(cmd, v); err != nil {
		return nil, fmt.Errorf("failed to initialize flags: %w", err)
	}
	return cmd, nil
}

// Execute parses the command line and runs the program.
func Execute(ctx context.Context, run RunFunc) error {
	cmd, err := NewRootCommand(run)
	if err != nil {
		return err
	}
	return cmd.ExecuteContext(ctx)
}
