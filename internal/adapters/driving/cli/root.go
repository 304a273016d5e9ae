// Package cli provides the gdata command line interface.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdata-go/internal/adapters/driven/auth"
	"github.com/custodia-labs/gdata-go/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/logger"
)

var version = "dev"

var (
	verbose   bool
	configDir string
	token     string
	params    []string
)

var rootCmd = &cobra.Command{
	Use:   "gdata",
	Short: "Query Google Data API feeds",
	Long: `gdata builds and issues queries against the Google Data APIs:
Calendar, Contacts, Tasks, Documents, Freebase, PicasaWeb and YouTube.

Query options are passed as repeated --param key=value flags. Settings such
as the API key and OAuth credentials are read from ~/.gdata/config.toml and
GDATA_* environment variables.

Examples:
  gdata feeds
  gdata uri youtube/search --param q=cats --param max_results=10
  gdata fetch tasks/lists --pages 2
  gdata poll contacts/contacts --interval 5m`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default ~/.gdata)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token, overriding the configured credentials")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// addParamFlag registers the repeated --param flag on cmd.
func addParamFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query option as key=value (repeatable)")
}

// parseParams splits key=value pairs. A repeated key keeps its last value.
func parseParams(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("parameter %q is not key=value: %w", pair, domain.ErrInvalidInput)
		}
		out[key] = value
	}
	return out, nil
}

// openConfig opens the configuration store selected by --config.
func openConfig() (*file.ConfigStore, error) {
	return file.NewConfigStore(configDir)
}

// loadServiceConfig reads the HTTP configuration for service from the
// store and the environment. --token takes precedence over both.
func loadServiceConfig(store *file.ConfigStore, service google.ServiceType) (google.Config, error) {
	cfg, err := google.ConfigFromStore(store)
	if err != nil {
		return google.Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	if cfg, err = cfg.ApplyEnv(); err != nil {
		return google.Config{}, err
	}
	cfg.Service = service
	if token != "" {
		cfg.Token = token
	}
	return cfg, nil
}

// newService builds the Service used by a command. Tests replace it to
// point commands at a local server.
var newService = func(ctx context.Context, service google.ServiceType, opts ...google.Option) (*google.Service, error) {
	store, err := openConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration: %w", err)
	}
	cfg, err := loadServiceConfig(store, service)
	if err != nil {
		return nil, err
	}

	if cfg.Token == "" {
		provider, err := auth.NewFactory(store).CreateTokenProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create token provider: %w", err)
		}
		method := provider.AuthMethod()
		if method == domain.AuthMethodToken || method == domain.AuthMethodOAuth {
			logger.Debug("using %s credentials %q", provider.AuthMethod(), provider.AuthorizationID())
			opts = append(opts, google.WithTokenSource(google.NewTokenSource(ctx, provider)))
		}
	}
	return google.NewService(cfg, opts...)
}
