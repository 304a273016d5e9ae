package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change stored settings",
	Long: `Reads and writes the configuration file, ~/.gdata/config.toml unless
--config names another directory.

Keys:
  service.base_url             prefix for relative feed URIs
  service.user_agent           User-Agent header
  service.timeout_seconds      request timeout
  service.requests_per_second  rate limit override
  service.burst                rate limit burst override
  service.locale               BCP 47 tag for language defaults
  auth.method                  none, apikey, token or oauth
  auth.api_key                 developer key appended to requests
  auth.token                   static bearer token
  auth.client_id, auth.client_secret, auth.token_url, auth.scopes,
  auth.access_token, auth.refresh_token, auth.expiry
                               OAuth credentials`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every stored setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openConfig()
		if err != nil {
			return fmt.Errorf("failed to open configuration: %w", err)
		}

		s := newStyles(cmd.OutOrStdout())
		cmd.Println(s.Muted.Render(store.Path()))
		keys := store.Keys()
		if len(keys) == 0 {
			cmd.Println("No settings stored.")
			return nil
		}
		for _, key := range keys {
			val, _ := store.Get(key)
			cmd.Printf("%s = %s\n", s.Key.Render(key), displayValue(key, val))
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openConfig()
		if err != nil {
			return fmt.Errorf("failed to open configuration: %w", err)
		}
		val, ok := store.Get(args[0])
		if !ok {
			return fmt.Errorf("setting %q is not set", args[0])
		}
		cmd.Println(fmt.Sprint(val))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store one setting",
	Long: `Stores a setting. Values that read as booleans, integers or decimals are
stored as such; everything else is stored as a string.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openConfig()
		if err != nil {
			return fmt.Errorf("failed to open configuration: %w", err)
		}
		key := strings.TrimSpace(args[0])
		if key == "" {
			return fmt.Errorf("setting key is empty")
		}
		if err := store.Set(key, parseValue(args[1])); err != nil {
			return fmt.Errorf("failed to save setting: %w", err)
		}
		cmd.Printf("%s = %s\n", key, displayValue(key, parseValue(args[1])))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// parseValue types a command line value the way TOML would.
func parseValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// displayValue masks secrets.
func displayValue(key string, val any) string {
	s := fmt.Sprint(val)
	switch key {
	case "auth.api_key", "auth.token", "auth.client_secret", "auth.access_token", "auth.refresh_token":
		return maskSecret(s)
	}
	return s
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
