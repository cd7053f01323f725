package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the topic store, corpus cache, search and server settings.

Settings live in config.toml under the KawnHub home (~/.kawnhub or $KAWNHUB_HOME).
Changes to store and cache settings apply on the next start.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one setting",
	Long: `Set one setting and save it to config.toml.

The value is validated before it is saved. Run 'kawnhub settings show --keys'
to list the keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsShowKeys bool

func init() {
	settingsShowCmd.Flags().BoolVar(&settingsShowKeys, "keys", false, "list setting keys")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if settingsShowKeys {
		for _, key := range settingsService.Keys() {
			cmd.Println(key)
		}
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// Store settings
	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Backend.Description())
	path := settings.Store.Path
	if path == "" {
		path = "(default)"
	}
	cmd.Printf("  Path: %s\n", path)
	if settings.Store.Backend == domain.StoreBackendFile {
		cmd.Printf("  Watch: %s\n", yesNo(settings.Store.Watch))
	}
	cmd.Println()

	// Cache settings
	cmd.Println("[Cache]")
	cmd.Printf("  TTL: %s\n", settings.Cache.TTL)
	cmd.Printf("  Fetch timeout: %s\n", settings.Cache.FetchTimeout)
	if settings.Cache.WarmInterval > 0 {
		cmd.Printf("  Warm refresh: every %s\n", settings.Cache.WarmInterval)
	} else {
		cmd.Printf("  Warm refresh: disabled\n")
	}
	cmd.Println()

	// Search settings
	cmd.Println("[Search]")
	cmd.Printf("  Debounce: %s\n", settings.Search.Debounce)
	if settings.Search.ResultCacheSize > 0 {
		cmd.Printf("  Result cache: %d queries\n", settings.Search.ResultCacheSize)
	} else {
		cmd.Printf("  Result cache: disabled\n")
	}
	cmd.Println()

	// Server settings
	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.RateLimit > 0 {
		cmd.Printf("  Rate limit: %g req/s (burst %d)\n", settings.Server.RateLimit, settings.Server.RateBurst)
	} else {
		cmd.Printf("  Rate limit: disabled\n")
	}
	cmd.Println()

	// Validation
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'kawnhub settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) && !isKnownKey(key) {
			return fmt.Errorf("%w\nvalid keys: %s", err, strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func isKnownKey(key string) bool {
	for _, k := range settingsService.Keys() {
		if k == key {
			return true
		}
	}
	return false
}
