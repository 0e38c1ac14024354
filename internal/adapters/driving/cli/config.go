package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change configuration values.

Values live in a TOML file and are addressed by dot keys, e.g.
'textgen.provider' or 'ingestion.file_pattern'. Run 'config get' with
no key to see the merged configuration.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show configuration",
	Long:  `Shows one configuration value, or the full merged configuration when no key is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets one configuration value and persists it immediately.

When the value is omitted for a secret key (textgen.api_key,
graph.password), it is read from the terminal without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Text Generation]")
	cmd.Printf("  Provider: %s\n", settings.TextGen.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.TextGen.Model)
	if settings.TextGen.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.TextGen.BaseURL)
	}
	if settings.TextGen.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.TextGen.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	status := "configured"
	if !settings.TextGen.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Stores]")
	cmd.Printf("  Abstracts: %s\n", settings.Stores.Abstracts)
	cmd.Printf("  Manuscripts: %s\n", settings.Stores.Manuscripts)
	cmd.Println()

	cmd.Println("[Ingestion]")
	cmd.Printf("  Max tokens per chunk: %d\n", settings.Ingestion.Chunking.MaxTokensPerChunk)
	cmd.Printf("  Max overlap tokens: %d\n", settings.Ingestion.Chunking.MaxOverlapTokens)
	cmd.Printf("  Poll interval: %s\n", settings.Ingestion.PollInterval)
	if settings.Ingestion.UploadTimeout > 0 {
		cmd.Printf("  Upload timeout: %s\n", settings.Ingestion.UploadTimeout)
	}
	cmd.Printf("  File pattern: %s\n", settings.Ingestion.FilePattern)
	cmd.Println()

	cmd.Println("[Graph]")
	if settings.Graph.IsConfigured() {
		cmd.Printf("  URI: %s\n", settings.Graph.URI)
		cmd.Printf("  Username: %s\n", settings.Graph.Username)
		if settings.Graph.Database != "" {
			cmd.Printf("  Database: %s\n", settings.Graph.Database)
		}
	} else {
		cmd.Printf("  Not configured; the graph step is skipped.\n")
	}
	cmd.Println()

	cmd.Println("[Tasks]")
	cmd.Printf("  Backend: %s\n", settings.Tasks.Backend)
	if settings.Tasks.Path != "" {
		cmd.Printf("  Path: %s\n", settings.Tasks.Path)
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Address)
	cmd.Println()

	if configStore != nil {
		cmd.Printf("Config file: %s\n", configStore.Path())
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runConfigShow(cmd, nil)
	}

	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	value, ok := configStore.Get(key)
	if !ok {
		cmd.Printf("%s: (not set)\n", key)
		return nil
	}

	if secretKey(key) {
		cmd.Printf("%s = %s\n", key, maskAPIKey(fmt.Sprintf("%v", value)))
		return nil
	}
	cmd.Printf("%s = %v\n", key, value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]

	var raw string
	if len(args) == 2 {
		raw = args[1]
	} else if secretKey(key) {
		cmd.Printf("Enter value for %s: ", key)
		raw = readPassword()
		cmd.Println()
	} else {
		cmd.Printf("Enter value for %s: ", key)
		raw = readLine(bufio.NewReader(os.Stdin))
	}
	if raw == "" {
		return errors.New("value must not be empty")
	}

	value, err := coerceConfigValue(key, raw)
	if err != nil {
		return err
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if secretKey(key) {
		cmd.Printf("Set %s = %s\n", key, maskAPIKey(raw))
	} else {
		cmd.Printf("Set %s = %v\n", key, value)
	}
	return nil
}

// secretKey reports whether a key's value must never be echoed.
func secretKey(key string) bool {
	return key == "textgen.api_key" || key == "graph.password"
}

// coerceConfigValue validates and converts the raw value for keys the
// application interprets. Unknown keys are stored as strings.
func coerceConfigValue(key, raw string) (any, error) {
	switch key {
	case "textgen.provider":
		if !domain.TextProvider(raw).IsValid() {
			return nil, fmt.Errorf("unknown provider %q, valid: %v", raw, domain.AllTextProviders())
		}
		return raw, nil

	case "tasks.backend":
		if !domain.TaskBackend(raw).IsValid() {
			return nil, fmt.Errorf("unknown task backend %q, valid: memory, sqlite", raw)
		}
		return raw, nil

	case "ingestion.max_overlap_tokens":
		tokens, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer: %w", key, err)
		}
		if !domain.ValidOverlap(tokens) {
			return nil, fmt.Errorf("unsupported overlap %d, valid: 10, 50, 100", tokens)
		}
		return tokens, nil

	case "ingestion.max_tokens_per_chunk", "jobs.workers":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer: %w", key, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%s must be positive", key)
		}
		return n, nil

	case "ingestion.poll_interval", "ingestion.upload_timeout":
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be a duration like 3s: %w", key, err)
		}
		return d.String(), nil

	default:
		return raw, nil
	}
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
