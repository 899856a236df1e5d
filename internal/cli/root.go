// Package cli implements the pai CLI commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hliang/pai/internal/config"
	"github.com/hliang/pai/internal/logger"
)

var (
	dataDirFlag string
	debugFlag   bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "pai",
	Short: "Personal AI assistant backend",
	Long:  "Backend for a personal AI assistant. Chat against five LLM providers with file-backed memory, sessions, and skills.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataDirFlag, "data-dir", "d", "", "Data directory (default: $PAI_DATA_DIR or ~/.pai)")
	RootCmd.PersistentFlags().Bool("debug", false, "Verbose logging, including swallowed failures")
}

func dataDir() string {
	if dataDirFlag != "" {
		return dataDirFlag
	}
	return config.DataDir()
}

func newLogger(cmd *cobra.Command) *log.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	return logger.New(debug)
}

func settingsStore() *config.Store {
	return config.NewStore(config.SettingsPath())
}

func loadSettings() (*config.Store, config.Settings) {
	store := settingsStore()
	settings, err := store.Load()
	if err != nil {
		exitErr("load settings", err)
	}
	return store, settings
}

// contentFromArgsOrStdin joins positional args, falling back to piped stdin.
func contentFromArgsOrStdin(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		return string(b)
	}
	return ""
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
