package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage settings (API keys, default model)",
	}

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print one settings value",
		Args:  cobra.ExactArgs(1),
		Run:   runSettingsGet,
	}

	setCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set one settings value and persist it",
		Args:  cobra.ExactArgs(2),
		Run:   runSettingsSet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print all settings",
		Run:   runSettingsList,
	}

	settingsCmd.AddCommand(getCmd, setCmd, listCmd)
	RootCmd.AddCommand(settingsCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) {
	store, _ := loadSettings()
	value, ok := store.Get(args[0])
	if !ok {
		exitErr("settings get", fmt.Errorf("key %q not set", args[0]))
	}

	b, _ := json.Marshal(value)
	fmt.Println(string(b))
}

// coerceValue keeps booleans and numbers typed in settings.json; everything
// else stays a string.
func coerceValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

func runSettingsSet(cmd *cobra.Command, args []string) {
	store, _ := loadSettings()
	if err := store.SetRaw(args[0], coerceValue(args[1])); err != nil {
		exitErr("settings set", err)
	}
	fmt.Println(args[0])
}

func runSettingsList(cmd *cobra.Command, args []string) {
	store, _ := loadSettings()

	b, _ := json.MarshalIndent(store.All(), "", "  ")
	fmt.Println(string(b))
}
