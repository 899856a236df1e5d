package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hliang/pai/internal/skills"
)

func init() {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "List the skills catalog",
		Run:   runSkills,
	}

	cmd.Flags().String("custom", "", "Path to a custom skills.yaml overlay (default: <data-dir>/skills.yaml)")

	RootCmd.AddCommand(cmd)
}

func runSkills(cmd *cobra.Command, args []string) {
	overlay, _ := cmd.Flags().GetString("custom")
	if overlay == "" {
		overlay = filepath.Join(dataDir(), "skills.yaml")
	}

	catalog, err := skills.All(overlay)
	if err != nil {
		exitErr("load skills", err)
	}

	b, _ := json.MarshalIndent(catalog, "", "  ")
	fmt.Println(string(b))
}
