package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hliang/pai/internal/provider"
)

func init() {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available models across configured providers",
		Run:   runModels,
	}

	RootCmd.AddCommand(cmd)
}

func runModels(cmd *cobra.Command, args []string) {
	logger := newLogger(cmd)
	_, settings := loadSettings()

	providers := provider.NewRegistry(settings, logger)
	models := providers.ListModels(cmd.Context())

	b, _ := json.MarshalIndent(models, "", "  ")
	fmt.Println(string(b))
}
