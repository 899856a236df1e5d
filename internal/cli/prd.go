package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hliang/pai/internal/memory"
	"github.com/hliang/pai/internal/model"
)

func init() {
	prdCmd := &cobra.Command{
		Use:   "prd",
		Short: "Manage product requirements documents",
	}

	saveCmd := &cobra.Command{
		Use:   "save [content]",
		Short: "Save a PRD",
		Long:  "Save a PRD. Content can be a positional arg or piped via stdin.",
		Run:   runPRDSave,
	}
	saveCmd.Flags().String("id", "", "Document id (default: generated)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored PRDs",
		Run:   runPRDList,
	}

	prdCmd.AddCommand(saveCmd, listCmd)
	RootCmd.AddCommand(prdCmd)
}

func runPRDSave(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		id = model.NewID("prd")
	}

	content := strings.TrimSpace(contentFromArgsOrStdin(args))
	if content == "" {
		exitErr("save prd", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	store := memory.NewStore(dataDir())
	if err := store.SavePRD(id, content); err != nil {
		exitErr("save prd", err)
	}

	b, _ := json.Marshal(model.PRD{ID: id, Content: content})
	fmt.Println(string(b))
}

func runPRDList(cmd *cobra.Command, args []string) {
	store := memory.NewStore(dataDir())
	prds, err := store.PRDs()
	if err != nil {
		exitErr("list prds", err)
	}

	b, _ := json.MarshalIndent(prds, "", "  ")
	fmt.Println(string(b))
}
