package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hliang/pai/internal/memory"
	"github.com/hliang/pai/internal/model"
)

func init() {
	workCmd := &cobra.Command{
		Use:   "work",
		Short: "Manage tracked work items",
	}

	saveCmd := &cobra.Command{
		Use:   "save [description]",
		Short: "Create a work item",
		Run:   runWorkSave,
	}
	saveCmd.Flags().String("title", "", "Work item title (required)")
	saveCmd.MarkFlagRequired("title")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List work items, newest first",
		Run:   runWorkList,
	}

	completeCmd := &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a work item completed",
		Args:  cobra.ExactArgs(1),
		Run:   runWorkComplete,
	}

	workCmd.AddCommand(saveCmd, listCmd, completeCmd)
	RootCmd.AddCommand(workCmd)
}

func runWorkSave(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")

	item := model.WorkItem{
		ID:          model.NewID("work"),
		Title:       title,
		Description: strings.TrimSpace(contentFromArgsOrStdin(args)),
		Status:      "active",
		CreatedAt:   time.Now().Unix(),
	}

	store := memory.NewStore(dataDir())
	if err := store.SaveWorkItem(item); err != nil {
		exitErr("save work item", err)
	}

	b, _ := json.Marshal(item)
	fmt.Println(string(b))
}

func runWorkList(cmd *cobra.Command, args []string) {
	store := memory.NewStore(dataDir())
	items, err := store.WorkItems()
	if err != nil {
		exitErr("list work items", err)
	}

	b, _ := json.MarshalIndent(items, "", "  ")
	fmt.Println(string(b))
}

func runWorkComplete(cmd *cobra.Command, args []string) {
	store := memory.NewStore(dataDir())
	if err := store.CompleteWorkItem(args[0]); err != nil {
		exitErr("complete work item", err)
	}
	fmt.Println(args[0])
}
