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
	memoryCmd := &cobra.Command{
		Use:   "memory",
		Short: "Manage memory records",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all memory records",
		Run:   runMemoryList,
	}

	saveCmd := &cobra.Command{
		Use:   "save [content]",
		Short: "Save a memory record",
		Long:  "Save a memory record. Content can be a positional arg or piped via stdin.",
		Run:   runMemorySave,
	}
	saveCmd.Flags().String("title", "", "Record title (required)")
	saveCmd.Flags().String("type", model.TypeGeneral, "Memory type: WORK, LEARNING, RELATIONSHIP, or general")
	saveCmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	saveCmd.Flags().String("entities", "", "Comma-separated entities")
	saveCmd.MarkFlagRequired("title")

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search memory records",
		Args:  cobra.ExactArgs(1),
		Run:   runMemorySearch,
	}
	searchCmd.Flags().String("type", "", "Filter by memory type")

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a memory record",
		Args:  cobra.ExactArgs(1),
		Run:   runMemoryRm,
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-partition record counts",
		Run:   runMemoryStats,
	}

	memoryCmd.AddCommand(listCmd, saveCmd, searchCmd, rmCmd, statsCmd)
	RootCmd.AddCommand(memoryCmd)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runMemoryList(cmd *cobra.Command, args []string) {
	store := memory.NewStore(dataDir())
	items, err := store.LoadAll()
	if err != nil {
		exitErr("list memories", err)
	}

	b, _ := json.MarshalIndent(items, "", "  ")
	fmt.Println(string(b))
}

func runMemorySave(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	memoryType, _ := cmd.Flags().GetString("type")
	tagsStr, _ := cmd.Flags().GetString("tags")
	entitiesStr, _ := cmd.Flags().GetString("entities")

	content := strings.TrimSpace(contentFromArgsOrStdin(args))
	if content == "" {
		exitErr("save memory", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	item := model.MemoryItem{
		ID:         model.NewID("memory"),
		Title:      title,
		Content:    content,
		MemoryType: memoryType,
		Timestamp:  time.Now().UnixMilli(),
		Tags:       splitList(tagsStr),
		Entities:   splitList(entitiesStr),
		Confidence: 1.0,
	}

	store := memory.NewStore(dataDir())
	if err := store.Save(item); err != nil {
		exitErr("save memory", err)
	}

	b, _ := json.Marshal(item)
	fmt.Println(string(b))
}

func runMemorySearch(cmd *cobra.Command, args []string) {
	memoryType, _ := cmd.Flags().GetString("type")

	store := memory.NewStore(dataDir())
	items, err := store.Search(args[0], memoryType)
	if err != nil {
		exitErr("search memories", err)
	}

	b, _ := json.MarshalIndent(items, "", "  ")
	fmt.Println(string(b))
}

func runMemoryRm(cmd *cobra.Command, args []string) {
	store := memory.NewStore(dataDir())
	if err := store.Delete(args[0]); err != nil {
		exitErr("delete memory", err)
	}
	fmt.Println(args[0])
}

func runMemoryStats(cmd *cobra.Command, args []string) {
	store := memory.NewStore(dataDir())
	stats, err := store.Stats()
	if err != nil {
		exitErr("memory stats", err)
	}

	b, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Println(string(b))
}
