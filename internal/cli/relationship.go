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
	relationshipCmd := &cobra.Command{
		Use:   "relationship",
		Short: "Manage the append-only relationship log",
	}

	saveCmd := &cobra.Command{
		Use:   "save [content]",
		Short: "Append a relationship note",
		Run:   runRelationshipSave,
	}
	saveCmd.Flags().String("type", "", "Note type, e.g. meeting, call, birthday (required)")
	saveCmd.Flags().String("entity", "", "Person or organization the note is about (required)")
	saveCmd.MarkFlagRequired("type")
	saveCmd.MarkFlagRequired("entity")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List relationship notes, newest first",
		Run:   runRelationshipList,
	}

	relationshipCmd.AddCommand(saveCmd, listCmd)
	RootCmd.AddCommand(relationshipCmd)
}

func runRelationshipSave(cmd *cobra.Command, args []string) {
	noteType, _ := cmd.Flags().GetString("type")
	entity, _ := cmd.Flags().GetString("entity")

	content := strings.TrimSpace(contentFromArgsOrStdin(args))
	if content == "" {
		exitErr("save note", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	store := memory.NewStore(dataDir())
	note := model.RelationshipNote{
		NoteType:  noteType,
		Entity:    entity,
		Content:   content,
		Timestamp: time.Now().Unix(),
	}
	if err := store.SaveRelationshipNote(note); err != nil {
		exitErr("save note", err)
	}

	b, _ := json.Marshal(note)
	fmt.Println(string(b))
}

func runRelationshipList(cmd *cobra.Command, args []string) {
	store := memory.NewStore(dataDir())
	notes, err := store.RelationshipNotes()
	if err != nil {
		exitErr("list notes", err)
	}

	b, _ := json.MarshalIndent(notes, "", "  ")
	fmt.Println(string(b))
}
