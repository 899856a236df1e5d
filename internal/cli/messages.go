package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hliang/pai/internal/message"
)

func init() {
	messagesCmd := &cobra.Command{
		Use:   "messages",
		Short: "Inspect the conversation log",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded messages, oldest first",
		Run:   runMessagesList,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the entire conversation log",
		Run:   runMessagesClear,
	}

	messagesCmd.AddCommand(listCmd, clearCmd)
	RootCmd.AddCommand(messagesCmd)
}

func runMessagesList(cmd *cobra.Command, args []string) {
	log := message.NewLog(dataDir())
	if err := log.Load(); err != nil {
		exitErr("load messages", err)
	}

	b, _ := json.MarshalIndent(log.Messages(), "", "  ")
	fmt.Println(string(b))
}

func runMessagesClear(cmd *cobra.Command, args []string) {
	log := message.NewLog(dataDir())
	if err := log.Clear(); err != nil {
		exitErr("clear messages", err)
	}
	fmt.Println("cleared")
}
