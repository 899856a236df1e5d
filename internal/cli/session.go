package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hliang/pai/internal/session"
)

func init() {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage conversation sessions",
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the current session",
		Run:   runSessionCurrent,
	}

	newCmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a session and make it current",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionNew,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, most recently active first",
		Run:   runSessionList,
	}

	switchCmd := &cobra.Command{
		Use:   "switch [id]",
		Short: "Make an existing session current",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionSwitch,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a session (refused for the current one)",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionRm,
	}

	renameCmd := &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename a session",
		Args:  cobra.ExactArgs(2),
		Run:   runSessionRename,
	}

	sessionCmd.AddCommand(currentCmd, newCmd, listCmd, switchCmd, rmCmd, renameCmd)
	RootCmd.AddCommand(sessionCmd)
}

func runSessionCurrent(cmd *cobra.Command, args []string) {
	store := session.NewStore(dataDir())
	sess, err := store.Current()
	if err != nil {
		exitErr("current session", err)
	}

	b, _ := json.MarshalIndent(sess, "", "  ")
	fmt.Println(string(b))
}

func runSessionNew(cmd *cobra.Command, args []string) {
	store := session.NewStore(dataDir())
	sess, err := store.Create(args[0])
	if err != nil {
		exitErr("create session", err)
	}

	b, _ := json.Marshal(sess)
	fmt.Println(string(b))
}

func runSessionList(cmd *cobra.Command, args []string) {
	store := session.NewStore(dataDir())
	sessions, err := store.List()
	if err != nil {
		exitErr("list sessions", err)
	}

	b, _ := json.MarshalIndent(sessions, "", "  ")
	fmt.Println(string(b))
}

func runSessionSwitch(cmd *cobra.Command, args []string) {
	store := session.NewStore(dataDir())
	sess, err := store.Switch(args[0])
	if err != nil {
		exitErr("switch session", err)
	}

	b, _ := json.Marshal(sess)
	fmt.Println(string(b))
}

func runSessionRm(cmd *cobra.Command, args []string) {
	store := session.NewStore(dataDir())
	if err := store.Delete(args[0]); err != nil {
		exitErr("delete session", err)
	}
	fmt.Println(args[0])
}

func runSessionRename(cmd *cobra.Command, args []string) {
	store := session.NewStore(dataDir())
	sess, err := store.Rename(args[0], args[1])
	if err != nil {
		exitErr("rename session", err)
	}

	b, _ := json.Marshal(sess)
	fmt.Println(string(b))
}
