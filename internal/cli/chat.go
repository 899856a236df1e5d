package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hliang/pai/internal/assistant"
	"github.com/hliang/pai/internal/hook"
	"github.com/hliang/pai/internal/memory"
	"github.com/hliang/pai/internal/message"
	"github.com/hliang/pai/internal/provider"
	"github.com/hliang/pai/internal/session"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a message to the assistant",
		Long:  "Send a message to the assistant. The message can be a positional arg or piped via stdin.",
		Run:   runChat,
	}

	cmd.Flags().StringP("model", "m", "", "Model id (default: stored default model)")
	cmd.Flags().StringP("system", "s", "", "System prompt")
	cmd.Flags().Bool("extract", false, "Run memory extraction regardless of cadence")
	cmd.Flags().Bool("no-extract", false, "Skip memory extraction for this turn")

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	modelFlag, _ := cmd.Flags().GetString("model")
	systemPrompt, _ := cmd.Flags().GetString("system")
	forceExtract, _ := cmd.Flags().GetBool("extract")
	noExtract, _ := cmd.Flags().GetBool("no-extract")

	text := strings.TrimSpace(contentFromArgsOrStdin(args))
	if text == "" {
		exitErr("chat", fmt.Errorf("message is required (positional arg or stdin)"))
	}

	logger := newLogger(cmd)
	_, settings := loadSettings()
	providers := provider.NewRegistry(settings, logger)

	memories := memory.NewStore(dataDir())
	if _, err := memories.LoadAll(); err != nil {
		exitErr("load memories", err)
	}
	messages := message.NewLog(dataDir())
	if err := messages.Load(); err != nil {
		exitErr("load messages", err)
	}

	sessions := session.NewStore(dataDir())
	sess, err := sessions.Current()
	if err != nil {
		exitErr("resolve session", err)
	}

	asst := assistant.New(settings, providers, memories, messages)
	reply, chatErr := asst.Chat(cmd.Context(), text, modelFlag, systemPrompt)

	// The user turn is recorded even when the provider call failed.
	if err := sessions.IncrementMessages(&sess); err != nil {
		logger.Debug("session update failed", "err", err)
	}
	if chatErr != nil {
		exitErr("chat", chatErr)
	}
	if err := sessions.IncrementMessages(&sess); err != nil {
		logger.Debug("session update failed", "err", err)
	}

	fmt.Println(reply)

	if noExtract {
		return
	}
	engine := hook.NewEngine(providers, logger)
	if !forceExtract && !engine.ShouldAutoExtract(messages.Len()) {
		return
	}
	if item := engine.TryExtract(cmd.Context(), messages.Messages()); item != nil {
		if err := memories.Save(*item); err != nil {
			logger.Debug("extracted memory save failed", "err", err)
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved memory: %s (%s)\n", item.Title, item.ID)
	}
}
