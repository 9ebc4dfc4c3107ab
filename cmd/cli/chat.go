package main

import (
	"context"
	"strings"

	"github.com/quillcli/quill/internal/ui"
	"github.com/spf13/cobra"
)

var chatInteractive bool

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Chat with the agent",
	Long: `Chat with the agent for general file operations and learning
assistance. The agent performs multi-step operations and uses file tools
as needed.

Examples:
  quill chat "create a project structure for a FastAPI app"
  quill chat "make flashcards from chapter3.md" --flashcards
  quill chat --it`,
	Run: func(cmd *cobra.Command, args []string) {
		if chatInteractive {
			runInteractive()
			return
		}
		if len(args) == 0 {
			cmd.Help()
			return
		}
		runAgentOneShot(strings.Join(args, " "))
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatInteractive, "it", false, "Start interactive mode")
	addModeFlags(chatCmd)
}

func runInteractive() {
	a, sink, err := initAgent()
	if err != nil {
		fail(err)
	}

	run := func(ctx context.Context, input string) (ui.RunOutcome, error) {
		res, err := a.Run(ctx, input, modeFlags())
		if err != nil {
			return ui.RunOutcome{}, err
		}
		return ui.RunOutcome{Output: res.Output, Incomplete: res.Incomplete()}, nil
	}

	if err := ui.Run(run, sink); err != nil {
		fail(err)
	}
}
