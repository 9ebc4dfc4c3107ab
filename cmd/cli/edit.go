package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <path> <prompt>",
	Short: "Edit an existing file from a natural language description",
	Long: `Edit an existing file using natural language instructions.

The agent reads the file, applies the requested change, and writes it
back. The file must already exist.

Examples:
  quill edit essay.md "add a section about symbolism"
  quill edit notes.md "summarize the last section" --brief`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		instruction := strings.Join(args[1:], " ")
		runAgentOneShot(fmt.Sprintf("Edit the file %s: %s", path, instruction))
	},
}

func init() {
	addModeFlags(editCmd)
}
