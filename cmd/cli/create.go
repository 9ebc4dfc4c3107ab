package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <prompt>",
	Short: "Create a file from a natural language description",
	Long: `Create a file using natural language instructions.

The agent decides the file name, location, and content from your
description unless you spell them out.

Examples:
  quill create "a Python script that prints hello world in hello.py"
  quill create "a study guide for photosynthesis" --brief
  quill create "meeting notes template in notes/template.md"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAgentOneShot("Create a file: " + strings.Join(args, " "))
	},
}

func init() {
	addModeFlags(createCmd)
}
