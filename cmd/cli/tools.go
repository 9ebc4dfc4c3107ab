package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/quillcli/quill/internal/tools"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List available tools",
	Long: `List the file tools the agent can call.

These tools are selected automatically by the agent based on your
prompt. You can also reference them directly in queries.

Examples:
  quill tools            # List all tools
  quill tools --verbose  # Show parameter details`,
	Run: func(cmd *cobra.Command, args []string) {
		runTools()
	},
}

func runTools() {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	toolStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF"))

	paramStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#06B6D4"))

	ops, err := initOps()
	if err != nil {
		fail(err)
	}
	registry := tools.NewRegistry()
	if err := tools.RegisterFileTools(registry, ops); err != nil {
		fail(err)
	}

	fmt.Println(headerStyle.Render("Available Tools"))
	fmt.Println()

	for _, name := range registry.List() {
		tool, _ := registry.Get(name)

		fmt.Printf("  %s\n", toolStyle.Render(tool.Name()))
		fmt.Printf("    %s\n", descStyle.Render(tool.Description()))

		if verbose && len(tool.Parameters()) > 0 {
			fmt.Println("    Parameters:")
			for _, p := range tool.Parameters() {
				req := ""
				if p.Required {
					req = " (required)"
				}
				fmt.Printf("      %s%s\n", paramStyle.Render(p.Name), req)
				if p.Description != "" {
					fmt.Printf("        %s\n", descStyle.Render(p.Description))
				}
			}
		}
		fmt.Println()
	}

	fmt.Println(descStyle.Render(fmt.Sprintf("  Total: %d tools available", len(registry.List()))))

	if !verbose {
		fmt.Println(descStyle.Render("  Use --verbose for parameter details"))
	}
}
