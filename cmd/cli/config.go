package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/quillcli/quill/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long: `Show the configuration quill would run with, after applying
defaults, any discovered .env file, and environment variables.`,
	Run: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	// Never print the key itself.
	display := *cfg
	if display.OpenAIAPIKey != "" {
		display.OpenAIAPIKey = "(set)"
	} else {
		display.OpenAIAPIKey = "(not set)"
	}

	data, err := yaml.Marshal(&display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(headerStyle.Render("Current Configuration:"))
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println(dimStyle.Render("\nSettings come from environment variables, with a .env file"))
	fmt.Println(dimStyle.Render("searched in: current directory, home directory, binary directory."))
	fmt.Println(dimStyle.Render("Environment variables take precedence over .env values."))
}
