package main

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "dev"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	nameStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF")).
		Width(10)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	fmt.Printf("%s %s\n", nameStyle.Render("quill"), valueStyle.Render("v"+Version))
	fmt.Println(taglineStyle.Render("AI-powered learning notes assistant"))
	fmt.Println()

	rows := [][2]string{
		{"commit", GitCommit},
		{"built", BuildDate},
		{"go", runtime.Version()},
		{"platform", runtime.GOOS + "/" + runtime.GOARCH},
	}
	for _, row := range rows {
		fmt.Printf("  %s%s\n", labelStyle.Render(row[0]), valueStyle.Render(row[1]))
	}
}
