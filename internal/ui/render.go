package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/quillcli/quill/internal/types"
)

var defaultStyles = DefaultStyles()

// RenderAnswer wraps the agent's final answer in a bordered panel.
func RenderAnswer(answer string, incomplete bool) string {
	panel := defaultStyles.AnswerPanel
	if incomplete {
		panel = panel.BorderForeground(DefaultTheme().Warning)
	}
	return panel.Render(answer)
}

// RenderError formats an error line for the terminal.
func RenderError(err error) string {
	return defaultStyles.ErrorText.Render("Error: " + err.Error())
}

// RenderShow formats a successful Show result: a metadata header followed
// by the file contents.
func RenderShow(res types.OperationResult) string {
	var b strings.Builder

	if res.Metadata != nil {
		b.WriteString(defaultStyles.Label.Render("File: "))
		b.WriteString(defaultStyles.Value.Render(res.Metadata.Path))
		b.WriteString("\n")
		b.WriteString(defaultStyles.Label.Render("Size: "))
		b.WriteString(defaultStyles.Value.Render(res.Metadata.Size))
		b.WriteString("\n")
		b.WriteString(defaultStyles.Label.Render("Language: "))
		b.WriteString(defaultStyles.Value.Render(res.Language))
		b.WriteString("\n\n")
	}
	b.WriteString(res.Content)

	return b.String()
}

// RenderList formats a successful List result as a table.
func RenderList(res types.OperationResult) string {
	if len(res.Items) == 0 {
		return defaultStyles.StatusText.Render("Directory is empty: " + res.Path)
	}

	theme := DefaultTheme()
	header := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	cell := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Muted)).
		Headers("NAME", "TYPE", "SIZE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return cell
		})

	for _, item := range res.Items {
		if item.Type == types.EntryFile {
			t.Row(item.Name, "📄 File", item.Size)
		} else {
			t.Row(item.Name, "📁 Directory", "-")
		}
	}

	title := defaultStyles.Label.Render("Contents of ") + defaultStyles.Value.Render(res.Path)
	return title + "\n" + t.Render()
}

// renderToolLine formats one completed tool execution for scrollback.
func renderToolLine(s Styles, tool *types.ToolEvent) string {
	var b strings.Builder

	b.WriteString(s.ToolName.Render("Tool: " + tool.Name))
	if tool.Arguments != "" && tool.Arguments != "{}" {
		b.WriteString(" ")
		b.WriteString(s.ToolParams.Render(tool.Arguments))
	}
	b.WriteString("\n")

	output := truncate(tool.Output, 300)
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(tool.Output, "Error:") {
			b.WriteString(s.ToolError.Render("  " + line))
		} else {
			b.WriteString(s.ToolOutput.Render("  | " + line))
		}
		b.WriteString("\n")
	}

	return s.ToolBox.Render(strings.TrimRight(b.String(), "\n"))
}

// truncate shortens s to at most max bytes, backing up to a rune boundary
// so multi-byte output is never cut mid-character.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// statusFor maps an agent state to the spinner status line.
func statusFor(state types.AgentState, tool *types.ToolEvent) string {
	if state == types.StateToolExecuting && tool != nil {
		return fmt.Sprintf("Running %s...", tool.Name)
	}
	return state.String() + "..."
}
