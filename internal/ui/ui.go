// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/quillcli/quill/internal/types"
)

// RunOutcome is what one agent run produced.
type RunOutcome struct {
	Output     string
	Incomplete bool
}

// RunFunc executes one prompt through the agent and returns its outcome.
type RunFunc func(ctx context.Context, prompt string) (RunOutcome, error)

// EventSink forwards agent events into a running Bubble Tea program. It is
// safe to emit before a program is attached; those events are dropped.
type EventSink struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewEventSink creates an unattached sink.
func NewEventSink() *EventSink {
	return &EventSink{}
}

// Emit delivers an event to the attached program, if any.
func (s *EventSink) Emit(event types.AgentEvent) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Send(event)
	}
}

func (s *EventSink) attach(p *tea.Program) {
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()
}

// Run starts the interactive chat UI. Each submitted prompt is handed to
// run; progress events arrive through the sink. Blocks until the user quits.
func Run(run RunFunc, sink *EventSink) error {
	p := tea.NewProgram(NewModel(run), tea.WithAltScreen())
	if sink != nil {
		sink.attach(p)
	}
	_, err := p.Run()
	return err
}

// Model is the Bubble Tea model for the chat UI.
type Model struct {
	// UI components
	textInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	styles    Styles

	// State
	state       types.AgentState
	messages    []chatMessage
	currentTool *types.ToolEvent
	width       int
	height      int
	ready       bool
	quitting    bool

	run RunFunc
}

// chatMessage represents a message in the chat history.
type chatMessage struct {
	role       string // "user", "assistant", "system", "tool"
	content    string
	tool       *types.ToolEvent
	incomplete bool
}

// runDoneMsg carries the outcome of a finished agent run.
type runDoneMsg struct {
	outcome RunOutcome
	err     error
}

// NewModel creates a new UI model.
func NewModel(run RunFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask me anything... (e.g., 'Create a study guide for photosynthesis')"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = DefaultStyles().Spinner

	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.DefaultKeyMap()

	return Model{
		textInput: ti,
		spinner:   s,
		viewport:  vp,
		styles:    DefaultStyles(),
		state:     types.StateIdle,
		messages:  make([]chatMessage, 0),
		run:       run,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

func (m Model) headerHeight() int {
	banner := m.styles.BannerTitle.Render(Banner())
	return strings.Count(banner, "\n") + 1 + 2
}

func (m Model) footerHeight() int {
	// 1 blank line + 1 prompt/input line + 1 newline + 1 help bar = 4
	return 4
}

// updateViewport rebuilds the viewport content and scrolls to the bottom.
func (m *Model) updateViewport() {
	var b strings.Builder

	for _, msg := range m.messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	if m.currentTool != nil {
		b.WriteString(m.renderToolInProgress())
		b.WriteString("\n")
	}

	if m.state != types.StateIdle {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.styles.StatusText.Render(statusFor(m.state, m.currentTool)))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state != types.StateIdle {
				return m, nil
			}

			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if cmd, handled := m.handleCommand(input); handled {
				m.updateViewport()
				return m, cmd
			}

			m.messages = append(m.messages, chatMessage{
				role:    "user",
				content: input,
			})

			m.textInput.SetValue("")
			m.state = types.StateThinking
			m.updateViewport()

			if m.run != nil {
				cmds = append(cmds, m.startRun(input))
			}

			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10

		vpWidth := msg.Width
		vpHeight := msg.Height - m.headerHeight() - m.footerHeight()
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(vpWidth, vpHeight)
			m.viewport.KeyMap = viewport.DefaultKeyMap()
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = vpHeight
		}

		m.ready = true
		m.updateViewport()

	case types.AgentEvent:
		m.handleAgentEvent(msg)
		m.updateViewport()
		return m, m.spinner.Tick

	case runDoneMsg:
		m.currentTool = nil
		m.state = types.StateIdle
		if msg.err != nil {
			m.messages = append(m.messages, chatMessage{
				role:    "system",
				content: "Error: " + msg.err.Error(),
			})
		} else {
			m.messages = append(m.messages, chatMessage{
				role:       "assistant",
				content:    msg.outcome.Output,
				incomplete: msg.outcome.Incomplete,
			})
		}
		m.updateViewport()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		// Refresh viewport to update spinner frame
		m.updateViewport()
	}

	if m.state == types.StateIdle {
		var tiCmd tea.Cmd
		m.textInput, tiCmd = m.textInput.Update(msg)
		cmds = append(cmds, tiCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

// startRun launches the agent for one prompt.
func (m Model) startRun(prompt string) tea.Cmd {
	run := m.run
	return func() tea.Msg {
		outcome, err := run(context.Background(), prompt)
		return runDoneMsg{outcome: outcome, err: err}
	}
}

// handleCommand processes special commands. The second return reports
// whether the input was consumed.
func (m *Model) handleCommand(input string) (tea.Cmd, bool) {
	switch strings.ToLower(input) {
	case "exit", "quit", "q":
		m.quitting = true
		return tea.Quit, true

	case "clear":
		m.messages = make([]chatMessage, 0)
		m.textInput.SetValue("")
		return nil, true

	case "help", "?":
		m.messages = append(m.messages, chatMessage{
			role: "system",
			content: `Available commands:
  help, ?     Show this help
  clear       Clear chat history
  tools       List file tools
  exit, quit  Quit

Example prompts:
  "Create a file called biology-notes.md summarizing cell division"
  "Add a section about symbolism to essay.md"
  "Make flashcards from chapter3.md"`,
		})
		m.textInput.SetValue("")
		return nil, true

	case "tools":
		m.messages = append(m.messages, chatMessage{
			role: "system",
			content: `Available file tools:

  create_file      Create a file with content (parents auto-created)
  edit_file        Replace or append to an existing file
  show_file        Read a file's contents
  delete_file      Delete a file
  list_directory   List a directory`,
		})
		m.textInput.SetValue("")
		return nil, true
	}

	return nil, false
}

// handleAgentEvent folds a progress event into the model.
func (m *Model) handleAgentEvent(event types.AgentEvent) {
	m.state = event.State

	switch event.State {
	case types.StateToolExecuting:
		if event.Tool == nil {
			return
		}
		if event.Tool.Done {
			m.messages = append(m.messages, chatMessage{role: "tool", tool: event.Tool})
			m.currentTool = nil
		} else {
			m.currentTool = event.Tool
		}

	case types.StateResponding, types.StateError:
		// The final answer and any error arrive via runDoneMsg.
		m.currentTool = nil
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return m.styles.SystemMessage.Render("Goodbye!\n")
	}

	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.styles.BannerTitle.Render(Banner()))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.styles.Prompt.Render("> "))
	if m.state == types.StateIdle {
		b.WriteString(m.textInput.View())
	} else {
		b.WriteString(m.styles.StatusText.Render("(processing...)"))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return m.styles.App.Render(b.String())
}

// renderMessage renders a single chat message.
func (m Model) renderMessage(msg chatMessage) string {
	switch msg.role {
	case "user":
		return m.styles.UserMessage.Render("You: " + msg.content)

	case "assistant":
		rendered := m.styles.AssistantMessage.Render("Assistant: " + msg.content)
		if msg.incomplete {
			rendered += "\n" + m.styles.WarningMessage.Render("(response may be incomplete)")
		}
		return rendered

	case "system":
		return m.styles.SystemMessage.Render(msg.content)

	case "tool":
		if msg.tool != nil {
			return renderToolLine(m.styles, msg.tool)
		}
	}
	return ""
}

// renderToolInProgress renders the tool that is currently executing.
func (m Model) renderToolInProgress() string {
	var b strings.Builder

	b.WriteString(m.styles.ToolName.Render("Tool: " + m.currentTool.Name))
	if m.currentTool.Arguments != "" && m.currentTool.Arguments != "{}" {
		b.WriteString(" ")
		b.WriteString(m.styles.ToolParams.Render(m.currentTool.Arguments))
	}
	b.WriteString("\n")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.styles.StatusText.Render("Executing..."))

	return m.styles.ToolBox.Render(b.String())
}

// renderHelpBar renders the bottom help bar.
func (m Model) renderHelpBar() string {
	help := []string{
		m.styles.HelpKey.Render("enter") + m.styles.HelpValue.Render(" send"),
		m.styles.HelpKey.Render("ctrl+c") + m.styles.HelpValue.Render(" quit"),
		m.styles.HelpKey.Render("help") + m.styles.HelpValue.Render(" commands"),
		m.styles.HelpKey.Render("tools") + m.styles.HelpValue.Render(" list tools"),
	}
	return m.styles.HelpBar.Render(strings.Join(help, "  |  "))
}
