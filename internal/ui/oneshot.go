package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/quillcli/quill/internal/types"
)

// oneshotModel shows a spinner while a single agent run executes, printing
// each completed tool call into scrollback as it finishes.
type oneshotModel struct {
	spinner spinner.Model
	styles  Styles
	state   types.AgentState
	tool    *types.ToolEvent

	outcome RunOutcome
	err     error
}

func newOneshotModel() oneshotModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = DefaultStyles().Spinner

	return oneshotModel{
		spinner: s,
		styles:  DefaultStyles(),
		state:   types.StateThinking,
	}
}

func (m oneshotModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m oneshotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.err = fmt.Errorf("interrupted")
			return m, tea.Quit
		}

	case types.AgentEvent:
		m.state = msg.State
		if msg.State == types.StateToolExecuting && msg.Tool != nil {
			if msg.Tool.Done {
				m.tool = nil
				return m, tea.Println(renderToolLine(m.styles, msg.Tool))
			}
			m.tool = msg.Tool
		}
		return m, nil

	case runDoneMsg:
		m.outcome = msg.outcome
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m oneshotModel) View() string {
	return fmt.Sprintf("%s %s\n",
		m.spinner.View(),
		m.styles.StatusText.Render(statusFor(m.state, m.tool)))
}

// RunOneShot executes one agent run behind a progress spinner, prints the
// final answer, and returns the outcome.
func RunOneShot(run func(ctx context.Context) (RunOutcome, error), sink *EventSink) (RunOutcome, error) {
	p := tea.NewProgram(newOneshotModel())
	if sink != nil {
		sink.attach(p)
	}

	go func() {
		outcome, err := run(context.Background())
		p.Send(runDoneMsg{outcome: outcome, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return RunOutcome{}, fmt.Errorf("ui: %w", err)
	}

	m := final.(oneshotModel)
	if m.err != nil {
		return RunOutcome{}, m.err
	}

	fmt.Println(RenderAnswer(m.outcome.Output, m.outcome.Incomplete))
	return m.outcome, nil
}
