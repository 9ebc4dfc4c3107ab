// Package agent implements the reason/act loop that drives file tools
// from LLM responses.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/quillcli/quill/internal/llm"
	"github.com/quillcli/quill/internal/prompt"
	"github.com/quillcli/quill/internal/tools"
	"github.com/quillcli/quill/internal/types"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// fallbackOutput is returned when the conversation ends without a usable
// assistant message.
const fallbackOutput = "The agent did not produce a response."

// StopReason explains why a run terminated.
type StopReason string

const (
	// StopComplete means the LLM finished with a plain text response.
	StopComplete StopReason = "complete"

	// StopExhausted means the iteration ceiling was hit before the LLM
	// finished; the result is incomplete.
	StopExhausted StopReason = "exhausted"
)

// Agent coordinates the LLM and the tool executor.
type Agent struct {
	provider      llm.Provider
	registry      *tools.Registry
	executor      *tools.Executor
	maxIterations int
	logger        *zap.Logger
	onEvent       func(types.AgentEvent)
}

// Config holds agent construction parameters.
type Config struct {
	Provider      llm.Provider
	Registry      *tools.Registry
	MaxIterations int
	Logger        *zap.Logger

	// OnEvent, when set, receives progress events during a run. It is
	// called from the run's goroutine.
	OnEvent func(types.AgentEvent)
}

// New creates an agent.
func New(cfg Config) (*Agent, error) {
	if cfg.Provider == nil {
		return nil, errors.New("provider is required")
	}
	if cfg.Registry == nil {
		return nil, errors.New("tool registry is required")
	}
	if cfg.MaxIterations <= 0 {
		return nil, fmt.Errorf("max iterations must be positive, got %d", cfg.MaxIterations)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Agent{
		provider:      cfg.Provider,
		registry:      cfg.Registry,
		executor:      tools.NewExecutor(cfg.Registry, cfg.Logger),
		maxIterations: cfg.MaxIterations,
		logger:        cfg.Logger,
		onEvent:       cfg.OnEvent,
	}, nil
}

// RunResult is the outcome of one agent run.
type RunResult struct {
	Output     string
	StopReason StopReason
	Iterations int
	ToolCalls  int
}

// Incomplete reports whether the run hit the iteration ceiling.
func (r *RunResult) Incomplete() bool {
	return r.StopReason == StopExhausted
}

// Run executes the reason/act loop for a single user prompt. The message
// history is owned by this call: seeded with the system instruction and the
// user prompt, appended to on every turn, and discarded when the run ends.
//
// Only LLM transport failures terminate a run with an error; every tool
// failure is folded into a tool result message the LLM can react to.
func (a *Agent) Run(ctx context.Context, userPrompt string, flags prompt.Flags) (*RunResult, error) {
	runID := uuid.NewString()
	history := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: prompt.SystemPrompt(flags)},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}
	manifest := a.registry.Definitions()

	a.logger.Info("agent run started",
		zap.String("run_id", runID),
		zap.Int("tools", len(manifest)))

	result := &RunResult{StopReason: StopExhausted}

	for iter := 0; iter < a.maxIterations; iter++ {
		result.Iterations = iter + 1
		a.emit(types.AgentEvent{State: types.StateThinking})

		msg, err := a.provider.Chat(ctx, history, manifest)
		if err != nil {
			a.emit(types.AgentEvent{State: types.StateError, Error: err})
			return nil, fmt.Errorf("LLM request failed: %w", err)
		}
		history = append(history, msg)

		if len(msg.ToolCalls) == 0 {
			result.StopReason = StopComplete
			result.Output = msg.Content
			if result.Output == "" {
				result.Output = fallbackOutput
			}
			a.logger.Info("agent run complete",
				zap.String("run_id", runID),
				zap.Int("iterations", result.Iterations),
				zap.Int("tool_calls", result.ToolCalls))
			a.emit(types.AgentEvent{State: types.StateResponding, FinalAnswer: result.Output})
			return result, nil
		}

		// Act: execute every requested call in the order listed and
		// append one paired result per request. The next reasoning turn
		// must not start with any request left unanswered.
		for _, call := range msg.ToolCalls {
			a.emit(types.AgentEvent{
				State: types.StateToolExecuting,
				Tool:  &types.ToolEvent{Name: call.Function.Name, Arguments: call.Function.Arguments},
			})

			output := a.executor.Execute(ctx, call.Function.Name, call.Function.Arguments)
			result.ToolCalls++

			history = append(history, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    output,
				ToolCallID: call.ID,
			})

			a.emit(types.AgentEvent{
				State: types.StateToolExecuting,
				Tool: &types.ToolEvent{
					Name:      call.Function.Name,
					Arguments: call.Function.Arguments,
					Output:    output,
					Done:      true,
				},
			})
		}
	}

	result.Output = fmt.Sprintf(
		"Stopped after %d reasoning cycles without finishing. The response below may be incomplete.\n\n%s",
		a.maxIterations, lastAssistantText(history))

	a.logger.Warn("agent run exhausted iteration ceiling",
		zap.String("run_id", runID),
		zap.Int("max_iterations", a.maxIterations))
	a.emit(types.AgentEvent{State: types.StateResponding, FinalAnswer: result.Output, Incomplete: true})

	return result, nil
}

func (a *Agent) emit(event types.AgentEvent) {
	if a.onEvent != nil {
		a.onEvent(event)
	}
}

func lastAssistantText(history []openai.ChatCompletionMessage) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == openai.ChatMessageRoleAssistant && history[i].Content != "" {
			return history[i].Content
		}
	}
	return fallbackOutput
}
