package main

import (
	"context"
	"fmt"
	"os"

	"github.com/quillcli/quill/internal/agent"
	"github.com/quillcli/quill/internal/config"
	"github.com/quillcli/quill/internal/fileops"
	"github.com/quillcli/quill/internal/llm"
	"github.com/quillcli/quill/internal/prompt"
	"github.com/quillcli/quill/internal/sandbox"
	"github.com/quillcli/quill/internal/tools"
	"github.com/quillcli/quill/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var (
	flagBrief      bool
	flagDetailed   bool
	flagBeginner   bool
	flagAdvanced   bool
	flagQuestions  bool
	flagFlashcards bool
	flagCornell    bool
	flagMindmap    bool
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "AI-powered file agent for learning notes",
	Long: `
  ██████╗ ██╗   ██╗██╗██╗     ██╗
 ██╔═══██╗██║   ██║██║██║     ██║
 ██║   ██║██║   ██║██║██║     ██║
 ██║▄▄ ██║██║   ██║██║██║     ██║
 ╚██████╔╝╚██████╔╝██║███████╗███████╗
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝

  Natural-language file operations and learning assistance,
  powered by an LLM agent with file tools.

Usage:
  quill create "a study guide for photosynthesis in biology-notes.md"
  quill edit essay.md "add a section about symbolism"
  quill chat "make flashcards from chapter3.md" --flashcards
  quill chat --it`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)
}

// addModeFlags registers the output-mode flags on an agent-backed command.
func addModeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagBrief, "brief", false, "Create ultra-concise summaries")
	cmd.Flags().BoolVar(&flagDetailed, "detailed", false, "Provide comprehensive breakdowns")
	cmd.Flags().BoolVar(&flagBeginner, "beginner", false, "Simplify for novice learners")
	cmd.Flags().BoolVar(&flagAdvanced, "advanced", false, "Include sophisticated analysis")
	cmd.Flags().BoolVar(&flagQuestions, "questions", false, "Focus on generating test questions")
	cmd.Flags().BoolVar(&flagFlashcards, "flashcards", false, "Format as Q&A pairs")
	cmd.Flags().BoolVar(&flagCornell, "cornell", false, "Use Cornell note-taking format")
	cmd.Flags().BoolVar(&flagMindmap, "mindmap", false, "Create text-based concept hierarchies")
}

func modeFlags() prompt.Flags {
	return prompt.Flags{
		Brief:      flagBrief,
		Detailed:   flagDetailed,
		Beginner:   flagBeginner,
		Advanced:   flagAdvanced,
		Questions:  flagQuestions,
		Flashcards: flagFlashcards,
		Cornell:    flagCornell,
		Mindmap:    flagMindmap,
	}
}

func createLogger() *zap.Logger {
	if verbose {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

// initOps builds the file operation set rooted at the working directory.
// Used by the direct (non-agent) commands; no API key is required.
func initOps() (*fileops.Ops, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	box, err := sandbox.New(cwd)
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}

	return fileops.New(box, cfg.MaxFileSize, createLogger()), nil
}

// initAgent wires config, sandbox, file tools, and the LLM client into a
// ready agent. Progress events flow into the returned sink.
func initAgent() (*agent.Agent, *ui.EventSink, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := createLogger()

	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("working directory: %w", err)
	}
	box, err := sandbox.New(cwd)
	if err != nil {
		return nil, nil, fmt.Errorf("sandbox: %w", err)
	}

	registry := tools.NewRegistry()
	if err := tools.RegisterFileTools(registry, fileops.New(box, cfg.MaxFileSize, logger)); err != nil {
		return nil, nil, fmt.Errorf("register tools: %w", err)
	}

	sink := ui.NewEventSink()
	a, err := agent.New(agent.Config{
		Provider:      llm.NewClient(cfg, logger),
		Registry:      registry,
		MaxIterations: cfg.MaxIterations,
		Logger:        logger,
		OnEvent:       sink.Emit,
	})
	if err != nil {
		return nil, nil, err
	}

	return a, sink, nil
}

// runAgentOneShot runs one seeded prompt behind the progress spinner and
// prints the agent's answer.
func runAgentOneShot(seed string) {
	a, sink, err := initAgent()
	if err != nil {
		fail(err)
	}

	flags := modeFlags()
	_, err = ui.RunOneShot(func(ctx context.Context) (ui.RunOutcome, error) {
		res, err := a.Run(ctx, seed, flags)
		if err != nil {
			return ui.RunOutcome{}, err
		}
		return ui.RunOutcome{Output: res.Output, Incomplete: res.Incomplete()}, nil
	}, sink)
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, ui.RenderError(err))
	os.Exit(1)
}
