// Package types defines shared data structures for quill.
package types

import "time"

// EntryType distinguishes files from directories in a listing.
type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
)

// DirEntry is a single item in a directory listing. Size is a
// human-readable string for files and empty for directories.
type DirEntry struct {
	Name string    `json:"name"`
	Type EntryType `json:"type"`
	Size string    `json:"size,omitempty"`
}

// FileMetadata describes a file returned by Show.
type FileMetadata struct {
	Path      string    `json:"path"`
	Size      string    `json:"size"`
	Modified  time.Time `json:"modified"`
	Extension string    `json:"extension"`
}

// OperationResult is the uniform outcome record of every file operation.
// It is constructed once per call and never mutated afterwards. Path is
// populated best-effort even on failure: the resolved path when resolution
// succeeded, otherwise the caller's original input.
type OperationResult struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Path     string        `json:"path"`
	Content  string        `json:"content,omitempty"`
	Items    []DirEntry    `json:"items,omitempty"`
	Metadata *FileMetadata `json:"metadata,omitempty"`
	Language string        `json:"language,omitempty"`
}

// AgentState represents the current phase of agent processing.
type AgentState int

const (
	StateIdle AgentState = iota
	StateThinking
	StateToolExecuting
	StateResponding
	StateError
)

// String returns a human-readable state name.
func (s AgentState) String() string {
	names := [...]string{
		"Idle",
		"Thinking",
		"Executing tool",
		"Responding",
		"Error",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// ToolEvent describes a single tool invocation for display purposes.
type ToolEvent struct {
	Name      string
	Arguments string
	Output    string
	Done      bool
}

// AgentEvent is sent during agent processing to update the UI.
type AgentEvent struct {
	State       AgentState
	Tool        *ToolEvent
	FinalAnswer string
	Incomplete  bool
	Error       error
}
