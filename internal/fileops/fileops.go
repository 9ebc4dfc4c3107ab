// Package fileops implements the file operations exposed to the agent.
//
// Every operation resolves its path through the sandbox first and folds all
// failures, traversal, missing preconditions, size limits, I/O and encoding
// errors, into the returned OperationResult. Nothing escapes as a panic or
// an error value.
package fileops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/quillcli/quill/internal/sandbox"
	"github.com/quillcli/quill/internal/types"
	"go.uber.org/zap"
)

// EditMode selects how Edit applies new content.
type EditMode string

const (
	ModeReplace EditMode = "replace"
	ModeAppend  EditMode = "append"
)

// Ops performs sandboxed file operations with a shared size limit.
type Ops struct {
	box         *sandbox.Sandbox
	maxFileSize int64
	logger      *zap.Logger
}

// New creates an Ops rooted at the given sandbox.
func New(box *sandbox.Sandbox, maxFileSize int64, logger *zap.Logger) *Ops {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ops{
		box:         box,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Create writes content to a new file, creating parent directories as
// needed. An existing file is overwritten silently.
func (o *Ops) Create(path, content string) types.OperationResult {
	resolved, res, ok := o.resolve(path, "creating file")
	if !ok {
		return res
	}

	if int64(len(content)) > o.maxFileSize {
		return failure(fmt.Sprintf("File content exceeds maximum size of %s", FormatFileSize(o.maxFileSize)), resolved)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return failure(fmt.Sprintf("Error creating file: %v", err), path)
	}
	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return failure(fmt.Sprintf("Error creating file: %v", err), path)
	}

	o.logger.Debug("file created",
		zap.String("path", resolved),
		zap.Int("bytes", len(content)))

	return types.OperationResult{
		Success: true,
		Message: fmt.Sprintf("File created successfully: %s", resolved),
		Path:    resolved,
	}
}

// Edit rewrites or appends to an existing file. Append joins the existing
// content and the new content with a single newline.
func (o *Ops) Edit(path, content string, mode EditMode) types.OperationResult {
	resolved, res, ok := o.resolve(path, "editing file")
	if !ok {
		return res
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return failure(fmt.Sprintf("File does not exist: %s", resolved), resolved)
		}
		return failure(fmt.Sprintf("Error editing file: %v", err), path)
	}
	if info.IsDir() {
		return failure(fmt.Sprintf("Path is a directory, not a file: %s", resolved), resolved)
	}

	newSize := int64(len(content))
	if mode == ModeAppend {
		newSize += info.Size()
	}
	if newSize > o.maxFileSize {
		return failure(fmt.Sprintf("File would exceed maximum size of %s", FormatFileSize(o.maxFileSize)), resolved)
	}

	newContent := content
	if mode == ModeAppend {
		existing, err := os.ReadFile(resolved)
		if err != nil {
			return failure(fmt.Sprintf("Error editing file: %v", err), path)
		}
		if !utf8.Valid(existing) {
			return failure(fmt.Sprintf("Error editing file: %s is not valid UTF-8", resolved), resolved)
		}
		newContent = string(existing) + "\n" + content
	}

	if err := os.WriteFile(resolved, []byte(newContent), 0o644); err != nil {
		return failure(fmt.Sprintf("Error editing file: %v", err), path)
	}

	o.logger.Debug("file edited",
		zap.String("path", resolved),
		zap.String("mode", string(mode)))

	return types.OperationResult{
		Success: true,
		Message: fmt.Sprintf("File edited successfully: %s", resolved),
		Path:    resolved,
	}
}

// Show reads a file and returns its content with metadata and a syntax
// language tag derived from the extension.
func (o *Ops) Show(path string) types.OperationResult {
	resolved, res, ok := o.resolve(path, "reading file")
	if !ok {
		return res
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return failure(fmt.Sprintf("File does not exist: %s", resolved), resolved)
		}
		return failure(fmt.Sprintf("Error reading file: %v", err), path)
	}
	if info.IsDir() {
		return failure(fmt.Sprintf("Path is a directory, not a file: %s", resolved), resolved)
	}

	if info.Size() > o.maxFileSize {
		return failure(fmt.Sprintf("File exceeds maximum size of %s", FormatFileSize(o.maxFileSize)), resolved)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return failure(fmt.Sprintf("Error reading file: %v", err), path)
	}
	if !utf8.Valid(data) {
		return failure(fmt.Sprintf("Error reading file: %s is not valid UTF-8", resolved), resolved)
	}

	ext := filepath.Ext(resolved)
	return types.OperationResult{
		Success: true,
		Message: "File displayed successfully",
		Path:    resolved,
		Content: string(data),
		Metadata: &types.FileMetadata{
			Path:      resolved,
			Size:      FormatFileSize(info.Size()),
			Modified:  info.ModTime(),
			Extension: ext,
		},
		Language: LanguageForExtension(ext),
	}
}

// Delete removes a single file. It refuses directories and requires the
// confirm flag to be set.
func (o *Ops) Delete(path string, confirm bool) types.OperationResult {
	resolved, res, ok := o.resolve(path, "deleting file")
	if !ok {
		return res
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return failure(fmt.Sprintf("File does not exist: %s", resolved), resolved)
		}
		return failure(fmt.Sprintf("Error deleting file: %v", err), path)
	}
	if info.IsDir() {
		return failure(fmt.Sprintf("Refusing to delete directory: %s", resolved), resolved)
	}

	if !confirm {
		return failure("Deletion not confirmed. Use confirm=true to delete.", resolved)
	}

	if err := os.Remove(resolved); err != nil {
		return failure(fmt.Sprintf("Error deleting file: %v", err), path)
	}

	o.logger.Debug("file deleted", zap.String("path", resolved))

	return types.OperationResult{
		Success: true,
		Message: fmt.Sprintf("File deleted successfully: %s", resolved),
		Path:    resolved,
	}
}

// List returns the sorted entries of a directory. With an empty path it
// lists the process working directory, using it as the sandbox base for
// this call only.
func (o *Ops) List(path string) types.OperationResult {
	var resolved string
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return failure(fmt.Sprintf("Error listing directory: %v", err), ".")
		}
		box, err := sandbox.New(cwd)
		if err != nil {
			return failure(fmt.Sprintf("Error listing directory: %v", err), cwd)
		}
		resolved = box.Root()
	} else {
		var res types.OperationResult
		var ok bool
		resolved, res, ok = o.resolve(path, "listing directory")
		if !ok {
			return res
		}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return failure(fmt.Sprintf("Directory does not exist: %s", resolved), resolved)
		}
		return failure(fmt.Sprintf("Error listing directory: %v", err), path)
	}
	if !info.IsDir() {
		return failure(fmt.Sprintf("Path is not a directory: %s", resolved), resolved)
	}

	entries, err := os.ReadDir(resolved)
	if err != nil {
		return failure(fmt.Sprintf("Error listing directory: %v", err), path)
	}

	// os.ReadDir returns entries sorted by name.
	items := make([]types.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			items = append(items, types.DirEntry{
				Name: entry.Name(),
				Type: types.EntryDirectory,
			})
			continue
		}
		size := ""
		if fi, err := entry.Info(); err == nil {
			size = FormatFileSize(fi.Size())
		}
		items = append(items, types.DirEntry{
			Name: entry.Name(),
			Type: types.EntryFile,
			Size: size,
		})
	}

	return types.OperationResult{
		Success: true,
		Message: fmt.Sprintf("Directory listed successfully: %s", resolved),
		Path:    resolved,
		Items:   items,
	}
}

// resolve runs the sandbox check and folds failures into a result. The
// third return is false when the caller should return res as-is.
func (o *Ops) resolve(path, verb string) (string, types.OperationResult, bool) {
	resolved, err := o.box.Resolve(path)
	if err == nil {
		return resolved, types.OperationResult{}, true
	}

	var terr *sandbox.TraversalError
	if errors.As(err, &terr) {
		o.logger.Warn("path traversal rejected", zap.String("candidate", path))
		return "", failure(err.Error(), path), false
	}
	return "", failure(fmt.Sprintf("Error %s: %v", verb, err), path), false
}

func failure(message, path string) types.OperationResult {
	return types.OperationResult{
		Success: false,
		Message: message,
		Path:    path,
	}
}
