package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillcli/quill/internal/fileops"
	"github.com/quillcli/quill/internal/types"
)

// RegisterFileTools registers the five file operation tools against the
// given operation set.
func RegisterFileTools(r *Registry, ops *fileops.Ops) error {
	for _, tool := range []Tool{
		&createFileTool{ops: ops},
		&editFileTool{ops: ops},
		&showFileTool{ops: ops},
		&deleteFileTool{ops: ops},
		&listDirectoryTool{ops: ops},
	} {
		if err := r.Register(tool); err != nil {
			return err
		}
	}
	return nil
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// renderResult maps an operation result to the tool display string. Failures
// carry an explicit error marker so the LLM can recognize and recover from
// them.
func renderResult(res types.OperationResult) string {
	if res.Success {
		return res.Message
	}
	return "Error: " + res.Message
}

type createFileTool struct {
	ops *fileops.Ops
}

func (t *createFileTool) Name() string { return "create_file" }

func (t *createFileTool) Description() string {
	return "Create a new file with the specified content. Parent directories are created automatically; an existing file at the path is overwritten."
}

func (t *createFileTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "path", Type: "string", Required: true,
			Description: "Path where the file should be created, relative to the working directory."},
		{Name: "content", Type: "string", Required: true,
			Description: "Content to write to the file."},
	}
}

func (t *createFileTool) Execute(ctx context.Context, args map[string]any) string {
	return renderResult(t.ops.Create(stringArg(args, "path"), stringArg(args, "content")))
}

type editFileTool struct {
	ops *fileops.Ops
}

func (t *editFileTool) Name() string { return "edit_file" }

func (t *editFileTool) Description() string {
	return "Edit an existing file by replacing its content or appending to it."
}

func (t *editFileTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "path", Type: "string", Required: true,
			Description: "Path to the file to edit, relative to the working directory."},
		{Name: "content", Type: "string", Required: true,
			Description: "Content to add or replace."},
		{Name: "mode", Type: "string", Default: string(fileops.ModeReplace),
			Enum:        []string{string(fileops.ModeReplace), string(fileops.ModeAppend)},
			Description: "\"replace\" to overwrite the file, \"append\" to add at the end."},
	}
}

func (t *editFileTool) Execute(ctx context.Context, args map[string]any) string {
	mode := fileops.EditMode(stringArg(args, "mode"))
	if mode == "" {
		mode = fileops.ModeReplace
	}
	return renderResult(t.ops.Edit(stringArg(args, "path"), stringArg(args, "content"), mode))
}

type showFileTool struct {
	ops *fileops.Ops
}

func (t *showFileTool) Name() string { return "show_file" }

func (t *showFileTool) Description() string {
	return "Display the contents of a file."
}

func (t *showFileTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "path", Type: "string", Required: true,
			Description: "Path to the file to display, relative to the working directory."},
	}
}

func (t *showFileTool) Execute(ctx context.Context, args map[string]any) string {
	res := t.ops.Show(stringArg(args, "path"))
	if !res.Success {
		return "Error: " + res.Message
	}
	return fmt.Sprintf("File contents of %s:\n\n%s", res.Path, res.Content)
}

type deleteFileTool struct {
	ops *fileops.Ops
}

func (t *deleteFileTool) Name() string { return "delete_file" }

func (t *deleteFileTool) Description() string {
	return "Delete a file. Use this carefully as the operation cannot be undone."
}

func (t *deleteFileTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "path", Type: "string", Required: true,
			Description: "Path to the file to delete, relative to the working directory."},
	}
}

func (t *deleteFileTool) Execute(ctx context.Context, args map[string]any) string {
	// Invoking this tool is the confirmation; confirm is not an
	// LLM-settable argument.
	return renderResult(t.ops.Delete(stringArg(args, "path"), true))
}

type listDirectoryTool struct {
	ops *fileops.Ops
}

func (t *listDirectoryTool) Name() string { return "list_directory" }

func (t *listDirectoryTool) Description() string {
	return "List the contents of a directory."
}

func (t *listDirectoryTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "path", Type: "string",
			Description: "Path to the directory to list. Omit to list the current directory."},
	}
}

func (t *listDirectoryTool) Execute(ctx context.Context, args map[string]any) string {
	res := t.ops.List(stringArg(args, "path"))
	if !res.Success {
		return "Error: " + res.Message
	}
	if len(res.Items) == 0 {
		return fmt.Sprintf("Directory %s is empty.", res.Path)
	}

	lines := []string{fmt.Sprintf("Contents of %s:", res.Path)}
	for _, item := range res.Items {
		if item.Type == types.EntryFile {
			lines = append(lines, fmt.Sprintf("  📄 %s (%s)", item.Name, item.Size))
		} else {
			lines = append(lines, fmt.Sprintf("  📁 %s/", item.Name))
		}
	}
	return strings.Join(lines, "\n")
}
