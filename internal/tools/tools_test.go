package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/quillcli/quill/internal/fileops"
	"github.com/quillcli/quill/internal/sandbox"
)

type fakeTool struct {
	name   string
	params []Parameter
	got    map[string]any
	output string
}

func (f *fakeTool) Name() string            { return f.name }
func (f *fakeTool) Description() string     { return "fake tool for tests" }
func (f *fakeTool) Parameters() []Parameter { return f.params }
func (f *fakeTool) Execute(ctx context.Context, args map[string]any) string {
	f.got = args
	return f.output
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "alpha"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := r.Register(&fakeTool{name: "alpha"}); err == nil {
		t.Error("duplicate Register succeeded")
	}

	if _, ok := r.Get("alpha"); !ok {
		t.Error("Get did not find registered tool")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get found an unregistered tool")
	}
}

func TestRegistry_OrderPreserved(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		r.MustRegister(&fakeTool{name: name})
	}

	names := r.List()
	want := []string{"zeta", "alpha", "mid"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("List = %v, want registration order %v", names, want)
		}
	}
}

func TestRegistry_Definitions(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&fakeTool{
		name: "edit_notes",
		params: []Parameter{
			{Name: "path", Type: "string", Required: true, Description: "target path"},
			{Name: "mode", Type: "string", Enum: []string{"replace", "append"}, Default: "replace"},
		},
	})

	defs := r.Definitions()
	if len(defs) != 1 {
		t.Fatalf("Definitions returned %d entries, want 1", len(defs))
	}

	fn := defs[0].Function
	if fn.Name != "edit_notes" {
		t.Errorf("function name = %q", fn.Name)
	}

	schema, ok := fn.Parameters.(map[string]any)
	if !ok {
		t.Fatalf("parameters have unexpected type %T", fn.Parameters)
	}
	if schema["type"] != "object" {
		t.Errorf("schema type = %v, want object", schema["type"])
	}

	props := schema["properties"].(map[string]any)
	if _, ok := props["path"]; !ok {
		t.Error("schema missing path property")
	}
	modeProp := props["mode"].(map[string]any)
	if _, ok := modeProp["enum"]; !ok {
		t.Error("mode property missing enum")
	}

	required := schema["required"].([]string)
	if len(required) != 1 || required[0] != "path" {
		t.Errorf("required = %v, want [path]", required)
	}
}

func TestExecutor_UnknownTool(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&fakeTool{name: "known"})
	e := NewExecutor(r, nil)

	out := e.Execute(context.Background(), "nonexistent", "{}")
	if !strings.Contains(out, "unknown tool") {
		t.Errorf("output %q does not state the tool is unknown", out)
	}
	if !strings.Contains(out, "known") {
		t.Errorf("output %q does not list available tools", out)
	}
}

func TestExecutor_BadArguments(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&fakeTool{
		name: "strict",
		params: []Parameter{
			{Name: "path", Type: "string", Required: true},
			{Name: "mode", Type: "string", Enum: []string{"replace", "append"}},
		},
	})
	e := NewExecutor(r, nil)

	tests := []struct {
		name    string
		rawArgs string
		wantSub string
	}{
		{"malformed json", "{not json", "invalid arguments"},
		{"missing required", `{}`, "missing required parameter: path"},
		{"wrong type", `{"path": 42}`, "expected string"},
		{"bad enum", `{"path": "x", "mode": "destroy"}`, "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.Execute(context.Background(), "strict", tt.rawArgs)
			if !strings.HasPrefix(out, "Error:") {
				t.Errorf("output %q has no error marker", out)
			}
			if !strings.Contains(out, tt.wantSub) {
				t.Errorf("output %q does not contain %q", out, tt.wantSub)
			}
		})
	}
}

func TestExecutor_AppliesDefaults(t *testing.T) {
	tool := &fakeTool{
		name: "defaulted",
		params: []Parameter{
			{Name: "path", Type: "string", Required: true},
			{Name: "mode", Type: "string", Default: "replace"},
		},
		output: "ok",
	}
	r := NewRegistry()
	r.MustRegister(tool)
	e := NewExecutor(r, nil)

	out := e.Execute(context.Background(), "defaulted", `{"path": "a.txt"}`)
	if out != "ok" {
		t.Fatalf("Execute = %q, want ok", out)
	}
	if tool.got["mode"] != "replace" {
		t.Errorf("default not applied, args = %v", tool.got)
	}
}

func newFileToolEnv(t *testing.T) (*Executor, string) {
	t.Helper()
	dir := t.TempDir()
	box, err := sandbox.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	ops := fileops.New(box, 1<<20, nil)
	r := NewRegistry()
	if err := RegisterFileTools(r, ops); err != nil {
		t.Fatal(err)
	}
	return NewExecutor(r, nil), box.Root()
}

func TestFileTools_CreateAndShow(t *testing.T) {
	e, _ := newFileToolEnv(t)
	ctx := context.Background()

	out := e.Execute(ctx, "create_file", `{"path": "notes.md", "content": "# Notes\nbody"}`)
	if !strings.Contains(out, "File created successfully") {
		t.Fatalf("create output: %q", out)
	}

	out = e.Execute(ctx, "show_file", `{"path": "notes.md"}`)
	if !strings.Contains(out, "File contents of") {
		t.Errorf("show output missing header: %q", out)
	}
	if !strings.Contains(out, "# Notes\nbody") {
		t.Errorf("show output missing file contents: %q", out)
	}
}

func TestFileTools_EditDefaultMode(t *testing.T) {
	e, _ := newFileToolEnv(t)
	ctx := context.Background()

	e.Execute(ctx, "create_file", `{"path": "n.txt", "content": "one"}`)
	e.Execute(ctx, "edit_file", `{"path": "n.txt", "content": "two"}`)

	out := e.Execute(ctx, "show_file", `{"path": "n.txt"}`)
	if !strings.HasSuffix(out, "two") {
		t.Errorf("edit without mode should replace, show output: %q", out)
	}
}

func TestFileTools_DeleteConfirmsImplicitly(t *testing.T) {
	e, _ := newFileToolEnv(t)
	ctx := context.Background()

	e.Execute(ctx, "create_file", `{"path": "bye.txt", "content": "x"}`)
	out := e.Execute(ctx, "delete_file", `{"path": "bye.txt"}`)
	if !strings.Contains(out, "File deleted successfully") {
		t.Fatalf("delete output: %q", out)
	}

	out = e.Execute(ctx, "show_file", `{"path": "bye.txt"}`)
	if !strings.HasPrefix(out, "Error:") {
		t.Errorf("file still readable after delete: %q", out)
	}
}

func TestFileTools_ListRendering(t *testing.T) {
	e, root := newFileToolEnv(t)
	ctx := context.Background()

	e.Execute(ctx, "create_file", `{"path": "a.txt", "content": "hello"}`)
	out := e.Execute(ctx, "list_directory", `{"path": "."}`)
	if !strings.Contains(out, "Contents of "+root) {
		t.Errorf("list output missing header: %q", out)
	}
	if !strings.Contains(out, "a.txt (5.0 B)") {
		t.Errorf("list output missing file entry: %q", out)
	}
}

func TestFileTools_TraversalFolded(t *testing.T) {
	e, _ := newFileToolEnv(t)

	out := e.Execute(context.Background(), "create_file", `{"path": "../../escape.txt", "content": "x"}`)
	if !strings.HasPrefix(out, "Error:") {
		t.Errorf("traversal did not produce an error result: %q", out)
	}
	if !strings.Contains(out, "outside the allowed directory") {
		t.Errorf("unexpected traversal message: %q", out)
	}
}
