package compiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsbuildhq/tsbuild/tsconfig"
)

// emitHost is the minimal in-memory host the passthrough program needs.
type emitHost struct {
	files map[string]string
}

func (h *emitHost) GetCurrentDirectory() string { return "/solution" }

func (h *emitHost) FileExists(path string) bool {
	_, ok := h.files[path]
	return ok
}

func (h *emitHost) ReadFile(path string) (string, bool) {
	content, ok := h.files[path]
	return content, ok
}

func (h *emitHost) WriteFile(path, content string) error {
	h.files[path] = content
	return nil
}

func (h *emitHost) GetModifiedTime(string) (time.Time, bool) { return time.Time{}, false }
func (h *emitHost) SetModifiedTime(string, time.Time) error  { return nil }
func (h *emitHost) Now() time.Time                           { return time.Time{} }

func collectEmit(p Program) map[string]string {
	outputs := make(map[string]string)
	p.Emit(func(path, content string) {
		outputs[path] = content
	})
	return outputs
}

func TestPassthrough_EmitsPerInputOutputs(t *testing.T) {
	t.Parallel()

	host := &emitHost{files: map[string]string{
		"/solution/a/a.ts": "export const a = 1",
	}}
	cfg := &tsconfig.ParsedConfig{
		ConfigPath:  "/solution/a/tsconfig.json",
		OutDir:      "/solution/a/out",
		Declaration: true,
		FileNames:   []string{"/solution/a/a.ts"},
	}

	program := PassthroughFactory(ProgramOptions{RootNames: cfg.FileNames, Config: cfg, Host: host})
	outputs := collectEmit(program)

	require.Contains(t, outputs, "/solution/a/out/a.js")
	require.Contains(t, outputs, "/solution/a/out/a.d.ts")
	assert.Equal(t, "export const a = 1", outputs["/solution/a/out/a.js"])
}

func TestPassthrough_DeclarationStubIsStable(t *testing.T) {
	t.Parallel()

	cfg := &tsconfig.ParsedConfig{
		ConfigPath:  "/solution/a/tsconfig.json",
		OutDir:      "/solution/a/out",
		Declaration: true,
		FileNames:   []string{"/solution/a/a.ts"},
	}

	before := &emitHost{files: map[string]string{"/solution/a/a.ts": "export const a = 1"}}
	after := &emitHost{files: map[string]string{"/solution/a/a.ts": "export const a = 2 // edited"}}

	first := collectEmit(PassthroughFactory(ProgramOptions{RootNames: cfg.FileNames, Config: cfg, Host: before}))
	second := collectEmit(PassthroughFactory(ProgramOptions{RootNames: cfg.FileNames, Config: cfg, Host: after}))

	assert.Equal(t, first["/solution/a/out/a.d.ts"], second["/solution/a/out/a.d.ts"],
		"editing an input must not change the emitted declaration stub")
	assert.NotEqual(t, first["/solution/a/out/a.js"], second["/solution/a/out/a.js"])
}

func TestPassthrough_OutFileBundlesInputs(t *testing.T) {
	t.Parallel()

	host := &emitHost{files: map[string]string{
		"/solution/a/one.ts": "const one = 1",
		"/solution/a/two.ts": "const two = 2",
	}}
	cfg := &tsconfig.ParsedConfig{
		ConfigPath: "/solution/a/tsconfig.json",
		OutFile:    "/solution/a/dist/bundle.js",
		FileNames:  []string{"/solution/a/one.ts", "/solution/a/two.ts"},
	}

	program := PassthroughFactory(ProgramOptions{RootNames: cfg.FileNames, Config: cfg, Host: host})
	outputs := collectEmit(program)

	require.Contains(t, outputs, "/solution/a/dist/bundle.js")
	assert.Equal(t, "const one = 1\nconst two = 2\n", outputs["/solution/a/dist/bundle.js"])
}

func TestPassthrough_SyntacticDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "balanced", content: "function f() { return [1, 2]; }", wantErr: false},
		{name: "unclosed brace", content: "function f() { return 1;", wantErr: true},
		{name: "mismatched pair", content: "const x = [1, 2);", wantErr: true},
		{name: "stray closer", content: "}", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			host := &emitHost{files: map[string]string{"/solution/a/a.ts": tc.content}}
			cfg := &tsconfig.ParsedConfig{
				ConfigPath: "/solution/a/tsconfig.json",
				FileNames:  []string{"/solution/a/a.ts"},
			}
			program := PassthroughFactory(ProgramOptions{RootNames: cfg.FileNames, Config: cfg, Host: host})

			diags := program.GetSyntacticDiagnostics()
			if tc.wantErr {
				assert.NotEmpty(t, diags)
			} else {
				assert.Empty(t, diags)
			}
		})
	}
}

func TestPassthrough_MissingInputIsSyntacticError(t *testing.T) {
	t.Parallel()

	cfg := &tsconfig.ParsedConfig{
		ConfigPath: "/solution/a/tsconfig.json",
		FileNames:  []string{"/solution/a/gone.ts"},
	}
	program := PassthroughFactory(ProgramOptions{RootNames: cfg.FileNames, Config: cfg, Host: &emitHost{files: map[string]string{}}})

	assert.NotEmpty(t, program.GetSyntacticDiagnostics())
}
