package solution

import (
	"fmt"
	"strings"
	"time"

	"github.com/tsbuildhq/tsbuild/compiler"
	"github.com/tsbuildhq/tsbuild/tsconfig"
	"github.com/tsbuildhq/tsbuild/tspath"
)

// fakeFile is one entry in the fake filesystem.
type fakeFile struct {
	content string
	mtime   time.Time
}

// fakeHost is an in-memory compiler.Host with a manually advanced
// clock, so tests control every timestamp down to the tick.
type fakeHost struct {
	cwd     string
	files   map[string]fakeFile
	clock   time.Time
	writes  []string
	stamps  []string
	deleted []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		cwd:   "/solution",
		files: make(map[string]fakeFile),
		clock: time.Unix(1_000_000, 0),
	}
}

// tick advances the clock by one second and returns the new time.
func (h *fakeHost) tick() time.Time {
	h.clock = h.clock.Add(time.Second)
	return h.clock
}

func (h *fakeHost) addFile(path, content string, mtime time.Time) {
	h.files[tspath.Normalize(path)] = fakeFile{content: content, mtime: mtime}
}

func (h *fakeHost) touch(path string, mtime time.Time) {
	key := tspath.Normalize(path)
	f := h.files[key]
	f.mtime = mtime
	h.files[key] = f
}

func (h *fakeHost) GetCurrentDirectory() string {
	return h.cwd
}

func (h *fakeHost) FileExists(path string) bool {
	_, ok := h.files[tspath.Normalize(path)]
	return ok
}

func (h *fakeHost) ReadFile(path string) (string, bool) {
	f, ok := h.files[tspath.Normalize(path)]
	return f.content, ok
}

func (h *fakeHost) WriteFile(path, content string) error {
	key := tspath.Normalize(path)
	h.files[key] = fakeFile{content: content, mtime: h.clock}
	h.writes = append(h.writes, key)
	return nil
}

func (h *fakeHost) DeleteFile(path string) error {
	key := tspath.Normalize(path)
	if _, ok := h.files[key]; !ok {
		return fmt.Errorf("no such file: %s", key)
	}
	delete(h.files, key)
	h.deleted = append(h.deleted, key)
	return nil
}

func (h *fakeHost) GetModifiedTime(path string) (time.Time, bool) {
	f, ok := h.files[tspath.Normalize(path)]
	return f.mtime, ok
}

func (h *fakeHost) SetModifiedTime(path string, mtime time.Time) error {
	key := tspath.Normalize(path)
	f, ok := h.files[key]
	if !ok {
		return fmt.Errorf("no such file: %s", key)
	}
	f.mtime = mtime
	h.files[key] = f
	h.stamps = append(h.stamps, key)
	return nil
}

func (h *fakeHost) Now() time.Time {
	return h.clock
}

// fakeCompiler scripts per-project diagnostics and records every
// invocation, so tests can assert which projects were actually
// compiled.
type fakeCompiler struct {
	syntaxErrors   map[string]string
	declErrors     map[string]string
	semanticErrors map[string]string
	invocations    []tspath.ResolvedConfigPath
}

func newFakeCompiler() *fakeCompiler {
	return &fakeCompiler{
		syntaxErrors:   make(map[string]string),
		declErrors:     make(map[string]string),
		semanticErrors: make(map[string]string),
	}
}

func (c *fakeCompiler) factory(opts compiler.ProgramOptions) compiler.Program {
	c.invocations = append(c.invocations, opts.Config.ConfigPath)
	return &fakeProgram{compiler: c, opts: opts}
}

type fakeProgram struct {
	compiler *fakeCompiler
	opts     compiler.ProgramOptions
}

func (p *fakeProgram) GetConfigDiagnostics() []compiler.Diagnostic {
	return nil
}

func (p *fakeProgram) GetSyntacticDiagnostics() []compiler.Diagnostic {
	return p.scripted(p.compiler.syntaxErrors)
}

func (p *fakeProgram) GetDeclarationDiagnostics() []compiler.Diagnostic {
	return p.scripted(p.compiler.declErrors)
}

func (p *fakeProgram) GetSemanticDiagnostics() []compiler.Diagnostic {
	return p.scripted(p.compiler.semanticErrors)
}

func (p *fakeProgram) scripted(errs map[string]string) []compiler.Diagnostic {
	if msg, ok := errs[string(p.opts.Config.ConfigPath)]; ok {
		return []compiler.Diagnostic{compiler.Errorf("%s", msg)}
	}
	return nil
}

// Emit writes one primary output per input carrying the input content,
// and a declaration stub that is stable per input path, so rebuilding
// an edited input re-emits identical declaration bytes.
func (p *fakeProgram) Emit(writeFile compiler.EmitCallback) {
	for _, input := range p.opts.RootNames {
		content, _ := p.opts.Host.ReadFile(input)
		for _, output := range tsconfig.OutputFilesFor(p.opts.Config, input) {
			switch {
			case tspath.IsDeclarationFile(output):
				writeFile(output, "declare:"+input+"\n")
			case strings.HasSuffix(output, ".map"):
				writeFile(output, "map:"+output+"\n")
			default:
				writeFile(output, "compiled:"+content+"\n")
			}
		}
	}
}

// collectingReporter gathers diagnostics for assertions.
type collectingReporter struct {
	diagnostics []compiler.Diagnostic
}

func (r *collectingReporter) report(d compiler.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *collectingReporter) errorCount() int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Category == compiler.CategoryError {
			n++
		}
	}
	return n
}

func (r *collectingReporter) messages() []string {
	var out []string
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("%s: %s", d.Category, d.Message))
	}
	return out
}

// projectJSON renders a manifest for the fake filesystem.
func projectJSON(outDir string, declaration bool, files []string, references []string) string {
	var sb strings.Builder
	sb.WriteString(`{"compilerOptions":{`)
	fmt.Fprintf(&sb, `"outDir":%q,"declaration":%v`, outDir, declaration)
	sb.WriteString(`},"files":[`)
	for i, f := range files {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%q", f)
	}
	sb.WriteString(`]`)
	if len(references) > 0 {
		sb.WriteString(`,"references":[`)
		for i, r := range references {
			if i > 0 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, `{"path":%q}`, r)
		}
		sb.WriteString(`]`)
	}
	sb.WriteString(`}`)
	return sb.String()
}

// twoProjectSolution lays out project a (leaf) and project b
// referencing a, both emitting declarations into ./out, with inputs
// stamped at the current clock. Nothing is built yet.
func twoProjectSolution(host *fakeHost) {
	host.addFile("/solution/a/tsconfig.json", projectJSON("./out", true, []string{"a.ts"}, nil), host.clock)
	host.addFile("/solution/a/a.ts", "export const a = 1", host.clock)
	host.addFile("/solution/b/tsconfig.json", projectJSON("./out", true, []string{"b.ts"}, []string{"../a"}), host.clock)
	host.addFile("/solution/b/b.ts", "export const b = 2", host.clock)
}

// newTestBuilder wires a fake host and fake compiler into a Builder.
func newTestBuilder(host *fakeHost, fc *fakeCompiler, opts BuildOptions) (*Builder, *collectingReporter) {
	reporter := &collectingReporter{}
	return NewBuilder(host, reporter.report, fc.factory, opts), reporter
}
