package compiler

import (
	"fmt"
	"strings"

	"github.com/tsbuildhq/tsbuild/tsconfig"
	"github.com/tsbuildhq/tsbuild/tspath"
)

// PassthroughFactory creates the reference project compiler wired by
// the CLI binary. It performs no type checking: Emit copies each input
// to its computed output path, and declaration outputs carry a stable
// per-file stub so repeated builds of an unchanged surface produce
// byte-identical declarations. Syntactic validation is limited to a
// balanced-delimiter scan. Real deployments supply their own
// ProgramFactory.
func PassthroughFactory(opts ProgramOptions) Program {
	return &passthroughProgram{opts: opts}
}

type passthroughProgram struct {
	opts ProgramOptions
}

func (p *passthroughProgram) GetConfigDiagnostics() []Diagnostic {
	return nil
}

func (p *passthroughProgram) GetSyntacticDiagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, input := range p.opts.RootNames {
		content, ok := p.opts.Host.ReadFile(input)
		if !ok {
			diags = append(diags, Errorf("cannot read input file %s", input))
			continue
		}
		if err := checkBalancedDelimiters(content); err != nil {
			diags = append(diags, Errorf("%s: %v", input, err))
		}
	}
	return diags
}

func (p *passthroughProgram) GetDeclarationDiagnostics() []Diagnostic {
	return nil
}

func (p *passthroughProgram) GetSemanticDiagnostics() []Diagnostic {
	return nil
}

func (p *passthroughProgram) Emit(writeFile EmitCallback) {
	cfg := p.opts.Config

	if cfg.OutFile != "" {
		var bundle strings.Builder
		for _, input := range p.opts.RootNames {
			if tspath.IsDeclarationFile(input) {
				continue
			}
			content, _ := p.opts.Host.ReadFile(input)
			bundle.WriteString(content)
			if !strings.HasSuffix(content, "\n") {
				bundle.WriteString("\n")
			}
		}
		for _, output := range tsconfig.OutputFilesOf(cfg) {
			if tspath.IsDeclarationFile(output) {
				writeFile(output, declarationStub(cfg.OutFile))
			} else if strings.HasSuffix(output, ".map") {
				writeFile(output, sourceMapStub(output))
			} else {
				writeFile(output, bundle.String())
			}
		}
		return
	}

	for _, input := range p.opts.RootNames {
		content, _ := p.opts.Host.ReadFile(input)
		for _, output := range tsconfig.OutputFilesFor(cfg, input) {
			if tspath.IsDeclarationFile(output) {
				writeFile(output, declarationStub(input))
			} else if strings.HasSuffix(output, ".map") {
				writeFile(output, sourceMapStub(output))
			} else {
				writeFile(output, content)
			}
		}
	}
}

// declarationStub is deterministic per input name so an unchanged
// module surface re-emits identical declaration bytes.
func declarationStub(input string) string {
	return fmt.Sprintf("// declarations for %s\nexport {};\n", input)
}

func sourceMapStub(output string) string {
	return fmt.Sprintf("{\"version\":3,\"file\":%q,\"sources\":[],\"mappings\":\"\"}\n", output)
}

// checkBalancedDelimiters is a shallow syntax check: parens, brackets
// and braces must nest correctly. String literals and comments are not
// recognized, so delimiters inside them are counted as well.
func checkBalancedDelimiters(content string) error {
	var stack []byte
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[c] {
				return fmt.Errorf("unbalanced %q at offset %d", string(c), i)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("unclosed %q", string(stack[len(stack)-1]))
	}
	return nil
}
