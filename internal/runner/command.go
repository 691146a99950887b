package runner

import (
	"fmt"
	"strings"

	"github.com/optimuscode/optimus/internal/langpolicy"
)

// Layout is the set of paths the engine writes a job's source into and reads
// a compiled artifact back from, inside one sandbox's working directory.
// Ported from the teacher's compiler.buildCompileCommand path conventions.
type Layout struct {
	WorkDir  string // e.g. /code
	SourceFile string // WorkDir + "/" + policy.FileExtension-suffixed name
	BinPath  string // WorkDir + "/a.out", unused for non-compiled languages
}

// NewLayout derives a Layout for one job under a policy's file extension.
func NewLayout(workDir string, p langpolicy.Policy) Layout {
	if workDir == "" {
		workDir = "/code"
	}
	return Layout{
		WorkDir:    workDir,
		SourceFile: workDir + "/main" + p.FileExtension,
		BinPath:    workDir + "/a.out",
	}
}

// SourceFileName returns the bare filename (no directory) for languages whose
// toolchain cares about the name, such as Java's public-class-per-file rule.
func (l Layout) SourceFileName() string {
	idx := strings.LastIndex(l.SourceFile, "/")
	if idx < 0 {
		return l.SourceFile
	}
	return l.SourceFile[idx+1:]
}

func substitute(tmpl []string, l Layout) []string {
	out := make([]string, len(tmpl))
	for i, tok := range tmpl {
		tok = strings.ReplaceAll(tok, "{{file}}", l.SourceFile)
		tok = strings.ReplaceAll(tok, "{{bin}}", l.BinPath)
		tok = strings.ReplaceAll(tok, "{{workdir}}", l.WorkDir)
		out[i] = tok
	}
	return out
}

// CompileCommand renders a policy's compile_cmd template against a Layout.
// Returns an error if the policy is not compiled.
func CompileCommand(p langpolicy.Policy, l Layout) ([]string, error) {
	if !p.Compiled {
		return nil, fmt.Errorf("language %s has no compile step", p.Language)
	}
	return substitute(p.CompileCmd, l), nil
}

// ExecuteCommand renders a policy's execute_cmd template against a Layout.
func ExecuteCommand(p langpolicy.Policy, l Layout) []string {
	return substitute(p.ExecuteCmd, l)
}
