// Package langpolicy represents each supported language as a declarative
// policy record looked up by tag — ported from the teacher's
// internal/compiler's per-language switch statements (buildCompileCommand,
// getSourceFilename), generalized per spec.md §9's design note: "represent
// each language as a record ... and look it up by tag — no dispatch on
// control-flow keywords."
package langpolicy

import "github.com/optimuscode/optimus/pkg/models"

// Policy is everything the execution engine needs to know to compile (if
// applicable) and execute one test case for a language.
type Policy struct {
	Language      models.Language `yaml:"-"`
	Image         string          `yaml:"image"`
	FileExtension string          `yaml:"file_extension"`
	Compiled      bool            `yaml:"compiled"`
	// CompileCmd and ExecuteCmd are shell command templates run inside the
	// sandbox; "{{file}}" is substituted with the source file path and
	// "{{bin}}" with the compiled artifact path.
	CompileCmd  []string `yaml:"compile_cmd,omitempty"`
	ExecuteCmd  []string `yaml:"execute_cmd"`
	StdinPiped  bool     `yaml:"stdin_piped"`
	MemDefaultMB int     `yaml:"mem_default_mb"`
	CPUDefault  float64  `yaml:"cpu_default"`
}

// Table is a set of policies keyed by normalized language tag.
type Table map[models.Language]Policy

// Lookup returns the policy for a language, reporting whether it is
// supported.
func (t Table) Lookup(l models.Language) (Policy, bool) {
	p, ok := t[l]
	return p, ok
}

// Languages returns every language the table has a policy for, in no
// particular order. Used by cmd/optimus-worker to decide which queues to
// drain.
func (t Table) Languages() []models.Language {
	out := make([]models.Language, 0, len(t))
	for l := range t {
		out = append(out, l)
	}
	return out
}
