package langpolicy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/optimuscode/optimus/pkg/models"
)

// fileConfig mirrors configs/languages.yaml, ported from the teacher's
// internal/compiler/config.go EnvironmentConfig/CompilerConfig shape.
type fileConfig struct {
	Languages map[string]fileLanguage `yaml:"languages"`
}

type fileLanguage struct {
	Image         string   `yaml:"image"`
	FileExtension string   `yaml:"file_extension"`
	Compiled      bool     `yaml:"compiled"`
	CompileCmd    []string `yaml:"compile_cmd,omitempty"`
	ExecuteCmd    []string `yaml:"execute_cmd"`
	StdinPiped    bool     `yaml:"stdin_piped"`
	MemDefaultMB  int      `yaml:"mem_default_mb"`
	CPUDefault    float64  `yaml:"cpu_default"`
}

// DefaultConfigPath mirrors the teacher's GetDefaultConfigPath, pointing at
// the repo-relative configs/ directory rather than an absolute install path.
func DefaultConfigPath() string {
	if p := os.Getenv("OPTIMUS_LANGUAGES_CONFIG"); p != "" {
		return p
	}
	return "configs/languages.yaml"
}

// LoadConfig reads and validates a languages.yaml file, ported from the
// teacher's compiler.LoadConfig.
func LoadConfig(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read language config %q: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse language config %q: %w", path, err)
	}
	table, err := toTable(fc)
	if err != nil {
		return nil, fmt.Errorf("invalid language config %q: %w", path, err)
	}
	return table, nil
}

// LoadDefault loads configs/languages.yaml (or OPTIMUS_LANGUAGES_CONFIG),
// falling back to the compiled-in Hardcoded table when the file is absent —
// ported from the teacher's compiler.LoadDefaultConfig fallback behavior.
func LoadDefault() Table {
	table, err := LoadConfig(DefaultConfigPath())
	if err != nil {
		return Hardcoded()
	}
	return table
}

func toTable(fc fileConfig) (Table, error) {
	table := make(Table, len(fc.Languages))
	for tag, lang := range fc.Languages {
		l := models.Language(tag)
		if !l.Valid() {
			return nil, fmt.Errorf("unknown language tag %q", tag)
		}
		if err := validateLanguage(l, lang); err != nil {
			return nil, err
		}
		table[l] = Policy{
			Language:      l,
			Image:         lang.Image,
			FileExtension: lang.FileExtension,
			Compiled:      lang.Compiled,
			CompileCmd:    lang.CompileCmd,
			ExecuteCmd:    lang.ExecuteCmd,
			StdinPiped:    lang.StdinPiped,
			MemDefaultMB:  lang.MemDefaultMB,
			CPUDefault:    lang.CPUDefault,
		}
	}
	return table, nil
}

func validateLanguage(l models.Language, lang fileLanguage) error {
	if lang.Image == "" {
		return fmt.Errorf("language %q: image is required", l)
	}
	if len(lang.ExecuteCmd) == 0 {
		return fmt.Errorf("language %q: execute_cmd is required", l)
	}
	if lang.Compiled && len(lang.CompileCmd) == 0 {
		return fmt.Errorf("language %q: compiled but compile_cmd is empty", l)
	}
	return nil
}
