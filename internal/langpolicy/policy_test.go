package langpolicy

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/pkg/models"
)

func TestHardcodedCoversAllLanguages(t *testing.T) {
	table := Hardcoded()
	for _, lang := range []models.Language{
		models.LanguagePython, models.LanguageJava, models.LanguageRust, models.LanguageCpp,
		models.LanguageC, models.LanguageGo, models.LanguageJavaScript, models.LanguageTypeScript,
		models.LanguageRuby, models.LanguagePHP, models.LanguageKotlin, models.LanguageScala,
		models.LanguageCSharp, models.LanguageSwift,
	} {
		p, ok := table.Lookup(lang)
		require.Truef(t, ok, "missing policy for %s", lang)
		assert.NotEmpty(t, p.Image)
		assert.NotEmpty(t, p.ExecuteCmd)
		if p.Compiled {
			assert.NotEmpty(t, p.CompileCmd, "%s is compiled but has no compile_cmd", lang)
		}
	}
}

func TestLookupUnknownLanguage(t *testing.T) {
	table := Hardcoded()
	_, ok := table.Lookup(models.Language("brainfuck"))
	assert.False(t, ok)
}

func TestLoadConfigMatchesHardcodedShape(t *testing.T) {
	table, err := LoadConfig("../../configs/languages.yaml")
	require.NoError(t, err)

	hardcoded := Hardcoded()
	assert.Equal(t, len(hardcoded), len(table), "languages.yaml should cover the same languages as the hardcoded fallback")

	for lang := range hardcoded {
		p, ok := table.Lookup(lang)
		require.Truef(t, ok, "languages.yaml missing %s", lang)
		assert.NotEmpty(t, p.Image)
		assert.NotEmpty(t, p.ExecuteCmd)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/languages.yaml")
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownLanguage(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.yaml"
	badYAML := "languages:\n  brainfuck:\n    image: foo\n    execute_cmd: [\"bf\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(badYAML), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadDefaultFallsBackToHardcoded(t *testing.T) {
	t.Setenv("OPTIMUS_LANGUAGES_CONFIG", "/nonexistent/languages.yaml")
	table := LoadDefault()
	assert.Equal(t, len(Hardcoded()), len(table))
}
