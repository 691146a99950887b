package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/internal/langpolicy"
	"github.com/optimuscode/optimus/pkg/models"
)

func TestCompileAndExecuteCommandSubstitution(t *testing.T) {
	table := langpolicy.Hardcoded()
	p, ok := table.Lookup(models.LanguageCpp)
	require.True(t, ok)

	layout := NewLayout("/code", p)
	assert.Equal(t, "/code/main.cpp", layout.SourceFile)
	assert.Equal(t, "main.cpp", layout.SourceFileName())

	compileCmd, err := CompileCommand(p, layout)
	require.NoError(t, err)
	assert.Contains(t, compileCmd, "/code/a.out")
	assert.Contains(t, compileCmd, "/code/main.cpp")

	execCmd := ExecuteCommand(p, layout)
	assert.Equal(t, []string{"/code/a.out"}, execCmd)
}

func TestCompileCommandRejectsUncompiledLanguage(t *testing.T) {
	table := langpolicy.Hardcoded()
	p, ok := table.Lookup(models.LanguagePython)
	require.True(t, ok)

	layout := NewLayout("/code", p)
	_, err := CompileCommand(p, layout)
	assert.Error(t, err)
}
