package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimuscode/optimus/pkg/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	req := Request{
		Language: models.LanguagePython,
		Mode:     ModeCompileAndRun,
		Source:   []byte("print(input())"),
		Input:    []byte("hello\n"),
	}

	env := Encode(req)
	got, err := Decode(env)
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestEncodeOmitsEmptyFields(t *testing.T) {
	env := Encode(Request{Language: models.LanguageGo, Mode: ModeExecute})
	for _, kv := range env {
		assert.NotContains(t, kv, envSourceCode+"=")
		assert.NotContains(t, kv, envTestInput+"=")
	}
}

func TestDecodeRejectsMissingLanguage(t *testing.T) {
	_, err := Decode([]string{envExecutionMode + "=" + string(ModeExecute)})
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownMode(t *testing.T) {
	_, err := Decode([]string{
		envLanguage + "=python",
		envExecutionMode + "=explode",
	})
	assert.Error(t, err)
}

func TestDecodeRejectsInvalidBase64(t *testing.T) {
	_, err := Decode([]string{
		envLanguage + "=python",
		envExecutionMode + "=execute",
		envSourceCode + "=not-valid-base64!!!",
	})
	assert.Error(t, err)
}
