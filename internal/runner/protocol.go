// Package runner encodes and decodes the environment-variable wire protocol
// the execution engine uses to talk to the in-sandbox entrypoint, ported from
// the teacher's internal/compiler.Compiler.Compile env-slice construction
// (LANG/SOURCE_CODE-style vars passed into ContainerConfig.Env).
package runner

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/optimuscode/optimus/pkg/models"
)

// Mode selects what the sandboxed runner should do for one Exec call.
type Mode string

const (
	// ModeCompileAndRun compiles (if the language requires it) and then runs
	// the resulting program in a single call. The engine sends it only for
	// interpreted languages, on every S2_Execute; compiled languages always
	// take the ModeCompile + ModeExecute path.
	ModeCompileAndRun Mode = "compile_and_run"
	// ModeCompile only compiles; used by S1_Compile for compiled languages so
	// the artifact is built once and reused by every subsequent ModeExecute.
	ModeCompile Mode = "compile"
	// ModeExecute runs an already-compiled artifact against one test case.
	ModeExecute Mode = "execute"
)

const (
	envLanguage      = "LANGUAGE"
	envExecutionMode = "EXECUTION_MODE"
	envSourceCode    = "SOURCE_CODE"
	envTestInput     = "TEST_INPUT"
)

// Request is one exec's worth of protocol input.
type Request struct {
	Language Language
	Mode     Mode
	Source   []byte // only needed for ModeCompile / ModeCompileAndRun
	Input    []byte // only needed for ModeCompileAndRun / ModeExecute
}

// Language is a local alias kept distinct from models.Language so this
// package's exported API doesn't leak the models import into callers that
// only need Encode/Decode.
type Language = models.Language

// Encode turns a Request into the []string{"KEY=VALUE", ...} slice passed as
// pkg/container.ExecCommand.Env, base64-encoding the binary-safe fields the
// same way the teacher's compiler base64-encodes source before injecting it
// into the container environment.
func Encode(r Request) []string {
	env := []string{
		envLanguage + "=" + string(r.Language),
		envExecutionMode + "=" + string(r.Mode),
	}
	if len(r.Source) > 0 {
		env = append(env, envSourceCode+"="+base64.StdEncoding.EncodeToString(r.Source))
	}
	if len(r.Input) > 0 {
		env = append(env, envTestInput+"="+base64.StdEncoding.EncodeToString(r.Input))
	}
	return env
}

// Decode parses a KEY=VALUE env slice (as seen inside the sandbox) back into
// a Request. Used by runner-side entrypoints and by tests that assert on
// what Encode produced without re-implementing base64 handling.
func Decode(env []string) (Request, error) {
	var r Request
	vals := map[string]string{}
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vals[k] = v
	}

	lang, ok := vals[envLanguage]
	if !ok {
		return Request{}, fmt.Errorf("runner protocol: missing %s", envLanguage)
	}
	r.Language = models.Language(lang)

	mode, ok := vals[envExecutionMode]
	if !ok {
		return Request{}, fmt.Errorf("runner protocol: missing %s", envExecutionMode)
	}
	r.Mode = Mode(mode)
	switch r.Mode {
	case ModeCompile, ModeCompileAndRun, ModeExecute:
	default:
		return Request{}, fmt.Errorf("runner protocol: unknown %s %q", envExecutionMode, mode)
	}

	if encoded, ok := vals[envSourceCode]; ok {
		src, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return Request{}, fmt.Errorf("runner protocol: invalid %s: %w", envSourceCode, err)
		}
		r.Source = src
	}
	if encoded, ok := vals[envTestInput]; ok {
		in, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return Request{}, fmt.Errorf("runner protocol: invalid %s: %w", envTestInput, err)
		}
		r.Input = in
	}

	return r, nil
}
