package models

// Language identifies the programming language of a submitted job.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJava       Language = "java"
	LanguageRust       Language = "rust"
	LanguageCpp        Language = "cpp"
	LanguageC          Language = "c"
	LanguageGo         Language = "go"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageRuby       Language = "ruby"
	LanguagePHP        Language = "php"
	LanguageKotlin     Language = "kotlin"
	LanguageScala      Language = "scala"
	LanguageCSharp     Language = "csharp"
	LanguageSwift      Language = "swift"
)

// Valid returns true if l is one of the languages recognized by the runner protocol.
func (l Language) Valid() bool {
	switch l {
	case LanguagePython, LanguageJava, LanguageRust, LanguageCpp, LanguageC, LanguageGo,
		LanguageJavaScript, LanguageTypeScript, LanguageRuby, LanguagePHP,
		LanguageKotlin, LanguageScala, LanguageCSharp, LanguageSwift:
		return true
	default:
		return false
	}
}

// JobState is the mutable lifecycle state of a Job. Transitions are monotonic:
// no state ever walks back to Queued.
type JobState string

const (
	StateQueued    JobState = "queued"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
	StateTimedOut  JobState = "timed_out"
	StateCancelled JobState = "cancelled"
)

// Terminal returns true if state will never change again.
func (s JobState) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateTimedOut, StateCancelled:
		return true
	default:
		return false
	}
}

// VerdictStatus is the per-test-case outcome classification.
type VerdictStatus string

const (
	VerdictPassed              VerdictStatus = "passed"
	VerdictWrongAnswer         VerdictStatus = "wrong_answer"
	VerdictRuntimeError        VerdictStatus = "runtime_error"
	VerdictCompileError        VerdictStatus = "compile_error"
	VerdictTimeLimitExceeded   VerdictStatus = "time_limit_exceeded"
	VerdictMemoryLimitExceeded VerdictStatus = "memory_limit_exceeded"
	VerdictInternalError       VerdictStatus = "internal_error"
)
