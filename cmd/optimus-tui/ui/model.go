// Package ui implements optimus-tui's Bubble Tea model: an editor for source
// code and test cases, a language picker, and a live-polled result view.
// Ported from the teacher's cmd/tui/ui.Model (ViewState enum, textarea +
// spinner + filepicker composition, message-driven Update/View) generalized
// from "compile one file" to "submit a job with N weighted test cases and
// poll until its per-test verdicts are available."
package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/optimuscode/optimus/internal/apiclient"
	"github.com/optimuscode/optimus/pkg/models"
)

// ViewState is the active screen.
type ViewState int

const (
	ViewEditor ViewState = iota
	ViewResult
	ViewFilePicker
	ViewHelp
)

// editorFocus tracks which textarea receives keystrokes in ViewEditor.
type editorFocus int

const (
	focusSource editorFocus = iota
	focusTests
)

var defaultLanguages = []models.Language{
	models.LanguagePython, models.LanguageCpp, models.LanguageC, models.LanguageGo,
	models.LanguageJava, models.LanguageRust, models.LanguageJavaScript,
}

// Model is optimus-tui's root Bubble Tea model.
type Model struct {
	client *apiclient.Client
	apiURL string

	state  ViewState
	width  int
	height int

	sourceEditor textarea.Model
	testsEditor  textarea.Model
	focus        editorFocus
	spinner      spinner.Model
	filePicker   filepicker.Model

	languages    []models.Language
	languageIdx  int
	timeoutMS    int

	currentJobID string
	result       *apiclient.ResultResponse
	polling      bool

	statusMsg string
	errorMsg  string
}

// NewModel creates the initial TUI model rooted at apiURL.
func NewModel(apiURL string) Model {
	source := textarea.New()
	source.Placeholder = "Enter source code here, or press 'f' to load from file..."
	source.CharLimit = 1 << 20
	source.SetWidth(70)
	source.SetHeight(16)
	source.Focus()

	tests := textarea.New()
	tests.Placeholder = `[{"id":"t1","input":"hello","expected_output":"hello","weight":1}]`
	tests.CharLimit = 1 << 18
	tests.SetWidth(70)
	tests.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	fp := filepicker.New()
	fp.Height = 15

	return Model{
		client:       apiclient.New(apiURL),
		apiURL:       apiURL,
		state:        ViewEditor,
		sourceEditor: source,
		testsEditor:  tests,
		focus:        focusSource,
		spinner:      sp,
		filePicker:   fp,
		languages:    defaultLanguages,
		timeoutMS:    5000,
	}
}

// Init kicks off the initial health check and environment fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.checkHealth(), m.fetchEnvironments())
}

// Messages exchanged between commands and Update.
type (
	healthCheckMsg    struct{ err error }
	environmentsMsg   struct {
		langs []models.Language
		err   error
	}
	submitResultMsg struct {
		jobID string
		err   error
	}
	pollResultMsg struct {
		status apiclient.JobStatus
		err    error
	}
	fileSelectedMsg struct {
		content string
		err     error
	}
)

func (m Model) currentLanguage() models.Language {
	if len(m.languages) == 0 {
		return models.LanguagePython
	}
	return m.languages[m.languageIdx%len(m.languages)]
}

// Update routes messages to the active view's handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w := msg.Width - 10
		if w > 100 {
			w = 100
		}
		m.sourceEditor.SetWidth(w)
		m.testsEditor.SetWidth(w)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case healthCheckMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("API unreachable: %v", msg.err)
		} else {
			m.statusMsg = "connected"
		}
		return m, nil

	case environmentsMsg:
		if msg.err == nil && len(msg.langs) > 0 {
			m.languages = msg.langs
		}
		return m, nil

	case submitResultMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("submit failed: %v", msg.err)
			return m, nil
		}
		m.currentJobID = msg.jobID
		m.result = nil
		m.polling = true
		m.state = ViewResult
		return m, m.pollJob(msg.jobID)

	case pollResultMsg:
		if msg.err != nil {
			m.polling = false
			m.errorMsg = fmt.Sprintf("poll failed: %v", msg.err)
			return m, nil
		}
		if msg.status.Pending {
			return m, m.pollJob(m.currentJobID)
		}
		m.polling = false
		m.result = msg.status.Result
		return m, nil

	case fileSelectedMsg:
		m.state = ViewEditor
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("load failed: %v", msg.err)
			return m, nil
		}
		m.sourceEditor.SetValue(msg.content)
		m.statusMsg = "loaded source file"
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the active screen plus a status bar.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var content string
	switch m.state {
	case ViewEditor:
		content = m.viewEditor()
	case ViewResult:
		content = m.viewResult()
	case ViewFilePicker:
		content = m.viewFilePicker()
	case ViewHelp:
		content = m.viewHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf(" optimus: %s ", m.apiURL)

	if m.errorMsg != "" {
		return statusBarErrorStyle.Width(m.width).Render(left + statusBarErrorStyle.Render(" ERROR: "+m.errorMsg+" "))
	}
	if m.polling {
		return statusBarStyle.Width(m.width).Render(left + statusBarStyle.Render(" "+m.spinner.View()+" running... "))
	}
	if m.statusMsg != "" {
		return statusBarSuccessStyle.Width(m.width).Render(left + statusBarSuccessStyle.Render(" "+m.statusMsg+" "))
	}
	return statusBarStyle.Width(m.width).Render(left + statusBarStyle.Render(" ready "))
}

func (m Model) checkHealth() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return healthCheckMsg{err: m.client.Health(ctx)}
	}
}

func (m Model) fetchEnvironments() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		envs, err := m.client.Environments(ctx)
		if err != nil {
			return environmentsMsg{err: err}
		}
		langs := make([]models.Language, len(envs))
		for i, e := range envs {
			langs[i] = e.Language
		}
		return environmentsMsg{langs: langs}
	}
}

func (m Model) submitJob() tea.Cmd {
	source := []byte(m.sourceEditor.Value())
	language := m.currentLanguage()
	timeoutMS := m.timeoutMS
	rawTests := m.testsEditor.Value()

	return func() tea.Msg {
		var entries []struct {
			ID             string `json:"id"`
			Input          string `json:"input"`
			ExpectedOutput string `json:"expected_output"`
			Weight         int    `json:"weight"`
		}
		if err := json.Unmarshal([]byte(rawTests), &entries); err != nil {
			return submitResultMsg{err: fmt.Errorf("invalid test case JSON: %w", err)}
		}
		cases := make([]apiclient.SubmitTestCase, len(entries))
		for i, e := range entries {
			cases[i] = apiclient.SubmitTestCase{
				ID: e.ID, Input: []byte(e.Input), ExpectedOutput: []byte(e.ExpectedOutput), Weight: e.Weight,
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		resp, err := m.client.Submit(ctx, apiclient.SubmitRequest{
			Language:  language,
			Source:    source,
			TestCases: cases,
			TimeoutMS: timeoutMS,
		})
		if err != nil {
			return submitResultMsg{err: err}
		}
		return submitResultMsg{jobID: resp.JobID}
	}
}

func (m Model) pollJob(jobID string) tea.Cmd {
	return func() tea.Msg {
		time.Sleep(400 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		status, err := m.client.Get(ctx, jobID)
		return pollResultMsg{status: status, err: err}
	}
}

func (m Model) loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		content, err := os.ReadFile(path)
		if err != nil {
			return fileSelectedMsg{err: err}
		}
		return fileSelectedMsg{content: string(content)}
	}
}
