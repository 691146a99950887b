package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey dispatches a key message by view state, ported from the
// teacher's cmd/tui/ui.Model's per-view handle*Keys split.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "?":
		m.state = ViewHelp
		return m, nil
	case "esc":
		if m.state != ViewEditor {
			m.state = ViewEditor
			m.errorMsg = ""
		}
		return m, nil
	}

	switch m.state {
	case ViewEditor:
		return m.handleEditorKeys(msg)
	case ViewResult:
		return m.handleResultKeys(msg)
	case ViewFilePicker:
		return m.handleFilePickerKeys(msg)
	case ViewHelp:
		return m, nil
	}
	return m, nil
}

func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		if m.focus == focusSource {
			m.focus = focusTests
			m.sourceEditor.Blur()
			m.testsEditor.Focus()
		} else {
			m.focus = focusSource
			m.testsEditor.Blur()
			m.sourceEditor.Focus()
		}
		return m, nil
	case "left":
		if len(m.languages) > 0 {
			m.languageIdx = (m.languageIdx - 1 + len(m.languages)) % len(m.languages)
		}
		return m, nil
	case "right":
		if len(m.languages) > 0 {
			m.languageIdx = (m.languageIdx + 1) % len(m.languages)
		}
		return m, nil
	case "f":
		m.state = ViewFilePicker
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(nil)
		return m, cmd
	case "ctrl+s":
		m.errorMsg = ""
		m.statusMsg = "submitting..."
		return m, m.submitJob()
	}

	var cmd tea.Cmd
	if m.focus == focusSource {
		m.sourceEditor, cmd = m.sourceEditor.Update(msg)
	} else {
		m.testsEditor, cmd = m.testsEditor.Update(msg)
	}
	return m, cmd
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n":
		m.state = ViewEditor
		return m, nil
	}
	return m, nil
}

func (m Model) handleFilePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)
	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		return m, m.loadFile(path)
	}
	return m, cmd
}
