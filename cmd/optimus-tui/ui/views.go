package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) viewEditor() string {
	title := titleStyle.Render("optimus — submit a job")

	langLine := fmt.Sprintf("language: ← %s → (%d known)   timeout_ms: %d", m.currentLanguage(), len(m.languages), m.timeoutMS)

	sourceStyle := inactiveEditorStyle
	testsStyle := inactiveEditorStyle
	if m.focus == focusSource {
		sourceStyle = activeEditorStyle
	} else {
		testsStyle = activeEditorStyle
	}

	source := sourceStyle.Render(lipgloss.JoinVertical(lipgloss.Left, mutedStyle.Render("source"), m.sourceEditor.View()))
	tests := testsStyle.Render(lipgloss.JoinVertical(lipgloss.Left, mutedStyle.Render("test cases (JSON array)"), m.testsEditor.View()))

	help := helpStyle.Render("tab: switch editor  ←/→: language  f: load file  ctrl+s: submit  ?: help  ctrl+c: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, langLine, source, tests, help)
}

func (m Model) viewResult() string {
	title := titleStyle.Render(fmt.Sprintf("job %s", m.currentJobID))

	if m.polling {
		return lipgloss.JoinVertical(lipgloss.Left, title, fmt.Sprintf("%s waiting for verdicts...", m.spinner.View()))
	}

	if m.result == nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, errorStyle.Render("no result"))
	}

	r := m.result
	summary := fmt.Sprintf("%s   score %d/%d", r.OverallStatus, r.Score, r.MaxScore)

	var rows []string
	for _, v := range r.Results {
		exitCode := "killed"
		if v.ExitCode != nil {
			exitCode = fmt.Sprintf("%d", *v.ExitCode)
		}
		row := fmt.Sprintf("%-20s %-22s %6dms exit=%s", v.TestID, v.Status, v.ExecutionTimeMS, exitCode)
		rows = append(rows, verdictStyle(string(v.Status)).Render(row))
	}

	body := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, summary, strings.Join(rows, "\n")))
	help := helpStyle.Render("n: new job  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (m Model) viewFilePicker() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("select a source file"),
		boxStyle.Render(m.filePicker.View()),
		helpStyle.Render("enter: select  esc: cancel"),
	)
}

func (m Model) viewHelp() string {
	lines := []string{
		titleStyle.Render("keybindings"),
		"tab          switch between source and test-case editors",
		"←/→          cycle submission language",
		"f            load source from a file",
		"ctrl+s       submit the job",
		"n            (result view) start a new job",
		"esc          back to editor",
		"q / ctrl+c   quit",
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
