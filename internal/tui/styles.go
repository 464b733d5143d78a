package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/supercrawl/internal/controller"
	"github.com/nao1215/supercrawl/internal/model"
)

type styles struct {
	title                  lipgloss.Style
	label, hint            lipgloss.Style
	panel, panelFocused    lipgloss.Style
	panelTitle             lipgloss.Style
	listItem, listSel      lipgloss.Style
	critical, high, other  lipgloss.Style
	info, success, warning lipgloss.Style
	errorText              lipgloss.Style
	url                    lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle()
	panelBorder := lipgloss.NormalBorder()
	focusedBorder := lipgloss.DoubleBorder()

	return styles{
		title:        base.Copy().Bold(true).Padding(0, 1),
		label:        base.Copy().Bold(true),
		hint:         base.Copy().Faint(true),
		panel:        base.Copy().BorderStyle(panelBorder).Padding(0, 1),
		panelFocused: base.Copy().BorderStyle(focusedBorder).Padding(0, 1),
		panelTitle:   base.Copy().Bold(true),
		listItem:     base.Copy(),
		listSel:      base.Copy().Bold(true).Reverse(true),
		critical:     base.Copy().Bold(true).Foreground(lipgloss.Color("9")),
		high:         base.Copy().Foreground(lipgloss.Color("214")),
		other:        base.Copy().Foreground(lipgloss.Color("12")),
		info:         base.Copy().Foreground(lipgloss.Color("12")),
		success:      base.Copy().Foreground(lipgloss.Color("10")),
		warning:      base.Copy().Foreground(lipgloss.Color("214")),
		errorText:    base.Copy().Foreground(lipgloss.Color("9")),
		url:          base.Copy().Faint(true),
	}
}

func (s styles) severity(level model.Severity) lipgloss.Style {
	switch level {
	case model.SeverityCritical:
		return s.critical
	case model.SeverityHigh:
		return s.high
	default:
		return s.other
	}
}

func (s styles) status(level controller.StatusLevel) lipgloss.Style {
	switch level {
	case controller.StatusSuccess:
		return s.success
	case controller.StatusWarning:
		return s.warning
	case controller.StatusError:
		return s.errorText
	default:
		return s.info
	}
}
