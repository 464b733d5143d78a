package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/supercrawl/internal/controller"
	"github.com/nao1215/supercrawl/internal/model"
	"github.com/nao1215/supercrawl/internal/report"
)

// Controller is the part of *controller.Controller the TUI drives.
type Controller interface {
	SetDomain(domain string)
	SubmitCreate(domain string)
	SelectProject(projectID string)
	Reload()
	Snapshot() controller.State
}

type focus int

const (
	focusDomain focus = iota
	focusProjects
	focusIssues
	focusCount
)

// projectPaneWidth is the width of the project list, borders included.
const projectPaneWidth = 42

// stateMsg carries a state published by the controller.
type stateMsg controller.State

// Model is the bubbletea model of the TUI.
type Model struct {
	ctrl    Controller
	updates <-chan controller.State

	state  controller.State
	input  textinput.Model
	focus  focus
	cursor int
	offset int

	width, height int
	styles        styles
}

// NewModel creates a Model. States received on updates are rendered; a nil
// channel renders the controller's snapshot only.
func NewModel(ctrl Controller, updates <-chan controller.State) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "example.com"
	input.CharLimit = 256
	input.Focus()

	m := &Model{
		ctrl:    ctrl,
		updates: updates,
		state:   ctrl.Snapshot(),
		input:   input,
		focus:   focusDomain,
		styles:  newStyles(),
	}
	m.input.SetValue(m.state.Domain)
	return m
}

// Init starts the cursor blink and the state subscription.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForState())
}

// waitForState delivers the next published state as a stateMsg.
func (m *Model) waitForState() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

// Update handles key presses and controller states.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case stateMsg:
		m.applyState(controller.State(msg))
		return m, m.waitForState()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusDomain {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) applyState(s controller.State) {
	prevDomain := m.state.Domain
	m.state = s

	// The controller clears the domain once a project was created.
	if s.Domain == "" && prevDomain != "" {
		m.input.SetValue("")
	}
	if m.cursor >= len(s.Projects) {
		m.cursor = max(len(s.Projects)-1, 0)
	}
	if m.offset >= len(s.CurrentIssues()) {
		m.offset = 0
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	if m.focus == focusDomain {
		return m.handleDomainKey(msg)
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r":
		m.ctrl.Reload()
	case "/", "n":
		m.setFocus(focusDomain)
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if m.focus == focusProjects && m.cursor < len(m.state.Projects) {
			m.ctrl.SelectProject(m.state.Projects[m.cursor].ID)
			m.offset = 0
		}
	}
	return m, nil
}

func (m *Model) handleDomainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.SubmitCreate(strings.TrimSpace(m.input.Value()))
		return m, nil
	case "esc":
		m.setFocus(focusProjects)
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.ctrl.SetDomain(after)
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusDomain {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) move(delta int) {
	switch m.focus {
	case focusProjects:
		m.cursor = clamp(m.cursor+delta, 0, len(m.state.Projects)-1)
	case focusIssues:
		m.offset = clamp(m.offset+delta, 0, len(m.state.CurrentIssues())-1)
	}
}

// View renders the current state.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("SuperCrawl"))
	b.WriteString("\n\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")
	if m.state.Status != "" {
		b.WriteString(m.styles.status(m.state.StatusLevel).Render(m.state.Status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderProjects(), m.renderIssues()))
	b.WriteString("\n")
	b.WriteString(m.styles.hint.Render("tab: focus  enter: submit/select  r: reload  j/k: move  q: quit"))
	return b.String()
}

func (m *Model) renderForm() string {
	line := m.styles.label.Render("Domain ") + m.input.View()
	if m.state.Creating {
		line += "  " + m.styles.hint.Render("creating...")
	}
	return line
}

func (m *Model) panelStyle(f focus) lipgloss.Style {
	if m.focus == f {
		return m.styles.panelFocused
	}
	return m.styles.panel
}

func (m *Model) renderProjects() string {
	var b strings.Builder
	title := fmt.Sprintf("Projects (%d)", len(m.state.Projects))
	if m.state.LoadingProjects {
		title += " loading..."
	}
	b.WriteString(m.styles.panelTitle.Render(title))
	b.WriteString("\n")

	if len(m.state.Projects) == 0 {
		b.WriteString(m.styles.hint.Render("No projects yet."))
	}
	inner := projectPaneWidth - 4
	for i, p := range m.state.Projects {
		marker := "  "
		if p.ID == m.state.SelectedID {
			marker = "* "
		}
		line := marker + truncate(p.Domain, inner-len(marker))
		style := m.styles.listItem
		if i == m.cursor && m.focus == focusProjects {
			style = m.styles.listSel
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return m.panelStyle(focusProjects).Width(projectPaneWidth - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderIssues() string {
	var b strings.Builder
	width := m.issuePaneWidth()

	p, ok := m.state.SelectedProject()
	switch {
	case m.state.SelectedID == "":
		b.WriteString(m.styles.panelTitle.Render("Issues"))
		b.WriteString("\n")
		b.WriteString(m.styles.hint.Render("Select a project to view its issues."))
		return m.panelStyle(focusIssues).Width(width).Render(b.String())
	case ok:
		b.WriteString(m.styles.panelTitle.Render("Issues for " + p.Domain))
	default:
		b.WriteString(m.styles.panelTitle.Render("Issues for " + m.state.SelectedID))
	}
	if m.state.LoadingIssues {
		b.WriteString(" " + m.styles.hint.Render("loading..."))
	}
	b.WriteString("\n")

	if !m.state.IssuesCurrent() {
		if m.state.IssuesErr == nil {
			b.WriteString(m.styles.hint.Render("Loading issues..."))
		} else {
			b.WriteString(m.styles.errorText.Render(m.state.IssuesErr.Error()))
		}
		return m.panelStyle(focusIssues).Width(width).Render(b.String())
	}

	if len(m.state.CurrentIssues()) == 0 {
		b.WriteString(m.styles.hint.Render("No issues found. Press r to reload while the crawl runs."))
		return m.panelStyle(focusIssues).Width(width).Render(b.String())
	}

	for _, is := range m.visibleIssues() {
		level := is.Level()
		badge := m.styles.severity(level).Render(fmt.Sprintf("%-8s", strings.ToUpper(is.Severity)))
		b.WriteString(badge + " " + report.IssueTypeTitle(is.IssueType) + "\n")
		b.WriteString("         " + m.styles.url.Render(truncate(is.URL, max(width-10, 10))) + "\n")
		if is.Description != "" {
			b.WriteString("         " + truncate(is.Description, max(width-10, 10)) + "\n")
		}
	}
	return m.panelStyle(focusIssues).Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// visibleIssues returns the issues from the scroll offset on that fit the window.
func (m *Model) visibleIssues() []model.Issue {
	issues := m.state.CurrentIssues()[m.offset:]
	if m.height <= 0 {
		return issues
	}
	// Header, form, status and hint take about ten lines; an issue takes three.
	n := max((m.height-10)/3, 1)
	if n < len(issues) {
		issues = issues[:n]
	}
	return issues
}

func (m *Model) issuePaneWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(m.width-projectPaneWidth-2, 30)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
