package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"

	"tableflip.dev/unsent/pkg/app"
	"tableflip.dev/unsent/pkg/filter"
	"tableflip.dev/unsent/pkg/mode"
	"tableflip.dev/unsent/pkg/printers"
	"tableflip.dev/unsent/pkg/store"
	"tableflip.dev/unsent/pkg/viewmodel"
)

// input is the widget receiving key presses.
type input int

const (
	inputNone input = iota
	inputQuery
	inputDraft
)

const (
	readingWidth  = 64
	readingMargin = 8
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	activeTab     = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("218"))
	inactiveTab   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Bold(true)
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type storeChangedMsg struct{ key string }

// Model is the Bubble Tea model driving one session.
type Model struct {
	session *app.Session
	sink    *Sink
	events  <-chan store.Event

	input  input
	cursor int

	query  textinput.Model
	draft  textarea.Model
	reader viewport.Model

	termWidth  int
	termHeight int
}

// New creates a model around a started session. sink must be the session's
// renderer. events may be nil.
func New(s *app.Session, sink *Sink, events <-chan store.Event) Model {
	q := textinput.New()
	q.Placeholder = "search titles, excerpts and tags"
	q.Prompt = "/ "
	q.CharLimit = 128

	d := textarea.New()
	d.Placeholder = "Write something you will not send"
	d.ShowLineNumbers = false
	d.SetHeight(6)

	m := Model{
		session: s,
		sink:    sink,
		events:  events,
		query:   q,
		draft:   d,
		reader:  viewport.New(80, 20),
	}
	m.draft.SetValue(m.frame().Buffer)
	return m
}

func (m Model) frame() app.Frame {
	return m.sink.frame
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeChangedMsg{key: ev.Key}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case storeChangedMsg:
		m.session.Reload()
		cmds = append(cmds, m.waitForChange())
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.input {
		case inputQuery:
			cmds = append(cmds, m.updateQuery(msg))
		case inputDraft:
			cmds = append(cmds, m.updateDraft(msg))
		default:
			cmds = append(cmds, m.updateBrowse(msg))
		}
	}

	m.clampCursor()
	m.syncReader()
	return m, tea.Batch(cmds...)
}

func (m *Model) updateQuery(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		m.query.Blur()
		m.input = inputNone
		return nil
	}
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() != m.frame().Filter.Query {
		m.session.SetQuery(m.query.Value())
		m.cursor = 0
	}
	return cmd
}

func (m *Model) updateDraft(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.draft.Blur()
		m.input = inputNone
		return nil
	case "ctrl+s":
		if _, err := m.session.SaveDraft(); err == nil {
			m.draft.Reset()
		}
		return nil
	}
	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	if m.draft.Value() != m.frame().Buffer {
		m.session.SetBuffer(m.draft.Value())
	}
	return cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	f := m.frame()
	if f.Focus != nil {
		switch msg.String() {
		case "esc", "backspace", "h":
			m.session.CloseFocus()
		case "r":
			_ = m.session.ToggleReadingMode()
		case "q":
			return tea.Quit
		default:
			var cmd tea.Cmd
			m.reader, cmd = m.reader.Update(msg)
			return cmd
		}
		return nil
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "/":
		m.input = inputQuery
		m.query.SetValue(f.Filter.Query)
		m.query.CursorEnd()
		return m.query.Focus()
	case "tab":
		m.session.SetCategory(nextCategory(f.Filter.Category))
		m.cursor = 0
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.rows()) - 1
	case "u":
		m.session.ToggleUnsentListing()
		m.cursor = 0
	case "d":
		m.session.ToggleDraftAuthoring()
		m.cursor = 0
		for _, eff := range m.frame().Effects {
			if eff == mode.FocusDraftInput {
				return m.focusDraft()
			}
		}
	case "r":
		_ = m.session.ToggleReadingMode()
	case "i":
		if f.Mode.Primary == mode.DraftAuthoring {
			return m.focusDraft()
		}
	case "x":
		if f.Mode.Primary == mode.DraftAuthoring && m.cursor < len(f.Drafts) {
			_ = m.session.DeleteDraft(f.Drafts[m.cursor].ID)
		}
	case "enter":
		return m.activate()
	}
	return nil
}

// activate opens the selected entry, or restores the selected draft.
func (m *Model) activate() tea.Cmd {
	f := m.frame()
	if f.Mode.Primary == mode.DraftAuthoring {
		if m.cursor < len(f.Drafts) && m.session.RestoreDraft(f.Drafts[m.cursor].ID) {
			m.draft.SetValue(m.frame().Buffer)
			return m.focusDraft()
		}
		return nil
	}
	rows := m.rows()
	if m.cursor >= 0 && m.cursor < len(rows) {
		if m.session.OpenFocus(rows[m.cursor].ID) {
			m.reader.GotoTop()
		}
	}
	return nil
}

func (m *Model) focusDraft() tea.Cmd {
	m.input = inputDraft
	return m.draft.Focus()
}

// rows are the entries listed in the current primary mode.
func (m Model) rows() []viewmodel.RenderModel {
	f := m.frame()
	if f.Mode.Primary == mode.UnsentListing {
		return f.Unsent
	}
	return f.Entries
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.frame().Mode.Primary == mode.DraftAuthoring {
		n = len(m.frame().Drafts)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextCategory(c filter.Category) filter.Category {
	all := filter.Categories()
	for i, candidate := range all {
		if candidate == c {
			return all[(i+1)%len(all)]
		}
	}
	return filter.All
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.reader.Width = m.termWidth
	m.reader.Height = height
	m.draft.SetWidth(m.termWidth - 2)
	m.query.Width = m.termWidth - 4
}

// syncReader refreshes the focused entry shown in the viewport.
func (m *Model) syncReader() {
	f := m.frame()
	if f.Focus == nil {
		return
	}
	width := m.reader.Width
	if width <= 0 {
		width = 80
	}
	margin := 0
	if f.Mode.ReadingMode {
		margin = readingMargin
		if width-margin > readingWidth {
			width = readingWidth
		} else {
			width -= margin
		}
	}
	m.reader.SetContent(lipgloss.NewStyle().MarginLeft(margin).Render(focusText(*f.Focus, width)))
}

func focusText(fm viewmodel.FocusModel, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(unescape(fm.Title)) + "\n")
	meta := fmt.Sprintf("%s · %s", fm.Category, fm.Date)
	if marks := badgeText(fm.Badges); marks != "" {
		meta += " · " + marks
	}
	b.WriteString(faintStyle.Render(meta) + "\n\n")
	for i, p := range fm.Paragraphs {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, line := range p.Lines {
			b.WriteString(wordwrap.String(unescape(line), width) + "\n")
		}
	}
	if len(fm.Tags) > 0 {
		tags := make([]string, len(fm.Tags))
		for i, t := range fm.Tags {
			tags[i] = "#" + unescape(t)
		}
		b.WriteString("\n" + faintStyle.Render(strings.Join(tags, " ")))
	}
	return b.String()
}

func badgeText(badges []viewmodel.Badge) string {
	labels := make([]string, len(badges))
	for i, b := range badges {
		labels[i] = b.Label()
	}
	return strings.Join(labels, ", ")
}

func unescape(s string) string {
	return html.UnescapeString(s)
}

func (m Model) View() string {
	f := m.frame()
	if f.Focus != nil {
		return m.reader.View() + "\n\n" + m.statusLine(f)
	}

	var body string
	switch f.Mode.Primary {
	case mode.DraftAuthoring:
		body = m.draftsView(f)
	case mode.UnsentListing:
		body = titleStyle.Render(fmt.Sprintf("Unsent (%d)", len(f.Unsent))) + "\n\n" + m.listView(f.Unsent)
	default:
		body = m.tabsView(f) + "\n" + m.query.View() + "\n\n" + m.listView(f.Entries)
	}
	return body + "\n\n" + m.statusLine(f)
}

func (m Model) tabsView(f app.Frame) string {
	tabs := make([]string, 0, len(filter.Categories()))
	for _, c := range filter.Categories() {
		label := c.String()
		if c == f.Filter.Category {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, inactiveTab.Render(label))
		}
	}
	return strings.Join(tabs, "  ") + faintStyle.Render(fmt.Sprintf("   %d of %d", len(f.Entries), f.Total))
}

func (m Model) listView(rows []viewmodel.RenderModel) string {
	if len(rows) == 0 {
		return faintStyle.Italic(true).Render("  none")
	}
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		marks := ""
		for _, b := range r.Badges {
			marks += printers.Mark(b)
		}
		line := fmt.Sprintf("%-12s %-3s %s  %s", r.Date, marks, unescape(r.Title), faintStyle.Render(unescape(r.Excerpt)))
		if m.termWidth > 0 {
			line = lipgloss.NewStyle().MaxWidth(m.termWidth - 2).Render(line)
		}
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("➜ ")+line)
		} else {
			lines = append(lines, "  "+line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) draftsView(f app.Frame) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Drafts (%d)", len(f.Drafts))) + "\n\n")
	if len(f.Drafts) == 0 {
		b.WriteString(faintStyle.Italic(true).Render("  none"))
	}
	for i, d := range f.Drafts {
		line := fmt.Sprintf("%-12s %s", viewmodel.FormatDate(d.Date), strings.ReplaceAll(d.Content, "\n", " "))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("➜ ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + m.draft.View())
	return b.String()
}

func (m Model) statusLine(f app.Frame) string {
	var help string
	switch {
	case m.input == inputQuery:
		help = "enter/esc done"
	case m.input == inputDraft:
		help = "ctrl+s save, esc stop editing"
	case f.Focus != nil:
		help = "esc back, r reading mode, q quit"
	case f.Mode.Primary == mode.DraftAuthoring:
		help = "i write, enter restore, x delete, d back, q quit"
	default:
		help = "/ search, tab category, enter open, u unsent, d drafts, r reading mode, q quit"
	}
	reading := "off"
	if f.Mode.ReadingMode {
		reading = "on"
	}
	status := statusStyle.Render(fmt.Sprintf("[%s] reading %s  %s", f.Mode.Primary, reading, help))
	if f.Notice != "" {
		status = noticeStyle.Render(f.Notice) + "\n" + status
	}
	return status
}
