// Package ui is the interactive editor: a row table over the selected node,
// breadcrumb navigation through the document tree, and a textarea-backed
// edit mode wired to an editor.Session.
package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/table"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jed/internal/editor"
	"github.com/oakwood-commons/jed/internal/jsontree"
	"github.com/oakwood-commons/jed/internal/navigator"
)

type dirtyReporter interface {
	Dirty() bool
}

// Model is the root Bubble Tea model. It owns the current path into the
// document, the row table for the node at that path, and the edit session.
// Model is the session's SelectionSource: the selected node is the node the
// table is showing.
type Model struct {
	Tbl     table.Model
	Input   textarea.Model
	Session *editor.Session
	Store   editor.DocumentStore

	Root jsontree.Value
	Node jsontree.Value
	Path jsontree.Path

	// segments[i] is the path step for table row i; nil for scalar rows.
	segments     []jsontree.Segment
	cursorByPath map[string]int

	WinWidth      int
	WinHeight     int
	KeyColWidth   int
	ValueColWidth int
	NoColor       bool

	StatusMsg  string
	StatusType string // "error", "success", or ""

	log logr.Logger
}

// New builds the editor model rooted at the given document, positioned at
// startPath (clamped to the root when the path does not resolve).
func New(store editor.DocumentStore, root jsontree.Value, startPath jsontree.Path, log logr.Logger, noColor bool) *Model {
	node, ok := jsontree.Get(root, startPath)
	if !ok {
		node = root
		startPath = nil
	}

	columns := []table.Column{
		{Title: "KEY", Width: 30},
		{Title: "VALUE", Width: 60},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(5),
	)
	th := CurrentTheme()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(0)
	if !noColor {
		s.Header = s.Header.BorderForeground(th.SeparatorColor)
		s.Selected = s.Selected.Foreground(th.SelectedFG).Background(th.SelectedBG)
	}
	s.Selected = s.Selected.PaddingLeft(0).PaddingRight(0)
	s.Cell = lipgloss.NewStyle().Align(lipgloss.Left).PaddingLeft(0).PaddingRight(0)
	t.SetStyles(s)

	ta := textarea.New()
	ta.Placeholder = "{}"
	ta.SetWidth(76)
	ta.SetHeight(10)

	m := &Model{
		Tbl:           t,
		Input:         ta,
		Store:         store,
		Root:          root,
		Node:          node,
		Path:          startPath,
		cursorByPath:  map[string]int{},
		KeyColWidth:   30,
		ValueColWidth: 60,
		NoColor:       noColor,
		log:           log,
	}
	m.Session = editor.NewSession(store, m, log)
	m.refreshTable()
	return m
}

// Current implements editor.SelectionSource. The selected node is whatever
// the table is currently flattening.
func (m *Model) Current() (editor.NodeData, bool) {
	if m.Node == nil {
		return editor.NodeData{}, false
	}
	path := append(jsontree.Path(nil), m.Path...)
	return editor.NodeData{Rows: navigator.Rows(m.Node), Path: path}, true
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.WinWidth == msg.Width && m.WinHeight == msg.Height {
			return m, nil
		}
		m.WinWidth = msg.Width
		m.WinHeight = msg.Height
		m.applyLayout()
		return m, nil

	case tea.KeyMsg:
		if m.Session.Editing() {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "enter", "right", "l":
		m.clearStatus()
		m.descend()
		return m, nil

	case "esc", "backspace", "left", "h":
		m.clearStatus()
		m.ascend()
		return m, nil

	case "e":
		m.clearStatus()
		m.Session.BeginEdit()
		m.Input.SetValue(m.Session.Draft())
		return m, m.Input.Focus()
	}

	var cmd tea.Cmd
	m.Tbl, cmd = m.Tbl.Update(msg)
	return m, cmd
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.Session.Cancel()
		m.Input.Blur()
		m.clearStatus()
		return m, nil

	case "ctrl+s":
		if err := m.Session.Save(); err != nil {
			m.StatusMsg = err.Error()
			m.StatusType = "error"
			return m, nil
		}
		m.Input.Blur()
		m.reloadFromStore()
		m.StatusMsg = "saved"
		m.StatusType = "success"
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.Session.UpdateDraft(m.Input.Value())
	return m, cmd
}

// descend moves into the container under the cursor. Scalar rows and rows
// past the end are ignored.
func (m *Model) descend() {
	i := m.Tbl.Cursor()
	if i < 0 || i >= len(m.segments) || m.segments[i] == nil {
		return
	}
	seg := m.segments[i]
	child, ok := jsontree.Get(m.Node, jsontree.Path{seg})
	if !ok || !navigator.RowTypeFor(child).IsContainer() {
		return
	}

	m.cursorByPath[jsontree.FormatPath(m.Path)] = i
	m.Path = append(m.Path, seg)
	m.Node = child
	m.refreshTable()
	m.Tbl.SetCursor(m.cursorByPath[jsontree.FormatPath(m.Path)])
	m.Session.Reset()
}

// ascend moves one level up; at the root it does nothing.
func (m *Model) ascend() {
	if len(m.Path) == 0 {
		return
	}
	m.cursorByPath[jsontree.FormatPath(m.Path)] = m.Tbl.Cursor()
	m.Path = m.Path[:len(m.Path)-1]
	node, ok := jsontree.Get(m.Root, m.Path)
	if !ok {
		node = m.Root
		m.Path = nil
	}
	m.Node = node
	m.refreshTable()
	m.Tbl.SetCursor(m.cursorByPath[jsontree.FormatPath(m.Path)])
	m.Session.Reset()
}

// reloadFromStore re-parses the committed document so the table shows the
// tree that was actually saved.
func (m *Model) reloadFromStore() {
	text, err := m.Store.LoadText()
	if err != nil {
		m.StatusMsg = err.Error()
		m.StatusType = "error"
		return
	}
	root, err := jsontree.Parse(text)
	if err != nil {
		m.StatusMsg = err.Error()
		m.StatusType = "error"
		return
	}
	m.Root = root
	node, ok := jsontree.Get(root, m.Path)
	if !ok {
		node = root
		m.Path = nil
	}
	m.Node = node
	m.refreshTable()
}

// refreshTable rebuilds the table rows and their path segments from the
// current node.
func (m *Model) refreshTable() {
	var rows []table.Row
	var segs []jsontree.Segment

	switch t := m.Node.(type) {
	case *jsontree.Object:
		for _, mem := range t.Members() {
			rows = append(rows, table.Row{m.keyCell(mem.Key), m.valueCell(mem.Value)})
			segs = append(segs, jsontree.Key(mem.Key))
		}
	case *jsontree.Array:
		for i, e := range t.Elems {
			rows = append(rows, table.Row{fmt.Sprintf("[%d]", i), m.valueCell(e)})
			segs = append(segs, jsontree.Index(i))
		}
	default:
		rows = append(rows, table.Row{"(value)", m.valueCell(m.Node)})
		segs = append(segs, nil)
	}
	if len(rows) == 0 {
		rows = append(rows, table.Row{"(empty)", ""})
		segs = append(segs, nil)
	}

	m.Tbl.SetRows(rows)
	m.segments = segs
	if m.Tbl.Cursor() >= len(rows) {
		m.Tbl.SetCursor(len(rows) - 1)
	}
}

func (m *Model) keyCell(key string) string {
	if runewidth.StringWidth(key) > m.KeyColWidth {
		return runewidth.Truncate(key, m.KeyColWidth, "…")
	}
	return key
}

func (m *Model) valueCell(v jsontree.Value) string {
	var s string
	switch t := v.(type) {
	case *jsontree.Array:
		s = fmt.Sprintf("[…] %d elements", len(t.Elems))
	case *jsontree.Object:
		s = fmt.Sprintf("{…} %d keys", t.Len())
	default:
		s = jsontree.Encode(v)
	}
	if runewidth.StringWidth(s) > m.ValueColWidth {
		s = runewidth.Truncate(s, m.ValueColWidth, "…")
	}
	return s
}

// applyLayout sizes the table and textarea from the window dimensions and
// regenerates rows so truncation matches the new column widths.
func (m *Model) applyLayout() {
	if m.WinWidth <= 0 {
		m.WinWidth = 80
	}
	if m.WinHeight <= 0 {
		m.WinHeight = 24
	}

	keyW := m.WinWidth / 3
	if keyW > 30 {
		keyW = 30
	}
	if keyW < 8 {
		keyW = 8
	}
	valW := m.WinWidth - keyW - 4
	if valW < 10 {
		valW = 10
	}
	m.KeyColWidth = keyW
	m.ValueColWidth = valW
	m.Tbl.SetColumns([]table.Column{
		{Title: "KEY", Width: keyW},
		{Title: "VALUE", Width: valW},
	})

	contentH := m.WinHeight - 5
	if contentH < 3 {
		contentH = 3
	}
	m.Tbl.SetHeight(contentH)
	m.Input.SetWidth(m.WinWidth - 2)
	m.Input.SetHeight(contentH)

	m.refreshTable()
}

func (m *Model) clearStatus() {
	m.StatusMsg = ""
	m.StatusType = ""
}

func (m *Model) View() tea.View {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	if m.Session.Editing() {
		b.WriteString(m.Input.View())
		b.WriteByte('\n')
		b.WriteString(m.renderValidity())
	} else {
		b.WriteString(m.Tbl.View())
	}
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (m *Model) renderHeader() string {
	crumb := jsontree.FormatPath(m.Path)
	if d, ok := m.Store.(dirtyReporter); ok && d.Dirty() {
		crumb += " *"
	}
	if m.NoColor {
		return crumb
	}
	th := CurrentTheme()
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(th.HeaderFG).
		Background(th.HeaderBG).
		Width(m.contentWidth()).
		Render(crumb)
}

func (m *Model) renderValidity() string {
	th := CurrentTheme()
	if err := m.Session.Err(); err != nil {
		line := "invalid: " + err.Error()
		if m.NoColor {
			return line
		}
		return lipgloss.NewStyle().Foreground(th.StatusError).Render(line)
	}
	line := "valid JSON"
	if m.NoColor {
		return line
	}
	return lipgloss.NewStyle().Foreground(th.StatusSuccess).Render(line)
}

func (m *Model) renderFooter() string {
	hints := "enter descend · esc ascend · e edit · q quit"
	if m.Session.Editing() {
		hints = "ctrl+s save · esc cancel"
	}
	line := hints
	if m.StatusMsg != "" {
		line = m.StatusMsg + "  " + hints
	}
	if m.NoColor {
		return line
	}
	th := CurrentTheme()
	style := lipgloss.NewStyle().Foreground(th.FooterFG).Background(th.FooterBG).Width(m.contentWidth())
	if m.StatusType == "error" {
		style = style.Foreground(th.StatusError)
	}
	if m.StatusType == "success" {
		style = style.Foreground(th.StatusSuccess)
	}
	return style.Render(line)
}

func (m *Model) contentWidth() int {
	if m.WinWidth > 0 {
		return m.WinWidth
	}
	return 80
}
