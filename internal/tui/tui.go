// Package tui is the interactive front-end: a Bubble Tea program over the
// catalog controller.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/catalog/internal/catalog"
	"github.com/idilsaglam/catalog/internal/model"
	"github.com/idilsaglam/catalog/internal/ui"
)

type focus int

const (
	focusList focus = iota
	focusCreate
	focusEditor
)

// Model is the root Bubble Tea model. All state it renders comes from the
// controller; the model itself only holds widgets and focus.
type Model struct {
	ctx     context.Context
	ctrl    *catalog.Controller
	baseURL string

	list    list.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	create  form
	editors map[model.ID]form
	focus   focus
	editing model.ID // editor that has focus when focus == focusEditor

	confirm *model.Item // pending delete

	width, height int
}

// New builds the model. Nothing is fetched until Init.
func New(ctx context.Context, ctrl *catalog.Controller, baseURL string) Model {
	keys := defaultKeys()
	t := ui.Current()

	l := list.New(nil, itemDelegate{editing: ctrl.Editing}, 0, 0)
	l.Title = ui.CollectionTitle(0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Muted
	l.Styles.PaginationStyle = t.Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = keys.listKeys
	l.AdditionalFullHelpKeys = keys.listKeys

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = t.Accent

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		baseURL: baseURL,
		list:    l,
		spinner: sp,
		help:    help.New(),
		keys:    keys,
		editors: map[model.ID]form{},
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, ctrl *catalog.Controller, baseURL string) error {
	p := tea.NewProgram(New(ctx, ctrl, baseURL), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init issues the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.issue(catalog.Request{Op: catalog.OpLoad}))
}

func (m Model) issue(req catalog.Request) tea.Cmd {
	return issue(m.ctx, m.ctrl, req)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Ready() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case outcomeMsg:
		return m.applyOutcome(msg.Outcome)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.ctrl.Ready() {
			return m, nil
		}
		switch {
		case m.confirm != nil:
			return m.updateConfirm(msg)
		case m.focus == focusCreate:
			return m.updateCreate(msg)
		case m.focus == focusEditor:
			return m.updateEditor(msg)
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) applyOutcome(o catalog.Outcome) (tea.Model, tea.Cmd) {
	m.ctrl.Apply(o)

	if o.Request.Op == catalog.OpCreate && o.Err == nil {
		m.create = form{}
		if m.focus == focusCreate {
			m.focus = focusList
		}
	}

	items := m.ctrl.Items()
	present := make(map[model.ID]bool, len(items))
	for _, it := range items {
		present[it.ID] = true
	}
	for id := range m.editors {
		if !present[id] {
			delete(m.editors, id)
			m.ctrl.SetEditing(id, false)
			if m.focus == focusEditor && m.editing == id {
				m.focus = focusList
			}
		}
	}

	m.list.Title = ui.CollectionTitle(len(items))
	cmd := m.list.SetItems(toListItems(items))
	return m, cmd
}

func (m Model) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return li.item, true
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		m.ctrl.ToggleForm()
		if !m.ctrl.State().FormOpen {
			m.create = form{}
			return m, nil
		}
		m.create = newForm("Add New Item", model.Draft{}, m.formWidth())
		m.focus = focusCreate
		cmd := m.create.focus()
		return m, cmd

	case key.Matches(msg, m.keys.Focus):
		if !m.ctrl.State().FormOpen {
			return m, nil
		}
		m.focus = focusCreate
		cmd := m.create.focus()
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		f, open := m.editors[it.ID]
		if !open {
			f = newForm("Edit Item", it.Draft(), m.formWidth())
			m.ctrl.SetEditing(it.ID, true)
		}
		cmd := f.focus()
		m.editors[it.ID] = f
		m.editing = it.ID
		m.focus = focusEditor
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirm = &it
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.issue(catalog.Request{Op: catalog.OpLoad})
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CloseForm()
		m.create = form{}
		m.focus = focusList
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if !m.create.validate() {
			return m, nil
		}
		return m, m.issue(catalog.Request{Op: catalog.OpCreate, Draft: m.create.draft()})

	case key.Matches(msg, m.keys.Next):
		cmd, stay := m.create.next()
		if !stay {
			m.focus = focusList
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.create, cmd = m.create.update(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.editing
	f, ok := m.editors[id]
	if !ok {
		m.focus = focusList
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeEditor(id)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if !f.validate() {
			m.editors[id] = f
			return m, nil
		}
		req := catalog.Request{Op: catalog.OpUpdate, ID: id, Draft: f.draft()}
		m.closeEditor(id)
		return m, m.issue(req)

	case key.Matches(msg, m.keys.Next):
		cmd, stay := f.next()
		m.editors[id] = f
		if !stay {
			m.focus = focusList
		}
		return m, cmd
	}

	var cmd tea.Cmd
	f, cmd = f.update(msg)
	m.editors[id] = f
	return m, cmd
}

func (m *Model) closeEditor(id model.ID) {
	delete(m.editors, id)
	m.ctrl.SetEditing(id, false)
	m.focus = focusList
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		id := m.confirm.ID
		m.confirm = nil
		return m, m.issue(catalog.Request{Op: catalog.OpDelete, ID: id, Confirmed: true})
	case key.Matches(msg, m.keys.No):
		m.confirm = nil
	}
	return m, nil
}

func (m Model) formWidth() int {
	if m.width <= 0 {
		return 60
	}
	return m.width - 8
}

func (m *Model) resize() {
	w := m.formWidth()
	if m.ctrl.State().FormOpen {
		m.create.setWidth(w)
	}
	for id, f := range m.editors {
		f.setWidth(w)
		m.editors[id] = f
	}
	h := m.height - 8
	if m.ctrl.State().FormOpen || m.focus == focusEditor {
		h -= 9
	}
	if h < 5 {
		h = 5
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	t := ui.Current()

	if !m.ctrl.Ready() {
		return ui.Panel([]string{m.spinner.View() + " Loading items..."})
	}

	s := m.ctrl.State()
	sections := []string{
		t.Title.Render("Item Management System"),
		t.Muted.Render("Catalog service at " + m.baseURL),
	}

	if s.Err != "" {
		sections = append(sections, t.Error.Render(s.Err)+"  "+t.Muted.Render("(r to retry)"))
	}

	if s.FormOpen {
		sections = append(sections, boxString(m.create.view(), m.create.focused()))
	}

	if len(s.Items) == 0 {
		sections = append(sections, ui.RenderCollection(nil))
	} else {
		sections = append(sections, m.list.View())
	}

	if m.focus == focusEditor {
		if f, ok := m.editors[m.editing]; ok {
			sections = append(sections, boxString(f.view(), f.focused()))
		}
	}

	switch {
	case m.confirm != nil:
		prompt := t.Error.Render(catalog.DeletePrompt) + "\n" + ui.RenderItem(*m.confirm)
		sections = append(sections, boxString(prompt, true), m.help.ShortHelpView(m.keys.confirmKeys()))
	case m.focus == focusCreate || m.focus == focusEditor:
		sections = append(sections, m.help.ShortHelpView(m.keys.formKeys()))
	case len(s.Items) == 0:
		sections = append(sections, m.help.ShortHelpView(m.keys.listKeys()))
	}

	return ui.Panel([]string{lipgloss.JoinVertical(lipgloss.Left, sections...)})
}

// boxString frames a form; the one holding the cursor gets the accent border.
func boxString(inner string, active bool) string {
	t := ui.Current()
	color := t.BorderColor
	if active {
		color = t.Accent.GetForeground()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(inner)
}
