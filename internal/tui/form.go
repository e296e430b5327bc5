package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/catalog/internal/model"
	"github.com/idilsaglam/catalog/internal/ui"
)

const (
	fieldName = iota
	fieldDescription
	fieldCount
)

// form edits one Draft. It backs both the creation form and the inline
// record editors.
type form struct {
	title string
	name  textinput.Model
	desc  textarea.Model
	field int
	err   string
}

func newForm(title string, d model.Draft, width int) form {
	name := textinput.New()
	name.Prompt = "Name: "
	name.Placeholder = "Enter item name"
	name.CharLimit = 200
	name.SetValue(d.Name)
	name.CursorEnd()

	desc := textarea.New()
	desc.Placeholder = "Enter item description"
	desc.ShowLineNumbers = false
	desc.CharLimit = 1000
	desc.SetHeight(3)
	desc.SetValue(d.Description)

	f := form{title: title, name: name, desc: desc}
	f.setWidth(width)
	return f
}

func (f *form) setWidth(w int) {
	if w <= 0 {
		return
	}
	f.name.Width = w - len(f.name.Prompt) - 2
	f.desc.SetWidth(w)
}

func (f form) draft() model.Draft {
	return model.Draft{Name: f.name.Value(), Description: f.desc.Value()}
}

// focus puts the cursor in the current field.
func (f *form) focus() tea.Cmd {
	if f.field == fieldDescription {
		f.name.Blur()
		return f.desc.Focus()
	}
	f.desc.Blur()
	return f.name.Focus()
}

func (f *form) blur() {
	f.name.Blur()
	f.desc.Blur()
}

func (f form) focused() bool {
	return f.name.Focused() || f.desc.Focused()
}

// next moves to the following field. It returns false after the last one,
// leaving the form blurred and back at the first field.
func (f *form) next() (tea.Cmd, bool) {
	f.field++
	if f.field >= fieldCount {
		f.field = fieldName
		f.blur()
		return nil, false
	}
	return f.focus(), true
}

// validate records a validation message and reports whether the draft may
// be submitted.
func (f *form) validate() bool {
	if err := f.draft().Validate(); err != nil {
		f.err = err.Error()
		return false
	}
	f.err = ""
	return true
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	if f.field == fieldDescription {
		f.desc, cmd = f.desc.Update(msg)
	} else {
		f.name, cmd = f.name.Update(msg)
	}
	return f, cmd
}

func (f form) view() string {
	t := ui.Current()
	title := t.Title.Render(f.title)
	if f.err != "" {
		title += "  " + t.Error.Render(strings.ToUpper(f.err[:1])+f.err[1:])
	}
	return strings.Join([]string{
		title,
		f.name.View(),
		t.Muted.Render("Description:"),
		f.desc.View(),
	}, "\n")
}
