package components

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwheel/internal/ui/theme"
)

// OptionChosenMsg is emitted when the player picks an answer.
type OptionChosenMsg struct {
	Index int
	Value int
}

// OptionKeys are the bindings an OptionPicker responds to.
type OptionKeys struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Choose key.Binding
}

// DefaultOptionKeys returns arrow/vi movement with enter to choose.
// Number keys always pick directly.
func DefaultOptionKeys() OptionKeys {
	return OptionKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Left:   key.NewBinding(key.WithKeys("left", "h")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
	}
}

// OptionPicker lays numeric answers out in a two-column grid.
type OptionPicker struct {
	Options  []int
	Selected int
	// Chosen and Correct are -1 until the answer is locked in and revealed.
	Chosen  int
	Correct int
	Keys    OptionKeys
}

// NewOptionPicker creates a picker over options.
func NewOptionPicker(options []int) OptionPicker {
	return OptionPicker{
		Options: options,
		Chosen:  -1,
		Correct: -1,
		Keys:    DefaultOptionKeys(),
	}
}

// Locked reports whether an answer has been chosen.
func (p OptionPicker) Locked() bool {
	return p.Chosen >= 0
}

// Reveal marks the correct option for display.
func (p OptionPicker) Reveal(correct int) OptionPicker {
	p.Correct = correct
	return p
}

// Update handles movement and selection. Once locked it ignores input.
func (p OptionPicker) Update(msg tea.Msg) (OptionPicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || p.Locked() || len(p.Options) == 0 {
		return p, nil
	}

	if n, err := strconv.Atoi(kmsg.String()); err == nil && n >= 1 && n <= len(p.Options) {
		p.Selected = n - 1
		return p.choose()
	}

	last := len(p.Options) - 1
	switch {
	case key.Matches(kmsg, p.Keys.Left):
		if p.Selected%2 == 1 {
			p.Selected--
		}
	case key.Matches(kmsg, p.Keys.Right):
		if p.Selected%2 == 0 && p.Selected < last {
			p.Selected++
		}
	case key.Matches(kmsg, p.Keys.Up):
		if p.Selected >= 2 {
			p.Selected -= 2
		}
	case key.Matches(kmsg, p.Keys.Down):
		if p.Selected+2 <= last {
			p.Selected += 2
		}
	case key.Matches(kmsg, p.Keys.Choose):
		return p.choose()
	}
	return p, nil
}

func (p OptionPicker) choose() (OptionPicker, tea.Cmd) {
	p.Chosen = p.Selected
	chosen := OptionChosenMsg{Index: p.Chosen, Value: p.Options[p.Chosen]}
	return p, func() tea.Msg { return chosen }
}

// View renders the grid. Each cell is cellWidth wide.
func (p OptionPicker) View(cellWidth int) string {
	var rows []string
	for i := 0; i < len(p.Options); i += 2 {
		cells := []string{p.cell(i, cellWidth)}
		if i+1 < len(p.Options) {
			cells = append(cells, " ", p.cell(i+1, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (p OptionPicker) cell(i, width int) string {
	label := strconv.Itoa(i+1) + ")  " + strconv.Itoa(p.Options[i])
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text)

	switch {
	case p.Correct >= 0 && i == p.Correct:
		style = style.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
	case p.Locked() && i == p.Chosen:
		style = style.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
	case p.Locked():
		style = style.Foreground(theme.TextDim)
	case i == p.Selected:
		style = style.BorderForeground(theme.Gold).Foreground(theme.Gold).Bold(true)
		label = "▸ " + label
	}
	return style.Render(label)
}
