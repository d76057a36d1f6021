package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/service"
)

// pageEnv is what every page is mounted with.
type pageEnv struct {
	ctx    context.Context
	api    service.IAPI
	router *router.Router
	logger *zap.Logger
	styles render.Styles
	state  router.State
	lease  router.Lease
}

func (e pageEnv) run(fn func(context.Context) error) tea.Cmd {
	return run(e.ctx, e.state.Mount, fn)
}

// newInput returns a text input with a steady cursor.
func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// focusRing moves focus between inputs.
type focusRing struct {
	inputs []*textinput.Model
	index  int
}

func (f *focusRing) set(i int) {
	n := len(f.inputs)
	if n == 0 {
		return
	}
	f.index = ((i % n) + n) % n
	for j, in := range f.inputs {
		if j == f.index {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *focusRing) next() { f.set(f.index + 1) }
func (f *focusRing) prev() { f.set(f.index - 1) }

// update forwards msg to the focused input.
func (f *focusRing) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	*f.inputs[f.index], cmd = f.inputs[f.index].Update(msg)
	return cmd
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func itoa(n int) string { return strconv.Itoa(n) }
