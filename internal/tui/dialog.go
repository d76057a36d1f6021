package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/types"
)

// confirmKeys drives an open confirmation: y or enter confirms, n or esc
// cancels. Success dialogs only acknowledge.
func confirmKeys(env pageEnv, d *service.ConfirmDialog, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		return env.run(func(ctx context.Context) error { return d.Confirm(ctx) })
	case "n", "esc":
		if d.ShowCancel() {
			d.Cancel()
		} else {
			return env.run(func(ctx context.Context) error { return d.Confirm(ctx) })
		}
	}
	return nil
}

func dialogBox(variant service.Variant) lipgloss.Style {
	border := render.Danger
	switch variant {
	case service.VariantSuccess:
		border = render.Olive
	case service.VariantInfo:
		border = render.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Padding(1, 2)
}

func viewConfirm(s render.Styles, d *service.ConfirmDialog) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(d.Title()))
	if d.Message() != "" {
		b.WriteString("\n\n")
		b.WriteString(d.Message())
	}
	if e := d.Err(); e != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Error.Render(e))
	}
	b.WriteString("\n\n")
	b.WriteString(s.Selected.Render("[y] " + d.ConfirmLabel()))
	if d.ShowCancel() {
		b.WriteString("   ")
		b.WriteString(s.Muted.Render("[n] " + d.CancelLabel()))
	}
	return dialogBox(d.Variant()).Render(b.String())
}

// planDialog wraps a MealPlanDialog with its date field.
type planDialog struct {
	d    *service.MealPlanDialog
	date textinput.Model
	err  string
}

func newPlanDialog(d *service.MealPlanDialog) *planDialog {
	in := newInput(d.MinDate())
	in.CharLimit = 10
	in.Focus()
	return &planDialog{d: d, date: in}
}

// cycleMealTime moves to the next slot in display order.
func (p *planDialog) cycleMealTime() {
	current := p.d.MealTime()
	for i, m := range types.MealTimes {
		if m == current {
			_ = p.d.SetMealTime(types.MealTimes[(i+1)%len(types.MealTimes)])
			return
		}
	}
}

// update handles keys. submit is non-nil when the form was sent.
func (p *planDialog) update(env pageEnv, msg tea.Msg) (submit tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		p.date, _ = p.date.Update(msg)
		return nil
	}
	switch key.String() {
	case "esc":
		p.d.Cancel()
		return nil
	case "tab":
		p.cycleMealTime()
		return nil
	case "enter":
		p.err = ""
		if raw := strings.TrimSpace(p.date.Value()); raw != "" {
			if err := p.d.SetDate(raw); err != nil {
				p.err = dateError(err)
				return nil
			}
		}
		return env.run(func(ctx context.Context) error { return p.d.Submit(ctx) })
	}
	p.date, _ = p.date.Update(msg)
	return nil
}

func dateError(err error) string {
	if errors.Is(err, service.ErrPastDate) {
		return "La fecha no puede ser anterior a hoy"
	}
	return "Fecha inválida (AAAA-MM-DD)"
}

func (p *planDialog) view(s render.Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Planificar Comida"))
	b.WriteString("\n\n")
	b.WriteString("Fecha (desde " + p.d.MinDate() + ")\n")
	b.WriteString(p.date.View())
	b.WriteString("\n\nMomento: ")
	for _, m := range types.MealTimes {
		if m == p.d.MealTime() {
			b.WriteString(s.ActiveTab.Render(string(m)))
		} else {
			b.WriteString(s.Tab.Render(string(m)))
		}
	}
	msg := p.err
	if msg == "" {
		msg = p.d.Err()
	}
	if msg != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Error.Render(msg))
	}
	b.WriteString("\n\n")
	b.WriteString(s.Muted.Render("tab momento · enter añadir al plan · esc cancelar"))
	return dialogBox(service.VariantInfo).Render(b.String())
}
