package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/types"
)

type detailPage struct {
	env     pageEnv
	detail  *service.RecipeDetail
	vp      viewport.Model
	confirm *service.ConfirmDialog
	plan    *planDialog
	message string
}

func newDetailPage(env pageEnv) *detailPage {
	p := &detailPage{env: env, vp: viewport.New(80, 20)}
	var rec types.Recipe
	if env.state.Selected != nil {
		rec = *env.state.Selected
	}
	p.detail = service.NewRecipeDetail(env.api, service.DetailParams{
		Recipe:  rec,
		Session: env.state.Session,
		Lease:   env.lease,
		Logger:  env.logger,
		OnDeleted: func() {
			if err := env.router.ShowHome(); err != nil {
				env.logger.Warn("leaving deleted recipe failed", zap.Error(err))
			}
		},
		OnAuthor: func(u types.UserSummary) {
			if err := env.router.GoToProfile(u, router.TabRecipes); err != nil {
				env.logger.Warn("open author failed", zap.Error(err))
			}
		},
	})
	p.refreshContent()
	return p
}

func (p *detailPage) Init() tea.Cmd {
	return p.env.run(p.detail.Refresh)
}

func (p *detailPage) SetSize(w, h int) {
	p.vp.Width = w
	p.vp.Height = h - 2
	p.refreshContent()
}

func (p *detailPage) Typing() bool {
	return p.plan != nil && p.plan.d.IsOpen()
}

func (p *detailPage) refreshContent() {
	s := p.env.styles
	p.vp.SetContent(s.RecipeDetail(p.detail.Recipe(), p.detail.Steps(), p.detail.Liked(), p.detail.LikesCount()))
}

func (p *detailPage) Update(msg tea.Msg) (page, tea.Cmd) {
	if _, ok := msg.(resultMsg); ok {
		p.refreshContent()
		if p.confirm != nil && !p.confirm.IsOpen() {
			p.confirm = nil
		}
		if p.plan != nil && !p.plan.d.IsOpen() {
			p.plan = nil
		}
		return p, nil
	}

	if p.plan != nil {
		cmd := p.plan.update(p.env, msg)
		if !p.plan.d.IsOpen() {
			p.plan = nil
		}
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.vp, cmd = p.vp.Update(msg)
		return p, cmd
	}

	if p.confirm != nil {
		cmd := confirmKeys(p.env, p.confirm, key)
		if !p.confirm.IsOpen() {
			p.confirm = nil
		}
		return p, cmd
	}

	p.message = ""
	switch key.String() {
	case "l":
		return p, p.env.run(p.detail.ToggleLike)
	case "p":
		p.plan = newPlanDialog(p.detail.OpenPlanDialog())
	case "e":
		if err := p.env.router.EditRecipe(); err != nil {
			p.message = editError(err)
		}
	case "d":
		d, err := p.detail.RequestDelete()
		if err != nil {
			p.message = "Solo el autor o un admin puede borrar esta receta."
			return p, nil
		}
		p.confirm = d
	case "a":
		p.detail.SelectAuthor()
	case "esc", "b":
		if err := p.env.router.ShowHome(); err != nil {
			p.env.logger.Warn("back to feed failed", zap.Error(err))
		}
	default:
		var cmd tea.Cmd
		p.vp, cmd = p.vp.Update(msg)
		return p, cmd
	}
	return p, nil
}

func editError(err error) string {
	switch {
	case errors.Is(err, router.ErrNotPermitted):
		return "Solo el autor o un admin puede editar esta receta."
	case errors.Is(err, router.ErrNoRecipe):
		return "No hay receta seleccionada."
	}
	return err.Error()
}

func (p *detailPage) View() string {
	s := p.env.styles
	if p.plan != nil {
		return p.plan.view(s)
	}
	if p.confirm != nil {
		return viewConfirm(s, p.confirm)
	}

	var b strings.Builder
	b.WriteString(p.vp.View())
	b.WriteString("\n")
	switch {
	case p.message != "":
		b.WriteString(s.Error.Render(p.message))
		b.WriteString("\n")
	case p.detail.Err() != "":
		b.WriteString(s.Error.Render(p.detail.Err()))
		b.WriteString("\n")
	case p.detail.Notice() != "":
		b.WriteString(s.Notice.Render(p.detail.Notice()))
		b.WriteString("\n")
	}
	help := []string{"l me gusta", "p planificar", "a autor"}
	if p.detail.CanEditOrDelete() {
		help = append(help, "e editar", "d borrar")
	}
	help = append(help, "esc volver")
	b.WriteString(s.Muted.Render(strings.Join(help, " · ")))
	return b.String()
}
