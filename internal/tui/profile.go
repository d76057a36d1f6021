package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/types"
)

type profilePage struct {
	env     pageEnv
	profile *service.Profile
	cursor  int
	width   int
	height  int
	message string
	modal   *collectionForm
}

func newProfilePage(env pageEnv) *profilePage {
	var userID int64
	if env.state.ViewedProfile != nil {
		userID = env.state.ViewedProfile.ID
	}
	p := &profilePage{env: env, width: 80, height: 20}
	p.profile = service.NewProfile(env.api, service.ProfileParams{
		UserID:     userID,
		Session:    env.state.Session,
		InitialTab: env.state.InitialTab,
		Lease:      env.lease,
		Logger:     env.logger,
		OnRecipe: func(r types.Recipe) {
			if err := env.router.SelectRecipe(r); err != nil {
				env.logger.Warn("open recipe failed", zap.Error(err))
			}
		},
	})
	return p
}

func (p *profilePage) Init() tea.Cmd {
	return p.env.run(p.profile.Load)
}

func (p *profilePage) SetSize(w, h int) { p.width, p.height = w, h }

func (p *profilePage) Typing() bool {
	return p.modal != nil
}

// items returns the recipes the cursor moves over on the current tab, or
// nil when the tab lists something else.
func (p *profilePage) items() []types.Recipe {
	if c := p.profile.OpenedCollection(); c != nil {
		return c.Recipes
	}
	switch p.profile.Tab() {
	case router.TabRecipes:
		return p.profile.Data().Recipes
	case router.TabFavorites:
		return p.profile.Favorites()
	}
	return nil
}

func (p *profilePage) entries() []types.MealPlanEntry {
	var out []types.MealPlanEntry
	for _, g := range p.profile.MealPlan() {
		out = append(out, g.Entries...)
	}
	return out
}

func (p *profilePage) length() int {
	switch {
	case p.profile.OpenedCollection() != nil:
		return len(p.items())
	case p.profile.Tab() == router.TabCollections:
		return len(p.profile.Collections())
	case p.profile.Tab() == router.TabMealPlan:
		return len(p.entries())
	}
	return len(p.items())
}

func (p *profilePage) Update(msg tea.Msg) (page, tea.Cmd) {
	if _, ok := msg.(resultMsg); ok {
		p.cursor = clamp(p.cursor, p.length())
		if p.modal != nil && p.profile.Modal() == nil {
			p.modal = nil
		}
		return p, nil
	}

	if p.modal != nil {
		cmd := p.modal.update(p.env, p.profile, msg)
		if p.profile.Modal() == nil {
			p.modal = nil
		}
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	if d := p.profile.Dialog(); d != nil {
		return p, confirmKeys(p.env, d, key)
	}

	switch p.profile.Status() {
	case service.ProfileLoading:
		return p, nil
	case service.ProfileError:
		if key.String() == "r" || key.String() == "enter" {
			return p, p.env.run(p.profile.Retry)
		}
		return p, nil
	}

	if p.profile.ShoppingList() != nil {
		if key.String() == "esc" || key.String() == "enter" {
			p.profile.CloseShoppingList()
		}
		return p, nil
	}

	p.message = ""
	switch key.String() {
	case "up", "k":
		p.cursor = clamp(p.cursor-1, p.length())
	case "down", "j":
		p.cursor = clamp(p.cursor+1, p.length())
	case "tab", "right":
		return p, p.shiftTab(1)
	case "shift+tab", "left":
		return p, p.shiftTab(-1)
	case "enter", " ":
		return p, p.activate()
	case "esc":
		p.profile.CloseCollection()
		p.cursor = 0
	case "f":
		if p.profile.IsOwner() {
			p.message = "No puedes seguirte a ti mismo."
			return p, nil
		}
		return p, p.env.run(p.profile.ToggleFollow)
	case "s":
		if err := p.profile.ToggleSelectionMode(); err != nil {
			p.message = "El modo selección solo está disponible en Favoritos."
		}
	case "c":
		modal, err := p.profile.OpenCollectionModal()
		if err != nil {
			p.message = "Selecciona al menos una receta (s para seleccionar)."
			return p, nil
		}
		p.modal = newCollectionForm(modal)
	case "u":
		if p.profile.Tab() == router.TabFavorites {
			if items := p.items(); len(items) > 0 {
				id := items[clamp(p.cursor, len(items))].ID
				return p, p.env.run(func(ctx context.Context) error { return p.profile.UnlikeFavorite(ctx, id) })
			}
		}
	case "x":
		p.requestRemove()
	case "g":
		if p.profile.Tab() == router.TabMealPlan {
			if !p.profile.CanGenerateShoppingList() {
				p.message = render.EmptyMealPlan
				return p, nil
			}
			return p, p.env.run(func(ctx context.Context) error {
				_, err := p.profile.GenerateShoppingList(ctx)
				return err
			})
		}
	}
	return p, nil
}

func (p *profilePage) shiftTab(delta int) tea.Cmd {
	tabs := p.profile.Tabs()
	current := p.profile.Tab()
	next := tabs[0]
	for i, t := range tabs {
		if t == current {
			next = tabs[((i+delta)%len(tabs)+len(tabs))%len(tabs)]
		}
	}
	p.cursor = 0
	return p.env.run(func(ctx context.Context) error { return p.profile.SelectTab(ctx, next) })
}

// activate opens the recipe or collection under the cursor. In selection
// mode a recipe toggles its membership instead.
func (p *profilePage) activate() tea.Cmd {
	if p.profile.OpenedCollection() == nil && p.profile.Tab() == router.TabCollections {
		cols := p.profile.Collections()
		if len(cols) > 0 {
			p.profile.OpenCollection(cols[clamp(p.cursor, len(cols))])
			p.cursor = 0
		}
		return nil
	}
	if items := p.items(); len(items) > 0 {
		p.profile.ClickRecipe(items[clamp(p.cursor, len(items))])
	}
	return nil
}

func (p *profilePage) requestRemove() {
	var err error
	switch {
	case p.profile.OpenedCollection() != nil:
		if items := p.items(); len(items) > 0 {
			_, err = p.profile.RequestRemoveFromCollection(items[clamp(p.cursor, len(items))].ID)
		}
	case p.profile.Tab() == router.TabMealPlan:
		if entries := p.entries(); len(entries) > 0 {
			_, err = p.profile.RequestRemoveMealPlan(entries[clamp(p.cursor, len(entries))].ID)
		}
	}
	if errors.Is(err, service.ErrNotOwner) {
		p.message = "Solo el dueño del perfil puede hacer esto."
	}
}

func (p *profilePage) View() string {
	s := p.env.styles
	switch p.profile.Status() {
	case service.ProfileLoading:
		return s.ProfileLoading()
	case service.ProfileError:
		return s.ProfileError(p.profile.LoadErr())
	}
	if p.modal != nil {
		return p.modal.view(s)
	}
	if d := p.profile.Dialog(); d != nil {
		return viewConfirm(s, d)
	}
	if items := p.profile.ShoppingList(); items != nil {
		return s.ShoppingList(items) + "\n\n" + s.Muted.Render("esc cerrar")
	}

	data := p.profile.Data()
	var b strings.Builder
	b.WriteString(s.ProfileHeader(data.User, data.IsFollowing, p.profile.IsOwner()))
	b.WriteString("\n\n")

	tabs := p.profile.Tabs()
	labels := make([]string, len(tabs))
	active := 0
	for i, t := range tabs {
		labels[i] = t.Label()
		if t == p.profile.Tab() {
			active = i
		}
	}
	b.WriteString(s.Tabs(labels, active))
	b.WriteString("\n\n")
	b.WriteString(p.tabView(s))

	if msg := p.message; msg != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(msg))
	} else if e := p.profile.Err(); e != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(e))
	}
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(p.help()))
	return b.String()
}

func (p *profilePage) tabView(s render.Styles) string {
	size := (p.height - 12) / cardHeight
	recipes := func(list []types.Recipe, empty string) string {
		start, end := window(p.cursor, len(list), size)
		return s.RecipeList(list[start:end], p.width, p.cursor-start, empty, p.profile.IsSelected)
	}

	if c := p.profile.OpenedCollection(); c != nil {
		header := s.Title.Render(c.Name)
		if c.Description != "" {
			header += "\n" + s.Muted.Render(c.Description)
		}
		return header + "\n\n" + recipes(c.Recipes, render.EmptyCollection)
	}

	switch p.profile.Tab() {
	case router.TabCollections:
		return s.Collections(p.profile.Collections(), p.cursor)
	case router.TabMealPlan:
		return s.MealPlan(p.profile.MealPlan(), p.cursor)
	case router.TabFavorites:
		out := recipes(p.profile.Favorites(), render.EmptyFavorites)
		if p.profile.Selecting() {
			out = s.Notice.Render("MODO SELECCIÓN · "+itoa(len(p.profile.Selected()))+" seleccionadas") + "\n" + out
		}
		return out
	}
	return recipes(p.profile.Data().Recipes, render.EmptyRecipes)
}

func (p *profilePage) help() string {
	help := []string{"←/→ pestañas", "↑/↓ mover", "enter abrir"}
	if !p.profile.IsOwner() {
		help = append(help, "f seguir")
	}
	if p.profile.OpenedCollection() != nil {
		help = append(help, "esc volver a colecciones")
		if p.profile.IsOwner() {
			help = append(help, "x quitar")
		}
		return strings.Join(help, " · ")
	}
	switch p.profile.Tab() {
	case router.TabFavorites:
		help = append(help, "u quitar me gusta", "s seleccionar")
		if p.profile.Selecting() {
			help = append(help, "c guardar en colección")
		}
	case router.TabMealPlan:
		help = append(help, "x eliminar")
		if p.profile.CanGenerateShoppingList() {
			help = append(help, "g lista de compra")
		}
	}
	return strings.Join(help, " · ")
}

// collectionForm is the "Guardar en Colección" modal.
type collectionForm struct {
	modal  *service.CollectionModal
	name   textinput.Model
	desc   textinput.Model
	focus  focusRing
	cursor int
}

func newCollectionForm(modal *service.CollectionModal) *collectionForm {
	f := &collectionForm{
		modal: modal,
		name:  newInput("Nombre de la colección"),
		desc:  newInput("Descripción (opcional)"),
	}
	f.focus = focusRing{inputs: []*textinput.Model{&f.name, &f.desc}}
	f.focus.set(0)
	return f
}

func (f *collectionForm) update(env pageEnv, profile *service.Profile, msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.focus.update(msg)
	}
	existing := f.modal.Existing()
	switch key.String() {
	case "esc":
		profile.CloseCollectionModal()
		return nil
	case "ctrl+t":
		mode := service.ModeExisting
		if f.modal.Mode() == service.ModeExisting {
			mode = service.ModeNew
		}
		_ = f.modal.SetMode(mode)
		return nil
	case "enter":
		if f.modal.Mode() == service.ModeNew {
			f.modal.SetName(f.name.Value())
			f.modal.SetDescription(f.desc.Value())
		} else if len(existing) > 0 && f.modal.Chosen() == 0 {
			_ = f.modal.Choose(existing[clamp(f.cursor, len(existing))].ID)
		}
		return env.run(func(ctx context.Context) error {
			_, err := profile.SaveCollection(ctx)
			return err
		})
	}

	if f.modal.Mode() == service.ModeExisting {
		f.cursor = f.chosenIndex(existing)
		switch key.String() {
		case "up", "k":
			f.cursor = clamp(f.cursor-1, len(existing))
		case "down", "j":
			f.cursor = clamp(f.cursor+1, len(existing))
		default:
			return nil
		}
		if len(existing) > 0 {
			_ = f.modal.Choose(existing[f.cursor].ID)
		}
		return nil
	}
	switch key.String() {
	case "tab", "down":
		f.focus.next()
		return nil
	case "shift+tab", "up":
		f.focus.prev()
		return nil
	}
	return f.focus.update(msg)
}

// chosenIndex is the position of the modal's chosen collection, or the
// cursor when none is chosen.
func (f *collectionForm) chosenIndex(existing []types.Collection) int {
	id := f.modal.Chosen()
	for i, c := range existing {
		if c.ID == id {
			return i
		}
	}
	return f.cursor
}

func (f *collectionForm) view(s render.Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Guardar en Colección"))
	b.WriteString("\n\n")

	modes := f.modal.Modes()
	for _, m := range modes {
		label := "Nueva"
		if m == service.ModeExisting {
			label = "Existente"
		}
		if m == f.modal.Mode() {
			b.WriteString(s.ActiveTab.Render(label))
		} else {
			b.WriteString(s.Tab.Render(label))
		}
	}
	b.WriteString("\n\n")

	if f.modal.Mode() == service.ModeNew {
		b.WriteString(f.name.View())
		b.WriteString("\n")
		b.WriteString(f.desc.View())
	} else {
		existing := f.modal.Existing()
		b.WriteString(s.Collections(existing, f.chosenIndex(existing)))
	}

	if e := f.modal.Err(); e != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Error.Render(e))
	}
	help := "enter guardar · esc cancelar"
	if len(modes) > 1 {
		help = "ctrl+t nueva/existente · " + help
	}
	b.WriteString("\n\n")
	b.WriteString(s.Muted.Render(help))
	return dialogBox(service.VariantInfo).Render(b.String())
}
