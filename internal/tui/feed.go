package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/service"
)

// cardHeight is the rendered height of a recipe card, borders included.
const cardHeight = 6

type feedPage struct {
	env    pageEnv
	feed   *service.Feed
	cursor int
	width  int
	height int
}

func newFeedPage(env pageEnv) *feedPage {
	return &feedPage{env: env, feed: service.NewFeed(env.api, env.logger), width: 80, height: 20}
}

func (p *feedPage) Init() tea.Cmd {
	return p.load()
}

func (p *feedPage) load() tea.Cmd {
	sess := p.env.state.Session
	return p.env.run(func(ctx context.Context) error {
		p.feed.Load(ctx, sess)
		return nil
	})
}

func (p *feedPage) SetSize(w, h int) { p.width, p.height = w, h }
func (p *feedPage) Typing() bool     { return false }

func (p *feedPage) Update(msg tea.Msg) (page, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	recipes := p.feed.Recipes()
	switch key.String() {
	case "up", "k":
		p.cursor = clamp(p.cursor-1, len(recipes))
	case "down", "j":
		p.cursor = clamp(p.cursor+1, len(recipes))
	case "r":
		return p, p.load()
	case "enter":
		if len(recipes) > 0 {
			if err := p.env.router.SelectRecipe(recipes[clamp(p.cursor, len(recipes))]); err != nil {
				p.env.logger.Warn("select recipe failed", zap.Error(err))
			}
		}
	}
	return p, nil
}

func (p *feedPage) View() string {
	s := p.env.styles
	var b strings.Builder
	b.WriteString(s.Header.Render(strings.ToUpper(p.feed.Title())))
	b.WriteString("\n\n")
	if p.feed.Status() == service.FeedLoading {
		b.WriteString(s.EmptyState("CARGANDO CINTAS..."))
		return b.String()
	}
	recipes := p.feed.Recipes()
	start, end := window(p.cursor, len(recipes), p.height/cardHeight)
	b.WriteString(s.RecipeList(recipes[start:end], p.width, p.cursor-start, p.feed.EmptyText(), nil))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("↑/↓ mover · enter abrir · r recargar"))
	return b.String()
}

// window returns the slice bounds of at most size items that keep cursor
// visible.
func window(cursor, n, size int) (int, int) {
	if size < 1 {
		size = 1
	}
	if n <= size {
		return 0, n
	}
	start := cursor - size + 1
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > n {
		end = n
		start = n - size
	}
	return start, end
}
