// Package tui is the terminal front-end. The root model follows the view
// router and mounts one page per view; pages drive the service components
// and render them with the render package.
package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/render"
	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/service"
)

// Deps are the collaborators of the program.
type Deps struct {
	API    service.IAPI
	Router *router.Router
	Logger *zap.Logger
	Styles render.Styles
}

// page is the content of one mounted view.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View() string
	SetSize(width, height int)
	// Typing reports whether keystrokes go to a text field, which turns
	// the single-letter navigation keys off.
	Typing() bool
}

// resultMsg reports the end of an asynchronous action started by the page
// mounted as mount.
type resultMsg struct {
	mount uuid.UUID
	err   error
}

// run executes fn off the update loop and reports back with a resultMsg.
func run(ctx context.Context, mount uuid.UUID, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{mount: mount, err: fn(ctx)}
	}
}

// Model is the root bubbletea model.
type Model struct {
	ctx    context.Context
	deps   Deps
	mount  uuid.UUID
	page   page
	width  int
	height int
	status string
}

// New builds the root model on the router's current view.
func New(ctx context.Context, deps Deps) *Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Model{ctx: ctx, deps: deps, width: 80, height: 24}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.remount()
}

// remount builds the page for the router's current view.
func (m *Model) remount() tea.Cmd {
	st := m.deps.Router.State()
	m.mount = st.Mount
	env := pageEnv{
		ctx:    m.ctx,
		api:    m.deps.API,
		router: m.deps.Router,
		logger: m.deps.Logger,
		styles: m.deps.Styles,
		state:  st,
		lease:  m.deps.Router.Lease(),
	}

	switch st.View {
	case router.ViewDetail:
		m.page = newDetailPage(env)
	case router.ViewLogin:
		m.page = newLoginPage(env)
	case router.ViewRegister:
		m.page = newRegisterPage(env)
	case router.ViewProfile:
		m.page = newProfilePage(env)
	case router.ViewCreateRecipe, router.ViewUpdateRecipe:
		m.page = newFormPage(env)
	default:
		m.page = newFeedPage(env)
	}
	m.page.SetSize(m.width, m.contentHeight())
	return m.page.Init()
}

// follow remounts when the router moved while handling the last message.
func (m *Model) follow(cmd tea.Cmd) tea.Cmd {
	if m.deps.Router.State().Mount == m.mount {
		return cmd
	}
	return tea.Batch(cmd, m.remount())
}

func (m *Model) contentHeight() int {
	if h := m.height - 4; h > 0 {
		return h
	}
	return m.height
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.page != nil {
			m.page.SetSize(m.width, m.contentHeight())
		}
		return m, nil
	case resultMsg:
		if msg.mount != m.mount {
			return m, m.follow(nil)
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.status = ""
		if !m.page.Typing() {
			if cmd, handled := m.navigate(msg); handled {
				return m, m.follow(cmd)
			}
		}
	}

	p, cmd := m.page.Update(msg)
	m.page = p
	return m, m.follow(cmd)
}

// navigate handles the header keys available from every view.
func (m *Model) navigate(msg tea.KeyMsg) (tea.Cmd, bool) {
	r := m.deps.Router
	var err error
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "H":
		err = r.ShowHome()
	case "L":
		err = r.ShowLogin()
	case "R":
		err = r.ShowRegister()
	case "N":
		err = r.StartCreate()
		if errors.Is(err, router.ErrNoSession) {
			m.status = "Inicia sesión para publicar una receta."
			return nil, true
		}
	case "P":
		st := r.State()
		if st.Session == nil {
			err = r.ShowLogin()
		} else {
			err = r.GoToProfile(st.Session.User, router.TabRecipes)
		}
	case "O":
		err = r.Logout(m.ctx)
	default:
		return nil, false
	}
	if err != nil {
		m.deps.Logger.Warn("navigation failed", zap.String("key", msg.String()), zap.Error(err))
		m.status = err.Error()
	}
	return nil, true
}

func (m *Model) View() string {
	if m.page == nil {
		return ""
	}
	s := m.deps.Styles
	st := m.deps.Router.State()

	who := s.Muted.Render("anónimo")
	if st.Session != nil {
		who = s.Bold.Render("@"+st.Session.User.Username) + " " + s.RoleBadge(st.Session.User.Rol)
	}
	header := s.Title.Render("CHEF COMMUNITY") + "  " + who

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(m.page.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(s.Error.Render(m.status))
		b.WriteString("\n")
	}
	if !m.page.Typing() {
		b.WriteString(s.Muted.Render("H inicio · P perfil · N nueva receta · L entrar · R registro · O salir · q cerrar"))
	}
	return b.String()
}
