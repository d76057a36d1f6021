package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/types"
)

// authPage is shared by the login and register views.
type authPage struct {
	env      pageEnv
	register bool

	username textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    focusRing
	role     int

	login  *service.LoginForm
	signup *service.RegisterForm
	busy   bool
}

func newLoginPage(env pageEnv) *authPage {
	p := newAuthPage(env, false)
	p.login = service.NewLoginForm(env.api, env.router)
	return p
}

func newRegisterPage(env pageEnv) *authPage {
	p := newAuthPage(env, true)
	p.signup = service.NewRegisterForm(env.api, env.router)
	for i, r := range types.RegistrableRoles {
		if r == types.RoleAprendiz {
			p.role = i
		}
	}
	return p
}

func newAuthPage(env pageEnv, register bool) *authPage {
	p := &authPage{
		env:      env,
		register: register,
		username: newInput("usuario"),
		email:    newInput("email"),
		password: newInput("contraseña"),
	}
	p.password.EchoMode = textinput.EchoPassword
	p.password.EchoCharacter = '•'
	if register {
		p.focus = focusRing{inputs: []*textinput.Model{&p.username, &p.email, &p.password}}
	} else {
		p.focus = focusRing{inputs: []*textinput.Model{&p.email, &p.password}}
	}
	p.focus.set(0)
	return p
}

func (p *authPage) Init() tea.Cmd    { return nil }
func (p *authPage) SetSize(w, h int) {}
func (p *authPage) Typing() bool     { return true }

func (p *authPage) err() string {
	if p.register {
		return p.signup.Err()
	}
	return p.login.Err()
}

func (p *authPage) Update(msg tea.Msg) (page, tea.Cmd) {
	if _, ok := msg.(resultMsg); ok {
		p.busy = false
		return p, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, p.focus.update(msg)
	}
	switch key.String() {
	case "esc":
		if err := p.env.router.ShowHome(); err != nil {
			p.env.logger.Warn("leave auth form failed", zap.Error(err))
		}
		return p, nil
	case "ctrl+r":
		var err error
		if p.register {
			err = p.env.router.ShowLogin()
		} else {
			err = p.env.router.ShowRegister()
		}
		if err != nil {
			p.env.logger.Warn("switch auth form failed", zap.Error(err))
		}
		return p, nil
	case "tab", "down":
		p.focus.next()
		return p, nil
	case "shift+tab", "up":
		p.focus.prev()
		return p, nil
	case "ctrl+left", "ctrl+right":
		if p.register {
			n := len(types.RegistrableRoles)
			if key.String() == "ctrl+left" {
				p.role = (p.role + n - 1) % n
			} else {
				p.role = (p.role + 1) % n
			}
		}
		return p, nil
	case "enter":
		if p.busy {
			return p, nil
		}
		p.busy = true
		return p, p.submit()
	}
	return p, p.focus.update(msg)
}

func (p *authPage) submit() tea.Cmd {
	email, password := p.email.Value(), p.password.Value()
	if !p.register {
		return p.env.run(func(ctx context.Context) error {
			_, err := p.login.Submit(ctx, email, password)
			return err
		})
	}
	req := types.RegisterRequest{
		Username: p.username.Value(),
		Email:    email,
		Password: password,
		Rol:      types.RegistrableRoles[p.role],
	}
	return p.env.run(func(ctx context.Context) error {
		_, err := p.signup.Submit(ctx, req)
		return err
	})
}

func (p *authPage) View() string {
	s := p.env.styles
	var b strings.Builder
	if p.register {
		b.WriteString(s.Title.Render("CREAR CUENTA"))
	} else {
		b.WriteString(s.Title.Render("INICIAR SESIÓN"))
	}
	b.WriteString("\n\n")
	if p.register {
		b.WriteString(p.username.View())
		b.WriteString("\n")
	}
	b.WriteString(p.email.View())
	b.WriteString("\n")
	b.WriteString(p.password.View())
	b.WriteString("\n")

	if p.register {
		b.WriteString("\nRol: ")
		for i, r := range types.RegistrableRoles {
			if i == p.role {
				b.WriteString(s.RoleBadge(r))
			} else {
				b.WriteString(s.Tab.Render(r.Presentation().Label))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(types.RegistrableRoles[p.role].Presentation().Description))
		b.WriteString("\n")
	}

	if p.busy {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("Conectando..."))
	} else if e := p.err(); e != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(e))
	}
	b.WriteString("\n\n")
	help := "tab siguiente campo · enter enviar · esc inicio"
	if p.register {
		help = "ctrl+←/→ rol · " + help + " · ctrl+r ya tengo cuenta"
	} else {
		help += " · ctrl+r crear cuenta"
	}
	b.WriteString(s.Muted.Render(help))
	return b.String()
}
