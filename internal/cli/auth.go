package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chefcommunity/client/internal/service"
	"github.com/chefcommunity/client/internal/session"
	"github.com/chefcommunity/client/internal/types"
)

// ErrNotSignedIn is returned by commands that need a session.
var ErrNotSignedIn = errors.New("no has iniciado sesión: ejecuta chefctl login")

func (a *app) requireSession() (*types.Session, error) {
	s := a.sessions.Current()
	if s == nil {
		return nil, ErrNotSignedIn
	}
	return s, nil
}

// prompt reads one line from the command's input.
func (a *app) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with email and password. The session is stored with the
configured session driver and reused by later commands.

Examples:
  chefctl login --email ana@example.com
  chefctl login --email ana@example.com --password secreto`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = a.prompt("Email")
			}
			if password == "" {
				password = a.prompt("Contraseña")
			}
			form := service.NewLoginForm(a.api, a.router)
			sess, err := form.Submit(cmd.Context(), email, password)
			if err != nil {
				return errors.New(form.Err())
			}
			return a.print(sess.User, func() string {
				return a.styles.Notice.Render("Sesión iniciada como @"+sess.User.Username) + " " + a.styles.RoleBadge(sess.User.Rol)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var req types.RegisterRequest
	var rol string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long: `Create an account. The role is one of saludable, aprendiz or chef and
defaults to aprendiz.

Examples:
  chefctl register --username ana --email ana@example.com --rol chef`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Username == "" {
				req.Username = a.prompt("Usuario")
			}
			if req.Email == "" {
				req.Email = a.prompt("Email")
			}
			if req.Password == "" {
				req.Password = a.prompt("Contraseña")
			}
			req.Rol = types.Role(strings.ToLower(strings.TrimSpace(rol)))

			form := service.NewRegisterForm(a.api, a.router)
			sess, err := form.Submit(cmd.Context(), req)
			if errors.Is(err, service.ErrRole) {
				return fmt.Errorf("rol %q no disponible: elige saludable, aprendiz o chef", rol)
			}
			if err != nil {
				return errors.New(form.Err())
			}
			return a.print(sess.User, func() string {
				p := sess.User.Rol.Presentation()
				return a.styles.Notice.Render("Cuenta creada: @"+sess.User.Username) + " " + a.styles.RoleBadge(sess.User.Rol) +
					"\n" + a.styles.Muted.Render(p.Description)
			})
		},
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "username")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when empty)")
	cmd.Flags().StringVar(&rol, "rol", "", "role: saludable, aprendiz or chef")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.router.Logout(cmd.Context()); err != nil {
				return err
			}
			return a.message("Sesión cerrada")
		},
	}
}

type whoami struct {
	User      types.UserSummary `json:"user"`
	IssuedAt  *time.Time        `json:"issued_at,omitempty"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
	Profile   *types.UserDetail `json:"profile,omitempty"`
}

func (a *app) whoamiCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Long: `Show the stored identity and the times recorded in its token. The token
is decoded but not verified; --remote asks the backend instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession()
			if err != nil {
				return err
			}
			out := whoami{User: sess.User}
			if claims, err := a.sessions.Claims(); err == nil {
				if claims.IssuedAt != nil {
					t := claims.IssuedAt.Time
					out.IssuedAt = &t
				}
				if claims.ExpiresAt != nil {
					t := claims.ExpiresAt.Time
					out.ExpiresAt = &t
				}
			} else if !errors.Is(err, session.ErrNoSession) {
				a.logger.Debug("token claims unreadable")
			}
			if remote {
				me, err := a.api.Me(cmd.Context(), sess.Token)
				if err != nil {
					return err
				}
				out.Profile = me
			}

			return a.print(out, func() string {
				s := a.styles
				var b strings.Builder
				b.WriteString(s.Bold.Render("@"+out.User.Username) + " " + s.RoleBadge(out.User.Rol))
				b.WriteString(fmt.Sprintf("\nid: %d", out.User.ID))
				if out.ExpiresAt != nil {
					b.WriteString("\ntoken expira: " + out.ExpiresAt.Local().Format(time.RFC1123))
				}
				if out.Profile != nil {
					b.WriteString(fmt.Sprintf("\nemail: %s\nseguidores: %d · siguiendo: %d",
						out.Profile.Email, out.Profile.FollowersCount, out.Profile.FollowingCount))
				}
				return b.String()
			})
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the account from the backend")
	return cmd
}
