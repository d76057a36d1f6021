package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/chefcommunity/client/internal/types"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingFields      = errors.New("username, email and password are required")
	ErrRole               = errors.New("role cannot be chosen at registration")
)

// authForm is the state shared by the login and register forms.
type authForm struct {
	api  IAuthAPI
	auth Authenticator

	mu   sync.Mutex
	err  string
	busy bool
}

func (f *authForm) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *authForm) begin() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = ""
	f.busy = true
}

func (f *authForm) finish(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	f.err = msg
}

// complete hands a successful response to the authenticator.
func (f *authForm) complete(ctx context.Context, resp *types.AuthResponse, fallback string) (*types.Session, error) {
	sess := resp.Session()
	if err := f.auth.Authenticated(ctx, sess); err != nil {
		f.finish(fallback)
		return nil, err
	}
	f.finish("")
	return &sess, nil
}

// LoginForm signs a user in with email and password.
type LoginForm struct {
	authForm
}

func NewLoginForm(api IAuthAPI, auth Authenticator) *LoginForm {
	return &LoginForm{authForm{api: api, auth: auth}}
}

func (f *LoginForm) Submit(ctx context.Context, email, password string) (*types.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		f.finish("Faltan credenciales")
		return nil, ErrMissingCredentials
	}
	f.begin()
	resp, err := f.api.Login(ctx, types.LoginRequest{Email: email, Password: password})
	if err != nil {
		f.finish(inlineMessage(err, MsgLoginFailed))
		return nil, err
	}
	return f.complete(ctx, resp, MsgLoginFailed)
}

// RegisterForm creates an account and signs it in.
type RegisterForm struct {
	authForm
}

func NewRegisterForm(api IAuthAPI, auth Authenticator) *RegisterForm {
	return &RegisterForm{authForm{api: api, auth: auth}}
}

// Submit registers req. An empty role registers an aprendiz; only the
// self-service roles are accepted.
func (f *RegisterForm) Submit(ctx context.Context, req types.RegisterRequest) (*types.Session, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		f.finish("Faltan datos requeridos")
		return nil, ErrMissingFields
	}
	if req.Rol == "" {
		req.Rol = types.RoleAprendiz
	}
	if !registrable(req.Rol) {
		return nil, ErrRole
	}

	f.begin()
	resp, err := f.api.Register(ctx, req)
	if err != nil {
		f.finish(inlineMessage(err, MsgRegisterFailed))
		return nil, err
	}
	return f.complete(ctx, resp, MsgRegisterFailed)
}

func registrable(r types.Role) bool {
	for _, ok := range types.RegistrableRoles {
		if r == ok {
			return true
		}
	}
	return false
}
