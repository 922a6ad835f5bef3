package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
)

// Session é a sessão emitida pelo provedor de identidade. Ter sessão
// válida NÃO basta para acessar o sistema: ainda é preciso existir um
// perfil em users com o mesmo e-mail (ver Binder).
type Session struct {
	AccountID string
	Email     string
}

type Account struct {
	ID    string
	Email string
}

type AuthEvent string

const (
	EventSignedIn         AuthEvent = "SIGNED_IN"
	EventSignedOut        AuthEvent = "SIGNED_OUT"
	EventPasswordRecovery AuthEvent = "PASSWORD_RECOVERY"
)

// Provider é o colaborador de identidade hospedada, consumido só nesta
// fronteira.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, string, error)
	SignOut(ctx context.Context, token string) error
	SessionFromToken(token string) (*Session, error)

	// SessionFromRecoveryToken aceita apenas tokens emitidos pela
	// recuperação de senha; tokens de sessão são rejeitados.
	SessionFromRecoveryToken(token string) (*Session, error)

	// RequestPasswordReset devolve o token de recuperação que seria
	// enviado por e-mail.
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	UpdatePassword(ctx context.Context, accountID, newPassword string) error

	// Subscribe registra um ouvinte de mudanças de autenticação.
	Subscribe(fn func(AuthEvent, *Session))
}

// SignUpClient é o cliente SEPARADO, de privilégio limitado, usado
// exclusivamente pelo provisionamento de usuários: só sabe criar contas.
type SignUpClient interface {
	SignUp(ctx context.Context, email, password string) (*Account, error)
}
