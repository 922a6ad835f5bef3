package identity

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// Binder faz a ponte entre a sessão do provedor de identidade e o perfil
// da aplicação: procura exatamente um usuário com o e-mail autenticado.
// Sessão sem perfil correspondente = sem acesso, mesmo com o provedor
// considerando a sessão válida.
type Binder struct {
	store clinic.Store
	cache *cache.Cache
	log   *zap.Logger

	// E-mail único de bootstrap: no login, o perfil correspondente tem o
	// papel forçado para ADMIN no servidor antes de prosseguir. Atalho
	// operacional pontual, não um mecanismo geral de acesso.
	bootstrapAdminEmail string
}

func NewBinder(store clinic.Store, c *cache.Cache, bootstrapAdminEmail string, log *zap.Logger) *Binder {
	return &Binder{
		store:               store,
		cache:               c,
		log:                 log,
		bootstrapAdminEmail: strings.ToLower(strings.TrimSpace(bootstrapAdminEmail)),
	}
}

// Resolve devolve o perfil vinculado à sessão, aplicando a regra de
// bootstrap e disparando o refresh completo do cache. Retorna (nil, nil)
// quando não há perfil: o chamador trata como não autenticado.
func (b *Binder) Resolve(ctx context.Context, sess *Session) (*models.User, error) {
	if sess == nil {
		return nil, nil
	}

	user, err := b.store.FindUserByEmail(ctx, sess.Email)
	if err != nil {
		if errors.Is(err, clinic.ErrNotFound) {
			b.log.Info("session without profile row",
				zap.String("email", sess.Email),
			)
			return nil, nil
		}
		return nil, err
	}

	if b.bootstrapAdminEmail != "" &&
		strings.EqualFold(user.Email, b.bootstrapAdminEmail) &&
		user.Role != clinic.RoleAdmin {

		user.Role = clinic.RoleAdmin
		if err := b.store.Users().Save(ctx, user); err != nil {
			return nil, err
		}
		b.log.Info("bootstrap admin role applied", zap.String("user_id", user.ID))
	}

	b.cache.LoadAll(ctx)

	return user, nil
}

// ObserveAuth é o assinante registrado em Provider.Subscribe: cada
// SIGNED_IN emitido pelo provedor passa pelo Resolve (bootstrap +
// refresh do cache), antes mesmo de o chamador do SignIn receber a
// resposta. Os demais eventos só geram log.
func (b *Binder) ObserveAuth(event AuthEvent, sess *Session) {
	switch event {
	case EventSignedIn:
		if _, err := b.Resolve(context.Background(), sess); err != nil {
			b.log.Error("auth event binding failed", zap.Error(err))
		}
	case EventSignedOut, EventPasswordRecovery:
		b.log.Debug("auth event", zap.String("event", string(event)))
	}
}

// Lookup resolve sessão -> perfil sem efeitos colaterais (sem bootstrap,
// sem refresh); é o caminho usado em toda requisição autenticada.
func (b *Binder) Lookup(ctx context.Context, sess *Session) (*models.User, error) {
	if sess == nil {
		return nil, nil
	}

	user, err := b.store.FindUserByEmail(ctx, sess.Email)
	if err != nil {
		if errors.Is(err, clinic.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
