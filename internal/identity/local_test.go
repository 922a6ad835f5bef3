package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

func TestLocalProvider_EventsReachEverySubscriber(t *testing.T) {
	p := NewLocalProvider(nil, "segredo")

	var first, second []AuthEvent
	p.Subscribe(func(e AuthEvent, _ *Session) { first = append(first, e) })
	p.Subscribe(func(e AuthEvent, _ *Session) { second = append(second, e) })

	// SignOut é stateless e emite mesmo com token inválido
	require.NoError(t, p.SignOut(context.Background(), "token-qualquer"))

	assert.Equal(t, []AuthEvent{EventSignedOut}, first)
	assert.Equal(t, []AuthEvent{EventSignedOut}, second)
}

func TestLocalProvider_TokenPurposeIsEnforced(t *testing.T) {
	p := NewLocalProvider(nil, "segredo")
	account := &models.IdentityAccount{ID: "acc1", Email: "ana@x.com"}

	sessionToken, err := p.generateToken(account, "session", time.Hour)
	require.NoError(t, err)
	recoveryToken, err := p.generateToken(account, "recovery", time.Hour)
	require.NoError(t, err)

	sess, err := p.SessionFromToken(sessionToken)
	require.NoError(t, err)
	assert.Equal(t, "acc1", sess.AccountID)
	assert.Equal(t, "ana@x.com", sess.Email)

	// token de sessão não serve para trocar senha, e vice-versa
	_, err = p.SessionFromRecoveryToken(sessionToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = p.SessionFromToken(recoveryToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	sess, err = p.SessionFromRecoveryToken(recoveryToken)
	require.NoError(t, err)
	assert.Equal(t, "acc1", sess.AccountID)
}
