package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/infra/repository"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

type fixture struct {
	store *repository.MemoryStore
	cache *cache.Cache
}

func newFixture(t *testing.T, ev models.ClinicEvent) fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())

	require.NoError(t, store.Events().Insert(context.Background(), &ev))
	c.LoadAll(context.Background())
	return fixture{store: store, cache: c}
}

func spots(n int) *int { return &n }

func TestRegister_HappyPath(t *testing.T) {
	fx := newFixture(t, models.ClinicEvent{
		ID: "ev1", Name: "Workshop de Pilates", Date: "2099-05-10", Time: "19:00",
		Modality: "PRESENTIAL", Location: "Auditório", Spots: spots(30),
	})
	uc := NewRegister(fx.store, fx.cache, nil)

	reg, err := uc.Execute(context.Background(), RegisterInput{
		EventID:          "ev1",
		ParticipantName:  "Maria Souza",
		ParticipantEmail: "Maria@Exemplo.com",
	})
	require.NoError(t, err)

	assert.Equal(t, clinic.RegistrationConfirmed, reg.Status)
	assert.Equal(t, "maria@exemplo.com", reg.ParticipantEmail, "e-mail normalizado em minúsculas")
	assert.Len(t, fx.cache.Snapshot().Registrations, 1)
}

func TestRegister_Idempotence(t *testing.T) {
	fx := newFixture(t, models.ClinicEvent{
		ID: "ev1", Name: "Palestra", Date: "2099-05-10", Time: "19:00",
		Modality: "ONLINE", Link: "https://meet/x",
	})
	uc := NewRegister(fx.store, fx.cache, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, RegisterInput{EventID: "ev1", ParticipantName: "Maria", ParticipantEmail: "maria@x.com"})
	require.NoError(t, err)

	// segunda inscrição do mesmo e-mail (outra caixa) não duplica
	_, err = uc.Execute(ctx, RegisterInput{EventID: "ev1", ParticipantName: "Maria", ParticipantEmail: "MARIA@X.COM"})
	assert.True(t, httperr.IsBusiness(err, "already_registered"))
	assert.Len(t, fx.cache.Snapshot().Registrations, 1)
}

func TestRegister_FullEvent(t *testing.T) {
	fx := newFixture(t, models.ClinicEvent{
		ID: "ev1", Name: "Curso", Date: "2099-05-10", Time: "09:00",
		Modality: "PRESENTIAL", Location: "Sala de reuniões", Spots: spots(1),
	})
	uc := NewRegister(fx.store, fx.cache, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, RegisterInput{EventID: "ev1", ParticipantName: "Ana", ParticipantEmail: "ana@x.com"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RegisterInput{EventID: "ev1", ParticipantName: "Bia", ParticipantEmail: "bia@x.com"})
	assert.True(t, httperr.IsBusiness(err, "event_full"))
}

func TestRegister_PastDeadline(t *testing.T) {
	fx := newFixture(t, models.ClinicEvent{
		ID: "ev1", Name: "Encontro", Date: "2000-01-15", Time: "09:00",
		Modality:                 "PRESENTIAL",
		Location:                 "Auditório",
		RegistrationDeadlineDate: "2000-01-10",
	})
	uc := NewRegister(fx.store, fx.cache, nil)

	_, err := uc.Execute(context.Background(), RegisterInput{EventID: "ev1", ParticipantName: "Ana", ParticipantEmail: "ana@x.com"})
	assert.True(t, httperr.IsBusiness(err, "registration_closed"))
}

func TestRegister_MissingFields(t *testing.T) {
	fx := newFixture(t, models.ClinicEvent{
		ID: "ev1", Name: "Encontro", Date: "2099-01-15", Time: "09:00",
		Modality: "ONLINE", Link: "https://meet/y",
	})
	uc := NewRegister(fx.store, fx.cache, nil)

	_, err := uc.Execute(context.Background(), RegisterInput{EventID: "ev1", ParticipantEmail: "ana@x.com"})
	assert.True(t, httperr.IsBusiness(err, "missing_participant"))

	_, err = uc.Execute(context.Background(), RegisterInput{EventID: "ghost", ParticipantName: "Ana", ParticipantEmail: "ana@x.com"})
	assert.True(t, httperr.IsBusiness(err, "event_not_found"))
}

func TestDelete_CascadesRegistrations(t *testing.T) {
	fx := newFixture(t, models.ClinicEvent{
		ID: "ev1", Name: "Curso", Date: "2099-05-10", Time: "09:00",
		Modality: "ONLINE", Link: "https://meet/z",
	})
	ctx := context.Background()

	require.NoError(t, fx.store.Events().Insert(ctx, &models.ClinicEvent{
		ID: "ev2", Name: "Outro", Date: "2099-06-01", Time: "10:00",
		Modality: "ONLINE", Link: "https://meet/w",
	}))

	register := NewRegister(fx.store, fx.cache, nil)
	fx.cache.LoadAll(ctx)

	_, err := register.Execute(ctx, RegisterInput{EventID: "ev1", ParticipantName: "Ana", ParticipantEmail: "ana@x.com"})
	require.NoError(t, err)
	_, err = register.Execute(ctx, RegisterInput{EventID: "ev2", ParticipantName: "Bia", ParticipantEmail: "bia@x.com"})
	require.NoError(t, err)

	uc := NewDelete(fx.store, fx.cache, nil)
	require.NoError(t, uc.Execute(ctx, "ev1"))

	snap := fx.cache.Snapshot()
	assert.Len(t, snap.Events, 1)
	require.Len(t, snap.Registrations, 1)
	assert.Equal(t, "ev2", snap.Registrations[0].EventID)
}
