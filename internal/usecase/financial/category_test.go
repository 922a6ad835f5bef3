package financial

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

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	c := cache.New(store, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, store.Categories().Insert(ctx, &models.FinancialCategory{
		ID: "cat-in", Name: "Outros", Type: clinic.TransactionIncome,
	}))
	require.NoError(t, store.Categories().Insert(ctx, &models.FinancialCategory{
		ID: "cat-out", Name: "Outros", Type: clinic.TransactionExpense,
	}))

	seed := []models.FinancialTransaction{
		{ID: "t1", Description: "Consulta avulsa", Amount: 200, Type: clinic.TransactionIncome, Category: "Outros", Date: "2025-03-05"},
		{ID: "t2", Description: "Compra de papel", Amount: 50, Type: clinic.TransactionExpense, Category: "Outros", Date: "2025-03-07"},
		{ID: "t3", Description: "Consulta avulsa", Amount: 180, Type: clinic.TransactionIncome, Category: "Outros", Date: "2025-04-01"},
	}
	for i := range seed {
		require.NoError(t, store.Transactions().Insert(ctx, &seed[i]))
	}

	c.LoadAll(ctx)
	return fixture{store: store, cache: c}
}

func (fx fixture) transaction(t *testing.T, id string) models.FinancialTransaction {
	t.Helper()
	for _, tr := range fx.cache.Snapshot().Transactions {
		if tr.ID == id {
			return tr
		}
	}
	t.Fatalf("transação %s não encontrada", id)
	return models.FinancialTransaction{}
}

func TestRenameCategory_CascadeIsTypeScoped(t *testing.T) {
	fx := newFixture(t)
	uc := NewRenameCategory(fx.store, fx.cache, nil)

	updated, err := uc.Execute(context.Background(), "cat-in", "Receitas Diversas")
	require.NoError(t, err)
	assert.Equal(t, "Receitas Diversas", updated.Name)

	// só as transações INCOME seguem o rename; a EXPENSE homônima fica
	assert.Equal(t, "Receitas Diversas", fx.transaction(t, "t1").Category)
	assert.Equal(t, "Receitas Diversas", fx.transaction(t, "t3").Category)
	assert.Equal(t, "Outros", fx.transaction(t, "t2").Category)
}

func TestRenameCategory_Validation(t *testing.T) {
	fx := newFixture(t)
	uc := NewRenameCategory(fx.store, fx.cache, nil)

	_, err := uc.Execute(context.Background(), "cat-in", "")
	assert.True(t, httperr.IsBusiness(err, "missing_category_name"))

	_, err = uc.Execute(context.Background(), "ghost", "Novo Nome")
	assert.True(t, httperr.IsBusiness(err, "category_not_found"))
}

func TestDeleteCategory_OrphansTransactionsByName(t *testing.T) {
	fx := newFixture(t)
	uc := NewDeleteCategory(fx.store, fx.cache, nil)

	require.NoError(t, uc.Execute(context.Background(), "cat-in"))

	snap := fx.cache.Snapshot()
	assert.Len(t, snap.Categories, 1)

	// o re-rótulo para a sentinela casa por NOME, sem olhar o tipo:
	// a transação EXPENSE "Outros" também vira Pendente
	assert.Equal(t, clinic.OrphanCategory, fx.transaction(t, "t1").Category)
	assert.Equal(t, clinic.OrphanCategory, fx.transaction(t, "t2").Category)
	assert.Equal(t, clinic.OrphanCategory, fx.transaction(t, "t3").Category)
}

func TestSummary_MonthlyAggregation(t *testing.T) {
	fx := newFixture(t)
	uc := NewSummary(fx.cache)

	got := uc.Execute("2025-03")

	assert.Equal(t, 200.0, got.Income)
	assert.Equal(t, 50.0, got.Expense)
	assert.Equal(t, 150.0, got.Balance)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Outros", got.Categories[0].Name)

	// mês sem lançamentos: tudo zerado
	empty := uc.Execute("2025-12")
	assert.Zero(t, empty.Income)
	assert.Zero(t, empty.Expense)
	assert.Empty(t, empty.Categories)
}

func TestSummary_BlankCategoryShowsAsPendente(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.store.Transactions().Insert(ctx, &models.FinancialTransaction{
		ID: "t4", Description: "Ajuste", Amount: 10, Type: clinic.TransactionExpense, Category: "", Date: "2025-03-30",
	}))
	fx.cache.LoadAll(ctx)

	got := NewSummary(fx.cache).Execute("2025-03")

	var names []string
	for _, cbd := range got.Categories {
		names = append(names, cbd.Name)
	}
	assert.Contains(t, names, clinic.OrphanCategory)
}
