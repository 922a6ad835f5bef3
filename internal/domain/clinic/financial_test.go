package clinic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()

	assert.Len(t, cats, len(DefaultIncomeCategories)+len(DefaultExpenseCategories))

	seen := map[string]bool{}
	for _, c := range cats {
		assert.False(t, seen[c.ID], "id duplicado: %s", c.ID)
		seen[c.ID] = true
	}

	assert.Equal(t, "Consultas", cats[0].Name)
	assert.Equal(t, TransactionIncome, cats[0].Type)
}

func TestTransactionsInCategory_TypeScoped(t *testing.T) {
	transactions := []models.FinancialTransaction{
		{ID: "t1", Category: "Outros", Type: TransactionIncome},
		{ID: "t2", Category: "Outros", Type: TransactionExpense},
		{ID: "t3", Category: "Consultas", Type: TransactionIncome},
	}

	// "Outros" existe nos dois tipos; o filtro não pode misturar
	got := TransactionsInCategory(transactions, "Outros", TransactionIncome)
	assert.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}
