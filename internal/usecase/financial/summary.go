package financial

import (
	"sort"
	"strings"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/dto"
)

type Summary struct {
	cache *cache.Cache
}

func NewSummary(c *cache.Cache) *Summary {
	return &Summary{cache: c}
}

// Execute agrega as transações do mês (filtro por prefixo YYYY-MM da
// data) inteiramente sobre o cache: totais de entrada/saída e quebra por
// categoria, com "Pendente" aparecendo quando usado. Só leitura, nenhuma
// chamada remota.
func (uc *Summary) Execute(month string) dto.MonthlySummary {
	snap := uc.cache.Snapshot()

	out := dto.MonthlySummary{Month: month}
	byCategory := map[string]*dto.CategoryBreakdown{}

	for _, t := range snap.Transactions {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}

		name := t.Category
		if name == "" {
			name = clinic.OrphanCategory
		}
		entry := byCategory[name]
		if entry == nil {
			entry = &dto.CategoryBreakdown{Name: name}
			byCategory[name] = entry
		}

		switch t.Type {
		case clinic.TransactionIncome:
			out.Income += t.Amount
			entry.Income += t.Amount
		case clinic.TransactionExpense:
			out.Expense += t.Amount
			entry.Expense += t.Amount
		}
	}

	out.Balance = out.Income - out.Expense

	for _, entry := range byCategory {
		out.Categories = append(out.Categories, *entry)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		a, b := out.Categories[i], out.Categories[j]
		return a.Income+a.Expense > b.Income+b.Expense
	})

	return out
}
