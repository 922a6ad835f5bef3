package clinic

import "github.com/ClinicFlowBR/clinicflow/internal/models"

// Categoria sentinela para transações cuja categoria foi apagada
// ou nunca foi informada.
const OrphanCategory = "Pendente"

// Categorias padrão usadas como fallback quando a coleção remota volta
// vazia. Existem só em memória; nunca são gravadas automaticamente.

var DefaultIncomeCategories = []string{
	"Consultas", "Procedimentos", "Aluguel de Sala", "Venda de Produtos", "Outros",
}

var DefaultExpenseCategories = []string{
	"Aluguel do Imóvel", "Energia Elétrica", "Água e Esgoto", "Internet/Telefone",
	"Limpeza", "Manutenção Predial", "Salários/Colaboradores", "Impostos",
	"Marketing", "Materiais de Escritório", "Outros",
}

// DefaultCategories monta o conjunto inicial de categorias em memória.
// Os ids levam um prefixo fixo para nunca colidirem com linhas reais.
func DefaultCategories() []models.FinancialCategory {
	out := make([]models.FinancialCategory, 0, len(DefaultIncomeCategories)+len(DefaultExpenseCategories))
	for i, name := range DefaultIncomeCategories {
		out = append(out, models.FinancialCategory{
			ID:   defaultCategoryID("income", i),
			Name: name,
			Type: TransactionIncome,
		})
	}
	for i, name := range DefaultExpenseCategories {
		out = append(out, models.FinancialCategory{
			ID:   defaultCategoryID("expense", i),
			Name: name,
			Type: TransactionExpense,
		})
	}
	return out
}

func defaultCategoryID(kind string, i int) string {
	return "default-" + kind + "-" + string(rune('a'+i))
}

// TransactionsInCategory filtra as transações que referenciam a categoria
// pelo nome, restritas ao mesmo tipo (INCOME/EXPENSE).
func TransactionsInCategory(transactions []models.FinancialTransaction, name, transactionType string) []models.FinancialTransaction {
	var out []models.FinancialTransaction
	for _, t := range transactions {
		if t.Category == name && t.Type == transactionType {
			out = append(out, t)
		}
	}
	return out
}
