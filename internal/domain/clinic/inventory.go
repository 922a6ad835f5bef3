package clinic

import "github.com/ClinicFlowBR/clinicflow/internal/models"

// ActiveLoanQuantity soma as quantidades dos empréstimos ATIVOS que
// referenciam o item pelo nome.
func ActiveLoanQuantity(loans []models.Loan, itemName string) int {
	total := 0
	for _, l := range loans {
		if l.ItemName == itemName && l.Status == LoanActive {
			total += l.Quantity
		}
	}
	return total
}

// RecomputeAvailable deriva a quantidade disponível de um item a partir
// do total e dos empréstimos ativos, com piso em zero:
//
//	available = total - Σ(quantity dos empréstimos ATIVOS do item)
func RecomputeAvailable(totalQuantity int, loans []models.Loan, itemName string) int {
	available := totalQuantity - ActiveLoanQuantity(loans, itemName)
	if available < 0 {
		return 0
	}
	return available
}
