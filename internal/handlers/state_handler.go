package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httpresp"
	"github.com/ClinicFlowBR/clinicflow/internal/middleware"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// StateHandler expõe o espelho agregado inteiro numa resposta só, do
// jeito que as telas consomem: listas completas, sem paginação.
type StateHandler struct {
	cache *cache.Cache
}

func NewStateHandler(c *cache.Cache) *StateHandler {
	return &StateHandler{cache: c}
}

type StateResponse struct {
	Users         []models.User                 `json:"users"`
	Rooms         []models.Room                 `json:"rooms"`
	Allocations   []models.Allocation           `json:"allocations"`
	Inventory     []models.InventoryItem        `json:"inventory"`
	Loans         []models.Loan                 `json:"loans"`
	Payments      []models.Payment              `json:"payments"`
	Patients      []models.Patient              `json:"patients"`
	Events        []models.ClinicEvent          `json:"events"`
	Registrations []models.EventRegistration    `json:"registrations"`
	Documents     []models.Document             `json:"documents"`
	Transactions  []models.FinancialTransaction `json:"transactions"`
	Categories    []models.FinancialCategory    `json:"categories"`
	Settings      models.SystemSettings         `json:"settings"`
}

// Get devolve o snapshot. O admin recebe tudo; o profissional recebe as
// coleções recortadas pelo escopo dele (mesmas regras das listagens).
func (h *StateHandler) Get(c *gin.Context) {
	snap := h.cache.Snapshot()
	user := middleware.CurrentUser(c)

	resp := StateResponse{
		Users:         snap.Users,
		Rooms:         snap.Rooms,
		Allocations:   snap.Allocations,
		Inventory:     snap.Inventory,
		Loans:         snap.Loans,
		Payments:      snap.Payments,
		Patients:      snap.Patients,
		Events:        snap.Events,
		Registrations: snap.Registrations,
		Documents:     snap.Documents,
		Transactions:  snap.Transactions,
		Categories:    snap.Categories,
		Settings:      snap.Settings,
	}

	if user != nil && user.Role == clinic.RoleProfessional {
		resp.Allocations = filterBy(snap.Allocations, func(a models.Allocation) bool { return a.UserID == user.ID })
		resp.Loans = filterBy(snap.Loans, func(l models.Loan) bool { return l.UserID == user.ID })
		resp.Payments = filterBy(snap.Payments, func(p models.Payment) bool { return p.UserID == user.ID })
		resp.Patients = filterBy(snap.Patients, func(p models.Patient) bool { return p.ProfessionalID == user.ID })
		resp.Documents = filterBy(snap.Documents, func(d models.Document) bool {
			return d.TargetUserID == nil || *d.TargetUserID == user.ID
		})

		// Livro-caixa e inscrições são telas de admin
		resp.Transactions = []models.FinancialTransaction{}
		resp.Registrations = []models.EventRegistration{}
	}

	httpresp.OK(c, resp)
}

func filterBy[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
