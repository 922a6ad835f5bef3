package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/httpresp"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"github.com/ClinicFlowBR/clinicflow/internal/timezone"
	"github.com/ClinicFlowBR/clinicflow/internal/usecase/financial"
)

type FinancialHandler struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher

	renameCategory *financial.RenameCategory
	deleteCategory *financial.DeleteCategory
	summary        *financial.Summary
}

func NewFinancialHandler(
	store clinic.Store,
	c *cache.Cache,
	dispatcher *audit.Dispatcher,
	renameCategory *financial.RenameCategory,
	deleteCategory *financial.DeleteCategory,
	summary *financial.Summary,
) *FinancialHandler {
	return &FinancialHandler{
		store:          store,
		cache:          c,
		audit:          dispatcher,
		renameCategory: renameCategory,
		deleteCategory: deleteCategory,
		summary:        summary,
	}
}

// --------- Requests ---------

type TransactionRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required"`
	Category    string  `json:"category"`
	Date        string  `json:"date" binding:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// ======================================================
// LANÇAMENTOS
// ======================================================

func (h *FinancialHandler) ListTransactions(c *gin.Context) {
	snap := h.cache.Snapshot()
	httpresp.List(c, snap.Transactions)
}

func (h *FinancialHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Type != clinic.TransactionIncome && req.Type != clinic.TransactionExpense {
		httperr.BadRequest(c, "invalid_type", "Tipo de lançamento desconhecido.")
		return
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = clinic.OrphanCategory
	}

	t := models.FinancialTransaction{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    category,
		Date:        req.Date,
		CreatedAt:   timezone.Now(),
	}

	if err := h.store.Transactions().Insert(c.Request.Context(), &t); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "transaction_created",
		Entity:   "financial_transaction",
		EntityID: &t.ID,
	})

	c.JSON(http.StatusCreated, t)
}

func (h *FinancialHandler) UpdateTransaction(c *gin.Context) {
	id := c.Param("id")

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Type != clinic.TransactionIncome && req.Type != clinic.TransactionExpense {
		httperr.BadRequest(c, "invalid_type", "Tipo de lançamento desconhecido.")
		return
	}

	snap := h.cache.Snapshot()
	var existing *models.FinancialTransaction
	for i := range snap.Transactions {
		if snap.Transactions[i].ID == id {
			existing = &snap.Transactions[i]
			break
		}
	}
	if existing == nil {
		httperr.NotFound(c, "transaction_not_found", "Lançamento não encontrado.")
		return
	}

	updated := *existing
	updated.Description = strings.TrimSpace(req.Description)
	updated.Amount = req.Amount
	updated.Type = req.Type
	updated.Category = strings.TrimSpace(req.Category)
	updated.Date = req.Date
	if updated.Category == "" {
		updated.Category = clinic.OrphanCategory
	}

	if err := h.store.Transactions().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	httpresp.OK(c, updated)
}

func (h *FinancialHandler) DeleteTransaction(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Transactions().DeleteByID(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "transaction_deleted",
		Entity:   "financial_transaction",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ======================================================
// CATEGORIAS
// ======================================================

func (h *FinancialHandler) ListCategories(c *gin.Context) {
	snap := h.cache.Snapshot()
	httpresp.List(c, snap.Categories)
}

func (h *FinancialHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Type != clinic.TransactionIncome && req.Type != clinic.TransactionExpense {
		httperr.BadRequest(c, "invalid_type", "Tipo de categoria desconhecido.")
		return
	}

	cat := models.FinancialCategory{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(req.Name),
		Type: req.Type,
	}

	if err := h.store.Categories().Insert(c.Request.Context(), &cat); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	c.JSON(http.StatusCreated, cat)
}

// RenameCategory renomeia e reetiqueta os lançamentos do mesmo tipo.
func (h *FinancialHandler) RenameCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	updated, err := h.renameCategory.Execute(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Name))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, updated)
}

// DeleteCategory remove a categoria; lançamentos dela caem em "Pendente".
func (h *FinancialHandler) DeleteCategory(c *gin.Context) {
	if err := h.deleteCategory.Execute(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ======================================================
// RESUMO MENSAL
// ======================================================

// Summary agrega o mês inteiro em memória, sobre o cache; nenhuma
// consulta remota acontece aqui.
func (h *FinancialHandler) Summary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = timezone.Today()[:7]
	}

	httpresp.OK(c, h.summary.Execute(month))
}
