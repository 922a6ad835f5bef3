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
	"github.com/ClinicFlowBR/clinicflow/internal/middleware"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"github.com/ClinicFlowBR/clinicflow/internal/usecase/inventory"
)

type InventoryHandler struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher

	requestLoan *inventory.RequestLoan
	returnLoan  *inventory.ReturnLoan
	updateItem  *inventory.UpdateItem
}

func NewInventoryHandler(
	store clinic.Store,
	c *cache.Cache,
	dispatcher *audit.Dispatcher,
	requestLoan *inventory.RequestLoan,
	returnLoan *inventory.ReturnLoan,
	updateItem *inventory.UpdateItem,
) *InventoryHandler {
	return &InventoryHandler{
		store:       store,
		cache:       c,
		audit:       dispatcher,
		requestLoan: requestLoan,
		returnLoan:  returnLoan,
		updateItem:  updateItem,
	}
}

// ======================================================
// ITENS
// ======================================================

type ItemRequest struct {
	Name          string `json:"name" binding:"required"`
	TotalQuantity int    `json:"totalQuantity" binding:"required,min=0"`
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	snap := h.cache.Snapshot()
	httpresp.List(c, snap.Inventory)
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	item := models.InventoryItem{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(req.Name),
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.TotalQuantity,
	}

	if err := h.store.Inventory().Insert(c.Request.Context(), &item); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "inventory_item_created",
		Entity:   "inventory_item",
		EntityID: &item.ID,
	})

	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	updated, err := h.updateItem.Execute(c.Request.Context(), inventory.UpdateItemInput{
		ID:            c.Param("id"),
		Name:          strings.TrimSpace(req.Name),
		TotalQuantity: req.TotalQuantity,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, updated)
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Inventory().DeleteByID(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "inventory_item_deleted",
		Entity:   "inventory_item",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ======================================================
// EMPRÉSTIMOS
// ======================================================

func (h *InventoryHandler) ListLoans(c *gin.Context) {
	snap := h.cache.Snapshot()

	// Profissional vê os próprios empréstimos; admin vê todos.
	user := middleware.CurrentUser(c)
	if user != nil && user.Role == clinic.RoleProfessional {
		mine := make([]models.Loan, 0)
		for _, l := range snap.Loans {
			if l.UserID == user.ID {
				mine = append(mine, l)
			}
		}
		httpresp.List(c, mine)
		return
	}

	httpresp.List(c, snap.Loans)
}

func (h *InventoryHandler) RequestLoan(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	var req struct {
		ItemID string `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	loan, err := h.requestLoan.Execute(c.Request.Context(), user.ID, req.ItemID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, loan)
}

func (h *InventoryHandler) ReturnLoan(c *gin.Context) {
	loanID := c.Param("id")

	// Devolução só pelo dono do empréstimo ou pelo admin.
	user := middleware.CurrentUser(c)
	if user != nil && user.Role == clinic.RoleProfessional {
		snap := h.cache.Snapshot()
		loan := snap.LoanByID(loanID)
		if loan != nil && loan.UserID != user.ID {
			httperr.Forbidden(c, "not_own_loan", "Empréstimo de outro profissional.")
			return
		}
	}

	loan, err := h.returnLoan.Execute(c.Request.Context(), loanID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, loan)
}
