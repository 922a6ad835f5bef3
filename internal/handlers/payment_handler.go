package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/billing"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/httpresp"
	"github.com/ClinicFlowBR/clinicflow/internal/middleware"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"github.com/ClinicFlowBR/clinicflow/internal/timezone"
	"github.com/ClinicFlowBR/clinicflow/internal/usecase/payment"
)

type PaymentHandler struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher

	confirm  *payment.Confirm
	checkout *billing.Checkout
}

func NewPaymentHandler(
	store clinic.Store,
	c *cache.Cache,
	dispatcher *audit.Dispatcher,
	confirm *payment.Confirm,
	checkout *billing.Checkout,
) *PaymentHandler {
	return &PaymentHandler{
		store:    store,
		cache:    c,
		audit:    dispatcher,
		confirm:  confirm,
		checkout: checkout,
	}
}

type CreatePaymentRequest struct {
	UserID  string  `json:"userId" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	DueDate string  `json:"dueDate" binding:"required"`
}

type UpdatePaymentRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	DueDate string  `json:"dueDate" binding:"required"`
}

type ConfirmPaymentRequest struct {
	PaidDate string `json:"paidDate"`
}

// List devolve todas as cobranças para o admin; para o profissional,
// só as dele.
func (h *PaymentHandler) List(c *gin.Context) {
	snap := h.cache.Snapshot()

	user := middleware.CurrentUser(c)
	if user != nil && user.Role == clinic.RoleProfessional {
		mine := make([]models.Payment, 0)
		for _, p := range snap.Payments {
			if p.UserID == user.ID {
				mine = append(mine, p)
			}
		}
		httpresp.List(c, mine)
		return
	}

	httpresp.List(c, snap.Payments)
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	snap := h.cache.Snapshot()
	if snap.UserByID(req.UserID) == nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	p := models.Payment{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Status:    clinic.PaymentPending,
		CreatedAt: timezone.Now(),
	}

	if err := h.store.Payments().Insert(c.Request.Context(), &p); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "payment_created",
		Entity:   "payment",
		EntityID: &p.ID,
	})

	c.JSON(http.StatusCreated, p)
}

// Update permite ajustar valor e vencimento enquanto a cobrança está
// em aberto; cobrança paga é histórico e não muda.
func (h *PaymentHandler) Update(c *gin.Context) {
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	snap := h.cache.Snapshot()
	p := snap.PaymentByID(c.Param("id"))
	if p == nil {
		httperr.NotFound(c, "payment_not_found", "Cobrança não encontrada.")
		return
	}
	if p.Status != clinic.PaymentPending {
		httperr.Conflict(c, "payment_already_paid", "Cobrança já liquidada.")
		return
	}

	updated := *p
	updated.Amount = req.Amount
	updated.DueDate = req.DueDate

	if err := h.store.Payments().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "payment_updated",
		Entity:   "payment",
		EntityID: &updated.ID,
	})

	httpresp.OK(c, updated)
}

// Confirm dá baixa manual: PENDING -> PAID, sem volta.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req ConfirmPaymentRequest
	_ = c.ShouldBindJSON(&req)

	updated, err := h.confirm.Execute(c.Request.Context(), c.Param("id"), req.PaidDate)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, updated)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Payments().DeleteByID(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "payment_deleted",
		Entity:   "payment",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ======================================================
// LINK DE PAGAMENTO (Mercado Pago)
// ======================================================
func (h *PaymentHandler) CheckoutLink(c *gin.Context) {
	id := c.Param("id")

	snap := h.cache.Snapshot()
	p := snap.PaymentByID(id)
	if p == nil {
		httperr.NotFound(c, "payment_not_found", "Cobrança não encontrada.")
		return
	}

	// Profissional só gera link das próprias cobranças.
	user := middleware.CurrentUser(c)
	if user != nil && user.Role == clinic.RoleProfessional && p.UserID != user.ID {
		httperr.Forbidden(c, "not_own_payment", "Cobrança de outro profissional.")
		return
	}

	if p.Status != clinic.PaymentPending {
		httperr.Conflict(c, "payment_already_paid", "Cobrança já liquidada.")
		return
	}

	if h.checkout == nil {
		httperr.Internal(c, "checkout_unavailable", "Integração de pagamento não configurada.")
		return
	}

	link, err := h.checkout.LinkFor(c.Request.Context(), p)
	if err != nil {
		httperr.Internal(c, "checkout_failed", "Erro ao gerar o link de pagamento.")
		return
	}

	httpresp.OK(c, gin.H{"checkoutUrl": link})
}
