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
	"github.com/ClinicFlowBR/clinicflow/internal/timezone"
)

type DocumentHandler struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewDocumentHandler(store clinic.Store, c *cache.Cache, dispatcher *audit.Dispatcher) *DocumentHandler {
	return &DocumentHandler{store: store, cache: c, audit: dispatcher}
}

type DocumentRequest struct {
	Title   string `json:"title" binding:"required"`
	LinkURL string `json:"linkUrl" binding:"required,url"`

	// nil = visível para todos os profissionais
	TargetUserID *string `json:"targetUserId"`
}

// List devolve tudo para o admin; para o profissional, só os documentos
// gerais e os endereçados a ele.
func (h *DocumentHandler) List(c *gin.Context) {
	snap := h.cache.Snapshot()

	user := middleware.CurrentUser(c)
	if user != nil && user.Role == clinic.RoleProfessional {
		visible := make([]models.Document, 0)
		for _, d := range snap.Documents {
			if d.TargetUserID == nil || *d.TargetUserID == user.ID {
				visible = append(visible, d)
			}
		}
		httpresp.List(c, visible)
		return
	}

	httpresp.List(c, snap.Documents)
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	doc := models.Document{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(req.Title),
		LinkURL:      req.LinkURL,
		TargetUserID: req.TargetUserID,
		CreatedAt:    timezone.Now(),
	}

	if err := h.store.Documents().Insert(c.Request.Context(), &doc); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "document_created",
		Entity:   "document",
		EntityID: &doc.ID,
	})

	c.JSON(http.StatusCreated, doc)
}

// Update mantém o createdAt original: editar um documento não o torna
// "não lido" de novo para quem já marcou as notificações.
func (h *DocumentHandler) Update(c *gin.Context) {
	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	snap := h.cache.Snapshot()
	doc := snap.DocumentByID(c.Param("id"))
	if doc == nil {
		httperr.NotFound(c, "document_not_found", "Documento não encontrado.")
		return
	}

	updated := *doc
	updated.Title = strings.TrimSpace(req.Title)
	updated.LinkURL = req.LinkURL
	updated.TargetUserID = req.TargetUserID

	if err := h.store.Documents().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "document_updated",
		Entity:   "document",
		EntityID: &updated.ID,
	})

	httpresp.OK(c, updated)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Documents().DeleteByID(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "document_deleted",
		Entity:   "document",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
