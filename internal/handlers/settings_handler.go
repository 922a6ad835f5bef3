package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ClinicFlowBR/clinicflow/internal/audit"
	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/httpresp"
	"github.com/ClinicFlowBR/clinicflow/internal/storage"
)

type SettingsHandler struct {
	store    clinic.Store
	cache    *cache.Cache
	audit    *audit.Dispatcher
	uploader *storage.Uploader
}

func NewSettingsHandler(store clinic.Store, c *cache.Cache, dispatcher *audit.Dispatcher, uploader *storage.Uploader) *SettingsHandler {
	return &SettingsHandler{store: store, cache: c, audit: dispatcher, uploader: uploader}
}

type SettingsRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	snap := h.cache.Snapshot()
	httpresp.OK(c, snap.Settings)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	snap := h.cache.Snapshot()
	updated := snap.Settings
	updated.Name = strings.TrimSpace(req.Name)

	if err := h.store.Settings().Upsert(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID: actorID(c),
		Action: "settings_updated",
		Entity: "system_settings",
	})

	httpresp.OK(c, updated)
}

func (h *SettingsHandler) UploadLogo(c *gin.Context) {
	file, _, err := c.Request.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_logo", "Arquivo 'logo' ausente.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, 10<<20))
	if err != nil {
		httperr.BadRequest(c, "invalid_logo", "Erro ao ler o arquivo.")
		return
	}

	url, err := h.uploader.UploadClinicLogo(c.Request.Context(), data)
	if err != nil {
		httperr.Internal(c, "logo_upload_failed", "Erro ao enviar o logo.")
		return
	}

	snap := h.cache.Snapshot()
	updated := snap.Settings
	updated.LogoURL = url

	if err := h.store.Settings().Upsert(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	httpresp.OK(c, gin.H{"logoUrl": url})
}
