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
	"github.com/ClinicFlowBR/clinicflow/internal/middleware"
	"github.com/ClinicFlowBR/clinicflow/internal/storage"
	"github.com/ClinicFlowBR/clinicflow/internal/usecase/user"
	"github.com/ClinicFlowBR/clinicflow/internal/validators"
)

type UserHandler struct {
	store    clinic.Store
	cache    *cache.Cache
	audit    *audit.Dispatcher
	uploader *storage.Uploader

	provision     *user.Provision
	toggle        *user.ToggleStatus
	updateProfile *user.UpdateProfile
}

func NewUserHandler(
	store clinic.Store,
	c *cache.Cache,
	dispatcher *audit.Dispatcher,
	uploader *storage.Uploader,
	provision *user.Provision,
	toggle *user.ToggleStatus,
	updateProfile *user.UpdateProfile,
) *UserHandler {
	return &UserHandler{
		store:         store,
		cache:         c,
		audit:         dispatcher,
		uploader:      uploader,
		provision:     provision,
		toggle:        toggle,
		updateProfile: updateProfile,
	}
}

// ======================================================
// LIST (ADMIN)
// ======================================================
func (h *UserHandler) List(c *gin.Context) {
	snap := h.cache.Snapshot()
	httpresp.List(c, snap.Users)
}

// ======================================================
// PROVISIONAMENTO (ADMIN)
// ======================================================

type ProvisionUserRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req ProvisionUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Domínio de e-mail inexistente.")
		return
	}

	out, err := h.provision.Execute(c.Request.Context(), user.ProvisionInput{
		Name:      req.Name,
		Email:     email,
		Role:      req.Role,
		Address:   req.Address,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	// A senha temporária aparece UMA vez, aqui; não fica armazenada.
	c.JSON(http.StatusCreated, out)
}

// ======================================================
// UPDATE (ADMIN)
// ======================================================

type UpdateUserRequest struct {
	Name      string `json:"name" binding:"required"`
	Role      string `json:"role" binding:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Role != clinic.RoleAdmin && req.Role != clinic.RoleProfessional {
		httperr.BadRequest(c, "invalid_role", "Papel desconhecido.")
		return
	}

	snap := h.cache.Snapshot()
	existing := snap.UserByID(id)
	if existing == nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	updated := *existing
	updated.Name = req.Name
	updated.Role = req.Role
	updated.Address = req.Address
	updated.Phone = req.Phone
	updated.Specialty = req.Specialty

	if err := h.store.Users().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &updated.ID,
	})

	httpresp.OK(c, updated)
}

// ======================================================
// PERFIL PRÓPRIO
// ======================================================

// Sem campo de papel: qualquer "role" no corpo é descartado no bind.
type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.updateProfile.Execute(c.Request.Context(), actor.ID, user.UpdateProfileInput{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, updated)
}

// ======================================================
// ATIVAR / DESATIVAR (ADMIN)
// ======================================================
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	updated, err := h.toggle.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	httpresp.OK(c, updated)
}

// ======================================================
// FOTO DE PERFIL
// ======================================================
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	id := c.Param("id")

	// Profissional só troca a própria foto; admin troca qualquer uma.
	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}
	if actor.Role != clinic.RoleAdmin && actor.ID != id {
		httperr.Forbidden(c, "not_own_profile", "Sem permissão para alterar esta foto.")
		return
	}

	snap := h.cache.Snapshot()
	existing := snap.UserByID(id)
	if existing == nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Arquivo 'photo' ausente.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, 10<<20))
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Erro ao ler o arquivo.")
		return
	}

	url, err := h.uploader.UploadUserPhoto(c.Request.Context(), id, data)
	if err != nil {
		httperr.Internal(c, "photo_upload_failed", "Erro ao enviar a foto.")
		return
	}

	updated := *existing
	updated.PhotoURL = url
	if err := h.store.Users().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	httpresp.OK(c, gin.H{"photoUrl": url})
}

// actorID extrai o id do usuário autenticado para o log de auditoria.
func actorID(c *gin.Context) *string {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(string)
	if !ok {
		return nil
	}
	return &id
}
