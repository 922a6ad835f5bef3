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
)

// Pacientes são sempre escopados ao profissional dono; não há visão
// global nem para o admin.
type PatientHandler struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewPatientHandler(store clinic.Store, c *cache.Cache, dispatcher *audit.Dispatcher) *PatientHandler {
	return &PatientHandler{store: store, cache: c, audit: dispatcher}
}

type PatientRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	ParentName    string  `json:"parentName"`
	ParentContact string  `json:"parentContact"`
	AllocationID  *string `json:"allocationId"`
}

func (h *PatientHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	snap := h.cache.Snapshot()
	mine := make([]models.Patient, 0)
	for _, p := range snap.Patients {
		if p.ProfessionalID != user.ID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		mine = append(mine, p)
	}

	httpresp.List(c, mine)
}

func (h *PatientHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.AllocationID != nil {
		if !h.ownsAllocation(user.ID, *req.AllocationID) {
			httperr.BadRequest(c, "invalid_allocation", "Alocação não pertence ao profissional.")
			return
		}
	}

	p := models.Patient{
		ID:             uuid.NewString(),
		ProfessionalID: user.ID,
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		ParentName:     req.ParentName,
		ParentContact:  req.ParentContact,
		AllocationID:   req.AllocationID,
	}

	if err := h.store.Patients().Insert(c.Request.Context(), &p); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "patient_created",
		Entity:   "patient",
		EntityID: &p.ID,
	})

	c.JSON(http.StatusCreated, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	existing := h.ownPatient(c, user.ID)
	if existing == nil {
		return
	}

	if req.AllocationID != nil && !h.ownsAllocation(user.ID, *req.AllocationID) {
		httperr.BadRequest(c, "invalid_allocation", "Alocação não pertence ao profissional.")
		return
	}

	updated := *existing
	updated.Name = strings.TrimSpace(req.Name)
	updated.Email = strings.ToLower(strings.TrimSpace(req.Email))
	updated.Phone = req.Phone
	updated.ParentName = req.ParentName
	updated.ParentContact = req.ParentContact
	updated.AllocationID = req.AllocationID

	if err := h.store.Patients().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	httpresp.OK(c, updated)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	existing := h.ownPatient(c, user.ID)
	if existing == nil {
		return
	}

	if err := h.store.Patients().DeleteByID(c.Request.Context(), existing.ID); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "patient_deleted",
		Entity:   "patient",
		EntityID: &existing.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ownPatient resolve o paciente da rota e corta a requisição quando ele
// não existe ou pertence a outro profissional.
func (h *PatientHandler) ownPatient(c *gin.Context, professionalID string) *models.Patient {
	id := c.Param("id")

	snap := h.cache.Snapshot()
	for i := range snap.Patients {
		if snap.Patients[i].ID == id {
			if snap.Patients[i].ProfessionalID != professionalID {
				httperr.Forbidden(c, "not_own_patient", "Paciente de outro profissional.")
				return nil
			}
			return &snap.Patients[i]
		}
	}

	httperr.NotFound(c, "patient_not_found", "Paciente não encontrado.")
	return nil
}

func (h *PatientHandler) ownsAllocation(professionalID, allocationID string) bool {
	snap := h.cache.Snapshot()
	a := snap.AllocationByID(allocationID)
	return a != nil && a.UserID == professionalID
}
