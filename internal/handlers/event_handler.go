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
	"github.com/ClinicFlowBR/clinicflow/internal/usecase/event"
)

type EventHandler struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher

	register    *event.Register
	deleteEvent *event.Delete
}

func NewEventHandler(
	store clinic.Store,
	c *cache.Cache,
	dispatcher *audit.Dispatcher,
	register *event.Register,
	deleteEvent *event.Delete,
) *EventHandler {
	return &EventHandler{
		store:       store,
		cache:       c,
		audit:       dispatcher,
		register:    register,
		deleteEvent: deleteEvent,
	}
}

// --------- Requests ---------

type EventRequest struct {
	Name     string `json:"name" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Modality string `json:"modality" binding:"required"`

	Location string `json:"location"`
	Link     string `json:"link"`

	Speaker    string `json:"speaker"`
	SpeakerBio string `json:"speakerBio"`
	Summary    string `json:"summary"`

	Spots *int `json:"spots"`

	RequiresRegistration     bool   `json:"requiresRegistration"`
	RegistrationDeadlineDate string `json:"registrationDeadlineDate"`
	RegistrationDeadlineTime string `json:"registrationDeadlineTime"`
}

type RegisterParticipantRequest struct {
	ParticipantName  string `json:"participantName" binding:"required"`
	ParticipantEmail string `json:"participantEmail" binding:"required,email"`
}

// ======================================================
// EVENTOS
// ======================================================

func (h *EventHandler) List(c *gin.Context) {
	snap := h.cache.Snapshot()
	httpresp.List(c, snap.Events)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ev := models.ClinicEvent{
		ID:                       uuid.NewString(),
		Name:                     strings.TrimSpace(req.Name),
		Date:                     req.Date,
		Time:                     req.Time,
		Modality:                 req.Modality,
		Location:                 req.Location,
		Link:                     req.Link,
		Speaker:                  req.Speaker,
		SpeakerBio:               req.SpeakerBio,
		Summary:                  req.Summary,
		Spots:                    req.Spots,
		RequiresRegistration:     req.RequiresRegistration,
		RegistrationDeadlineDate: req.RegistrationDeadlineDate,
		RegistrationDeadlineTime: req.RegistrationDeadlineTime,
	}

	if err := clinic.ValidateModality(&ev); err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.store.Events().Insert(c.Request.Context(), &ev); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "event_created",
		Entity:   "event",
		EntityID: &ev.ID,
	})

	c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	snap := h.cache.Snapshot()
	existing := snap.EventByID(id)
	if existing == nil {
		httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
		return
	}

	updated := *existing
	updated.Name = strings.TrimSpace(req.Name)
	updated.Date = req.Date
	updated.Time = req.Time
	updated.Modality = req.Modality
	updated.Location = req.Location
	updated.Link = req.Link
	updated.Speaker = req.Speaker
	updated.SpeakerBio = req.SpeakerBio
	updated.Summary = req.Summary
	updated.Spots = req.Spots
	updated.RequiresRegistration = req.RequiresRegistration
	updated.RegistrationDeadlineDate = req.RegistrationDeadlineDate
	updated.RegistrationDeadlineTime = req.RegistrationDeadlineTime

	if err := clinic.ValidateModality(&updated); err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.store.Events().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	httpresp.OK(c, updated)
}

// Delete apaga o evento e as inscrições dele, em cascata sequencial.
func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.deleteEvent.Execute(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ======================================================
// INSCRIÇÕES
// ======================================================

func (h *EventHandler) ListRegistrations(c *gin.Context) {
	eventID := c.Param("id")

	snap := h.cache.Snapshot()
	regs := make([]models.EventRegistration, 0)
	for _, r := range snap.Registrations {
		if r.EventID == eventID {
			regs = append(regs, r)
		}
	}

	httpresp.List(c, regs)
}

// Register é público: participantes externos se inscrevem sem login.
func (h *EventHandler) Register(c *gin.Context) {
	var req RegisterParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	reg, err := h.register.Execute(c.Request.Context(), event.RegisterInput{
		EventID:          c.Param("id"),
		ParticipantName:  req.ParticipantName,
		ParticipantEmail: req.ParticipantEmail,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// SetRegistrationStatus alterna CONFIRMED <-> REJECTED. Rejeitar libera
// a vaga para novas inscrições; reconfirmar NÃO revalida a capacidade.
func (h *EventHandler) SetRegistrationStatus(c *gin.Context) {
	regID := c.Param("regId")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if req.Status != clinic.RegistrationConfirmed && req.Status != clinic.RegistrationRejected {
		httperr.BadRequest(c, "invalid_status", "Status de inscrição desconhecido.")
		return
	}

	snap := h.cache.Snapshot()
	existing := snap.RegistrationByID(regID)
	if existing == nil {
		httperr.NotFound(c, "registration_not_found", "Inscrição não encontrada.")
		return
	}

	updated := *existing
	updated.Status = req.Status

	if err := h.store.Registrations().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "registration_status_changed",
		Entity:   "event_registration",
		EntityID: &updated.ID,
		Metadata: gin.H{"status": req.Status},
	})

	httpresp.OK(c, updated)
}

// SetAttendance marca presença depois do evento.
func (h *EventHandler) SetAttendance(c *gin.Context) {
	regID := c.Param("regId")

	var req struct {
		Attended bool `json:"attended"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	snap := h.cache.Snapshot()
	existing := snap.RegistrationByID(regID)
	if existing == nil {
		httperr.NotFound(c, "registration_not_found", "Inscrição não encontrada.")
		return
	}

	updated := *existing
	updated.Attended = &req.Attended

	if err := h.store.Registrations().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	httpresp.OK(c, updated)
}
