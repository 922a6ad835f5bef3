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
	"github.com/ClinicFlowBR/clinicflow/internal/usecase/allocation"
)

type RoomHandler struct {
	store clinic.Store
	cache *cache.Cache
	audit *audit.Dispatcher

	deleteRoom *allocation.DeleteRoom
}

func NewRoomHandler(store clinic.Store, c *cache.Cache, dispatcher *audit.Dispatcher, deleteRoom *allocation.DeleteRoom) *RoomHandler {
	return &RoomHandler{store: store, cache: c, audit: dispatcher, deleteRoom: deleteRoom}
}

type RoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *RoomHandler) List(c *gin.Context) {
	snap := h.cache.Snapshot()
	httpresp.List(c, snap.Rooms)
}

func (h *RoomHandler) Create(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	room := models.Room{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	if err := h.store.Rooms().Insert(c.Request.Context(), &room); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "room_created",
		Entity:   "room",
		EntityID: &room.ID,
	})

	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	snap := h.cache.Snapshot()
	existing := snap.RoomByID(id)
	if existing == nil {
		httperr.NotFound(c, "room_not_found", "Sala não encontrada.")
		return
	}

	updated := *existing
	updated.Name = strings.TrimSpace(req.Name)
	updated.Description = req.Description

	if err := h.store.Rooms().Save(c.Request.Context(), &updated); err != nil {
		writeDomainError(c, err)
		return
	}

	h.cache.LoadAll(c.Request.Context())
	httpresp.OK(c, updated)
}

// Delete remove a sala e as alocações dela, em cascata sequencial.
func (h *RoomHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.deleteRoom.Execute(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
