package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httpresp"
	"github.com/ClinicFlowBR/clinicflow/internal/middleware"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
	"github.com/ClinicFlowBR/clinicflow/internal/usecase/allocation"
)

type AllocationHandler struct {
	cache *cache.Cache

	create *allocation.Create
	delete *allocation.Delete
}

func NewAllocationHandler(c *cache.Cache, create *allocation.Create, del *allocation.Delete) *AllocationHandler {
	return &AllocationHandler{cache: c, create: create, delete: del}
}

type CreateAllocationRequest struct {
	UserID string `json:"userId" binding:"required"`
	RoomID string `json:"roomId" binding:"required"`
	Day    string `json:"day" binding:"required"`
	Shift  string `json:"shift" binding:"required"`
}

// List devolve a grade completa para o admin; para o profissional,
// apenas as alocações dele.
func (h *AllocationHandler) List(c *gin.Context) {
	snap := h.cache.Snapshot()

	user := middleware.CurrentUser(c)
	if user != nil && user.Role == clinic.RoleProfessional {
		mine := make([]models.Allocation, 0)
		for _, a := range snap.Allocations {
			if a.UserID == user.ID {
				mine = append(mine, a)
			}
		}
		httpresp.List(c, mine)
		return
	}

	httpresp.List(c, snap.Allocations)
}

func (h *AllocationHandler) Create(c *gin.Context) {
	var req CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	created, err := h.create.Execute(c.Request.Context(), allocation.CreateInput{
		UserID: req.UserID,
		RoomID: req.RoomID,
		Day:    req.Day,
		Shift:  req.Shift,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *AllocationHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
