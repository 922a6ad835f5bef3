package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
	"github.com/ClinicFlowBR/clinicflow/internal/httpresp"
	"github.com/ClinicFlowBR/clinicflow/internal/middleware"
	"github.com/ClinicFlowBR/clinicflow/internal/notify"
	"github.com/ClinicFlowBR/clinicflow/internal/timezone"
)

type NotificationHandler struct {
	counter *notify.Counter
}

func NewNotificationHandler(counter *notify.Counter) *NotificationHandler {
	return &NotificationHandler{counter: counter}
}

// Counts devolve os contadores de não lidos do usuário autenticado.
func (h *NotificationHandler) Counts(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	counts, err := h.counter.Unread(c.Request.Context(), user)
	if err != nil {
		httperr.Internal(c, "unread_counts_failed", "Erro ao calcular notificações.")
		return
	}

	httpresp.OK(c, counts)
}

// MarkRead avança a marca d'água do tipo visitado para agora.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	kind := c.Param("kind")
	if err := h.counter.MarkRead(c.Request.Context(), user, kind, timezone.Now()); err != nil {
		httperr.BadRequest(c, "invalid_kind", "Tipo de notificação desconhecido.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "marked"})
}
