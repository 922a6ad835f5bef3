package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/ClinicFlowBR/clinicflow/internal/cache"
	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// Tipos de notificação com marca d'água própria.
const (
	KindDocuments = "documents"
	KindPayments  = "payments"
)

// WatermarkStore persiste, por usuário e por tipo, o instante da última
// visita. A contagem de não lidos é DERIVADA: registros visíveis criados
// estritamente depois da marca. Nada é gravado nos registros em si.
type WatermarkStore interface {
	Get(ctx context.Context, kind, userID string) (time.Time, error)
	Set(ctx context.Context, kind, userID string, t time.Time) error
}

func watermarkKey(kind, userID string) string {
	return fmt.Sprintf("%s_%s", kind, userID)
}

// ======================================================
// Contadores
// ======================================================

type UnreadCounts struct {
	Documents int `json:"documents"`
	Payments  int `json:"payments"`
}

type Counter struct {
	cache      *cache.Cache
	watermarks WatermarkStore
}

func NewCounter(c *cache.Cache, w WatermarkStore) *Counter {
	return &Counter{cache: c, watermarks: w}
}

// Unread calcula os contadores de um profissional. Marca ausente conta
// tudo que está no escopo de visibilidade como não lido.
func (c *Counter) Unread(ctx context.Context, user *models.User) (UnreadCounts, error) {
	snap := c.cache.Snapshot()

	var out UnreadCounts

	docsSince, err := c.watermarks.Get(ctx, KindDocuments, user.ID)
	if err != nil {
		return out, err
	}
	for _, d := range snap.Documents {
		if !documentVisible(&d, user.ID) {
			continue
		}
		if d.CreatedAt.After(docsSince) {
			out.Documents++
		}
	}

	paySince, err := c.watermarks.Get(ctx, KindPayments, user.ID)
	if err != nil {
		return out, err
	}
	for _, p := range snap.Payments {
		if p.UserID != user.ID {
			continue
		}
		if p.CreatedAt.After(paySince) {
			out.Payments++
		}
	}

	return out, nil
}

// MarkRead avança a marca d'água do tipo para "agora" e persiste na hora;
// o contador correspondente zera imediatamente.
func (c *Counter) MarkRead(ctx context.Context, user *models.User, kind string, now time.Time) error {
	if kind != KindDocuments && kind != KindPayments {
		return fmt.Errorf("unknown notification kind %q", kind)
	}
	return c.watermarks.Set(ctx, kind, user.ID, now)
}

func documentVisible(d *models.Document, userID string) bool {
	return d.TargetUserID == nil || *d.TargetUserID == userID
}
