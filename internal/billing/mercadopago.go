package billing

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

// ======================================================
// Cobrança via Mercado Pago
// ======================================================

// Checkout gera links de pagamento para cobranças pendentes. O link não
// liquida nada sozinho: a baixa continua sendo feita pela confirmação
// manual do administrador.
type Checkout struct {
	client preference.Client
}

func NewCheckout(accessToken string) (*Checkout, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &Checkout{client: preference.NewClient(cfg)}, nil
}

// LinkFor cria uma preferência de checkout para a cobrança e devolve a
// URL de pagamento. ExternalReference carrega o id da cobrança para
// conciliação posterior.
func (c *Checkout) LinkFor(ctx context.Context, payment *models.Payment) (string, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      fmt.Sprintf("Cobrança ClinicFlow (vencimento %s)", payment.DueDate),
				Quantity:   1,
				UnitPrice:  payment.Amount,
				CurrencyID: "BRL",
			},
		},
		ExternalReference: payment.ID,
	}

	resp, err := c.client.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}
	return resp.InitPoint, nil
}
