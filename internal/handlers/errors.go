package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ClinicFlowBR/clinicflow/internal/domain/clinic"
	"github.com/ClinicFlowBR/clinicflow/internal/httperr"
)

// writeDomainError traduz erros de caso de uso para HTTP: rejeições de
// invariante viram 400/409 com o código de negócio, não-encontrado vira
// 404 e o resto fica em 500.
func writeDomainError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		if strings.HasPrefix(code, "invalid_") || strings.HasPrefix(code, "missing_") {
			httperr.BadRequest(c, code, "Requisição inválida.")
			return
		}
		if strings.HasSuffix(code, "_not_found") {
			httperr.NotFound(c, code, "Registro não encontrado.")
			return
		}
		httperr.Conflict(c, code, "Operação rejeitada pelas regras de negócio.")
		return
	}

	if errors.Is(err, clinic.ErrNotFound) {
		httperr.NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}
