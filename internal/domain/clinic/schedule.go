package clinic

import "github.com/ClinicFlowBR/clinicflow/internal/models"

// FindScheduleConflict procura uma alocação já existente para a mesma
// tupla (sala, dia, turno). No máximo uma alocação pode existir por tupla.
//
// Não há checagem de dupla reserva do MESMO profissional em salas
// diferentes no mesmo dia/turno: comportamento aceito, não corrigir aqui.
func FindScheduleConflict(allocations []models.Allocation, roomID, day, shift string) *models.Allocation {
	for i := range allocations {
		a := &allocations[i]
		if a.RoomID == roomID && a.Day == day && a.Shift == shift {
			return a
		}
	}
	return nil
}
