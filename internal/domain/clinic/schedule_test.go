package clinic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ClinicFlowBR/clinicflow/internal/models"
)

func TestFindScheduleConflict(t *testing.T) {
	existing := []models.Allocation{
		{ID: "a1", UserID: "u1", RoomID: "sala-1", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"},
		{ID: "a2", UserID: "u2", RoomID: "sala-2", Day: "Segunda-feira", Shift: "Manhã (08h-12h)"},
	}

	tests := []struct {
		name      string
		roomID    string
		day       string
		shift     string
		wantTaken bool
	}{
		{name: "mesma sala, mesmo dia e turno", roomID: "sala-1", day: "Segunda-feira", shift: "Manhã (08h-12h)", wantTaken: true},
		{name: "mesma sala, outro turno", roomID: "sala-1", day: "Segunda-feira", shift: "Tarde (13h-17h)", wantTaken: false},
		{name: "mesma sala, outro dia", roomID: "sala-1", day: "Terça-feira", shift: "Manhã (08h-12h)", wantTaken: false},
		{name: "outra sala, mesmo horário", roomID: "sala-3", day: "Segunda-feira", shift: "Manhã (08h-12h)", wantTaken: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindScheduleConflict(existing, tt.roomID, tt.day, tt.shift)
			if tt.wantTaken {
				assert.NotNil(t, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

// O mesmo profissional pode ocupar duas salas no mesmo dia/turno: a
// unicidade cobre apenas a sala.
func TestFindScheduleConflict_ProfessionalDoubleBookingAllowed(t *testing.T) {
	existing := []models.Allocation{
		{ID: "a1", UserID: "u1", RoomID: "sala-1", Day: "Quarta-feira", Shift: "Noite (18h-22h)"},
	}

	got := FindScheduleConflict(existing, "sala-2", "Quarta-feira", "Noite (18h-22h)")
	assert.Nil(t, got)
}

func TestIsValidDayAndShift(t *testing.T) {
	assert.True(t, IsValidDay("Sábado"))
	assert.False(t, IsValidDay("Domingo"))
	assert.True(t, IsValidShift("Tarde (13h-17h)"))
	assert.False(t, IsValidShift("Madrugada"))
}
