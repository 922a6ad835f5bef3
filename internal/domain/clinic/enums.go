package clinic

// ===============================
// Perfis
// ===============================

const (
	RoleAdmin        = "ADMIN"
	RoleProfessional = "PROFESSIONAL"
)

// ===============================
// Grade fixa de alocação: 6 dias x 3 turnos
// ===============================

// Os valores são as strings de exibição gravadas no banco,
// idênticas às usadas pelos dados existentes.

type DayOfWeek string

const (
	DayMonday    DayOfWeek = "Segunda-feira"
	DayTuesday   DayOfWeek = "Terça-feira"
	DayWednesday DayOfWeek = "Quarta-feira"
	DayThursday  DayOfWeek = "Quinta-feira"
	DayFriday    DayOfWeek = "Sexta-feira"
	DaySaturday  DayOfWeek = "Sábado"
)

var DaysOfWeek = []DayOfWeek{
	DayMonday,
	DayTuesday,
	DayWednesday,
	DayThursday,
	DayFriday,
	DaySaturday,
}

type Shift string

const (
	ShiftMorning   Shift = "Manhã (08h-12h)"
	ShiftAfternoon Shift = "Tarde (13h-17h)"
	ShiftEvening   Shift = "Noite (18h-22h)"
)

var Shifts = []Shift{
	ShiftMorning,
	ShiftAfternoon,
	ShiftEvening,
}

func IsValidDay(d string) bool {
	for _, day := range DaysOfWeek {
		if string(day) == d {
			return true
		}
	}
	return false
}

func IsValidShift(s string) bool {
	for _, sh := range Shifts {
		if string(sh) == s {
			return true
		}
	}
	return false
}

// ===============================
// Status
// ===============================

const (
	LoanActive   = "ACTIVE"
	LoanReturned = "RETURNED"
)

const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

const (
	RegistrationConfirmed = "CONFIRMED"
	RegistrationRejected  = "REJECTED"
)

type EventModality string

const (
	ModalityPresential EventModality = "PRESENTIAL"
	ModalityOnline     EventModality = "ONLINE"
)

const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)
