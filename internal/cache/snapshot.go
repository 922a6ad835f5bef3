package cache

import "github.com/ClinicFlowBR/clinicflow/internal/models"

// Snapshot é o espelho em memória das coleções do servidor.
type Snapshot struct {
	Users         []models.User
	Rooms         []models.Room
	Allocations   []models.Allocation
	Inventory     []models.InventoryItem
	Loans         []models.Loan
	Payments      []models.Payment
	Patients      []models.Patient
	Events        []models.ClinicEvent
	Registrations []models.EventRegistration
	Documents     []models.Document
	Transactions  []models.FinancialTransaction
	Categories    []models.FinancialCategory
	Settings      models.SystemSettings
}

func (s Snapshot) UserByID(id string) *models.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

func (s Snapshot) RoomByID(id string) *models.Room {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return &s.Rooms[i]
		}
	}
	return nil
}

func (s Snapshot) AllocationByID(id string) *models.Allocation {
	for i := range s.Allocations {
		if s.Allocations[i].ID == id {
			return &s.Allocations[i]
		}
	}
	return nil
}

func (s Snapshot) ItemByID(id string) *models.InventoryItem {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			return &s.Inventory[i]
		}
	}
	return nil
}

func (s Snapshot) ItemByName(name string) *models.InventoryItem {
	for i := range s.Inventory {
		if s.Inventory[i].Name == name {
			return &s.Inventory[i]
		}
	}
	return nil
}

func (s Snapshot) LoanByID(id string) *models.Loan {
	for i := range s.Loans {
		if s.Loans[i].ID == id {
			return &s.Loans[i]
		}
	}
	return nil
}

func (s Snapshot) PaymentByID(id string) *models.Payment {
	for i := range s.Payments {
		if s.Payments[i].ID == id {
			return &s.Payments[i]
		}
	}
	return nil
}

func (s Snapshot) EventByID(id string) *models.ClinicEvent {
	for i := range s.Events {
		if s.Events[i].ID == id {
			return &s.Events[i]
		}
	}
	return nil
}

func (s Snapshot) RegistrationByID(id string) *models.EventRegistration {
	for i := range s.Registrations {
		if s.Registrations[i].ID == id {
			return &s.Registrations[i]
		}
	}
	return nil
}

func (s Snapshot) DocumentByID(id string) *models.Document {
	for i := range s.Documents {
		if s.Documents[i].ID == id {
			return &s.Documents[i]
		}
	}
	return nil
}

func (s Snapshot) CategoryByID(id string) *models.FinancialCategory {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}
