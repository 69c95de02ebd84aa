package models

import "time"

// MachineStatus represents the possible states of a machine
type MachineStatus string

const (
	MachineStatusAvailable   MachineStatus = "available"
	MachineStatusBusy        MachineStatus = "busy"
	MachineStatusMaintenance MachineStatus = "maintenance"
	MachineStatusOffline     MachineStatus = "offline"
)

// Machine represents a physical production unit on the shop floor.
// CurrentOrder is set to the occupying order's ID exactly while the
// machine is busy; status transitions between available and busy are
// driven by the scheduling engine, never by callers directly.
type Machine struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            string           `json:"type"`
	Status          MachineStatus    `json:"status"`
	Capabilities    []ClothingType   `json:"capabilities"`
	CurrentOrder    string           `json:"current_order,omitempty"`
	Efficiency      int              `json:"efficiency"`
	MaintenanceDate time.Time        `json:"maintenance_date"`
	Location        string           `json:"location"`
	DescriptionTags []DescriptionTag `json:"description_tags,omitempty"`
}

// CanProduce reports whether the machine's capability set contains the
// given clothing type.
func (m *Machine) CanProduce(clothingTypeID string) bool {
	for _, c := range m.Capabilities {
		if c.ID == clothingTypeID {
			return true
		}
	}
	return false
}
