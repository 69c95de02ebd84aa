// Package production implements the order-machine assignment and
// production-progress simulation engine. The engine is the only writer of
// machine and order state: assignment, production start, progress ticks and
// the machine release on completion all go through it, under one lock, so
// no reader ever observes a completed order still occupying a machine.
package production

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"atelier/internal/models"
	"atelier/internal/repository"
)

// ReassignmentPolicy decides what happens when a machine is assigned to an
// order that already has one.
type ReassignmentPolicy string

const (
	// ReassignRelease releases the previously assigned machine and binds
	// the new one in a single step. This is the default.
	ReassignRelease ReassignmentPolicy = "release"
	// ReassignReject refuses the assignment while another one exists.
	ReassignReject ReassignmentPolicy = "reject"
)

// Snapshot is a consistent read of both repositories plus the derived
// stats, taken under the engine lock.
type Snapshot struct {
	Machines []models.Machine       `json:"machines"`
	Orders   []models.Order         `json:"orders"`
	Stats    models.ProductionStats `json:"stats"`
}

// Engine owns the production state machine over the machine and order
// repositories.
type Engine struct {
	mu        sync.Mutex
	machines  *repository.MachineRepository
	orders    *repository.OrderRepository
	scheduler Scheduler
	policy    ReassignmentPolicy
	rng       *rand.Rand
	now       func() time.Time

	hookMu     sync.Mutex
	onChange   []func(Snapshot)
	onTick     []func(models.Order)
	onComplete []func(models.Order)
}

// NewEngine creates an engine over the given repositories. The scheduler
// drives progress ticks; the policy governs reassignment of already
// assigned orders.
func NewEngine(machines *repository.MachineRepository, orders *repository.OrderRepository, scheduler Scheduler, policy ReassignmentPolicy) *Engine {
	if policy == "" {
		policy = ReassignRelease
	}
	return &Engine{
		machines:  machines,
		orders:    orders,
		scheduler: scheduler,
		policy:    policy,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// OnChange registers a callback invoked with a fresh snapshot after every
// mutation. Callbacks run outside the engine lock.
func (e *Engine) OnChange(fn func(Snapshot)) {
	e.hookMu.Lock()
	defer e.hookMu.Unlock()
	e.onChange = append(e.onChange, fn)
}

// OnTick registers a callback invoked with the updated order after every
// progress tick, including the completing one.
func (e *Engine) OnTick(fn func(models.Order)) {
	e.hookMu.Lock()
	defer e.hookMu.Unlock()
	e.onTick = append(e.onTick, fn)
}

// OnComplete registers a callback invoked once per order when it reaches
// completed.
func (e *Engine) OnComplete(fn func(models.Order)) {
	e.hookMu.Lock()
	defer e.hookMu.Unlock()
	e.onComplete = append(e.onComplete, fn)
}

// AddOrder validates the spec and inserts a new pending order. The
// estimated duration is the clothing type's unit time multiplied by the
// quantity.
func (e *Engine) AddOrder(spec OrderSpec) (models.Order, error) {
	if err := ValidateOrderSpec(spec, e.now()); err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		ID:                spec.OrderNumber,
		CustomerName:      spec.CustomerName,
		ClothingType:      spec.ClothingType,
		Quantity:          spec.Quantity,
		Priority:          spec.Priority,
		OrderDate:         e.now(),
		DueDate:           spec.DueDate,
		Status:            models.OrderStatusPending,
		EstimatedDuration: spec.ClothingType.EstimatedTime * spec.Quantity,
		CompletedQuantity: 0,
		DescriptionTags:   spec.DescriptionTags,
	}

	e.mu.Lock()
	err := e.orders.Add(order)
	e.mu.Unlock()
	if err != nil {
		return models.Order{}, err
	}

	e.notifyChange()
	return order, nil
}

// AddMachine validates the spec and inserts a new available machine. A
// fresh ID is generated when the spec does not carry one.
func (e *Engine) AddMachine(spec MachineSpec) (models.Machine, error) {
	if err := ValidateMachineSpec(spec); err != nil {
		return models.Machine{}, err
	}

	machine := models.Machine{
		ID:              spec.ID,
		Name:            spec.Name,
		Type:            spec.Type,
		Status:          models.MachineStatusAvailable,
		Capabilities:    spec.Capabilities,
		Efficiency:      spec.Efficiency,
		MaintenanceDate: spec.MaintenanceDate,
		Location:        spec.Location,
		DescriptionTags: spec.DescriptionTags,
	}
	if machine.ID == "" {
		machine.ID = "machine-" + uuid.NewString()
	}

	e.mu.Lock()
	err := e.machines.Add(machine)
	e.mu.Unlock()
	if err != nil {
		return models.Machine{}, err
	}

	e.notifyChange()
	return machine, nil
}

// UpdateMachine replaces the caller-editable fields of an existing
// machine. Status and current order are engine-owned and preserved.
func (e *Engine) UpdateMachine(id string, spec MachineSpec) (models.Machine, error) {
	spec.ID = id
	if err := ValidateMachineSpec(spec); err != nil {
		return models.Machine{}, err
	}

	e.mu.Lock()
	machine, err := e.machines.Get(id)
	if err != nil {
		e.mu.Unlock()
		return models.Machine{}, err
	}

	machine.Name = spec.Name
	machine.Type = spec.Type
	machine.Location = spec.Location
	machine.Efficiency = spec.Efficiency
	machine.MaintenanceDate = spec.MaintenanceDate
	machine.Capabilities = spec.Capabilities
	machine.DescriptionTags = spec.DescriptionTags

	err = e.machines.Update(machine)
	e.mu.Unlock()
	if err != nil {
		return models.Machine{}, err
	}

	e.notifyChange()
	return machine, nil
}

// DeleteMachine removes a machine. A machine occupied by an order cannot
// be deleted.
func (e *Engine) DeleteMachine(id string) error {
	e.mu.Lock()
	machine, err := e.machines.Get(id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if machine.Status == models.MachineStatusBusy {
		e.mu.Unlock()
		return fmt.Errorf("machine %q: %w", id, ErrMachineBusy)
	}
	err = e.machines.Delete(id)
	e.mu.Unlock()
	if err != nil {
		return err
	}

	e.notifyChange()
	return nil
}

// AssignMachineToOrder binds a machine to an order: the machine becomes
// busy holding the order ID, the order records its assigned machine. The
// order stays pending until production is explicitly started. Assigning
// the same pair twice is a no-op. Compatibility is not checked here; the
// caller is expected to pick from CompatibleAvailableMachines.
func (e *Engine) AssignMachineToOrder(machineID, orderID string) error {
	e.mu.Lock()

	machine, err := e.machines.Get(machineID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	order, err := e.orders.Get(orderID)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	if order.AssignedMachine == machineID && machine.CurrentOrder == orderID {
		e.mu.Unlock()
		return nil
	}

	if machine.CurrentOrder != "" && machine.CurrentOrder != orderID {
		e.mu.Unlock()
		return fmt.Errorf("machine %q holds order %q: %w", machineID, machine.CurrentOrder, ErrMachineBusy)
	}

	if order.AssignedMachine != "" && order.AssignedMachine != machineID {
		if e.policy == ReassignReject {
			e.mu.Unlock()
			return fmt.Errorf("order %q is assigned to machine %q: %w", orderID, order.AssignedMachine, ErrOrderAlreadyAssigned)
		}
		// Release policy: free the previous machine before binding the
		// new one, in the same critical section.
		if previous, err := e.machines.Get(order.AssignedMachine); err == nil && previous.CurrentOrder == orderID {
			previous.Status = models.MachineStatusAvailable
			previous.CurrentOrder = ""
			if err := e.machines.Update(previous); err != nil {
				e.mu.Unlock()
				return err
			}
		}
	}

	machine.Status = models.MachineStatusBusy
	machine.CurrentOrder = orderID
	order.AssignedMachine = machineID

	if err := e.machines.Update(machine); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := e.orders.Update(order); err != nil {
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	e.notifyChange()
	return nil
}

// StartProduction moves a pending, assigned order into production and
// schedules its progress tick sequence.
func (e *Engine) StartProduction(orderID string) error {
	e.mu.Lock()
	order, err := e.orders.Get(orderID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if order.Status != models.OrderStatusPending {
		e.mu.Unlock()
		return fmt.Errorf("order %q is %s: %w", orderID, order.Status, ErrOrderNotPending)
	}
	if order.AssignedMachine == "" {
		e.mu.Unlock()
		return fmt.Errorf("order %q: %w", orderID, ErrNoAssignedMachine)
	}

	order.Status = models.OrderStatusInProduction
	err = e.orders.Update(order)
	e.mu.Unlock()
	if err != nil {
		return err
	}

	e.notifyChange()
	e.scheduler.Schedule(orderID, func() bool { return e.tick(orderID) })
	return nil
}

// ResumeInProduction schedules tick sequences for every order already in
// production, and returns how many were resumed. Called once at startup so
// seeded mid-production orders keep progressing.
func (e *Engine) ResumeInProduction() int {
	resumed := 0
	for _, order := range e.Orders() {
		if order.Status == models.OrderStatusInProduction {
			orderID := order.ID
			e.scheduler.Schedule(orderID, func() bool { return e.tick(orderID) })
			resumed++
		}
	}
	return resumed
}

// tick applies one progress increment to the order. It returns false when
// the sequence must stop: the order completed, left production by outside
// action, or disappeared. The completing tick releases the occupying
// machine in the same critical section.
func (e *Engine) tick(orderID string) bool {
	e.mu.Lock()

	order, err := e.orders.Get(orderID)
	if err != nil {
		e.mu.Unlock()
		log.Printf("Stopping simulation for vanished order %s: %v", orderID, err)
		return false
	}
	if order.Status != models.OrderStatusInProduction {
		e.mu.Unlock()
		log.Printf("Stopping simulation for order %s: status is %s", orderID, order.Status)
		return false
	}

	increment := e.rng.Intn(3) + 1
	order.CompletedQuantity += increment
	if order.CompletedQuantity > order.Quantity {
		order.CompletedQuantity = order.Quantity
	}

	completed := order.CompletedQuantity >= order.Quantity
	if completed {
		order.Status = models.OrderStatusCompleted
		e.releaseMachinesHolding(orderID)
	}

	if err := e.orders.Update(order); err != nil {
		e.mu.Unlock()
		log.Printf("Stopping simulation for order %s: %v", orderID, err)
		return false
	}
	e.mu.Unlock()

	e.notifyTick(order)
	if completed {
		e.notifyComplete(order)
	}
	e.notifyChange()
	return !completed
}

// releaseMachinesHolding frees every machine whose current order is
// orderID. Caller must hold the engine lock.
func (e *Engine) releaseMachinesHolding(orderID string) {
	for _, machine := range e.machines.List() {
		if machine.CurrentOrder == orderID {
			machine.Status = models.MachineStatusAvailable
			machine.CurrentOrder = ""
			if err := e.machines.Update(machine); err != nil {
				log.Printf("Failed to release machine %s: %v", machine.ID, err)
			}
		}
	}
}

// CompatibleAvailableMachines returns the machines that are available and
// capable of producing the order's clothing type, in repository insertion
// order. No ranking is applied; the final pick is the planner's.
func (e *Engine) CompatibleAvailableMachines(orderID string) ([]models.Machine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, err := e.orders.Get(orderID)
	if err != nil {
		return nil, err
	}

	var compatible []models.Machine
	for _, machine := range e.machines.List() {
		if machine.Status != models.MachineStatusAvailable {
			continue
		}
		if machine.CanProduce(order.ClothingType.ID) {
			compatible = append(compatible, machine)
		}
	}
	return compatible, nil
}

// Machines returns a consistent snapshot of all machines.
func (e *Engine) Machines() []models.Machine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machines.List()
}

// Orders returns a consistent snapshot of all orders.
func (e *Engine) Orders() []models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.List()
}

// Order returns one order by ID.
func (e *Engine) Order(id string) (models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders.Get(id)
}

// Machine returns one machine by ID.
func (e *Engine) Machine(id string) (models.Machine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machines.Get(id)
}

// Stats recomputes the aggregate dashboard counters.
func (e *Engine) Stats() models.ProductionStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return computeStats(e.machines.List(), e.orders.List())
}

// Snapshot returns machines, orders and stats read under one lock.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	machines := e.machines.List()
	orders := e.orders.List()
	return Snapshot{
		Machines: machines,
		Orders:   orders,
		Stats:    computeStats(machines, orders),
	}
}

// Shutdown stops every running tick sequence.
func (e *Engine) Shutdown() {
	e.scheduler.StopAll()
}

func (e *Engine) notifyChange() {
	snapshot := e.Snapshot()
	e.hookMu.Lock()
	hooks := make([]func(Snapshot), len(e.onChange))
	copy(hooks, e.onChange)
	e.hookMu.Unlock()
	for _, fn := range hooks {
		fn(snapshot)
	}
}

func (e *Engine) notifyTick(order models.Order) {
	e.hookMu.Lock()
	hooks := make([]func(models.Order), len(e.onTick))
	copy(hooks, e.onTick)
	e.hookMu.Unlock()
	for _, fn := range hooks {
		fn(order)
	}
}

func (e *Engine) notifyComplete(order models.Order) {
	e.hookMu.Lock()
	hooks := make([]func(models.Order), len(e.onComplete))
	copy(hooks, e.onComplete)
	e.hookMu.Unlock()
	for _, fn := range hooks {
		fn(order)
	}
}

// NotFoundError reports whether err is a missing-entity error from the
// repositories.
func NotFoundError(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
