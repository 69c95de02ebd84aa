package production

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"atelier/internal/catalog"
	"atelier/internal/models"
	"atelier/internal/repository"
)

// manualScheduler records scheduled tick callbacks so tests can advance
// simulated time deterministically.
type manualScheduler struct {
	ticks     map[string]func() bool
	cancelled []string
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{ticks: make(map[string]func() bool)}
}

func (s *manualScheduler) Schedule(orderID string, tick func() bool) {
	s.ticks[orderID] = tick
}

func (s *manualScheduler) Cancel(orderID string) {
	s.cancelled = append(s.cancelled, orderID)
	delete(s.ticks, orderID)
}

func (s *manualScheduler) StopAll() {
	s.ticks = make(map[string]func() bool)
}

// fire runs one tick for the order. It mirrors the timer scheduler by
// dropping the sequence once the tick reports it is done.
func (s *manualScheduler) fire(t *testing.T, orderID string) bool {
	t.Helper()
	tick, ok := s.ticks[orderID]
	if !ok {
		t.Fatalf("no tick sequence scheduled for %s", orderID)
	}
	again := tick()
	if !again {
		delete(s.ticks, orderID)
	}
	return again
}

func (s *manualScheduler) scheduled(orderID string) bool {
	_, ok := s.ticks[orderID]
	return ok
}

func testClothingType() models.ClothingType {
	return models.ClothingType{
		ID:               "shirt-casual",
		Name:             "Casual Shirt",
		Category:         models.CategoryShirt,
		Complexity:       3,
		EstimatedTime:    45,
		RequiredMachines: []string{"sewing-basic"},
	}
}

func testMachine(id string, status models.MachineStatus) models.Machine {
	return models.Machine{
		ID:              id,
		Name:            "Machine " + id,
		Type:            "sewing-basic",
		Status:          status,
		Capabilities:    []models.ClothingType{testClothingType()},
		Efficiency:      90,
		MaintenanceDate: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		Location:        "Zone A",
	}
}

func testOrder(id string, quantity int) models.Order {
	ct := testClothingType()
	return models.Order{
		ID:                id,
		CustomerName:      "Test Customer",
		ClothingType:      ct,
		Quantity:          quantity,
		Priority:          models.PriorityMedium,
		OrderDate:         time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		DueDate:           time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:            models.OrderStatusPending,
		EstimatedDuration: ct.EstimatedTime * quantity,
	}
}

func newTestEngine(t *testing.T, policy ReassignmentPolicy, machines []models.Machine, orders []models.Order) (*Engine, *manualScheduler, *repository.OrderRepository) {
	t.Helper()
	machineRepo := repository.NewMachineRepository()
	for _, m := range machines {
		if err := machineRepo.Add(m); err != nil {
			t.Fatalf("seeding machine %s: %v", m.ID, err)
		}
	}
	orderRepo := repository.NewOrderRepository()
	for _, o := range orders {
		if err := orderRepo.Add(o); err != nil {
			t.Fatalf("seeding order %s: %v", o.ID, err)
		}
	}
	scheduler := newManualScheduler()
	engine := NewEngine(machineRepo, orderRepo, scheduler, policy)
	engine.rng = rand.New(rand.NewSource(1))
	return engine, scheduler, orderRepo
}

func TestAddOrderDefaults(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignRelease, nil, nil)
	now := time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return now }

	order, err := engine.AddOrder(OrderSpec{
		OrderNumber:  "ORD-100",
		CustomerName: "Fashion Boutique Ltd",
		ClothingType: testClothingType(),
		Quantity:     20,
		Priority:     models.PriorityHigh,
		DueDate:      now.AddDate(0, 0, 10),
	})
	if err != nil {
		t.Fatalf("AddOrder() error = %v", err)
	}

	if order.Status != models.OrderStatusPending {
		t.Errorf("Status = %s, want pending", order.Status)
	}
	if order.CompletedQuantity != 0 {
		t.Errorf("CompletedQuantity = %d, want 0", order.CompletedQuantity)
	}
	if order.EstimatedDuration != 45*20 {
		t.Errorf("EstimatedDuration = %d, want %d", order.EstimatedDuration, 45*20)
	}
	if !order.OrderDate.Equal(now) {
		t.Errorf("OrderDate = %v, want %v", order.OrderDate, now)
	}
}

func TestAddOrderValidation(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignRelease, nil, nil)
	now := time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return now }

	_, err := engine.AddOrder(OrderSpec{
		OrderNumber:  "ORD-101",
		CustomerName: "Someone",
		ClothingType: testClothingType(),
		Quantity:     0,
		Priority:     models.PriorityLow,
		DueDate:      now.AddDate(0, 0, -1),
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("AddOrder() error = %v, want *ValidationError", err)
	}

	fields := make(map[string]bool)
	for _, f := range vErr.Fields {
		fields[f.Field] = true
	}
	if !fields["quantity"] {
		t.Error("expected a field error for quantity")
	}
	if !fields["due_date"] {
		t.Error("expected a field error for due_date")
	}

	if len(engine.Orders()) != 0 {
		t.Error("rejected order must not be stored")
	}
}

func TestAddOrderDuplicateID(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignRelease, nil, []models.Order{testOrder("ORD-1", 10)})
	engine.now = func() time.Time { return time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC) }

	_, err := engine.AddOrder(OrderSpec{
		OrderNumber:  "ORD-1",
		CustomerName: "Someone",
		ClothingType: testClothingType(),
		Quantity:     5,
		Priority:     models.PriorityLow,
		DueDate:      time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, repository.ErrDuplicateID) {
		t.Fatalf("AddOrder() error = %v, want ErrDuplicateID", err)
	}
}

func TestAssignMachineToOrder(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{testMachine("M1", models.MachineStatusAvailable)},
		[]models.Order{testOrder("ORD-1", 10)})

	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("AssignMachineToOrder() error = %v", err)
	}

	machine, _ := engine.Machine("M1")
	if machine.Status != models.MachineStatusBusy {
		t.Errorf("machine status = %s, want busy", machine.Status)
	}
	if machine.CurrentOrder != "ORD-1" {
		t.Errorf("machine current order = %q, want ORD-1", machine.CurrentOrder)
	}

	order, _ := engine.Order("ORD-1")
	if order.AssignedMachine != "M1" {
		t.Errorf("order assigned machine = %q, want M1", order.AssignedMachine)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("order status = %s, assignment must not start production", order.Status)
	}

	// Assigning the same pair again is a no-op.
	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("idempotent reassign error = %v", err)
	}
}

func TestAssignUnknownIDs(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{testMachine("M1", models.MachineStatusAvailable)},
		[]models.Order{testOrder("ORD-1", 10)})

	if err := engine.AssignMachineToOrder("M9", "ORD-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown machine error = %v, want ErrNotFound", err)
	}
	if err := engine.AssignMachineToOrder("M1", "ORD-9"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown order error = %v, want ErrNotFound", err)
	}

	machine, _ := engine.Machine("M1")
	if machine.Status != models.MachineStatusAvailable {
		t.Errorf("failed assignment must leave the machine untouched, status = %s", machine.Status)
	}
}

func TestAssignMachineHoldingAnotherOrder(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{testMachine("M1", models.MachineStatusAvailable)},
		[]models.Order{testOrder("ORD-1", 10), testOrder("ORD-2", 5)})

	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("AssignMachineToOrder() error = %v", err)
	}
	if err := engine.AssignMachineToOrder("M1", "ORD-2"); !errors.Is(err, ErrMachineBusy) {
		t.Fatalf("assigning a busy machine: error = %v, want ErrMachineBusy", err)
	}

	machine, _ := engine.Machine("M1")
	if machine.CurrentOrder != "ORD-1" {
		t.Errorf("machine current order = %q, want ORD-1", machine.CurrentOrder)
	}
	order2, _ := engine.Order("ORD-2")
	if order2.AssignedMachine != "" {
		t.Errorf("ORD-2 assigned machine = %q, want empty", order2.AssignedMachine)
	}
}

func TestReassignReleasePolicy(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{
			testMachine("M1", models.MachineStatusAvailable),
			testMachine("M2", models.MachineStatusAvailable),
		},
		[]models.Order{testOrder("ORD-1", 10)})

	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("first assignment error = %v", err)
	}
	if err := engine.AssignMachineToOrder("M2", "ORD-1"); err != nil {
		t.Fatalf("reassignment error = %v", err)
	}

	m1, _ := engine.Machine("M1")
	if m1.Status != models.MachineStatusAvailable || m1.CurrentOrder != "" {
		t.Errorf("previous machine not released: status=%s current=%q", m1.Status, m1.CurrentOrder)
	}
	m2, _ := engine.Machine("M2")
	if m2.Status != models.MachineStatusBusy || m2.CurrentOrder != "ORD-1" {
		t.Errorf("new machine not bound: status=%s current=%q", m2.Status, m2.CurrentOrder)
	}
	order, _ := engine.Order("ORD-1")
	if order.AssignedMachine != "M2" {
		t.Errorf("order assigned machine = %q, want M2", order.AssignedMachine)
	}
}

func TestReassignRejectPolicy(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignReject,
		[]models.Machine{
			testMachine("M1", models.MachineStatusAvailable),
			testMachine("M2", models.MachineStatusAvailable),
		},
		[]models.Order{testOrder("ORD-1", 10)})

	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("first assignment error = %v", err)
	}
	if err := engine.AssignMachineToOrder("M2", "ORD-1"); !errors.Is(err, ErrOrderAlreadyAssigned) {
		t.Fatalf("reassignment error = %v, want ErrOrderAlreadyAssigned", err)
	}

	m1, _ := engine.Machine("M1")
	if m1.Status != models.MachineStatusBusy || m1.CurrentOrder != "ORD-1" {
		t.Errorf("rejected reassignment must leave M1 bound: status=%s current=%q", m1.Status, m1.CurrentOrder)
	}
	m2, _ := engine.Machine("M2")
	if m2.Status != models.MachineStatusAvailable || m2.CurrentOrder != "" {
		t.Errorf("rejected reassignment must leave M2 untouched: status=%s current=%q", m2.Status, m2.CurrentOrder)
	}
}

func TestStartProductionGuards(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{testMachine("M1", models.MachineStatusAvailable)},
		[]models.Order{testOrder("ORD-1", 10)})

	if err := engine.StartProduction("ORD-9"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown order error = %v, want ErrNotFound", err)
	}
	if err := engine.StartProduction("ORD-1"); !errors.Is(err, ErrNoAssignedMachine) {
		t.Errorf("unassigned order error = %v, want ErrNoAssignedMachine", err)
	}
	if scheduler.scheduled("ORD-1") {
		t.Error("no tick sequence may start for a rejected order")
	}

	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("AssignMachineToOrder() error = %v", err)
	}
	if err := engine.StartProduction("ORD-1"); err != nil {
		t.Fatalf("StartProduction() error = %v", err)
	}
	if err := engine.StartProduction("ORD-1"); !errors.Is(err, ErrOrderNotPending) {
		t.Errorf("double start error = %v, want ErrOrderNotPending", err)
	}
}

func TestProductionRunsToCompletion(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{testMachine("M1", models.MachineStatusAvailable)},
		[]models.Order{testOrder("ORD-1", 10)})

	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("AssignMachineToOrder() error = %v", err)
	}
	if err := engine.StartProduction("ORD-1"); err != nil {
		t.Fatalf("StartProduction() error = %v", err)
	}

	previous := 0
	terminating := 0
	for i := 0; i < 100; i++ {
		again := scheduler.fire(t, "ORD-1")
		order, _ := engine.Order("ORD-1")

		if order.CompletedQuantity < 0 || order.CompletedQuantity > order.Quantity {
			t.Fatalf("completed quantity %d outside [0, %d]", order.CompletedQuantity, order.Quantity)
		}
		if order.CompletedQuantity < previous {
			t.Fatalf("completed quantity decreased from %d to %d", previous, order.CompletedQuantity)
		}
		previous = order.CompletedQuantity

		if !again {
			terminating++
			break
		}
	}
	if terminating != 1 {
		t.Fatal("production never completed")
	}

	order, _ := engine.Order("ORD-1")
	if order.Status != models.OrderStatusCompleted {
		t.Errorf("order status = %s, want completed", order.Status)
	}
	if order.CompletedQuantity != order.Quantity {
		t.Errorf("completed quantity = %d, want %d", order.CompletedQuantity, order.Quantity)
	}

	// Release happens on the completing tick, atomically with it.
	machine, _ := engine.Machine("M1")
	if machine.Status != models.MachineStatusAvailable {
		t.Errorf("machine status = %s, want available", machine.Status)
	}
	if machine.CurrentOrder != "" {
		t.Errorf("machine current order = %q, want empty", machine.CurrentOrder)
	}

	if scheduler.scheduled("ORD-1") {
		t.Error("tick sequence must stop permanently after completion")
	}
}

func TestIndependentSimulations(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{
			testMachine("M1", models.MachineStatusAvailable),
			testMachine("M2", models.MachineStatusAvailable),
		},
		[]models.Order{testOrder("ORD-1", 30), testOrder("ORD-2", 30)})

	for _, pair := range [][2]string{{"M1", "ORD-1"}, {"M2", "ORD-2"}} {
		if err := engine.AssignMachineToOrder(pair[0], pair[1]); err != nil {
			t.Fatalf("AssignMachineToOrder(%s, %s) error = %v", pair[0], pair[1], err)
		}
		if err := engine.StartProduction(pair[1]); err != nil {
			t.Fatalf("StartProduction(%s) error = %v", pair[1], err)
		}
	}

	scheduler.fire(t, "ORD-1")
	scheduler.fire(t, "ORD-1")

	order2, _ := engine.Order("ORD-2")
	if order2.CompletedQuantity != 0 {
		t.Errorf("ORD-2 progressed by %d units without its own ticks", order2.CompletedQuantity)
	}
	order1, _ := engine.Order("ORD-1")
	if order1.CompletedQuantity == 0 {
		t.Error("ORD-1 did not progress on its own ticks")
	}
}

func TestTickStopsOnExternalStatusChange(t *testing.T) {
	engine, scheduler, orderRepo := newTestEngine(t, ReassignRelease,
		[]models.Machine{testMachine("M1", models.MachineStatusAvailable)},
		[]models.Order{testOrder("ORD-1", 10)})

	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("AssignMachineToOrder() error = %v", err)
	}
	if err := engine.StartProduction("ORD-1"); err != nil {
		t.Fatalf("StartProduction() error = %v", err)
	}

	// Administrative cancellation from outside the engine's operations.
	order, _ := orderRepo.Get("ORD-1")
	order.Status = models.OrderStatusCancelled
	if err := orderRepo.Update(order); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if again := scheduler.fire(t, "ORD-1"); again {
		t.Error("tick must stop when the order is no longer in production")
	}
	order, _ = orderRepo.Get("ORD-1")
	if order.CompletedQuantity != 0 {
		t.Errorf("cancelled order progressed to %d", order.CompletedQuantity)
	}
}

func TestCompatibleAvailableMachines(t *testing.T) {
	other := testMachine("M2", models.MachineStatusAvailable)
	other.Capabilities = []models.ClothingType{{ID: "jeans", Name: "Jeans"}}
	busy := testMachine("M3", models.MachineStatusBusy)
	maintenance := testMachine("M4", models.MachineStatusMaintenance)

	engine, _, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{testMachine("M1", models.MachineStatusAvailable), other, busy, maintenance},
		[]models.Order{testOrder("ORD-1", 10)})

	compatible, err := engine.CompatibleAvailableMachines("ORD-1")
	if err != nil {
		t.Fatalf("CompatibleAvailableMachines() error = %v", err)
	}
	if len(compatible) != 1 || compatible[0].ID != "M1" {
		t.Fatalf("compatible = %v, want exactly M1", compatible)
	}
}

func TestCompatibleAvailableMachinesEmptyWhenOnlyCapableIsDown(t *testing.T) {
	capable := testMachine("M1", models.MachineStatusMaintenance)
	engine, _, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{capable},
		[]models.Order{testOrder("ORD-1", 10)})

	compatible, err := engine.CompatibleAvailableMachines("ORD-1")
	if err != nil {
		t.Fatalf("CompatibleAvailableMachines() error = %v", err)
	}
	if len(compatible) != 0 {
		t.Fatalf("compatible = %v, want empty", compatible)
	}
}

func TestCompatibleAvailableMachinesKeepsInsertionOrder(t *testing.T) {
	machines := []models.Machine{
		testMachine("M3", models.MachineStatusAvailable),
		testMachine("M1", models.MachineStatusAvailable),
		testMachine("M2", models.MachineStatusAvailable),
	}
	engine, _, _ := newTestEngine(t, ReassignRelease, machines, []models.Order{testOrder("ORD-1", 10)})

	compatible, err := engine.CompatibleAvailableMachines("ORD-1")
	if err != nil {
		t.Fatalf("CompatibleAvailableMachines() error = %v", err)
	}
	want := []string{"M3", "M1", "M2"}
	for i, m := range compatible {
		if m.ID != want[i] {
			t.Fatalf("compatible[%d] = %s, want %s", i, m.ID, want[i])
		}
	}
}

func TestDeleteMachine(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{testMachine("M1", models.MachineStatusAvailable)},
		[]models.Order{testOrder("ORD-1", 10)})

	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("AssignMachineToOrder() error = %v", err)
	}
	if err := engine.DeleteMachine("M1"); !errors.Is(err, ErrMachineBusy) {
		t.Errorf("deleting a busy machine: error = %v, want ErrMachineBusy", err)
	}
	if err := engine.DeleteMachine("M9"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("deleting an unknown machine: error = %v, want ErrNotFound", err)
	}
}

func TestStatsFromSeedCatalog(t *testing.T) {
	machineRepo := repository.NewMachineRepository()
	for _, m := range catalog.Machines() {
		if err := machineRepo.Add(m); err != nil {
			t.Fatalf("seeding machine: %v", err)
		}
	}
	orderRepo := repository.NewOrderRepository()
	for _, o := range catalog.Orders() {
		if err := orderRepo.Add(o); err != nil {
			t.Fatalf("seeding order: %v", err)
		}
	}
	engine := NewEngine(machineRepo, orderRepo, newManualScheduler(), ReassignRelease)

	stats := engine.Stats()
	if stats.TotalOrders != 5 {
		t.Errorf("TotalOrders = %d, want 5", stats.TotalOrders)
	}
	if stats.CompletedOrders != 0 {
		t.Errorf("CompletedOrders = %d, want 0", stats.CompletedOrders)
	}
	if stats.ActiveProductions != 1 {
		t.Errorf("ActiveProductions = %d, want 1", stats.ActiveProductions)
	}
	if stats.AvailableMachines != 4 {
		t.Errorf("AvailableMachines = %d, want 4", stats.AvailableMachines)
	}
	// Mean of 92, 88, 85, 95, 90, 87 rounds to 90.
	if stats.Efficiency != 90 {
		t.Errorf("Efficiency = %d, want 90", stats.Efficiency)
	}
}

func TestStatsEmptyMachinePark(t *testing.T) {
	engine, _, _ := newTestEngine(t, ReassignRelease, nil, nil)
	if got := engine.Stats().Efficiency; got != 0 {
		t.Errorf("Efficiency with no machines = %d, want 0", got)
	}
}

func TestOnChangeDeliversConsistentSnapshots(t *testing.T) {
	engine, scheduler, _ := newTestEngine(t, ReassignRelease,
		[]models.Machine{testMachine("M1", models.MachineStatusAvailable)},
		[]models.Order{testOrder("ORD-1", 4)})

	var snapshots []Snapshot
	engine.OnChange(func(s Snapshot) { snapshots = append(snapshots, s) })

	if err := engine.AssignMachineToOrder("M1", "ORD-1"); err != nil {
		t.Fatalf("AssignMachineToOrder() error = %v", err)
	}
	if err := engine.StartProduction("ORD-1"); err != nil {
		t.Fatalf("StartProduction() error = %v", err)
	}
	for scheduler.scheduled("ORD-1") {
		scheduler.fire(t, "ORD-1")
	}

	if len(snapshots) == 0 {
		t.Fatal("no change notifications delivered")
	}
	for _, s := range snapshots {
		order := s.Orders[0]
		machine := s.Machines[0]
		if order.Status == models.OrderStatusCompleted && machine.Status == models.MachineStatusBusy {
			t.Fatal("observed a completed order with its machine still busy")
		}
		occupied := order.Status != models.OrderStatusCompleted && order.AssignedMachine == machine.ID
		if machine.Status == models.MachineStatusBusy && !occupied {
			t.Fatal("observed a busy machine without an occupying order")
		}
	}

	final := snapshots[len(snapshots)-1]
	if final.Stats.CompletedOrders != 1 || final.Stats.AvailableMachines != 1 {
		t.Errorf("final stats = %+v, want one completed order and one available machine", final.Stats)
	}
}
