package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"atelier/internal/models"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	machineView table.Model
	orderList   list.Model
	machineList list.Model
	orderDetail models.Order
	stats       models.ProductionStats
	spinner     spinner.Model
	client      *ApiClient
	currentView string
	error       string
	notice      string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "Machine Park", desc: "View machines and their status"},
		item{title: "Manage Orders", desc: "Browse orders, assign machines, start production"},
		item{title: "Production Stats", desc: "View aggregate dashboard counters"},
		item{title: "Exit", desc: "Exit the application"},
	}

	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Atelier CLI"

	columns := []table.Column{
		{Title: "ID", Width: 14},
		{Title: "Name", Width: 20},
		{Title: "Type", Width: 16},
		{Title: "Status", Width: 12},
		{Title: "Order", Width: 12},
		{Title: "Eff.", Width: 5},
	}
	machineTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	orderList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	orderList.Title = "Orders"

	machineList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	machineList.Title = "Compatible Machines"

	client := NewApiClient()

	return Model{
		mainMenu:    mainMenu,
		machineView: machineTable,
		orderList:   orderList,
		machineList: machineList,
		spinner:     s,
		client:      client,
		currentView: "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			switch m.currentView {
			case "main":
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Machine Park":
						m.currentView = "machines"
						return m, fetchMachines(m.client)
					case "Manage Orders":
						m.currentView = "orders"
						return m, fetchOrders(m.client)
					case "Production Stats":
						m.currentView = "stats"
						return m, fetchStats(m.client)
					}
				}
			case "orders":
				if selected, ok := m.orderList.SelectedItem().(orderItem); ok {
					m.currentView = "order_detail"
					m.error = ""
					m.notice = ""
					return m, fetchOrderDetails(m.client, selected.id)
				}
			case "assign":
				if selected, ok := m.machineList.SelectedItem().(machineItem); ok {
					m.currentView = "order_detail"
					return m, assignMachine(m.client, m.orderDetail.ID, selected.id)
				}
			}
		case "esc":
			switch m.currentView {
			case "order_detail", "assign":
				m.currentView = "orders"
				m.error = ""
				m.notice = ""
				return m, fetchOrders(m.client)
			case "main":
			default:
				m.currentView = "main"
			}
		case "a":
			if m.currentView == "order_detail" && m.orderDetail.Status == models.OrderStatusPending {
				m.currentView = "assign"
				m.error = ""
				return m, fetchCompatibleMachines(m.client, m.orderDetail.ID)
			}
		case "s":
			if m.currentView == "order_detail" {
				return m, startProduction(m.client, m.orderDetail.ID)
			}
		case "r":
			switch m.currentView {
			case "order_detail":
				return m, fetchOrderDetails(m.client, m.orderDetail.ID)
			case "orders":
				return m, fetchOrders(m.client)
			case "machines":
				return m, fetchMachines(m.client)
			case "stats":
				return m, fetchStats(m.client)
			}
		}
	case ordersMsg:
		m.orderList.SetItems(convertOrdersToItems(msg.orders))
		return m, nil
	case orderDetailMsg:
		m.orderDetail = msg.order
		return m, nil
	case machinesMsg:
		m.machineView.SetRows(convertMachinesToRows(msg.machines))
		return m, nil
	case compatibleMsg:
		m.machineList.SetItems(convertMachinesToItems(msg.machines))
		return m, nil
	case statsMsg:
		m.stats = msg.stats
		return m, nil
	case errorMsg:
		m.error = msg.err
		m.notice = ""
		return m, nil
	case confirmMsg:
		m.error = ""
		m.notice = msg.message
		if m.currentView == "order_detail" {
			return m, fetchOrderDetails(m.client, m.orderDetail.ID)
		}
		return m, fetchOrders(m.client)
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
		m.orderList.SetSize(msg.Width-h, msg.Height-v)
		m.machineList.SetSize(msg.Width-h, msg.Height-v)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "machines":
		m.machineView, cmd = m.machineView.Update(msg)
	case "orders":
		m.orderList, cmd = m.orderList.Update(msg)
	case "assign":
		m.machineList, cmd = m.machineList.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "machines":
		help := "\nPress 'r' to refresh, 'esc' to go back\n"
		return docStyle.Render(titleStyle.Render("Machine Park") + "\n\n" + m.machineView.View() + help)
	case "orders":
		help := "\nPress 'enter' to view details, 'r' to refresh, 'esc' to go back\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Orders") + "\n\n" + m.orderList.View() + help)
	case "order_detail":
		view := orderDetailView(m.orderDetail)
		if m.notice != "" {
			view += "\n" + successStyle.Render(m.notice)
		}
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error)
		}
		return docStyle.Render(view)
	case "assign":
		help := "\nPress 'enter' to assign the selected machine, 'esc' to cancel\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Assign Machine") + "\n\n" + m.machineList.View() + help)
	case "stats":
		return docStyle.Render(statsView(m.stats))
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type ordersMsg struct {
	orders []models.Order
}

type orderDetailMsg struct {
	order models.Order
}

type machinesMsg struct {
	machines []models.Machine
}

type compatibleMsg struct {
	machines []models.Machine
}

type statsMsg struct {
	stats models.ProductionStats
}

type errorMsg struct {
	err string
}

type confirmMsg struct {
	message string
}

// orderItem represents an order in the list
type orderItem struct {
	id    string
	title string
	desc  string
}

func (i orderItem) Title() string       { return i.title }
func (i orderItem) Description() string { return i.desc }
func (i orderItem) FilterValue() string { return i.title }

// machineItem represents a machine in the assignment list
type machineItem struct {
	id    string
	title string
	desc  string
}

func (i machineItem) Title() string       { return i.title }
func (i machineItem) Description() string { return i.desc }
func (i machineItem) FilterValue() string { return i.title }

// fetchOrders retrieves orders from the API
func fetchOrders(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.GetOrders("")
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching orders: %v", err)}
		}
		return ordersMsg{orders: orders}
	}
}

// fetchOrderDetails retrieves details for a specific order
func fetchOrderDetails(client *ApiClient, id string) tea.Cmd {
	return func() tea.Msg {
		order, err := client.GetOrder(id)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching order details: %v", err)}
		}
		if order == nil {
			return errorMsg{err: "Order not found"}
		}
		return orderDetailMsg{order: *order}
	}
}

// fetchMachines retrieves the machine park
func fetchMachines(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		machines, err := client.GetMachines()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching machines: %v", err)}
		}
		return machinesMsg{machines: machines}
	}
}

// fetchCompatibleMachines retrieves assignment candidates for an order
func fetchCompatibleMachines(client *ApiClient, orderID string) tea.Cmd {
	return func() tea.Msg {
		machines, err := client.GetCompatibleMachines(orderID)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching machines: %v", err)}
		}
		return compatibleMsg{machines: machines}
	}
}

// fetchStats retrieves the dashboard counters
func fetchStats(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		stats, err := client.GetStats()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching stats: %v", err)}
		}
		return statsMsg{stats: *stats}
	}
}

// assignMachine binds the machine to the order
func assignMachine(client *ApiClient, orderID, machineID string) tea.Cmd {
	return func() tea.Msg {
		if err := client.AssignMachine(orderID, machineID); err != nil {
			return errorMsg{err: fmt.Sprintf("Error assigning machine: %v", err)}
		}
		return confirmMsg{message: fmt.Sprintf("Machine %s assigned", machineID)}
	}
}

// startProduction starts the progress simulation for the order
func startProduction(client *ApiClient, orderID string) tea.Cmd {
	return func() tea.Msg {
		if err := client.StartProduction(orderID); err != nil {
			return errorMsg{err: fmt.Sprintf("Error starting production: %v", err)}
		}
		return confirmMsg{message: "Production started"}
	}
}

// convertOrdersToItems converts API orders to list items
func convertOrdersToItems(orders []models.Order) []list.Item {
	items := make([]list.Item, len(orders))
	for i, order := range orders {
		items[i] = orderItem{
			id:    order.ID,
			title: fmt.Sprintf("%s - %s", order.ID, order.CustomerName),
			desc: fmt.Sprintf("%s x%d - %s - priority %s - %d/%d done",
				order.ClothingType.Name, order.Quantity, order.Status, order.Priority,
				order.CompletedQuantity, order.Quantity),
		}
	}
	return items
}

// convertMachinesToItems converts machines to assignment list items
func convertMachinesToItems(machines []models.Machine) []list.Item {
	items := make([]list.Item, len(machines))
	for i, machine := range machines {
		items[i] = machineItem{
			id:    machine.ID,
			title: fmt.Sprintf("%s (%s)", machine.Name, machine.ID),
			desc:  fmt.Sprintf("%s - %s - efficiency %d%%", machine.Type, machine.Location, machine.Efficiency),
		}
	}
	return items
}

// convertMachinesToRows converts machines to table rows
func convertMachinesToRows(machines []models.Machine) []table.Row {
	rows := make([]table.Row, len(machines))
	for i, machine := range machines {
		rows[i] = table.Row{
			machine.ID,
			machine.Name,
			machine.Type,
			string(machine.Status),
			machine.CurrentOrder,
			fmt.Sprintf("%d", machine.Efficiency),
		}
	}
	return rows
}

// orderDetailView creates a detailed view of an order
func orderDetailView(order models.Order) string {
	view := titleStyle.Render(fmt.Sprintf("Order %s", order.ID)) + "\n\n"
	view += fmt.Sprintf("Customer: %s\n", order.CustomerName)
	view += fmt.Sprintf("Garment: %s (x%d)\n", order.ClothingType.Name, order.Quantity)
	view += fmt.Sprintf("Status: %s\n", order.Status)
	view += fmt.Sprintf("Priority: %s\n", order.Priority)
	view += fmt.Sprintf("Due: %s\n", order.DueDate.Format(time.RFC1123))
	if order.AssignedMachine != "" {
		view += fmt.Sprintf("Machine: %s\n", order.AssignedMachine)
	}
	view += fmt.Sprintf("Progress: %d/%d\n", order.CompletedQuantity, order.Quantity)

	view += "\n"
	if order.Status == models.OrderStatusPending {
		view += infoStyle.Render("'a' assign machine  's' start production") + "\n"
	}
	view += "Press 'r' to refresh, 'esc' to go back to the list"

	return view
}

// statsView renders the aggregate counters
func statsView(stats models.ProductionStats) string {
	view := titleStyle.Render("Production Stats") + "\n\n"
	view += fmt.Sprintf("Total orders:        %d\n", stats.TotalOrders)
	view += fmt.Sprintf("Completed orders:    %d\n", stats.CompletedOrders)
	view += fmt.Sprintf("Active productions:  %d\n", stats.ActiveProductions)
	view += fmt.Sprintf("Available machines:  %d\n", stats.AvailableMachines)
	view += fmt.Sprintf("Machine efficiency:  %d%%\n", stats.Efficiency)
	view += "\nPress 'r' to refresh, 'esc' to go back"
	return view
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
