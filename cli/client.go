package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"atelier/internal/catalog"
	"atelier/internal/models"
)

// ApiClient handles API requests to the Atelier API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("ATELIER_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}

	return true, nil
}

type ordersResponse struct {
	Orders []models.Order `json:"orders"`
	Count  int            `json:"count"`
}

type machinesResponse struct {
	Machines []models.Machine `json:"machines"`
	Count    int              `json:"count"`
}

// GetOrders retrieves all orders with optional status filter
func (c *ApiClient) GetOrders(status string) ([]models.Order, error) {
	if c.UseMock {
		return c.getMockOrders(status), nil
	}

	url := c.BaseURL + "/api/v1/orders"
	if status != "" {
		url += "?status=" + status
	}

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var response ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	return response.Orders, nil
}

// GetOrder retrieves a specific order by ID
func (c *ApiClient) GetOrder(id string) (*models.Order, error) {
	if c.UseMock {
		return c.getMockOrder(id), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/orders/" + id)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get order with status code: %d", resp.StatusCode)
	}

	var order models.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}

	return &order, nil
}

// GetMachines retrieves the whole machine park
func (c *ApiClient) GetMachines() ([]models.Machine, error) {
	if c.UseMock {
		return catalog.Machines(), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/machines")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var response machinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	return response.Machines, nil
}

// GetCompatibleMachines retrieves the available machines able to produce
// an order's garment
func (c *ApiClient) GetCompatibleMachines(orderID string) ([]models.Machine, error) {
	if c.UseMock {
		return catalog.Machines()[:1], nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/orders/" + orderID + "/machines")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var response machinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	return response.Machines, nil
}

// GetStats retrieves the aggregate dashboard counters
func (c *ApiClient) GetStats() (*models.ProductionStats, error) {
	if c.UseMock {
		return &models.ProductionStats{
			TotalOrders:       5,
			CompletedOrders:   0,
			ActiveProductions: 1,
			AvailableMachines: 4,
			Efficiency:        90,
		}, nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/stats")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var stats models.ProductionStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// AssignMachine binds a machine to an order
func (c *ApiClient) AssignMachine(orderID, machineID string) error {
	if c.UseMock {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"machine_id": machineID})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/orders/"+orderID+"/assign", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

// StartProduction kicks off the progress simulation for an order
func (c *ApiClient) StartProduction(orderID string) error {
	if c.UseMock {
		return nil
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/orders/"+orderID+"/start", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

// apiError extracts the error message from a failed response
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return fmt.Errorf("%s", parsed.Error)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

// Mock data generators, used when no server is reachable. The mock shop
// floor matches the server's seed data.
func (c *ApiClient) getMockOrders(status string) []models.Order {
	orders := catalog.Orders()

	if status != "" {
		var filtered []models.Order
		for _, order := range orders {
			if string(order.Status) == status {
				filtered = append(filtered, order)
			}
		}
		return filtered
	}

	return orders
}

// getMockOrder returns a mock order by ID
func (c *ApiClient) getMockOrder(id string) *models.Order {
	for _, order := range catalog.Orders() {
		if order.ID == id {
			return &order
		}
	}
	return nil
}
