package directory

import (
	"context"
	"fmt"
	"sync"

	"loanflow/pkg/platform/sentinel"
)

// InMemoryDirectory is a seeded directory for dev and tests.
type InMemoryDirectory struct {
	mu      sync.RWMutex
	byID    map[string]Customer
	byPhone map[string]Customer
}

// NewInMemoryDirectory constructs a directory holding the given customers.
func NewInMemoryDirectory(customers ...Customer) *InMemoryDirectory {
	d := &InMemoryDirectory{
		byID:    make(map[string]Customer),
		byPhone: make(map[string]Customer),
	}
	for _, c := range customers {
		d.byID[c.CustomerID] = c
		d.byPhone[c.Phone] = c
	}
	return d
}

func (d *InMemoryDirectory) FindByID(_ context.Context, customerID string) (Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if c, ok := d.byID[customerID]; ok {
		return c, nil
	}
	return Customer{}, fmt.Errorf("customer %s: %w", customerID, sentinel.ErrNotFound)
}

func (d *InMemoryDirectory) FindByPhone(_ context.Context, phone string) (Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if c, ok := d.byPhone[phone]; ok {
		return c, nil
	}
	return Customer{}, fmt.Errorf("customer with phone %s: %w", phone, sentinel.ErrNotFound)
}

// Seed returns the demo customer book used by the dev server.
func Seed() []Customer {
	return []Customer{
		{CustomerID: "CUST001", Name: "Rajesh Kumar", Phone: "9876543210", City: "Mumbai", CreditScore: 780, PreApprovedLimit: 50000, MonthlyIncome: 45000, CurrentLoan: 0},
		{CustomerID: "CUST002", Name: "Priya Sharma", Phone: "9876543211", City: "Delhi", CreditScore: 820, PreApprovedLimit: 75000, MonthlyIncome: 60000, CurrentLoan: 25000},
		{CustomerID: "CUST003", Name: "Amit Patel", Phone: "9876543212", City: "Bangalore", CreditScore: 650, PreApprovedLimit: 30000, MonthlyIncome: 35000, CurrentLoan: 0},
		{CustomerID: "CUST004", Name: "Sneha Reddy", Phone: "9876543213", City: "Hyderabad", CreditScore: 750, PreApprovedLimit: 100000, MonthlyIncome: 80000, CurrentLoan: 15000},
		{CustomerID: "CUST005", Name: "Vikram Singh", Phone: "9876543214", City: "Pune", CreditScore: 720, PreApprovedLimit: 60000, MonthlyIncome: 50000, CurrentLoan: 0},
		{CustomerID: "CUST006", Name: "Ananya Gupta", Phone: "9876543215", City: "Chennai", CreditScore: 800, PreApprovedLimit: 90000, MonthlyIncome: 70000, CurrentLoan: 10000},
	}
}
