package simulator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMerchants is the built-in simulation table, loosely mirroring
// the merchants named in the card catalog so simulated spends exercise
// both partnership and category matches.
func DefaultMerchants() []Merchant {
	return []Merchant{
		{Name: "Amazon", Category: "Shopping", MinAmount: 200, MaxAmount: 8000},
		{Name: "Flipkart", Category: "Shopping", MinAmount: 200, MaxAmount: 6000},
		{Name: "BigBasket", Category: "Groceries", MinAmount: 300, MaxAmount: 3500},
		{Name: "DMart", Category: "Groceries", MinAmount: 250, MaxAmount: 4000},
		{Name: "Swiggy", Category: "Dining", MinAmount: 150, MaxAmount: 1200},
		{Name: "Zomato", Category: "Dining", MinAmount: 150, MaxAmount: 1200},
		{Name: "MakeMyTrip", Category: "Travel", MinAmount: 2500, MaxAmount: 45000},
		{Name: "IRCTC", Category: "Travel", MinAmount: 400, MaxAmount: 5000},
		{Name: "BookMyShow", Category: "Entertainment", MinAmount: 200, MaxAmount: 1500},
		{Name: "Indian Oil", Category: "Fuel", MinAmount: 500, MaxAmount: 3000},
		{Name: "Google Pay", Category: "Utilities", MinAmount: 300, MaxAmount: 5000},
	}
}

type merchantFile struct {
	Merchants []Merchant `yaml:"merchants"`
}

// LoadMerchants reads a merchant table from a YAML file.
func LoadMerchants(path string) ([]Merchant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read merchant table: %w", err)
	}
	var mf merchantFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse merchant table: %w", err)
	}
	if len(mf.Merchants) == 0 {
		return nil, ErrNoMerchants
	}
	return mf.Merchants, nil
}
