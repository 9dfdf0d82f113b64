package models

// Price lists the charge for each billing cycle.
type Price struct {
	Monthly int `json:"monthly"`
	Yearly  int `json:"yearly"`
}

// ForCycle returns the charge for the active billing cycle.
func (p Price) ForCycle(yearly bool) int {
	if yearly {
		return p.Yearly
	}
	return p.Monthly
}

// Plan is a subscription tier from the static catalog.
type Plan struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Price Price  `json:"price"`
}

// AddOn is an optional extra from the static catalog.
type AddOn struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
}
