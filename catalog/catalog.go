// Package catalog exposes the static plan and add-on data the wizard sells.
// The backing data is fixed at process start; lookups are pure.
package catalog

import "signup/models"

var plans = []models.Plan{
	{
		ID:    1,
		Name:  "Arcade",
		Icon:  "images/icon-arcade.svg",
		Price: models.Price{Monthly: 9, Yearly: 90},
	},
	{
		ID:    2,
		Name:  "Advanced",
		Icon:  "images/icon-advanced.svg",
		Price: models.Price{Monthly: 12, Yearly: 120},
	},
	{
		ID:    3,
		Name:  "Pro",
		Icon:  "images/icon-pro.svg",
		Price: models.Price{Monthly: 15, Yearly: 150},
	},
}

var addOns = []models.AddOn{
	{
		ID:          1,
		Title:       "Online service",
		Description: "Access to multiplayer games",
		Price:       models.Price{Monthly: 1, Yearly: 10},
	},
	{
		ID:          2,
		Title:       "Larger storage",
		Description: "Extra 1TB of cloud save",
		Price:       models.Price{Monthly: 2, Yearly: 20},
	},
	{
		ID:          3,
		Title:       "Customizable profile",
		Description: "Custom theme on your profile",
		Price:       models.Price{Monthly: 2, Yearly: 20},
	},
}

// Plans returns the ordered list of subscription plans.
func Plans() []models.Plan {
	return plans
}

// AddOns returns the ordered list of optional add-ons.
func AddOns() []models.AddOn {
	return addOns
}

// DefaultPlanID is the plan a fresh session starts on.
func DefaultPlanID() int {
	return plans[0].ID
}

// PlanByID looks up a plan by id.
func PlanByID(id int) (models.Plan, bool) {
	for _, plan := range plans {
		if plan.ID == id {
			return plan, true
		}
	}
	return models.Plan{}, false
}

// KnownAddOnIDs returns the set of valid add-on ids, used to validate
// submitted selections.
func KnownAddOnIDs() map[int]bool {
	known := make(map[int]bool, len(addOns))
	for _, addOn := range addOns {
		known[addOn.ID] = true
	}
	return known
}
