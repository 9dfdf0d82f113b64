package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Session holds one user's in-progress signup wizard state. Resolved plan and
// add-on snapshots are denormalized copies of the catalog taken at selection
// time and recomputed on every mutation of PlanID/AddOnIDs.
type Session struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Tel    string `json:"tel"`
	PlanID int    `json:"planId"`
	Plan   *Plan  `json:"plan,omitempty"`
	Yearly bool   `json:"yearly"`
	// AddOnIDs is nil until the add-on step has been submitted; an empty
	// non-nil slice means zero add-ons were chosen.
	AddOnIDs     []int     `json:"addOnIds"`
	AddOns       []AddOn   `json:"addOns"`
	LastActivity time.Time `json:"lastActivity"`
	Completed    bool      `json:"completed"`
}

// NewSession constructs a session with validated personal info. PlanID
// defaults to the given catalog default; no plan is resolved until SetPlan.
func NewSession(name, email, tel string, defaultPlanID int) (*Session, error) {
	s := &Session{
		PlanID:       defaultPlanID,
		LastActivity: time.Now(),
	}
	if err := s.SetPersonal(name, email, tel); err != nil {
		return nil, err
	}
	return s, nil
}

// SetPersonal validates and replaces the personal info fields. Values are
// trimmed before validation; other fields are left untouched.
func (s *Session) SetPersonal(name, email, tel string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	tel = strings.TrimSpace(tel)

	fields := make(map[string]string)
	if name == "" {
		fields["name"] = "name must not be blank"
	}
	if email == "" {
		fields["email"] = "email must not be blank"
	} else if err := validate.Var(email, "email"); err != nil {
		fields["email"] = "email must be a valid address"
	}
	if tel == "" {
		fields["tel"] = "phone number must not be blank"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	s.Name = name
	s.Email = email
	s.Tel = tel
	return nil
}

// SetPlan records the selected plan and billing cycle and resolves the plan
// snapshot from the given catalog. An unknown plan id leaves the snapshot
// empty, which callers must treat as "plan step not completed".
func (s *Session) SetPlan(plans []Plan, planID int, yearly bool) {
	s.PlanID = planID
	s.Yearly = yearly
	s.Plan = nil
	for _, plan := range plans {
		if plan.ID == planID {
			snapshot := plan
			s.Plan = &snapshot
			break
		}
	}
}

// SetAddOns replaces the selected add-on ids and resolves their snapshots as
// the subsequence of the catalog whose ids were selected, preserving the
// catalog's canonical ordering rather than submission order.
func (s *Session) SetAddOns(addOns []AddOn, ids []int) {
	selected := make(map[int]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	s.AddOnIDs = make([]int, 0, len(ids))
	s.AddOns = make([]AddOn, 0, len(ids))
	for _, addOn := range addOns {
		if selected[addOn.ID] {
			s.AddOnIDs = append(s.AddOnIDs, addOn.ID)
			s.AddOns = append(s.AddOns, addOn)
		}
	}
}

// CalculateTotal sums the resolved plan and add-on prices for the active
// billing cycle.
func (s *Session) CalculateTotal() (int, error) {
	if s.Plan == nil {
		return 0, IncompleteSelectionError{}
	}
	total := s.Plan.Price.ForCycle(s.Yearly)
	for _, addOn := range s.AddOns {
		total += addOn.Price.ForCycle(s.Yearly)
	}
	return total, nil
}

// PlanResolved reports whether the plan-selection step has been completed.
func (s *Session) PlanResolved() bool {
	return s.Plan != nil
}

// AddOnsChosen reports whether the add-on step has been submitted, even with
// zero add-ons selected.
func (s *Session) AddOnsChosen() bool {
	return s.AddOnIDs != nil
}

// Touch refreshes the last-activity timestamp.
func (s *Session) Touch() {
	s.LastActivity = time.Now()
}

// Clone returns a deep copy, so stored sessions never share mutable state
// with request handlers.
func (s *Session) Clone() *Session {
	clone := *s
	if s.Plan != nil {
		plan := *s.Plan
		clone.Plan = &plan
	}
	if s.AddOnIDs != nil {
		clone.AddOnIDs = make([]int, len(s.AddOnIDs))
		copy(clone.AddOnIDs, s.AddOnIDs)
	}
	if s.AddOns != nil {
		clone.AddOns = make([]AddOn, len(s.AddOns))
		copy(clone.AddOns, s.AddOns)
	}
	return &clone
}
