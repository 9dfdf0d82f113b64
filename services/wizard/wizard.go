package wizard

import (
	"context"
	"fmt"

	"signup/catalog"
	"signup/models"

	"github.com/google/uuid"
)

// fetch retrieves the caller's session, treating a blank key like an unknown
// one. Store I/O errors propagate; absence is (nil, nil).
func (s *DefaultWizardService) fetch(ctx context.Context, key string) (*models.Session, error) {
	if key == "" {
		return nil, nil
	}
	return s.Store.Get(ctx, key)
}

// refresh touches the session and re-puts it, resetting the TTL to the full
// window (sliding expiry).
func (s *DefaultWizardService) refresh(ctx context.Context, key string, session *models.Session) error {
	session.Touch()
	return s.Store.Put(ctx, key, session)
}

// LoadStepOne returns the active session for pre-filling the personal-info
// form, or nil if there is none. Step 1 has no entry precondition.
func (s *DefaultWizardService) LoadStepOne(ctx context.Context, key string) (*models.Session, error) {
	session, err := s.fetch(ctx, key)
	if err != nil || session == nil {
		return nil, err
	}
	if err := s.refresh(ctx, key, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitPersonalInfo creates a session from the step-1 form, or updates the
// personal info of an existing one without disturbing its plan and add-on
// selections. It returns the session key the client must carry forward.
func (s *DefaultWizardService) SubmitPersonalInfo(ctx context.Context, key string, form PersonalInfoForm) (string, error) {
	session, err := s.fetch(ctx, key)
	if err != nil {
		return "", err
	}
	if session != nil {
		if err := session.SetPersonal(form.Name, form.Email, form.Tel); err != nil {
			return "", err
		}
	} else {
		session, err = models.NewSession(form.Name, form.Email, form.Tel, catalog.DefaultPlanID())
		if err != nil {
			return "", err
		}
		key = uuid.New().String()
		session.Key = key
	}
	if err := s.refresh(ctx, key, session); err != nil {
		return "", err
	}
	return key, nil
}

// LoadStepTwo returns the session for the plan-selection step. Requires an
// active session.
func (s *DefaultWizardService) LoadStepTwo(ctx context.Context, key string) (*models.Session, error) {
	session, err := s.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	if err := s.refresh(ctx, key, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitPlan records the plan selection and billing cycle. An unknown plan id
// is persisted unresolved, which blocks step 3 until a valid plan is chosen.
func (s *DefaultWizardService) SubmitPlan(ctx context.Context, key string, planID int, yearly bool) error {
	session, err := s.fetch(ctx, key)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNoActiveSession
	}
	session.SetPlan(catalog.Plans(), planID, yearly)
	return s.refresh(ctx, key, session)
}

// LoadStepThree returns the session for the add-on step. Requires an active
// session with a resolved plan.
func (s *DefaultWizardService) LoadStepThree(ctx context.Context, key string) (*models.Session, error) {
	session, err := s.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	if !session.PlanResolved() {
		return nil, ErrPreconditionFailed
	}
	if err := s.refresh(ctx, key, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitAddOns replaces the add-on selection. The list may be empty; every
// submitted id must exist in the catalog.
func (s *DefaultWizardService) SubmitAddOns(ctx context.Context, key string, addOnIDs []int) error {
	session, err := s.fetch(ctx, key)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNoActiveSession
	}
	if !session.PlanResolved() {
		return ErrPreconditionFailed
	}
	known := catalog.KnownAddOnIDs()
	for _, id := range addOnIDs {
		if !known[id] {
			return &models.ValidationError{Fields: map[string]string{
				"add_ons": fmt.Sprintf("unknown add-on id %d", id),
			}}
		}
	}
	session.SetAddOns(catalog.AddOns(), addOnIDs)
	return s.refresh(ctx, key, session)
}

// LoadStepFour returns the session and its computed total for the summary
// step. Requires a resolved plan and a submitted add-on selection (possibly
// empty).
func (s *DefaultWizardService) LoadStepFour(ctx context.Context, key string) (*models.Session, int, error) {
	session, err := s.fetch(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	if session == nil {
		return nil, 0, ErrNoActiveSession
	}
	if !session.PlanResolved() || !session.AddOnsChosen() {
		return nil, 0, ErrPreconditionFailed
	}
	total, err := session.CalculateTotal()
	if err != nil {
		return nil, 0, err
	}
	if err := s.refresh(ctx, key, session); err != nil {
		return nil, 0, err
	}
	return session, total, nil
}

// Complete marks the session confirmed-pending: the summary was accepted and
// the confirmation page may be viewed once.
func (s *DefaultWizardService) Complete(ctx context.Context, key string) error {
	session, err := s.fetch(ctx, key)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNoActiveSession
	}
	if !session.PlanResolved() || !session.AddOnsChosen() {
		return ErrPreconditionFailed
	}
	session.Completed = true
	return s.refresh(ctx, key, session)
}

// Confirm returns the completed session for its one-time confirmation view
// and deletes it. Revisiting afterwards finds no session and bounces to
// step 1.
func (s *DefaultWizardService) Confirm(ctx context.Context, key string) (*models.Session, error) {
	session, err := s.fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	if !session.Completed {
		return nil, ErrPreconditionFailed
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		return nil, err
	}
	return session, nil
}

// PreviewPlan computes the price preview for a plan/cycle toggle without
// touching any stored state.
func (s *DefaultWizardService) PreviewPlan(planID int, yearly bool) PlanPreview {
	preview := PlanPreview{Yearly: yearly}
	if plan, ok := catalog.PlanByID(planID); ok {
		preview.Plan = &plan
		preview.Price = plan.Price.ForCycle(yearly)
	}
	return preview
}
