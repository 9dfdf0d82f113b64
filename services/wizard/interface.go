package wizard

import (
	"context"

	sessionRepo "signup/database/repository/session"
	"signup/models"
)

// PersonalInfoForm carries the raw step-1 submission.
type PersonalInfoForm struct {
	Name  string
	Email string
	Tel   string
}

// PlanPreview is the live-preview payload for the plan-selection step. It is
// computed from query parameters only and never persisted.
type PlanPreview struct {
	Plan   *models.Plan `json:"plan"`
	Yearly bool         `json:"yearly"`
	Price  int          `json:"price"`
}

// WizardService drives the signup wizard state machine: it enforces step
// preconditions against the stored session, applies validated mutations, and
// tears the session down after confirmation. Any precondition failure is
// reported through ErrNoActiveSession/ErrPreconditionFailed so the handlers
// can bounce the client back to step 1.
type WizardService interface {
	LoadStepOne(ctx context.Context, key string) (*models.Session, error)
	SubmitPersonalInfo(ctx context.Context, key string, form PersonalInfoForm) (string, error)
	LoadStepTwo(ctx context.Context, key string) (*models.Session, error)
	SubmitPlan(ctx context.Context, key string, planID int, yearly bool) error
	LoadStepThree(ctx context.Context, key string) (*models.Session, error)
	SubmitAddOns(ctx context.Context, key string, addOnIDs []int) error
	LoadStepFour(ctx context.Context, key string) (*models.Session, int, error)
	Complete(ctx context.Context, key string) error
	Confirm(ctx context.Context, key string) (*models.Session, error)
	PreviewPlan(planID int, yearly bool) PlanPreview
}

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Store sessionRepo.SessionStore
}
