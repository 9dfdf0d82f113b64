package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every route handler the server registers.
type HandlerBundle struct {
	// Wizard step endpoints.
	StepOneHandler            gin.HandlerFunc
	SubmitPersonalInfoHandler gin.HandlerFunc
	StepTwoHandler            gin.HandlerFunc
	SubmitPlanHandler         gin.HandlerFunc
	StepThreeHandler          gin.HandlerFunc
	SubmitAddOnsHandler       gin.HandlerFunc
	StepFourHandler           gin.HandlerFunc
	CompleteWizardHandler     gin.HandlerFunc
	ConfirmationHandler       gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from a wizard handler.
func NewHandlerBundle(wh *WizardHandler) *HandlerBundle {
	return &HandlerBundle{
		StepOneHandler:            wh.StepOne,
		SubmitPersonalInfoHandler: wh.SubmitPersonalInfo,
		StepTwoHandler:            wh.StepTwo,
		SubmitPlanHandler:         wh.SubmitPlan,
		StepThreeHandler:          wh.StepThree,
		SubmitAddOnsHandler:       wh.SubmitAddOns,
		StepFourHandler:           wh.StepFour,
		CompleteWizardHandler:     wh.CompleteWizard,
		ConfirmationHandler:       wh.Confirmation,
	}
}
