package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"signup/catalog"
	"signup/middleware"
	"signup/models"
	"signup/services/wizard"
	"signup/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Step URLs in wizard order.
const (
	StepOnePath      = "/step-1"
	StepTwoPath      = "/step-2"
	StepThreePath    = "/step-3"
	StepFourPath     = "/step-4"
	ConfirmationPath = "/confirmation"
)

// WizardHandler exposes the signup wizard over HTTP. Step GETs render the
// step context as JSON; successful POSTs answer 303 to the next step;
// validation failures answer 422 with the submitted values echoed back and an
// error message per invalid field.
type WizardHandler struct {
	Service wizard.WizardService
}

// NewWizardHandler creates a WizardHandler backed by the given service.
func NewWizardHandler(svc wizard.WizardService) *WizardHandler {
	return &WizardHandler{Service: svc}
}

// redirectToStart bounces the client to step 1. Missing, expired, and
// out-of-order sessions all land here; the distinction is not surfaced.
func redirectToStart(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, StepOnePath)
}

// handleFlowError maps service errors that are not field-validation failures.
// Returns true if the response has been written.
func handleFlowError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, wizard.ErrNoActiveSession) || errors.Is(err, wizard.ErrPreconditionFailed) {
		redirectToStart(c)
		return true
	}
	logger := utils.GetLogger()
	logger.Error("wizard request failed", zap.String("path", c.FullPath()), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "The signup service is temporarily unavailable.")
	return true
}

func personalData(s *models.Session) gin.H {
	return gin.H{"name": s.Name, "email": s.Email, "tel": s.Tel}
}

// parseCheckbox interprets an HTML form checkbox/toggle value.
func parseCheckbox(value string) bool {
	switch value {
	case "on", "yes":
		return true
	}
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

// StepOne handles GET /step-1: the personal-info form, pre-filled when an
// active session exists.
func (h *WizardHandler) StepOne(c *gin.Context) {
	session, err := h.Service.LoadStepOne(c.Request.Context(), middleware.SessionKey(c))
	if handleFlowError(c, err) {
		return
	}
	context := gin.H{"step": 1, "next": StepTwoPath}
	if session != nil {
		context["data"] = personalData(session)
	}
	c.JSON(http.StatusOK, context)
}

// SubmitPersonalInfo handles POST /step-1.
func (h *WizardHandler) SubmitPersonalInfo(c *gin.Context) {
	form := wizard.PersonalInfoForm{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Tel:   c.PostForm("tel"),
	}
	key, err := h.Service.SubmitPersonalInfo(c.Request.Context(), middleware.SessionKey(c), form)
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"step":   1,
			"errors": vErr.Fields,
			"data":   gin.H{"name": form.Name, "email": form.Email, "tel": form.Tel},
		})
		return
	}
	if handleFlowError(c, err) {
		return
	}

	token, err := utils.SignSessionKey(key)
	if handleFlowError(c, err) {
		return
	}
	middleware.SetSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, StepTwoPath)
}

// StepTwo handles GET /step-2: the plan-selection form. The optional
// plan/yearly query parameters drive a live price preview and never touch the
// stored session.
func (h *WizardHandler) StepTwo(c *gin.Context) {
	session, err := h.Service.LoadStepTwo(c.Request.Context(), middleware.SessionKey(c))
	if handleFlowError(c, err) {
		return
	}

	previewPlanID := session.PlanID
	previewYearly := session.Yearly
	if raw := c.Query("plan"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			previewPlanID = id
		}
	}
	if raw := c.Query("yearly"); raw != "" {
		previewYearly = parseCheckbox(raw)
	}

	c.JSON(http.StatusOK, gin.H{
		"step":    2,
		"back":    StepOnePath,
		"next":    StepThreePath,
		"plans":   catalog.Plans(),
		"planId":  session.PlanID,
		"yearly":  session.Yearly,
		"preview": h.Service.PreviewPlan(previewPlanID, previewYearly),
	})
}

// SubmitPlan handles POST /step-2.
func (h *WizardHandler) SubmitPlan(c *gin.Context) {
	rawPlan := c.PostForm("plan")
	planID, err := strconv.Atoi(rawPlan)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"step":   2,
			"plans":  catalog.Plans(),
			"errors": gin.H{"plan": "plan must be a plan id"},
			"data":   gin.H{"plan": rawPlan, "yearly": c.PostForm("yearly")},
		})
		return
	}
	yearly := parseCheckbox(c.PostForm("yearly"))

	err = h.Service.SubmitPlan(c.Request.Context(), middleware.SessionKey(c), planID, yearly)
	if handleFlowError(c, err) {
		return
	}
	c.Redirect(http.StatusSeeOther, StepThreePath)
}

// StepThree handles GET /step-3: the add-on selection form.
func (h *WizardHandler) StepThree(c *gin.Context) {
	session, err := h.Service.LoadStepThree(c.Request.Context(), middleware.SessionKey(c))
	if handleFlowError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"step":     3,
		"back":     StepTwoPath,
		"next":     StepFourPath,
		"add_ons":  catalog.AddOns(),
		"addOnIds": session.AddOnIDs,
		"yearly":   session.Yearly,
	})
}

// SubmitAddOns handles POST /step-3. The add_ons list may be empty.
func (h *WizardHandler) SubmitAddOns(c *gin.Context) {
	raw := c.PostFormArray("add_ons")
	ids := make([]int, 0, len(raw))
	for _, value := range raw {
		id, err := strconv.Atoi(value)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"step":    3,
				"add_ons": catalog.AddOns(),
				"errors":  gin.H{"add_ons": "add-on selections must be ids"},
				"data":    gin.H{"add_ons": raw},
			})
			return
		}
		ids = append(ids, id)
	}

	err := h.Service.SubmitAddOns(c.Request.Context(), middleware.SessionKey(c), ids)
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"step":    3,
			"add_ons": catalog.AddOns(),
			"errors":  vErr.Fields,
			"data":    gin.H{"add_ons": raw},
		})
		return
	}
	if handleFlowError(c, err) {
		return
	}
	c.Redirect(http.StatusSeeOther, StepFourPath)
}

// StepFour handles GET /step-4: the summary with the computed total, keyed by
// the active billing cycle.
func (h *WizardHandler) StepFour(c *gin.Context) {
	session, total, err := h.Service.LoadStepFour(c.Request.Context(), middleware.SessionKey(c))
	if handleFlowError(c, err) {
		return
	}
	totalByCycle := gin.H{"monthly": total}
	if session.Yearly {
		totalByCycle = gin.H{"yearly": total}
	}
	c.JSON(http.StatusOK, gin.H{
		"step":  4,
		"back":  StepThreePath,
		"data":  session,
		"total": totalByCycle,
	})
}

// CompleteWizard handles POST /step-4: the summary was accepted.
func (h *WizardHandler) CompleteWizard(c *gin.Context) {
	err := h.Service.Complete(c.Request.Context(), middleware.SessionKey(c))
	if handleFlowError(c, err) {
		return
	}
	c.Redirect(http.StatusSeeOther, ConfirmationPath)
}

// Confirmation handles GET /confirmation: a one-time view that deletes the
// session, so revisiting redirects to step 1.
func (h *WizardHandler) Confirmation(c *gin.Context) {
	session, err := h.Service.Confirm(c.Request.Context(), middleware.SessionKey(c))
	if handleFlowError(c, err) {
		return
	}
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Thank you for confirming your subscription!",
		"email":   session.Email,
	})
}
