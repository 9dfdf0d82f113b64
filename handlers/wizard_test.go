package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	sessionRepo "signup/database/repository/session"
	"signup/handlers"
	"signup/middleware"
	"signup/routes"
	"signup/services/wizard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, ttl time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := sessionRepo.NewMemorySessionStore(ttl, time.Hour)
	t.Cleanup(func() { store.Close() })

	svc := &wizard.DefaultWizardService{Store: store}
	hb := handlers.NewHandlerBundle(handlers.NewWizardHandler(svc))
	router := gin.New()
	routes.RegisterWizardRoutes(router, hb)
	return router
}

func doForm(router *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doGet(router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func validPersonalForm() url.Values {
	return url.Values{
		"name":  {"Jane Doe"},
		"email": {"jane@example.com"},
		"tel":   {"555-0101"},
	}
}

func TestFullFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t, time.Minute)

	w := doForm(router, "/step-1", validPersonalForm(), nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-2", w.Header().Get("Location"))
	cookie := sessionCookie(t, w)

	// Step 2 pre-fills the default plan.
	w = doGet(router, "/step-2", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["planId"])
	assert.Equal(t, false, body["yearly"])

	w = doForm(router, "/step-2", url.Values{"plan": {"1"}, "yearly": {"on"}}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-3", w.Header().Get("Location"))

	w = doForm(router, "/step-3", url.Values{"add_ons": {"1"}}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-4", w.Header().Get("Location"))

	w = doGet(router, "/step-4", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	total, ok := body["total"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 100, total["yearly"], "Arcade yearly 90 plus Online service yearly 10")

	w = doForm(router, "/step-4", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/confirmation", w.Header().Get("Location"))

	w = doGet(router, "/confirmation", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Confirmation is single-use: the session is gone now.
	w = doGet(router, "/confirmation", cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-1", w.Header().Get("Location"))
}

func TestStepOnePrefillsExistingSession(t *testing.T) {
	router := newTestRouter(t, time.Minute)
	cookie := sessionCookie(t, doForm(router, "/step-1", validPersonalForm(), nil))

	w := doGet(router, "/step-1", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeBody(t, w)["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", data["name"])
	assert.Equal(t, "jane@example.com", data["email"])
	assert.Equal(t, "555-0101", data["tel"])
}

func TestValidationFailurePreservesOtherFields(t *testing.T) {
	router := newTestRouter(t, time.Minute)

	form := validPersonalForm()
	form.Set("email", "not-an-email")
	w := doForm(router, "/step-1", form, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	errs, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "name")
	assert.NotContains(t, errs, "tel")

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", data["name"])
	assert.Equal(t, "not-an-email", data["email"])
	assert.Equal(t, "555-0101", data["tel"])
}

func TestMissingSessionRedirectsToStart(t *testing.T) {
	router := newTestRouter(t, time.Minute)

	for _, path := range []string{"/step-2", "/step-3", "/step-4", "/confirmation"} {
		w := doGet(router, path, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/step-1", w.Header().Get("Location"), path)
	}

	w := doForm(router, "/step-2", url.Values{"plan": {"1"}}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-1", w.Header().Get("Location"))
}

func TestTamperedCookieTreatedAsNoSession(t *testing.T) {
	router := newTestRouter(t, time.Minute)
	cookie := sessionCookie(t, doForm(router, "/step-1", validPersonalForm(), nil))
	cookie.Value += "tamper"

	w := doGet(router, "/step-2", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-1", w.Header().Get("Location"))
}

func TestExpiredSessionRedirectsToStart(t *testing.T) {
	router := newTestRouter(t, 30*time.Millisecond)
	cookie := sessionCookie(t, doForm(router, "/step-1", validPersonalForm(), nil))

	time.Sleep(60 * time.Millisecond)
	w := doGet(router, "/step-2", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-1", w.Header().Get("Location"))
}

func TestStepThreeRequiresResolvedPlan(t *testing.T) {
	router := newTestRouter(t, time.Minute)
	cookie := sessionCookie(t, doForm(router, "/step-1", validPersonalForm(), nil))

	// Plan never submitted: bounce to step 1, not step 2.
	w := doGet(router, "/step-3", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-1", w.Header().Get("Location"))

	// Unknown plan id leaves the plan unresolved; same bounce.
	doForm(router, "/step-2", url.Values{"plan": {"99"}}, cookie)
	w = doGet(router, "/step-3", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-1", w.Header().Get("Location"))
}

func TestStepTwoPreviewDoesNotPersist(t *testing.T) {
	router := newTestRouter(t, time.Minute)
	cookie := sessionCookie(t, doForm(router, "/step-1", validPersonalForm(), nil))

	w := doGet(router, "/step-2?plan=3&yearly=true", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	preview, ok := body["preview"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 150, preview["price"])
	// The stored selection is untouched.
	assert.EqualValues(t, 1, body["planId"])
	assert.Equal(t, false, body["yearly"])

	w = doGet(router, "/step-2", cookie)
	body = decodeBody(t, w)
	assert.EqualValues(t, 1, body["planId"])
}

func TestSubmitPlanIdempotentOverHTTP(t *testing.T) {
	router := newTestRouter(t, time.Minute)
	cookie := sessionCookie(t, doForm(router, "/step-1", validPersonalForm(), nil))

	form := url.Values{"plan": {"2"}, "yearly": {"on"}}
	doForm(router, "/step-2", form, cookie)
	doForm(router, "/step-2", form, cookie)
	doForm(router, "/step-3", url.Values{}, cookie)

	w := doGet(router, "/step-4", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	total := decodeBody(t, w)["total"].(map[string]interface{})
	assert.EqualValues(t, 120, total["yearly"])
}

func TestEmptyAddOnSelectionIsValid(t *testing.T) {
	router := newTestRouter(t, time.Minute)
	cookie := sessionCookie(t, doForm(router, "/step-1", validPersonalForm(), nil))
	doForm(router, "/step-2", url.Values{"plan": {"1"}}, cookie)

	w := doForm(router, "/step-3", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/step-4", w.Header().Get("Location"))

	w = doGet(router, "/step-4", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	total := decodeBody(t, w)["total"].(map[string]interface{})
	assert.EqualValues(t, 9, total["monthly"])
}

func TestSubmitAddOnsRejectsUnknownAndNonNumericIDs(t *testing.T) {
	router := newTestRouter(t, time.Minute)
	cookie := sessionCookie(t, doForm(router, "/step-1", validPersonalForm(), nil))
	doForm(router, "/step-2", url.Values{"plan": {"1"}}, cookie)

	w := doForm(router, "/step-3", url.Values{"add_ons": {"1", "42"}}, cookie)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := decodeBody(t, w)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "add_ons")

	w = doForm(router, "/step-3", url.Values{"add_ons": {"abc"}}, cookie)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSubmitPlanRejectsNonNumericID(t *testing.T) {
	router := newTestRouter(t, time.Minute)
	cookie := sessionCookie(t, doForm(router, "/step-1", validPersonalForm(), nil))

	w := doForm(router, "/step-2", url.Values{"plan": {"arcade"}}, cookie)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := decodeBody(t, w)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "plan")
}
