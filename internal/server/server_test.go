package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/job-assessor/internal/advisor"
	"github.com/jonathan/job-assessor/internal/config"
	"github.com/jonathan/job-assessor/internal/server/ratelimit"
	"github.com/jonathan/job-assessor/internal/session"
	"github.com/jonathan/job-assessor/internal/store"
	"github.com/jonathan/job-assessor/internal/types"
)

// fakeAdviser scripts the generative service for handler tests.
type fakeAdviser struct {
	details    *types.ProfileDetails
	detailsErr error

	analysis    *types.AnalysisResult
	analysisErr error

	letter    string
	letterErr error

	suggestion    string
	suggestionErr error
}

func (f *fakeAdviser) ExtractProfileDetails(context.Context, string) (*types.ProfileDetails, error) {
	return f.details, f.detailsErr
}

func (f *fakeAdviser) AnalyzeJob(context.Context, *types.JobInput) (*types.AnalysisResult, error) {
	return f.analysis, f.analysisErr
}

func (f *fakeAdviser) RegenerateProposal(context.Context, *types.SavedJob, types.ProposalTone, string, string) (string, error) {
	return f.letter, f.letterErr
}

func (f *fakeAdviser) SuggestFollowUp(context.Context, *types.SavedJob) (string, error) {
	return f.suggestion, f.suggestionErr
}

func testAnalysis() *types.AnalysisResult {
	return &types.AnalysisResult{
		ApplyRecommendation: types.RecommendApply,
		Confidence:          0.8,
		OpportunityScore:    70,
		JobTitle:            "Senior React Developer",
		DetailedReport:      "report",
		Proposal:            &types.Proposal{CoverLetter: "Hi, saw your posting."},
		StructuredReasons:   []string{"fit"},
	}
}

func newTestServer(t *testing.T, adviser session.Adviser) *httptest.Server {
	t.Helper()

	mem := store.NewMemory()
	pw := &config.PasswordConfig{BcryptCost: bcrypt.MinCost}
	sessions := session.NewManager(mem, adviser, pw, time.Millisecond)

	srv, err := New(Config{
		Port:      0,
		Sessions:  sessions,
		JWT:       &config.JWTConfig{Secret: "test-secret-key", ExpirationHours: 1},
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signUpUser(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()
	resp := doJSON(t, "POST", ts.URL+"/auth/signup", "", types.SignupRequest{
		Username: username,
		Password: "password1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	auth := decodeBody[types.AuthResponse](t, resp)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &fakeAdviser{})
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer(t, &fakeAdviser{})

	token := signUpUser(t, ts, "alice")

	// The token works.
	resp := doJSON(t, "GET", ts.URL+"/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[types.AccountView](t, resp)
	assert.Equal(t, "alice", me.Username)
	require.Len(t, me.Identity.Profiles, 1)
	assert.Equal(t, types.DefaultProfileLabel, me.Identity.Profiles[0].Label)

	// Duplicate username.
	resp = doJSON(t, "POST", ts.URL+"/auth/signup", "", types.SignupRequest{Username: "alice", Password: "password2"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// Login round-trip.
	resp = doJSON(t, "POST", ts.URL+"/auth/login", "", types.LoginRequest{Username: "alice", Password: "password1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	auth := decodeBody[types.AuthResponse](t, resp)
	assert.NotEmpty(t, auth.Token)

	// Wrong password.
	resp = doJSON(t, "POST", ts.URL+"/auth/login", "", types.LoginRequest{Username: "alice", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSignupValidation(t *testing.T) {
	ts := newTestServer(t, &fakeAdviser{})

	// Short password.
	resp := doJSON(t, "POST", ts.URL+"/auth/signup", "", types.SignupRequest{Username: "bob", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Empty username.
	resp = doJSON(t, "POST", ts.URL+"/auth/signup", "", types.SignupRequest{Password: "password1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t, &fakeAdviser{})

	for _, route := range []struct{ method, path string }{
		{"GET", "/me"},
		{"GET", "/jobs"},
		{"POST", "/jobs/analyze"},
	} {
		resp := doJSON(t, route.method, ts.URL+route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
		_ = resp.Body.Close()
	}

	// Garbage token.
	resp := doJSON(t, "GET", ts.URL+"/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAnalyzeFlow(t *testing.T) {
	adviser := &fakeAdviser{analysis: testAnalysis(), suggestion: "Happy to share my approach.", letter: "Fresh letter."}
	ts := newTestServer(t, adviser)
	token := signUpUser(t, ts, "alice")

	// Analyze.
	resp := doJSON(t, "POST", ts.URL+"/jobs/analyze", token, types.AnalyzeRequest{RawText: "Senior React Developer, $50/hr"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	job := decodeBody[types.SavedJob](t, resp)
	assert.Equal(t, types.StatusLead, job.Status)
	assert.Equal(t, "Hi, saw your posting.", job.EditedProposal)

	// List and search.
	resp = doJSON(t, "GET", ts.URL+"/jobs", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	jobs := decodeBody[[]types.SavedJob](t, resp)
	require.Len(t, jobs, 1)

	resp = doJSON(t, "GET", ts.URL+"/jobs?search=react", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]types.SavedJob](t, resp), 1)

	resp = doJSON(t, "GET", ts.URL+"/jobs?search=golang", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]types.SavedJob](t, resp))

	// Status.
	resp = doJSON(t, "PATCH", ts.URL+"/jobs/"+job.ID+"/status", token, types.StatusUpdateRequest{Status: types.StatusApplied})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, types.StatusApplied, decodeBody[types.SavedJob](t, resp).Status)

	resp = doJSON(t, "PATCH", ts.URL+"/jobs/"+job.ID+"/status", token, map[string]string{"status": "promoted"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Client message triggers a suggestion.
	resp = doJSON(t, "POST", ts.URL+"/jobs/"+job.ID+"/messages", token, types.MessageRequest{Role: types.RoleClient, Text: "Can you start Monday?"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	msg := decodeBody[messageResponse](t, resp)
	assert.Equal(t, "Happy to share my approach.", msg.Suggestion)
	require.Len(t, msg.Job.Messages, 1)

	// Accepting = posting a me message.
	resp = doJSON(t, "POST", ts.URL+"/jobs/"+job.ID+"/messages", token, types.MessageRequest{Role: types.RoleMe, Text: msg.Suggestion})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	msg = decodeBody[messageResponse](t, resp)
	require.Len(t, msg.Job.Messages, 2)
	assert.Equal(t, types.RoleMe, msg.Job.Messages[1].Role)
	assert.Empty(t, msg.Suggestion, "me messages do not trigger suggestions")

	// Standalone suggest.
	resp = doJSON(t, "POST", ts.URL+"/jobs/"+job.ID+"/suggest", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Happy to share my approach.", decodeBody[map[string]string](t, resp)["suggestion"])

	// Proposal save and regenerate.
	resp = doJSON(t, "PUT", ts.URL+"/jobs/"+job.ID+"/proposal", token, types.ProposalUpdateRequest{Text: "My edit."})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "My edit.", decodeBody[types.SavedJob](t, resp).EditedProposal)

	resp = doJSON(t, "POST", ts.URL+"/jobs/"+job.ID+"/proposal/regenerate", token, types.RegenerateRequest{Tone: types.ToneBold})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Fresh letter.", decodeBody[types.SavedJob](t, resp).EditedProposal)
}

func TestAnalyzeFailureMapsToBadGateway(t *testing.T) {
	ts := newTestServer(t, &fakeAdviser{analysisErr: &advisor.APICallError{Message: "quota exceeded"}})
	token := signUpUser(t, ts, "alice")

	resp := doJSON(t, "POST", ts.URL+"/jobs/analyze", token, types.AnalyzeRequest{RawText: "raw"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "analysis service failed, please try again", body["error"])

	// Nothing was stored.
	resp = doJSON(t, "GET", ts.URL+"/jobs", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]types.SavedJob](t, resp))
}

func TestDeleteEndpoints(t *testing.T) {
	adviser := &fakeAdviser{analysis: testAnalysis()}
	ts := newTestServer(t, adviser)
	token := signUpUser(t, ts, "alice")

	var ids []string
	for i := 0; i < 3; i++ {
		resp := doJSON(t, "POST", ts.URL+"/jobs/analyze", token, types.AnalyzeRequest{RawText: fmt.Sprintf("posting %d", i)})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, decodeBody[types.SavedJob](t, resp).ID)
	}

	// Bulk delete without confirm is rejected.
	resp := doJSON(t, "DELETE", ts.URL+"/jobs", token, types.BulkDeleteRequest{IDs: ids[:2]})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, "DELETE", ts.URL+"/jobs", token, types.BulkDeleteRequest{IDs: ids[:2], Confirm: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	remaining := decodeBody[[]types.SavedJob](t, resp)
	require.Len(t, remaining, 1)
	assert.Equal(t, ids[2], remaining[0].ID)

	// Single delete requires ?confirm=true.
	resp = doJSON(t, "DELETE", ts.URL+"/jobs/"+ids[2], token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, "DELETE", ts.URL+"/jobs/"+ids[2]+"?confirm=true", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]types.SavedJob](t, resp))
}

func TestProfileEndpoints(t *testing.T) {
	adviser := &fakeAdviser{details: &types.ProfileDetails{
		Name:     "Alice",
		Headline: "Engineer",
		Skills:   []string{"Go"},
		Rate:     "$80/hr",
	}}
	ts := newTestServer(t, adviser)
	token := signUpUser(t, ts, "alice")

	// Add a second profile; it becomes active.
	resp := doJSON(t, "POST", ts.URL+"/me/profiles", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	added := decodeBody[types.Profile](t, resp)
	assert.Equal(t, types.SpecializedProfileLabel, added.Label)

	resp = doJSON(t, "GET", ts.URL+"/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[types.AccountView](t, resp)
	assert.Equal(t, added.ID, me.Identity.ActiveProfileID)

	// Partial update of the active profile.
	label := "Data Work"
	resp = doJSON(t, "PATCH", ts.URL+"/me/profiles/active", token, types.ProfileUpdate{Label: &label})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Data Work", decodeBody[types.Profile](t, resp).Label)

	// Extraction merges into the active profile.
	resp = doJSON(t, "POST", ts.URL+"/me/profiles/active/extract", token, types.ExtractRequest{Bio: "I build Go services."})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	extracted := decodeBody[types.Profile](t, resp)
	assert.Equal(t, "Alice", extracted.ProfileName)
	assert.Contains(t, extracted.Skills, "Go")

	// Switch back to the default profile.
	resp = doJSON(t, "PUT", ts.URL+"/me/profiles/active/select", token, map[string]string{"id": "main"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "main", decodeBody[types.Identity](t, resp).ActiveProfileID)

	// Selecting a missing profile is a 404.
	resp = doJSON(t, "PUT", ts.URL+"/me/profiles/active/select", token, map[string]string{"id": "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// Remove the added profile (confirm required).
	resp = doJSON(t, "DELETE", ts.URL+"/me/profiles/"+added.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, "DELETE", ts.URL+"/me/profiles/"+added.ID+"?confirm=true", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ident := decodeBody[types.Identity](t, resp)
	require.Len(t, ident.Profiles, 1)
	assert.Equal(t, "main", ident.ActiveProfileID)

	// The last profile cannot be removed.
	resp = doJSON(t, "DELETE", ts.URL+"/me/profiles/main?confirm=true", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Identity preferences.
	tone := types.ToneBold
	resp = doJSON(t, "PATCH", ts.URL+"/me/identity", token, types.IdentityUpdate{PreferredTone: &tone})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, types.ToneBold, decodeBody[types.Identity](t, resp).PreferredTone)
}

func TestUsersAreIsolated(t *testing.T) {
	adviser := &fakeAdviser{analysis: testAnalysis()}
	ts := newTestServer(t, adviser)
	aliceToken := signUpUser(t, ts, "alice")
	bobToken := signUpUser(t, ts, "bob")

	resp := doJSON(t, "POST", ts.URL+"/jobs/analyze", aliceToken, types.AnalyzeRequest{RawText: "raw"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	job := decodeBody[types.SavedJob](t, resp)

	// Bob sees no jobs and cannot read Alice's.
	resp = doJSON(t, "GET", ts.URL+"/jobs", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]types.SavedJob](t, resp))

	resp = doJSON(t, "GET", ts.URL+"/jobs/"+job.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}
