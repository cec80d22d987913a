package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pitboxBackend/domain/model"
	"pitboxBackend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedModel_PublicPreference_Anonymous(t *testing.T) {
	router, _, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/shared/"+*data.AliceModel.ShareSlug, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[model.SharedModelOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))

	assert.Equal(t, "TT-02", response.Payload.Name)
	assert.Equal(t, "Alice", response.Payload.OwnerName)
	require.Len(t, response.Payload.HopUps, 1)
	assert.Equal(t, "Aluminium Propeller Shaft", response.Payload.HopUps[0].Name)
}

func TestSharedModel_MasksHopUpCosts(t *testing.T) {
	router, _, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/shared/"+*data.AliceModel.ShareSlug, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	// Cost, quantity and supplier must not appear anywhere in the body
	var raw map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &raw))
	payload := raw["payload"].(map[string]any)
	hopUps := payload["hopUps"].([]any)
	require.Len(t, hopUps, 1)

	part := hopUps[0].(map[string]any)
	assert.NotContains(t, part, "cost")
	assert.NotContains(t, part, "quantity")
	assert.NotContains(t, part, "supplier")
}

func TestSharedModel_PrivatePreference_NotFound(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	// Bob's model is shared but his preference is private. Neither an
	// anonymous visitor nor another logged-in user may resolve the slug.
	req, _ := http.NewRequest("GET", "/shared/"+*data.BobModel.ShareSlug, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	req, _ = http.NewRequest("GET", "/shared/"+*data.BobModel.ShareSlug, nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Alice))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSharedModel_PrivatePreference_OwnerStillSees(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/shared/"+*data.BobModel.ShareSlug, nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestSharedModel_AuthenticatedPreference(t *testing.T) {
	router, authManager, db, data := SetupTestServer(t)

	// Flip Alice's preference, the gate must pick it up on the next request
	db.Model(&data.Alice).Update("share_preference", "authenticated")

	req, _ := http.NewRequest("GET", "/shared/"+*data.AliceModel.ShareSlug, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	req, _ = http.NewRequest("GET", "/shared/"+*data.AliceModel.ShareSlug, nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestSharedModel_UnsharedSlug_NotFound(t *testing.T) {
	router, authManager, db, data := SetupTestServer(t)

	db.Model(&data.AliceModel).Update("shared", false)

	req, _ := http.NewRequest("GET", "/shared/"+*data.AliceModel.ShareSlug, nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSharedModel_UnknownSlug_NotFound(t *testing.T) {
	router, _, _, _ := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/shared/does-not-exist", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// === Comments on shared models ===
func TestComment_CreateAndListOnSharedModel(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	body := `{"content":"Clean shaft swap!"}`
	req, _ := http.NewRequest("POST", "/models/"+data.AliceModel.UUID+"/comments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	req, _ = http.NewRequest("GET", "/models/"+data.AliceModel.UUID+"/comments", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[[]map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	require.Len(t, response.Payload, 1)
	assert.Equal(t, "Bob", response.Payload[0]["authorName"])
	assert.Equal(t, "Clean shaft swap!", response.Payload[0]["content"])
}

func TestComment_CreateOnInvisibleModel_NotFound(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	body := `{"content":"can't see this"}`
	req, _ := http.NewRequest("POST", "/models/"+data.BobModel.UUID+"/comments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(AccessTokenCookie(t, authManager, data.Alice))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestComment_DeleteByNonAuthor_Forbidden(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	body := `{"content":"Bob was here"}`
	req, _ := http.NewRequest("POST", "/models/"+data.AliceModel.UUID+"/comments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var created utils.OkResponse[string]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	// Not even the model's owner may remove somebody else's comment
	req, _ = http.NewRequest("DELETE", "/comments/"+created.Payload, nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Alice))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	req, _ = http.NewRequest("DELETE", "/comments/"+created.Payload, nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}
