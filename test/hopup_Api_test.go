package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pitboxBackend/domain/hopup"
	"pitboxBackend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listHopUps(t *testing.T, router http.Handler, cookie *http.Cookie, modelId string) []hopup.HopUpOut {
	req, _ := http.NewRequest("GET", "/models/"+modelId+"/hopups", nil)
	req.AddCookie(cookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[[]hopup.HopUpOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	return response.Payload
}

// === GET ===
func TestGetHopUps(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	parts := listHopUps(t, router, AccessTokenCookie(t, authManager, data.Alice), data.AliceModel.UUID)
	require.Len(t, parts, 1)
	assert.Equal(t, "Aluminium Propeller Shaft", parts[0].Name)
	assert.Equal(t, 50.0, parts[0].Cost)
	assert.Equal(t, 2, parts[0].Quantity)
	assert.Equal(t, "installed", parts[0].Status)
}

func TestGetHopUps_OtherUser_NotFound(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/models/"+data.AliceModel.UUID+"/hopups", nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// === POST ===
func TestCreateHopUp_CoercesNumericStrings(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Bob)

	body := `{"name":"Ball Bearings","cost":"12.50","quantity":"4"}`
	req, _ := http.NewRequest("POST", "/models/"+data.BobModel.UUID+"/hopups", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	parts := listHopUps(t, router, cookie, data.BobModel.UUID)
	require.Len(t, parts, 1)
	assert.Equal(t, 12.5, parts[0].Cost)
	assert.Equal(t, 4, parts[0].Quantity)
	assert.Equal(t, "planned", parts[0].Status)
	assert.NotNil(t, parts[0].Compatibility)
}

func TestCreateHopUp_InvalidStatus(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	body := `{"name":"Motor","status":"broken"}`
	req, _ := http.NewRequest("POST", "/models/"+data.BobModel.UUID+"/hopups", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// === PATCH ===
func TestUpdateHopUp_Install(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Alice)

	parts := listHopUps(t, router, cookie, data.AliceModel.UUID)
	require.Len(t, parts, 1)

	body := `{"status":"removed","cost":55}`
	req, _ := http.NewRequest("PATCH", "/models/"+data.AliceModel.UUID+"/hopups/"+parts[0].ID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	parts = listHopUps(t, router, cookie, data.AliceModel.UUID)
	assert.Equal(t, "removed", parts[0].Status)
	assert.Equal(t, 55.0, parts[0].Cost)
}

// === DELETE ===
func TestDeleteHopUp(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Alice)

	parts := listHopUps(t, router, cookie, data.AliceModel.UUID)
	require.Len(t, parts, 1)

	req, _ := http.NewRequest("DELETE", "/models/"+data.AliceModel.UUID+"/hopups/"+parts[0].ID, nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	assert.Empty(t, listHopUps(t, router, cookie, data.AliceModel.UUID))
}

func TestDeleteHopUp_OtherUser_NotFound(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	parts := listHopUps(t, router, AccessTokenCookie(t, authManager, data.Alice), data.AliceModel.UUID)
	require.Len(t, parts, 1)

	req, _ := http.NewRequest("DELETE", "/models/"+data.AliceModel.UUID+"/hopups/"+parts[0].ID, nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
