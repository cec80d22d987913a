package test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pitboxBackend/domain/user"
	"pitboxBackend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// === POST === register
func TestRegister(t *testing.T) {
	router, _, _, _ := SetupTestServer(t)

	body := `{"email":"carol@example.com","name":"Carol","password":"carols-password"}`
	req := httptest.NewRequest("POST", "/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var hasAccessToken, hasAuthToken bool
	for _, c := range resp.Result().Cookies() {
		if c.Name == "accessToken" {
			hasAccessToken = true
		}
		if c.Name == "authToken" {
			hasAuthToken = true
		}
	}
	assert.True(t, hasAccessToken, "accessToken cookie should be set")
	assert.True(t, hasAuthToken, "authToken cookie should be set")
}

func TestRegister_EmailTaken(t *testing.T) {
	router, _, _, _ := SetupTestServer(t)

	body := `{"email":"alice@example.com","name":"Imposter","password":"irrelevant-pass"}`
	req := httptest.NewRequest("POST", "/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	router, _, _, _ := SetupTestServer(t)

	body := `{"email":"dave@example.com","name":"Dave","password":"short"}`
	req := httptest.NewRequest("POST", "/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

// === POST === login
func TestLogin_Success(t *testing.T) {
	router, _, _, _ := SetupTestServer(t)

	body := fmt.Sprintf(`{"email":"alice@example.com","password":"%s"}`, AlicePassword)
	req := httptest.NewRequest("POST", "/users/login/native", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	router, _, _, _ := SetupTestServer(t)

	body := `{"email":"alice@example.com","password":"not-the-password"}`
	req := httptest.NewRequest("POST", "/users/login/native", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response utils.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, 1001, response.Code)
}

func TestLogin_UnknownEmail_SameError(t *testing.T) {
	router, _, _, _ := SetupTestServer(t)

	// An unknown account must be indistinguishable from a bad password
	body := `{"email":"nobody@example.com","password":"whatever-pass"}`
	req := httptest.NewRequest("POST", "/users/login/native", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response utils.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, 1001, response.Code)
}

// === GET/PATCH === me
func TestMe(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/users/me", nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Alice))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[user.UserOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "alice@example.com", response.Payload.Email)
	assert.Equal(t, "public", response.Payload.SharePreference)
}

func TestUpdateMe_SharePreference(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Alice)

	body := `{"sharePreference":"private"}`
	req, _ := http.NewRequest("PATCH", "/users/me", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	req, _ = http.NewRequest("GET", "/users/me", nil)
	req.AddCookie(cookie)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var response utils.OkResponse[user.UserOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "private", response.Payload.SharePreference)
}

func TestUpdateMe_InvalidPreference(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	body := `{"sharePreference":"everyone"}`
	req, _ := http.NewRequest("PATCH", "/users/me", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(AccessTokenCookie(t, authManager, data.Alice))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// === POST === quota redemption
func TestRedeemCharge_GrantsQuota(t *testing.T) {
	t.Setenv("PB_BILLING_SECRET", "test-billing-secret")
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Bob)

	mac := hmac.New(sha256.New, []byte("test-billing-secret"))
	mac.Write([]byte("charge-001"))
	token := "charge-001:" + hex.EncodeToString(mac.Sum(nil))

	body := fmt.Sprintf(`{"chargeToken":"%s"}`, token)
	req, _ := http.NewRequest("POST", "/users/me/quota", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	req, _ = http.NewRequest("GET", "/users/me", nil)
	req.AddCookie(cookie)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var response utils.OkResponse[user.UserOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, 5, response.Payload.GrantedQuota)
}

func TestRedeemCharge_BadSignature(t *testing.T) {
	t.Setenv("PB_BILLING_SECRET", "test-billing-secret")
	router, authManager, _, data := SetupTestServer(t)

	body := `{"chargeToken":"charge-001:deadbeef"}`
	req, _ := http.NewRequest("POST", "/users/me/quota", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// === Admin ===
func TestAdminGetUsers(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/admin/users", nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Alice))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[[]user.UserOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Len(t, response.Payload, 2)
}

func TestAdminGetUsers_NonAdmin_Forbidden(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/admin/users", nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestAdminStats(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/admin/stats", nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Alice))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[user.AdminStatsOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Payload.TotalUsers)
	assert.Equal(t, 1, response.Payload.TotalAdmins)
	assert.Equal(t, 2, response.Payload.TotalModels)
}

func TestAdminDeleteUser_PurgesModels(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	adminCookie := AccessTokenCookie(t, authManager, data.Alice)

	req, _ := http.NewRequest("DELETE", "/admin/users/"+data.Bob.UUID, nil)
	req.AddCookie(adminCookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	// Bob's shared model disappears along with the account
	req, _ = http.NewRequest("GET", "/admin/stats", nil)
	req.AddCookie(adminCookie)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var response utils.OkResponse[user.AdminStatsOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Payload.TotalUsers)
	assert.Equal(t, 1, response.Payload.TotalModels)
}

func TestAdminDeleteUser_EmailCanRegisterAgain(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	adminCookie := AccessTokenCookie(t, authManager, data.Alice)

	req, _ := http.NewRequest("DELETE", "/admin/users/"+data.Bob.UUID, nil)
	req.AddCookie(adminCookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	// Deletion is permanent, so the address is free for a new account
	body := `{"email":"bob@example.com","name":"Bob II","password":"a-fresh-password"}`
	req2 := httptest.NewRequest("POST", "/users/register", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req2)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAdminGrantQuota(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	body := `{"grantedQuota":10}`
	req, _ := http.NewRequest("PATCH", "/admin/users/"+data.Bob.UUID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(AccessTokenCookie(t, authManager, data.Alice))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	req, _ = http.NewRequest("GET", "/users/me", nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var response utils.OkResponse[user.UserOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, 10, response.Payload.GrantedQuota)
}
