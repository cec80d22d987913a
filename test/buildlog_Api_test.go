package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pitboxBackend/domain/buildlog"
	"pitboxBackend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listLogEntries(t *testing.T, router http.Handler, cookie *http.Cookie, modelId string) []buildlog.BuildLogOut {
	req, _ := http.NewRequest("GET", "/models/"+modelId+"/logs", nil)
	req.AddCookie(cookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[[]buildlog.BuildLogOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	return response.Payload
}

// === GET ===
func TestGetLogEntries(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	entries := listLogEntries(t, router, AccessTokenCookie(t, authManager, data.Alice), data.AliceModel.UUID)
	require.Len(t, entries, 6)

	// Newest first
	assert.Equal(t, 6, entries[0].EntryNumber)
	assert.Equal(t, 1, entries[5].EntryNumber)
}

func TestGetLogEntries_OtherUser_NotFound(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/models/"+data.AliceModel.UUID+"/logs", nil)
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// === POST ===
func TestCreateLogEntry_DefaultsEntryDate(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Bob)

	body := `{"title":"Diff rebuild","content":"New outdrives","entryNumber":"7"}`
	req, _ := http.NewRequest("POST", "/models/"+data.BobModel.UUID+"/logs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	entries := listLogEntries(t, router, cookie, data.BobModel.UUID)
	require.Len(t, entries, 1)
	assert.Equal(t, "Diff rebuild", entries[0].Title)
	assert.Equal(t, 7, entries[0].EntryNumber)
	assert.False(t, entries[0].EntryDate.IsZero())
}

func TestCreateLogEntry_MissingTitle(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("POST", "/models/"+data.BobModel.UUID+"/logs", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(AccessTokenCookie(t, authManager, data.Bob))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

// === Photo links ===
func TestLinkPhotoToLogEntry(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Alice)

	entries := listLogEntries(t, router, cookie, data.AliceModel.UUID)
	require.NotEmpty(t, entries)
	photos := listPhotos(t, router, cookie, data.AliceModel.UUID)
	require.Len(t, photos, 1)

	entryId := entries[0].ID
	photoId := photos[0].ID

	req, _ := http.NewRequest("PUT", "/models/"+data.AliceModel.UUID+"/logs/"+entryId+"/photos/"+photoId, nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	entries = listLogEntries(t, router, cookie, data.AliceModel.UUID)
	require.Len(t, entries[0].Photos, 1)
	assert.Equal(t, photoId, entries[0].Photos[0].ID)

	// Unlink detaches the photo from the entry but keeps it on the model
	req, _ = http.NewRequest("DELETE", "/models/"+data.AliceModel.UUID+"/logs/"+entryId+"/photos/"+photoId, nil)
	req.AddCookie(cookie)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	entries = listLogEntries(t, router, cookie, data.AliceModel.UUID)
	assert.Empty(t, entries[0].Photos)
	assert.Len(t, listPhotos(t, router, cookie, data.AliceModel.UUID), 1)
}

func TestLinkPhoto_ForeignPhoto_NotFound(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	bobCookie := AccessTokenCookie(t, authManager, data.Bob)
	aliceCookie := AccessTokenCookie(t, authManager, data.Alice)

	// Bob needs an entry of his own to link against
	body := `{"title":"First session"}`
	req, _ := http.NewRequest("POST", "/models/"+data.BobModel.UUID+"/logs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(bobCookie)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	entries := listLogEntries(t, router, bobCookie, data.BobModel.UUID)
	require.Len(t, entries, 1)
	alicePhotos := listPhotos(t, router, aliceCookie, data.AliceModel.UUID)
	require.Len(t, alicePhotos, 1)

	// Alice's photo does not belong to Bob's model
	req, _ = http.NewRequest("PUT", "/models/"+data.BobModel.UUID+"/logs/"+entries[0].ID+"/photos/"+alicePhotos[0].ID, nil)
	req.AddCookie(bobCookie)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// === DELETE ===
func TestDeleteLogEntry(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Alice)

	entries := listLogEntries(t, router, cookie, data.AliceModel.UUID)
	require.Len(t, entries, 6)

	req, _ := http.NewRequest("DELETE", "/models/"+data.AliceModel.UUID+"/logs/"+entries[0].ID, nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	assert.Len(t, listLogEntries(t, router, cookie, data.AliceModel.UUID), 5)
}
