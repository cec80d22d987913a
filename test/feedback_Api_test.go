package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pitboxBackend/domain/feedback"
	"pitboxBackend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFeedbackPost(t *testing.T, router http.Handler, cookie *http.Cookie, body string) string {
	req, _ := http.NewRequest("POST", "/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var created utils.OkResponse[string]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	return created.Payload
}

func listFeedback(t *testing.T, router http.Handler, cookie *http.Cookie) []feedback.FeedbackOut {
	req, _ := http.NewRequest("GET", "/feedback", nil)
	req.AddCookie(cookie)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[[]feedback.FeedbackOut]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	return response.Payload
}

func TestCreateAndListFeedback(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Alice)

	createFeedbackPost(t, router, cookie, `{"title":"Dark mode","body":"Please","category":"request"}`)

	posts := listFeedback(t, router, cookie)
	require.Len(t, posts, 1)
	assert.Equal(t, "Dark mode", posts[0].Title)
	assert.Equal(t, "request", posts[0].Category)
	assert.Equal(t, "Alice", posts[0].AuthorName)
	assert.Equal(t, 0, posts[0].VoteCount)
	assert.False(t, posts[0].HasVoted)
}

func TestCreateFeedback_DefaultCategory(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Alice)

	createFeedbackPost(t, router, cookie, `{"title":"Faster uploads"}`)

	posts := listFeedback(t, router, cookie)
	require.Len(t, posts, 1)
	assert.Equal(t, "idea", posts[0].Category)
}

func TestCreateFeedback_InvalidCategory(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)

	req, _ := http.NewRequest("POST", "/feedback", strings.NewReader(`{"title":"x","category":"rant"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(AccessTokenCookie(t, authManager, data.Alice))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestVote_OncePerUser(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	aliceCookie := AccessTokenCookie(t, authManager, data.Alice)
	bobCookie := AccessTokenCookie(t, authManager, data.Bob)

	postId := createFeedbackPost(t, router, aliceCookie, `{"title":"CSV export"}`)

	req, _ := http.NewRequest("POST", "/feedback/"+postId+"/vote", nil)
	req.AddCookie(bobCookie)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	// The composite unique index rejects the second vote
	req, _ = http.NewRequest("POST", "/feedback/"+postId+"/vote", nil)
	req.AddCookie(bobCookie)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusConflict, resp.Code)

	posts := listFeedback(t, router, bobCookie)
	require.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].VoteCount)
	assert.True(t, posts[0].HasVoted)

	// Alice has not voted, her view says so
	posts = listFeedback(t, router, aliceCookie)
	assert.False(t, posts[0].HasVoted)
}

func TestVote_CountsAllVoters(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	aliceCookie := AccessTokenCookie(t, authManager, data.Alice)
	bobCookie := AccessTokenCookie(t, authManager, data.Bob)

	postId := createFeedbackPost(t, router, aliceCookie, `{"title":"Timeline view"}`)

	for _, cookie := range []*http.Cookie{aliceCookie, bobCookie} {
		req, _ := http.NewRequest("POST", "/feedback/"+postId+"/vote", nil)
		req.AddCookie(cookie)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	// Both vote rows attach to the post and ride along on the list view
	posts := listFeedback(t, router, aliceCookie)
	require.Len(t, posts, 1)
	assert.Equal(t, 2, posts[0].VoteCount)
	assert.True(t, posts[0].HasVoted)
}

func TestUnvote(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	cookie := AccessTokenCookie(t, authManager, data.Bob)

	postId := createFeedbackPost(t, router, cookie, `{"title":"Bulk tagging"}`)

	req, _ := http.NewRequest("POST", "/feedback/"+postId+"/vote", nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	req, _ = http.NewRequest("DELETE", "/feedback/"+postId+"/vote", nil)
	req.AddCookie(cookie)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	posts := listFeedback(t, router, cookie)
	assert.Equal(t, 0, posts[0].VoteCount)
	assert.False(t, posts[0].HasVoted)

	// Removing a vote that does not exist is a miss
	req, _ = http.NewRequest("DELETE", "/feedback/"+postId+"/vote", nil)
	req.AddCookie(cookie)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteFeedback_AuthorOnly(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	bobCookie := AccessTokenCookie(t, authManager, data.Bob)

	postId := createFeedbackPost(t, router, bobCookie, `{"title":"My own post"}`)

	req, _ := http.NewRequest("DELETE", "/feedback/"+postId, nil)
	req.AddCookie(bobCookie)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	assert.Empty(t, listFeedback(t, router, bobCookie))
}

func TestDeleteFeedback_OtherUser_Forbidden(t *testing.T) {
	router, authManager, _, data := SetupTestServer(t)
	bobCookie := AccessTokenCookie(t, authManager, data.Bob)

	postId := createFeedbackPost(t, router, bobCookie, `{"title":"Bob's post"}`)

	// Carol is a fresh non-admin account
	req := httptest.NewRequest("POST", "/users/register", strings.NewReader(
		`{"email":"carol@example.com","name":"Carol","password":"carols-password"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var carolToken string
	for _, c := range resp.Result().Cookies() {
		if c.Name == "accessToken" {
			carolToken = c.Value
		}
	}
	require.NotEmpty(t, carolToken)

	req2, _ := http.NewRequest("DELETE", "/feedback/"+postId, nil)
	req2.AddCookie(&http.Cookie{Name: "accessToken", Value: carolToken})
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req2)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
