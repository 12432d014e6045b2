package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/deepakUNO/Kindle-Server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body map[string]interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	return resp
}

func authCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "authToken" {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]interface{}
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]interface{}{
				"userName": "alice",
				"email":    "alice@x.com",
				"password": "secret1",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "alice", result.User.UserName)
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, 3600, result.ExpiresIn)

				// Cookie expiry matches the token lifetime
				cookie := authCookie(resp)
				require.NotNil(t, cookie)
				assert.Equal(t, result.Token, cookie.Value)
				assert.Equal(t, 3600, cookie.MaxAge)
				assert.True(t, cookie.HttpOnly)
			},
		},
		{
			name: "missing email",
			request: map[string]interface{}{
				"userName": "noemail",
				"password": "secret1",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			request: map[string]interface{}{
				"userName": "nopass",
				"email":    "nopass@x.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]interface{}{
				"userName": "alice again",
				"email":    "taken@x.com",
				"password": "secret1",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@x.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := postJSON(t, ts.APIURL("/user/register"), tt.request)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("alice@x.com").
		WithPassword("secret1").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]interface{}
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful login",
			request: map[string]interface{}{
				"email":    "alice@x.com",
				"password": "secret1",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, 86400, result.ExpiresIn)

				cookie := authCookie(resp)
				require.NotNil(t, cookie)
				assert.Equal(t, 86400, cookie.MaxAge)
			},
		},
		{
			name: "wrong password",
			request: map[string]interface{}{
				"email":    "alice@x.com",
				"password": "nope",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			request: map[string]interface{}{
				"email":    "nobody@x.com",
				"password": "secret1",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "missing fields",
			request: map[string]interface{}{
				"email": "alice@x.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/user/login"), tt.request)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithUserName("alice").
		BuildAndAuthenticate(t, ts)

	t.Run("bearer header", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.APIURL("/user/me"), nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var profile struct {
			ID       string `json:"id"`
			UserName string `json:"userName"`
		}
		testutil.AssertJSONResponse(t, resp, &profile)
		assert.Equal(t, user.ID.String(), profile.ID)
		assert.Equal(t, "alice", profile.UserName)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.APIURL("/user/me"), nil)
		req.AddCookie(&http.Cookie{Name: "authToken", Value: token})

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("no credentials", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/user/me"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.APIURL("/user/me"), nil)
		req.Header.Set("Authorization", "Basic abc123")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestAuthHandler_ReloginInvalidatesOldSession(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, firstToken := testutil.NewUserBuilder().
		WithEmail("alice@x.com").
		WithPassword("secret1").
		BuildAndAuthenticate(t, ts)

	// Log in again; the stored token is overwritten
	resp := postJSON(t, ts.APIURL("/user/login"), map[string]interface{}{
		"email":    "alice@x.com",
		"password": "secret1",
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var second testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &second)
	require.NotEqual(t, firstToken, second.Token)

	// The registration-issued session is stale now
	req, _ := http.NewRequest(http.MethodGet, ts.APIURL("/user/me"), nil)
	req.Header.Set("Authorization", "Bearer "+firstToken)
	staleResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer staleResp.Body.Close()
	testutil.AssertStatusCode(t, staleResp, http.StatusUnauthorized)

	// The fresh session works
	req, _ = http.NewRequest(http.MethodGet, ts.APIURL("/user/me"), nil)
	req.Header.Set("Authorization", "Bearer "+second.Token)
	freshResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer freshResp.Body.Close()
	testutil.AssertStatusCode(t, freshResp, http.StatusOK)
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	req, _ := http.NewRequest(http.MethodPost, ts.APIURL("/user/logout"), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	// Session token is cleared; the old token no longer validates
	req, _ = http.NewRequest(http.MethodGet, ts.APIURL("/user/me"), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer meResp.Body.Close()
	testutil.AssertStatusCode(t, meResp, http.StatusUnauthorized)
}
