package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmartinez/todo-api/internal/api"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(newTestService(t), newTestLogger(t))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeAuthResponse(t *testing.T, rec *httptest.ResponseRecorder) api.AuthResponse {
	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name     string
		request  RegisterRequest
		setup    func(*Handler)
		wantCode int
	}{
		{
			name: "valid registration",
			request: RegisterRequest{
				Email:    "test@example.com",
				FullName: "Test User",
				Password: "Testpass123!",
			},
			wantCode: http.StatusOK,
		},
		{
			name: "missing email",
			request: RegisterRequest{
				FullName: "Test User",
				Password: "Testpass123!",
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "malformed email",
			request: RegisterRequest{
				Email:    "not-an-email",
				FullName: "Test User",
				Password: "Testpass123!",
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "password too short",
			request: RegisterRequest{
				Email:    "test@example.com",
				FullName: "Test User",
				Password: "Tp1!",
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "password missing special character",
			request: RegisterRequest{
				Email:    "test@example.com",
				FullName: "Test User",
				Password: "Testpass123",
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: RegisterRequest{
				Email:    "existing@example.com",
				FullName: "Test User",
				Password: "Testpass123!",
			},
			setup: func(h *Handler) {
				_ = h.service.RegisterUser("existing@example.com", "Existing User", "Testpass123!")
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			if tt.setup != nil {
				tt.setup(h)
			}

			rec := postJSON(t, h.Register, api.AccountRegister, tt.request)
			assert.Equal(t, tt.wantCode, rec.Code)

			resp := decodeAuthResponse(t, rec)
			if tt.wantCode == http.StatusOK {
				assert.True(t, resp.IsSuccess)
				assert.NotEmpty(t, resp.Message)
				// No sensitive data in the response
				assert.NotContains(t, rec.Body.String(), tt.request.Password)
			} else {
				assert.False(t, resp.IsSuccess)
				assert.NotEmpty(t, resp.Message)
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	const (
		email    = "login@example.com"
		password = "Testpass123!"
	)

	tests := []struct {
		name     string
		request  LoginRequest
		wantCode int
	}{
		{
			name:     "valid credentials",
			request:  LoginRequest{Email: email, Password: password},
			wantCode: http.StatusOK,
		},
		{
			name:     "missing password",
			request:  LoginRequest{Email: email},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "wrong password",
			request:  LoginRequest{Email: email, Password: "Wrongpass123!"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "unknown user",
			request:  LoginRequest{Email: "nobody@example.com", Password: password},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			require.NoError(t, h.service.RegisterUser(email, "Login User", password))

			rec := postJSON(t, h.Login, api.AccountLogin, tt.request)
			assert.Equal(t, tt.wantCode, rec.Code)

			resp := decodeAuthResponse(t, rec)
			if tt.wantCode == http.StatusOK {
				assert.True(t, resp.IsSuccess)
				assert.NotEmpty(t, resp.Token)
			} else {
				assert.False(t, resp.IsSuccess)
				assert.Empty(t, resp.Token)
			}
		})
	}
}

// An unknown account and a wrong password must be indistinguishable to the
// caller.
func TestHandler_Login_UniformCredentialError(t *testing.T) {
	h := newTestHandler(t)
	require.NoError(t, h.service.RegisterUser("known@example.com", "Known User", "Testpass123!"))

	wrongPassword := postJSON(t, h.Login, api.AccountLogin, LoginRequest{
		Email:    "known@example.com",
		Password: "Wrongpass123!",
	})
	unknownUser := postJSON(t, h.Login, api.AccountLogin, LoginRequest{
		Email:    "unknown@example.com",
		Password: "Testpass123!",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t,
		decodeAuthResponse(t, wrongPassword).Message,
		decodeAuthResponse(t, unknownUser).Message)
}

func TestHandler_Login_LockedAccount(t *testing.T) {
	const (
		email    = "locked@example.com"
		password = "Testpass123!"
	)

	h := newTestHandler(t)
	require.NoError(t, h.service.RegisterUser(email, "Locked User", password))

	for i := 0; i < h.service.config.MaxLoginAttempts; i++ {
		rec := postJSON(t, h.Login, api.AccountLogin, LoginRequest{Email: email, Password: "Wrongpass123!"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := postJSON(t, h.Login, api.AccountLogin, LoginRequest{Email: email, Password: password})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	resp := decodeAuthResponse(t, rec)
	assert.Equal(t, msgAccountLocked, resp.Message)
}
