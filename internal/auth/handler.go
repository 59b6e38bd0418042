package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"unicode"

	"go.uber.org/zap"

	"github.com/dmartinez/todo-api/internal/api"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

const (
	msgInvalidCredentials = "Invalid credentials"
	msgAccountLocked      = "Your account has been locked due to multiple failed attempts. Try again later."
)

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteJSON(w, http.StatusBadRequest, api.AuthResponse{Message: "Invalid request payload"})
		return
	}

	if err := validateRegisterRequest(&req); err != nil {
		h.log.Warn("invalid register request",
			zap.String("email", req.Email),
			zap.String("error", err.Error()))
		api.WriteJSON(w, http.StatusBadRequest, api.AuthResponse{Message: err.Error()})
		return
	}

	h.log.Info("handling register request", zap.String("email", req.Email))

	if err := h.service.RegisterUser(req.Email, req.FullName, req.Password); err != nil {
		if errors.Is(err, ErrUserExists) {
			api.WriteJSON(w, http.StatusConflict, api.AuthResponse{Message: "Email is already in use"})
			return
		}
		h.log.Error("failed to register user",
			zap.String("email", req.Email),
			zap.Error(err))
		api.WriteJSON(w, http.StatusInternalServerError, api.AuthResponse{Message: "Failed to register user"})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.AuthResponse{
		IsSuccess: true,
		Message:   "Account created successfully",
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteJSON(w, http.StatusBadRequest, api.AuthResponse{Message: "Invalid request payload"})
		return
	}

	if err := validateLoginRequest(&req); err != nil {
		h.log.Warn("invalid login request",
			zap.String("email", req.Email),
			zap.String("error", err.Error()))
		api.WriteJSON(w, http.StatusBadRequest, api.AuthResponse{Message: err.Error()})
		return
	}

	token, err := h.service.ValidateLogin(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			api.WriteJSON(w, http.StatusUnauthorized, api.AuthResponse{Message: msgInvalidCredentials})
		case errors.Is(err, ErrAccountLocked):
			h.log.Warn("login attempt on locked account", zap.String("email", req.Email))
			api.WriteJSON(w, http.StatusUnauthorized, api.AuthResponse{Message: msgAccountLocked})
		default:
			h.log.Error("login failed",
				zap.String("email", req.Email),
				zap.Error(err))
			api.WriteJSON(w, http.StatusInternalServerError, api.AuthResponse{Message: "Login failed"})
		}
		return
	}

	api.WriteJSON(w, http.StatusOK, api.AuthResponse{
		IsSuccess: true,
		Token:     token,
		Message:   "Login successful",
	})
}

func validateRegisterRequest(req *RegisterRequest) error {
	if req.Email == "" {
		return errors.New("email is required")
	}
	if !isValidEmail(req.Email) {
		return errors.New("invalid email format")
	}
	if req.FullName == "" {
		return errors.New("full name is required")
	}
	return validatePassword(req.Password)
}

func validateLoginRequest(req *LoginRequest) error {
	if req.Email == "" {
		return errors.New("email is required")
	}
	if req.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// validatePassword enforces the account password policy: at least 8
// characters with an upper-case letter, a lower-case letter, a digit and a
// special character.
func validatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return errors.New("password must contain an upper-case letter, a lower-case letter, a digit and a special character")
	}
	return nil
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
