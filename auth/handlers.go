package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/bloglist-go/apperror"
)

// Handlers wraps the Service to provide HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleLogin godoc
// @Summary Log in
// @Description Checks a username and password and returns a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.LoginResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input or missing fields"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /login [post]
func (h *Handlers) HandleLogin() apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		defer r.Body.Close()

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return apperror.NewBadRequestError("invalid request body: "+err.Error(), err)
		}
		if req.Username == "" || req.Password == "" {
			return apperror.NewBadRequestError("username and password are required", nil)
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusOK, resp)
		return nil
	}
}
