package users

import (
	"encoding/json"
	"net/http"

	"github.com/user/bloglist-go/apperror"
)

// UserHandlers provides HTTP handlers for accounts.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleCreateUser godoc
// @Summary Create a user
// @Description Registers a new account. The password hash is never returned.
// @Tags users
// @Accept json
// @Produce json
// @Param user body users.CreateUserRequest true "Account details"
// @Success 201 {object} model.User "User created"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Short password, invalid or duplicate username"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users [post]
func (h *UserHandlers) HandleCreateUser() apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		defer r.Body.Close()

		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return apperror.NewBadRequestError("invalid request body: "+err.Error(), err)
		}

		user, err := h.service.Create(r.Context(), req)
		if err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusCreated, user)
		return nil
	}
}

// HandleListUsers godoc
// @Summary List users
// @Description Returns every user together with the blogs they created.
// @Tags users
// @Produce json
// @Success 200 {array} model.User "All users"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /users [get]
func (h *UserHandlers) HandleListUsers() apperror.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		users, err := h.service.List(r.Context())
		if err != nil {
			return err
		}
		apperror.WriteJSON(w, http.StatusOK, users)
		return nil
	}
}
