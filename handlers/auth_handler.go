package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/futbol5/middleware"
	"github.com/Dosada05/futbol5/services"
)

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
	now         func() time.Time
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
		now:         time.Now,
	}
}

// Login exchanges the admin credentials for a JWT.
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginInput true "Admin credentials"
// @Success 200 {object} map[string]interface{} "token"
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	email, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	tokenString, err := middleware.IssueAdminToken(h.jwtSecret, email, h.now())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"token": tokenString}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
