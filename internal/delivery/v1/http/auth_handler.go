package http

import (
	"net/http"

	"github.com/DRSN-tech/grocery-backend/internal/usecase"
	"github.com/DRSN-tech/grocery-backend/pkg/e"
	"github.com/DRSN-tech/grocery-backend/pkg/logger"
)

type AuthHandler struct {
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewAuthHandler(authUC usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUC: authUC, logger: logger}
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// register создаёт учётную запись покупателя и сразу открывает сессию.
func (a *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Password != req.ConfirmPassword {
		WriteError(w, &e.ValidationError{Field: "confirm_password", Reason: "does not match password"})
		return
	}

	res, err := a.authUC.Register(r.Context(), &usecase.RegisterReq{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	setSessionCookie(w, res.Token)
	WriteSuccess(w, http.StatusCreated, sessionResponse{Token: res.Token, Role: string(res.Role)})
}

func (a *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := a.authUC.Login(r.Context(), &usecase.LoginReq{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("login failed for %q: %s", req.Username, err.Error())
		WriteError(w, err)
		return
	}

	setSessionCookie(w, res.Token)
	WriteSuccess(w, http.StatusOK, sessionResponse{Token: res.Token, Role: string(res.Role)})
}

func (a *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.authUC.Logout(r.Context(), SessionToken(r)); err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	clearSessionCookie(w)
	WriteSuccess(w, http.StatusOK, map[string]interface{}{})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
