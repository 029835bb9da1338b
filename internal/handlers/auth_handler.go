package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/httpresp"
	"github.com/fitpulse/gym-api/internal/middleware"
	"github.com/fitpulse/gym-api/internal/models"
	"github.com/fitpulse/gym-api/internal/session"
	ucauth "github.com/fitpulse/gym-api/internal/usecase/auth"
	"github.com/fitpulse/gym-api/internal/validators"
)

type AuthHandler struct {
	signUp         *ucauth.SignUp
	signIn         *ucauth.SignIn
	changePassword *ucauth.ChangePassword
	completeSetup  *ucauth.CompleteForcedPasswordSetup
	sessions       session.Store
}

func NewAuthHandler(
	signUp *ucauth.SignUp,
	signIn *ucauth.SignIn,
	changePassword *ucauth.ChangePassword,
	completeSetup *ucauth.CompleteForcedPasswordSetup,
	sessions session.Store,
) *AuthHandler {
	return &AuthHandler{
		signUp:         signUp,
		signIn:         signIn,
		changePassword: changePassword,
		completeSetup:  completeSetup,
		sessions:       sessions,
	}
}

// --------- Requests ---------

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type SetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":                       u.ID,
		"name":                     u.Name,
		"email":                    u.Email,
		"role":                     u.Role,
		"requires_password_change": u.RequiresPasswordChange,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, email and a password of at least 6 characters are required.")
		return
	}

	if !validators.HasEmailShape(req.Email) {
		httperr.BadRequest(c, "invalid_email", "The email address does not look valid.")
		return
	}

	if !validators.IsEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to exist.")
		return
	}

	u, err := h.signUp.Execute(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"user": userPayload(u)})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required.")
		return
	}

	u, token, err := h.signIn.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user":  userPayload(u),
		"token": token,
	})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	sid := c.MustGet(middleware.ContextSessionID).(string)

	if err := h.sessions.Destroy(c.Request.Context(), sid); err != nil {
		writeError(c, err)
		return
	}

	httpresp.Confirm(c, "Signed out.")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Current and new password are required.")
		return
	}

	if err := h.changePassword.Execute(
		c.Request.Context(),
		userID,
		req.CurrentPassword,
		req.NewPassword,
	); err != nil {
		writeError(c, err)
		return
	}

	httpresp.Confirm(c, "Password updated successfully.")
}

// SetPassword finishes the forced-rotation flow for provisioned trainer
// accounts and hands back a fresh token so the client stays signed in.
func (h *AuthHandler) SetPassword(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	sid := c.MustGet(middleware.ContextSessionID).(string)

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A new password of at least 6 characters is required.")
		return
	}

	u, token, err := h.completeSetup.Execute(
		c.Request.Context(),
		userID,
		sid,
		req.NewPassword,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user":  userPayload(u),
		"token": token,
	})
}
