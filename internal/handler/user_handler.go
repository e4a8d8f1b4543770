package handler

import (
	"net/http"

	"ClubHub/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type RegisterReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ProfileReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type SendCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetReq struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	user, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, user, "Registration successful. You can now log in.")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	pair, user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          user,
	}, "Welcome back, "+user.Username+"!")
}

func (h *UserHandler) Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "refresh_token is required.")
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, pair)
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), currentActor(c).ID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "You have been logged out.")
}

func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.svc.Profile(c.Request.Context(), currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	n, err := h.svc.UpdateProfile(c.Request.Context(), currentActor(c), req.Username, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Profile updated. Please log in again.")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), currentActor(c), req.OldPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Password changed. Please log in again.")
}

// DeleteAccount requires the caller to type their username.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	var req ConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	actor := currentActor(c)
	user, err := h.svc.Account(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}
	if req.Confirm != user.Username {
		badRequest(c, "Type your username to confirm.")
		return
	}
	n, err := h.svc.DeleteAccount(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Your account has been deleted.")
}

func (h *UserHandler) SendResetCode(c *gin.Context) {
	var req SendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "A valid email is required.")
		return
	}
	if err := h.svc.SendResetCode(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "If that email is registered, a reset code is on its way.")
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and the 6-digit code are required.")
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Password reset. You can now log in.")
}
