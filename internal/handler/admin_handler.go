package handler

import (
	"net/http"

	"ClubHub/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type RoleReq struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context(), currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, users)
}

func (h *AdminHandler) ListClubs(c *gin.Context) {
	clubs, err := h.svc.ListClubs(c.Request.Context(), currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, clubs)
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req RoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "role is required.")
		return
	}
	n, err := h.svc.UpdateRole(c.Request.Context(), currentActor(c), userID, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Role updated.")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !confirmed(c) {
		return
	}
	n, err := h.svc.DeleteUser(c.Request.Context(), currentActor(c), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "User deleted.")
}

func (h *AdminHandler) DeleteClub(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !confirmed(c) {
		return
	}
	n, err := h.svc.DeleteClub(c.Request.Context(), currentActor(c), clubID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Club deleted.")
}

func confirmed(c *gin.Context) bool {
	var req ConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Confirm != ConfirmDelete {
		badRequest(c, `Type "`+ConfirmDelete+`" to confirm.`)
		return false
	}
	return true
}
