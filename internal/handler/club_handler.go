package handler

import (
	"net/http"

	"ClubHub/internal/service"

	"github.com/gin-gonic/gin"
)

type ClubHandler struct {
	svc *service.ClubService
}

func NewClubHandler(svc *service.ClubService) *ClubHandler {
	return &ClubHandler{svc: svc}
}

type ClubReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ClubHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

func (h *ClubHandler) Create(c *gin.Context) {
	var req ClubReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	club, err := h.svc.Create(c.Request.Context(), currentActor(c), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, club, "Club created.")
}

func (h *ClubHandler) View(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	view, err := h.svc.View(c.Request.Context(), currentActor(c), clubID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, view)
}

func (h *ClubHandler) Update(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ClubReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	n, err := h.svc.Update(c.Request.Context(), currentActor(c), clubID, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Club updated.")
}

// Delete requires the caller to type the club's name.
func (h *ClubHandler) Delete(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	n, err := h.svc.Delete(c.Request.Context(), currentActor(c), clubID, req.Confirm)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Club deleted.")
}
