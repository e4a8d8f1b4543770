package handler

import (
	"net/http"

	"ClubHub/internal/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	svc *service.MembershipService
}

func NewMemberHandler(svc *service.MembershipService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

type PostingReq struct {
	CanPost *bool `json:"can_post" binding:"required"`
}

type TransferReq struct {
	NewOwnerID uint64 `json:"new_owner_id" binding:"required"`
}

func (h *MemberHandler) Join(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Join(c.Request.Context(), currentActor(c), clubID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "You joined the club.")
}

func (h *MemberHandler) Leave(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Leave(c.Request.Context(), currentActor(c), clubID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "You left the club.")
}

func (h *MemberHandler) List(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.ListMembers(c.Request.Context(), currentActor(c), clubID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, rows)
}

func (h *MemberHandler) SetPosting(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := paramID(c, "userID")
	if !ok {
		return
	}
	var req PostingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "can_post is required.")
		return
	}
	if err := h.svc.SetPosting(c.Request.Context(), currentActor(c), clubID, userID, *req.CanPost); err != nil {
		fail(c, err)
		return
	}
	msg := "Posting permission revoked."
	if *req.CanPost {
		msg = "Posting permission granted."
	}
	respond(c, http.StatusOK, nil, msg)
}

func (h *MemberHandler) Kick(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := paramID(c, "userID")
	if !ok {
		return
	}
	if err := h.svc.Kick(c.Request.Context(), currentActor(c), clubID, userID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Member removed from the club.")
}

func (h *MemberHandler) TransferCandidates(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.TransferCandidates(c.Request.Context(), currentActor(c), clubID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, rows)
}

func (h *MemberHandler) Transfer(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req TransferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "new_owner_id is required.")
		return
	}
	if err := h.svc.TransferOwnership(c.Request.Context(), currentActor(c), clubID, req.NewOwnerID); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Ownership transferred.")
}
