package handler

import (
	"net/http"
	"time"

	"ClubHub/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type PostReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *PostHandler) Create(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req PostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	post, err := h.svc.Create(c.Request.Context(), currentActor(c), clubID, req.Title, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, post, "Post published.")
}

func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := paramID(c, "postID")
	if !ok {
		return
	}
	post, err := h.svc.Get(c.Request.Context(), currentActor(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := paramID(c, "postID")
	if !ok {
		return
	}
	var req PostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	n, err := h.svc.Update(c.Request.Context(), currentActor(c), postID, req.Title, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Post updated.")
}

func (h *PostHandler) Delete(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	postID, ok := paramID(c, "postID")
	if !ok {
		return
	}
	n, err := h.svc.Delete(c.Request.Context(), currentActor(c), clubID, postID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Post deleted.")
}

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// EventReq carries event_datetime in RFC 3339.
type EventReq struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	EventDatetime time.Time `json:"event_datetime"`
}

func (r EventReq) input() service.EventInput {
	return service.EventInput{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		At:          r.EventDatetime,
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req EventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body. event_datetime must be an RFC 3339 timestamp.")
		return
	}
	event, err := h.svc.Create(c.Request.Context(), currentActor(c), clubID, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, event, "Event scheduled.")
}

func (h *EventHandler) Get(c *gin.Context) {
	eventID, ok := paramID(c, "eventID")
	if !ok {
		return
	}
	event, err := h.svc.Get(c.Request.Context(), currentActor(c), eventID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	eventID, ok := paramID(c, "eventID")
	if !ok {
		return
	}
	var req EventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body. event_datetime must be an RFC 3339 timestamp.")
		return
	}
	n, err := h.svc.Update(c.Request.Context(), currentActor(c), eventID, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Event updated.")
}

func (h *EventHandler) Delete(c *gin.Context) {
	clubID, ok := paramID(c, "id")
	if !ok {
		return
	}
	eventID, ok := paramID(c, "eventID")
	if !ok {
		return
	}
	n, err := h.svc.Delete(c.Request.Context(), currentActor(c), clubID, eventID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"affected": n}, "Event deleted.")
}
