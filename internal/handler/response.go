package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"ClubHub/internal/middleware"
	"ClubHub/internal/permission"
	"ClubHub/internal/pkg"

	"github.com/gin-gonic/gin"
)

// ConfirmDelete is the literal the admin panel asks for before deleting.
const ConfirmDelete = "DELETE"

// Response is the body of every reply.
type Response struct {
	Errors   []string `json:"errors"`
	Messages []string `json:"messages"`
	Data     any      `json:"data"`
}

type ConfirmReq struct {
	Confirm string `json:"confirm"`
}

func respond(c *gin.Context, status int, data any, messages ...string) {
	if messages == nil {
		messages = []string{}
	}
	c.JSON(status, Response{Errors: []string{}, Messages: messages, Data: data})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Errors: []string{msg}, Messages: []string{}})
}

// fail writes err with the status of its kind. Persistence failures are
// logged with their cause and answered with a generic message.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pkg.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, pkg.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, pkg.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pkg.ErrConflict):
		status = http.StatusConflict
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, Response{Errors: []string{pkg.Message(err)}, Messages: []string{}})
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name+".")
		return 0, false
	}
	return id, true
}

// currentActor reads the actor set by the auth middleware. Routes using it
// are always behind that middleware.
func currentActor(c *gin.Context) permission.Actor {
	actor, _ := middleware.ActorFrom(c)
	return actor
}
