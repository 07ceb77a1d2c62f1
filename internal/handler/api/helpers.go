package api

import (
	"visa-booking/internal/domain/user"
	"visa-booking/internal/handler/httperr"
	"visa-booking/internal/handler/middleware"
	"visa-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoActor = errs.New("actor missing from context")

// actorOf aborts the request when RequireAuth did not run.
func actorOf(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Unauthenticated(c, errNoActor, "Access token required")
		return user.Actor{}, false
	}
	return actor, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return false
	}
	return true
}
