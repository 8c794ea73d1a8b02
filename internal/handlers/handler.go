package handlers

import (
	"log/slog"
	"net/http"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/lib/response"
	"github.com/14kear/online_elections/internal/middleware"
	"github.com/14kear/online_elections/internal/services"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/gin-gonic/gin"
)

type ElectionHandler struct {
	log       *slog.Logger
	lifecycle *services.Lifecycle
	voting    *services.Voting
	tallying  *services.Tallying
}

func NewElectionHandler(
	log *slog.Logger,
	lifecycle *services.Lifecycle,
	voting *services.Voting,
	tallying *services.Tallying,
) *ElectionHandler {
	return &ElectionHandler{
		log:       log,
		lifecycle: lifecycle,
		voting:    voting,
		tallying:  tallying,
	}
}

func (h *ElectionHandler) principal(c *gin.Context) (entity.Principal, bool) {
	p, ok := middleware.Principal(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "Authentication required")
	}
	return p, ok
}

// fail writes the error envelope, logging errors that are not business rule
// violations.
func (h *ElectionHandler) fail(c *gin.Context, op string, err error) {
	if response.StatusOf(err) == http.StatusInternalServerError {
		h.log.Error("request failed", slog.String("op", op), slog.String("path", c.FullPath()), sl.Err(err))
	}
	response.Error(c, err)
}
