package handlers

import (
	"net/http"

	"github.com/14kear/online_elections/internal/lib/response"
	"github.com/gin-gonic/gin"
)

func (h *ElectionHandler) PublishResults(c *gin.Context) {
	const op = "handlers.PublishResults"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.tallying.PublishResults(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Results published successfully", result)
}

func (h *ElectionHandler) GetResults(c *gin.Context) {
	const op = "handlers.GetResults"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.tallying.GetResults(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Results retrieved successfully", result)
}

func (h *ElectionHandler) GetStats(c *gin.Context) {
	const op = "handlers.GetStats"

	p, ok := h.principal(c)
	if !ok {
		return
	}

	stats, err := h.tallying.GetStats(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.fail(c, op, err)
		return
	}

	response.OK(c, http.StatusOK, "Statistics retrieved successfully", stats)
}
