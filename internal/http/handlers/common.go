package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"carrental/internal/notifier"
	"carrental/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	jwtSecret = "super-secret-key-change-me"
	notif     notifier.Notifier = notifier.LogNotifier{}
	gateway   services.Gateway  = services.StubGateway{}
)

// Configure wires the pieces handlers cannot construct themselves.
func Configure(secret string, n notifier.Notifier) {
	if secret != "" {
		jwtSecret = secret
	}
	if n != nil {
		notif = n
	}
}

// SetGateway swaps the settlement gateway (tests, future integrations).
func SetGateway(g services.Gateway) {
	if g != nil {
		gateway = g
	}
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid request payload", err.Error())
		return false
	}
	return true
}

// PathID parses the numeric :param segment, responding 400 on garbage.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid "+name, nil)
		return 0, false
	}
	return id, true
}
