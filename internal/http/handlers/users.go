package handlers

import (
	"net/http"

	"carrental/internal/http/middleware"
	"carrental/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/users (admin)
func GetUsers(c *gin.Context) {
	svc := services.UserService{}
	users, err := svc.GetAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/users/:id (admin or self)
func GetUserByID(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}

	svc := services.UserService{}
	user, err := svc.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !middleware.IsAdmin(c) && user.Email != middleware.GetAuthEmail(c) {
		respondError(c, http.StatusForbidden, "forbidden", "not allowed to view this user", nil)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
