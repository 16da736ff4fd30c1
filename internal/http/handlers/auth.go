package handlers

import (
	"net/http"

	"carrental/internal/domain"
	"carrental/internal/http/middleware"
	"carrental/internal/services"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{}
	user, err := svc.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user":    toUserResponse(user),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{}
	user, err := svc.Authenticate(req.Email, req.Password)
	if err != nil {
		if domain.IsValidation(err) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	token, err := middleware.SignToken(jwtSecret, user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to sign token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}
