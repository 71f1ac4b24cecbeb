package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peacockstore/peacock-api/internal/dto"
	"github.com/peacockstore/peacock-api/internal/middleware"
	"github.com/peacockstore/peacock-api/internal/model"
	"github.com/peacockstore/peacock-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err := h.authService.Signup(c.Request.Context(), req.Name, req.Email, req.Password, model.UserType(req.UserType))
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "a " + req.UserType + " account with this email already exists"})
			return
		}
		if errors.Is(err, service.ErrOffline) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": service.ErrOffline.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error during signup"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "account created successfully, please log in"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, model.UserType(req.UserType))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
			return
		}
		if errors.Is(err, service.ErrOffline) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": service.ErrOffline.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error during login"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: toUserResponse(user)})
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	email := c.Param("email")
	if email != middleware.GetUserEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "cannot update another user's profile"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), email, middleware.GetUserType(c), req.Name, req.PhoneNumber, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		if errors.Is(err, service.ErrOffline) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": service.ErrOffline.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		UserType:    string(user.UserType),
	}
}
