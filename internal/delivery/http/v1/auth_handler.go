package v1

import (
	"net/http"
	"os"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
	events *security.EventLogger
}

// NewAuthHandler registers auth routes
func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config) {
	handler := &AuthHandler{
		authUC: authUC,
		config: cfg,
		events: security.DefaultLogger(),
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/logout", handler.Logout)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new account. Role defaults to USER; anything except ADMIN is coerced to USER.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201  {object}  response.Response{data=domain.AuthResult}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.authUC.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if appErr, ok := err.(*apperror.AppError); ok && appErr.Code == http.StatusConflict {
			h.events.Log(c.Request.Context(), security.Event{
				Event:        security.EventRegisterConflict,
				SubjectType:  "email",
				SubjectValue: security.MaskEmail(req.Email),
				IP:           c.ClientIP(),
				RequestID:    c.GetString("RequestID"),
			})
		}
		c.Error(err)
		return
	}

	h.setSessionCookie(c, result.Token)
	response.Success(c, http.StatusCreated, "Registration successful", result)
}

// Login godoc
// @Summary      User Login
// @Description  Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200  {object}  response.Response{data=domain.AuthResult}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.events.LogLoginFailed(
			c.Request.Context(), req.Email, c.ClientIP(),
			c.Request.UserAgent(), c.GetString("RequestID"), "invalid_credentials")
		c.Error(err)
		return
	}

	h.events.LogLoginSuccess(c.Request.Context(), req.Email, c.ClientIP(), c.GetString("RequestID"))
	h.setSessionCookie(c, result.Token)
	response.Success(c, http.StatusOK, "Login successful", result)
}

// Logout godoc
// @Summary      User Logout
// @Description  Clear the session cookie. Bearer clients just drop the token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", "", -1, "/", "", secureCookies(), true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// Me godoc
// @Summary      Current user
// @Description  Return the authenticated user's record
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User details", user)
}

// setSessionCookie mirrors the issued token into an HttpOnly cookie so
// browser clients do not have to manage Authorization headers.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := h.config.JWTExpiryHours * 3600
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", token, maxAge, "/", "", secureCookies(), true)
}

func secureCookies() bool {
	return os.Getenv("GIN_MODE") == "release"
}
