package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "blogapp/internal/errors"
	"blogapp/internal/logger"
	"blogapp/internal/service"
)

const dateOfBirthLayout = "2006-01-02"

// AuthHandler handles the public pages and the register, login and logout endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookies     CookieConfig
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies CookieConfig, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, logger: logger}
}

// RegisterRequest represents a user registration form.
type RegisterRequest struct {
	Name        string `form:"name" json:"name" validate:"required"`
	DateOfBirth string `form:"dateOfBirth" json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Username    string `form:"username" json:"username" validate:"required"`
	Email       string `form:"email" json:"email" validate:"required,email"`
	Password    string `form:"password" json:"password" validate:"required,max=72"`
}

// LoginRequest represents a login form.
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Dashboard renders the landing page.
func (h *AuthHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard", echo.Map{})
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", echo.Map{})
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", echo.Map{})
}

// Register godoc
// @Summary Register a new user
// @Description Creates the user, sets the session cookie and redirects to the post form.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param name formData string true "Display name"
// @Param dateOfBirth formData string false "Date of birth (YYYY-MM-DD)"
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 302 {string} string "redirect to /blog"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(dateOfBirthLayout, req.DateOfBirth)
		if err != nil {
			return fmt.Errorf("date of birth: %w", apperrors.ErrInvalidInput)
		}
		dob = &parsed
	}

	_, token, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:        req.Name,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: dob,
	})
	if err != nil {
		return err
	}

	h.cookies.setToken(c, token)
	return c.Redirect(http.StatusFound, "/blog")
}

// Login godoc
// @Summary Log in
// @Description Verifies the credentials, sets the session cookie and redirects to the post form.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 302 {string} string "redirect to /blog"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	_, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.setToken(c, token)
	return c.Redirect(http.StatusFound, "/blog")
}

// Logout godoc
// @Summary Log out
// @Description Revokes the session token, clears the cookie and redirects to the login page.
// @Tags auth
// @Produce plain
// @Success 302 {string} string "redirect to /login"
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), tokenFromCookie(c)); err != nil {
		// The cookie is cleared regardless, so the client is logged out either way.
		h.logger.Warn("logout: revoke token", "error", err)
	}

	h.cookies.clearToken(c)
	return c.Redirect(http.StatusFound, "/login")
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("bind request: %w", apperrors.ErrInvalidInput)
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}
