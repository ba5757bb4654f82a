package server

import (
	"errors"
	"log/slog"
	"time"

	"quill/internal/auth"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/session"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LoginPage handles GET /login. Templating is out of scope; the endpoint
// documents the form contract for API clients and redirect targets.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "POST username and password to /login",
	})
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "POST email, username and password to /register",
	})
}

// Login handles POST /login
// @Summary Log in
// @Description Verify credentials, establish a session and redirect to /home
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username (case-insensitive)"
// @Param password formData string true "Password"
// @Success 302
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.authenticator.Authenticate(c.UserContext(), username, password)
	if err != nil {
		// The distinct reason stays in the log; the response is generic so
		// callers cannot probe which usernames exist.
		switch {
		case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrIncorrectPassword):
			middleware.Logger.InfoContext(c.UserContext(), "login rejected",
				slog.String("username", username),
				slog.String("reason", err.Error()),
			)
		default:
			// Store failure: fail closed.
			middleware.Logger.ErrorContext(c.UserContext(), "login failed on store error",
				slog.String("error", err.Error()),
			)
		}
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid username or password"))
	}

	token, err := s.sessions.Establish(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	s.setSessionCookie(c, token)
	return c.Redirect("/home", fiber.StatusFound)
}

// Register handles POST /register
// @Summary Register a new account
// @Description Create a user with a hashed password and redirect to /login
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 302
// @Failure 400 {object} models.ErrorResponse
// @Router /register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	email := validation.NormalizeEmail(c.FormValue("email"))
	username := c.FormValue("username")
	password := c.FormValue("password")

	if err := validation.ValidateEmail(email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateUsername(username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.UserContext(), email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		// Already registered: send the caller to the login page without
		// creating a second row.
		return c.Redirect("/login", fiber.StatusFound)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "password hashing failed",
			slog.String("error", err.Error()),
		)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			&models.AppError{Code: "REGISTRATION_FAILED", Message: "Registration failed"})
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if createErr := s.userRepo.Create(c.UserContext(), user); createErr != nil {
		var appErr *models.AppError
		if errors.As(createErr, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			return models.RespondWithError(c, fiber.StatusConflict, createErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("username", user.Username),
	)
	return c.Redirect("/login", fiber.StatusFound)
}

// Logout handles GET /logout
// @Summary Log out
// @Description Terminate the session and redirect to /
// @Tags auth
// @Success 302
// @Router /logout [get]
func (s *Server) Logout(c *fiber.Ctx) error {
	token := c.Cookies(session.CookieName)
	if token != "" {
		if err := s.sessions.Terminate(c.UserContext(), token); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "session termination failed",
				slog.String("error", err.Error()),
			)
		}
	}
	c.ClearCookie(session.CookieName)
	return c.Redirect("/", fiber.StatusFound)
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Expires:  time.Now().Add(s.sessions.TTL()),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
