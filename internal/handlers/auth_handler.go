package handlers

import (
	"movie-collection/internal/middleware"
	"movie-collection/internal/services"
	"movie-collection/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	service services.AuthService
	logger  *logrus.Logger
}

func NewAuthHandler(service services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

func authPayload(res *services.AuthResult) fiber.Map {
	return fiber.Map{
		"user":       res.User,
		"token":      res.Token,
		"token_type": "Bearer",
		"expires_in": int64(res.ExpiresIn.Seconds()),
		"expires_at": utils.FormatTimestamp(res.ExpiresAt),
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account and receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterInput true "Registration data"
// @Success 201 {object} utils.StandardResponse "Registration successful"
// @Failure 400 {object} utils.StandardResponse "Validation error"
// @Failure 409 {object} utils.StandardResponse "Username or email already exists"
// @Failure 429 {object} utils.StandardResponse "Too many requests"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseJSON(c, &req); err != nil {
		return err
	}

	res, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Registration failed")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Registration successful", authPayload(res))
}

// Login godoc
// @Summary Log in
// @Description Authenticate with username or email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginInput true "Credentials"
// @Success 200 {object} utils.StandardResponse "Login successful"
// @Failure 400 {object} utils.StandardResponse "Missing fields"
// @Failure 401 {object} utils.StandardResponse "Username or password is incorrect"
// @Failure 429 {object} utils.StandardResponse "Too many requests"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := parseJSON(c, &req); err != nil {
		return err
	}

	res, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Login failed")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Login successful", authPayload(res))
}

// Verify godoc
// @Summary Verify access token
// @Description Return the claims of the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse "Token is valid"
// @Failure 401 {object} utils.StandardResponse "Invalid or expired token"
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	data := fiber.Map{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"email":    claims.Email,
	}
	if claims.IssuedAt != nil {
		data["issued_at"] = utils.FormatTimestamp(claims.IssuedAt.Time)
	}
	if claims.ExpiresAt != nil {
		data["expires_at"] = utils.FormatTimestamp(claims.ExpiresAt.Time)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Token is valid", data)
}
