package server

import (
	"errors"

	"pitchside/internal/models"
	"pitchside/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser handles POST /user/register.
func (s *Server) RegisterUser(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
		Email    string `json:"email" form:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.NewValidationError(err)
	}

	if err := validation.ValidateRegisterData(req.Username, req.Password, req.Email); err != nil {
		return models.NewValidationError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err, models.DefaultPublicMessage)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return models.NewConflictError(err, "Error creating a new user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user.Public()})
}

// LoginUser handles POST /user/login. Unknown usernames and wrong passwords
// produce the identical response so credentials are not probeable.
func (s *Server) LoginUser(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.NewValidationError(err)
	}

	user, err := s.userRepo.GetByUsername(c.UserContext(), req.Username)
	if err != nil {
		return models.NewInternalError(err, models.DefaultPublicMessage)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.NewUnauthorizedError(errors.New("wrong credentials"), "Wrong credentials")
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.NewInternalError(err, models.DefaultPublicMessage)
	}

	return c.JSON(fiber.Map{"token": token})
}

// EditUser handles PATCH /user/update. Only the caller's own record is
// touched; a supplied password is re-hashed before persisting.
func (s *Server) EditUser(c *fiber.Ctx) error {
	userID := callerID(c)

	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
		Email    string `json:"email" form:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.NewValidationError(err)
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.NewConflictError(err, "Error updating user")
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.NewInternalError(err, models.DefaultPublicMessage)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return models.NewConflictError(err, "Error updating user")
	}

	return c.JSON(user)
}
