package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
	"github.com/sandunipw/school_manager/notifications"
	"github.com/sandunipw/school_manager/utils"
	"golang.org/x/crypto/bcrypt"
)

func GetAllUsers(c *fiber.Ctx) error {
	role := c.Query("role", "all")
	name := c.Query("name")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit := 10

	query := database.DB.Model(&models.User{})
	if role != "all" && role != "" {
		query = query.Where("role = ?", role)
	}
	if name != "" {
		query = query.Where("full_name ILIKE ?", "%"+name+"%")
	}

	var totalUsers int64
	if err := query.Count(&totalUsers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count users"})
	}
	totalPages := (totalUsers + int64(limit) - 1) / int64(limit)

	var users []models.User
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"current_page": page,
			"total_pages":  totalPages,
		},
	})
}

type AdminCreateUserRequest struct {
	Role       string  `json:"role" validate:"required,oneof=student teacher parent admin"`
	FullName   string  `json:"full_name" validate:"required,min=3"`
	Email      string  `json:"email" validate:"required,email"`
	ClassName  *string `json:"class_name,omitempty"`
	Stream     *string `json:"stream,omitempty"`
	ParentName *string `json:"parent_name,omitempty"`
	ChildEmail *string `json:"child_email,omitempty"`
}

// AdminCreateUser creates an account with a generated temporary password and
// emails the credentials to the new user.
func AdminCreateUser(c *fiber.Ctx) error {
	var req AdminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tempPassword := utils.GenerateTempPassword()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := models.User{
		Role:       req.Role,
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   string(hashedPassword),
		ClassName:  req.ClassName,
		Stream:     req.Stream,
		ParentName: req.ParentName,
		ChildEmail: req.ChildEmail,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists or error saving user"})
	}

	go notifications.SendEmail(
		user.FullName,
		user.Email,
		"Your School Account",
		fmt.Sprintf("<h1>Account Created</h1><p>Your temporary password is <b>%s</b>. Please change it after your first login.</p>", tempPassword),
	)

	return c.Status(fiber.StatusCreated).JSON(user)
}

type AdminUpdateUserRequest struct {
	FullName   *string `json:"full_name,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=student teacher parent admin"`
	ClassName  *string `json:"class_name,omitempty"`
	Stream     *string `json:"stream,omitempty"`
	ParentName *string `json:"parent_name,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	ChildEmail *string `json:"child_email,omitempty"`
}

func AdminUpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.ClassName != nil {
		user.ClassName = req.ClassName
	}
	if req.Stream != nil {
		user.Stream = req.Stream
	}
	if req.ParentName != nil {
		user.ParentName = req.ParentName
	}
	if req.Contact != nil {
		user.Contact = req.Contact
	}
	if req.ChildEmail != nil {
		user.ChildEmail = req.ChildEmail
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user status"})
	}

	return c.JSON(fiber.Map{"id": user.ID, "is_active": user.IsActive})
}

func AdminDeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	result := database.DB.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}
