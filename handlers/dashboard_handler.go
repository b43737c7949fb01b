package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/chat"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
)

type DashboardHandler struct {
	store chat.Store
}

func NewDashboardHandler(store chat.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// GetStudentDashboard returns the student's landing data, including the
// unread-message badge computed from read timestamps.
func (h *DashboardHandler) GetStudentDashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	inboxCount, err := h.store.UnreadTotal(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"user":        user,
		"inbox_count": inboxCount,
	})
}

// GetTeacherDashboard returns the teacher's landing data: their subject
// assignments and the unread badge.
func (h *DashboardHandler) GetTeacherDashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	inboxCount, err := h.store.UnreadTotal(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	var assignments []models.SubjectAssignment
	if err := database.DB.Where("teacher_id = ?", userID).Find(&assignments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	return c.JSON(fiber.Map{
		"assignments": assignments,
		"inbox_count": inboxCount,
	})
}

// GetAdminDashboard returns headline counts for the admin landing page.
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	var studentCount, teacherCount, parentCount int64
	database.DB.Model(&models.User{}).Where("role = ?", "student").Count(&studentCount)
	database.DB.Model(&models.User{}).Where("role = ?", "teacher").Count(&teacherCount)
	database.DB.Model(&models.User{}).Where("role = ?", "parent").Count(&parentCount)

	return c.JSON(fiber.Map{
		"students": studentCount,
		"teachers": teacherCount,
		"parents":  parentCount,
	})
}

// GetParentDashboard resolves the parent's child by linked email and returns
// the child's summary plus the parent's unread badge.
func (h *DashboardHandler) GetParentDashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var parent models.User
	if err := database.DB.First(&parent, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	inboxCount, err := h.store.UnreadTotal(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load dashboard"})
	}

	response := fiber.Map{"inbox_count": inboxCount}

	if parent.ChildEmail != nil {
		var child models.User
		if err := database.DB.First(&child, "email = ? AND role = ?", *parent.ChildEmail, "student").Error; err == nil {
			response["child"] = child
		}
	}

	return c.JSON(response)
}
