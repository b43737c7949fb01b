package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
	"github.com/sandunipw/school_manager/services"
)

type GenerateReportRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// GenerateAttendanceReport renders the teacher attendance report for a date
// range as a PDF, uploads it and returns the stored record.
func GenerateAttendanceReport(c *fiber.Ctx) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var req GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start date, expected YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end date, expected YYYY-MM-DD"})
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End date must not be before start date"})
	}

	report, err := services.GenerateTeacherAttendanceReport(adminID, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// ListAttendanceReports lists previously generated reports, newest first.
func ListAttendanceReports(c *fiber.Ctx) error {
	var reports []models.AttendanceReport
	if err := database.DB.Order("created_at desc").Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reports"})
	}
	return c.JSON(reports)
}
