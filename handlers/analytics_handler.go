package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
)

// GetStudentPerformance averages a student's scores per subject.
func GetStudentPerformance(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	type row struct {
		Subject string  `json:"subject"`
		Average float64 `json:"average"`
	}
	var rows []row
	err = database.DB.Model(&models.Grade{}).
		Select("subject, avg(score * 100.0 / max_score) as average").
		Where("student_id = ?", studentID).
		Group("subject").
		Order("subject").
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute performance"})
	}

	return c.JSON(fiber.Map{"student_id": studentID, "performance": rows})
}

// GetAttendanceInsights computes a student's attendance rate per subject.
func GetAttendanceInsights(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	type row struct {
		Subject string `json:"subject"`
		Total   int64  `json:"total"`
		Present int64  `json:"present"`
		Late    int64  `json:"late"`
	}
	var rows []row
	err = database.DB.Model(&models.StudentAttendance{}).
		Select(`subject,
			count(*) as total,
			count(*) filter (where status = 'Present') as present,
			count(*) filter (where status = 'Late') as late`).
		Where("student_id = ?", studentID).
		Group("subject").
		Order("subject").
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute insights"})
	}

	type insight struct {
		Subject        string  `json:"subject"`
		Total          int64   `json:"total"`
		Present        int64   `json:"present"`
		Late           int64   `json:"late"`
		AttendanceRate float64 `json:"attendance_rate"`
	}
	insights := make([]insight, 0, len(rows))
	for _, r := range rows {
		rate := 0.0
		if r.Total > 0 {
			rate = float64(r.Present+r.Late) / float64(r.Total) * 100
		}
		insights = append(insights, insight{
			Subject:        r.Subject,
			Total:          r.Total,
			Present:        r.Present,
			Late:           r.Late,
			AttendanceRate: rate,
		})
	}

	return c.JSON(fiber.Map{"student_id": studentID, "insights": insights})
}

// ListStudents returns the student roster for analytics pickers.
func ListStudents(c *fiber.Ctx) error {
	var students []models.User
	err := database.DB.
		Select("id, full_name, class_name, stream").
		Where("role = ?", "student").
		Order("full_name").
		Find(&students).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(students)
}
