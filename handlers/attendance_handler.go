package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
	"github.com/sandunipw/school_manager/utils"
	"gorm.io/gorm/clause"
)

type MarkAttendanceRequest struct {
	Subject string `json:"subject" validate:"required"`
	Grade   int    `json:"grade" validate:"required,min=6,max=13"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Entries []struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
		Status    string `json:"status" validate:"required,oneof=Present Absent Late"`
	} `json:"entries" validate:"required,min=1,dive"`
}

// MarkStudentAttendance records attendance for a class in one request. A
// teacher may only mark subjects assigned to them; admins may mark anything.
// Re-marking the same day upserts on the (student, subject, date) key.
func MarkStudentAttendance(c *fiber.Ctx) error {
	markerID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var req MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if currentUserRole(c) == "teacher" {
		var assigned int64
		database.DB.Model(&models.SubjectAssignment{}).
			Where("teacher_id = ? AND subject = ? AND grade = ?", markerID, req.Subject, req.Grade).
			Count(&assigned)
		if assigned == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Subject is not assigned to you"})
		}
	}

	day, _ := time.Parse("2006-01-02", req.Date)

	records := make([]models.StudentAttendance, 0, len(req.Entries))
	for _, entry := range req.Entries {
		studentID, _ := uuid.Parse(entry.StudentID)
		records = append(records, models.StudentAttendance{
			StudentID: studentID,
			Subject:   req.Subject,
			Grade:     req.Grade,
			MarkedBy:  markerID,
			Status:    entry.Status,
			Date:      day,
		})
	}

	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "subject"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "updated_at"}),
	}).Create(&records).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save attendance"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"marked": len(records)})
}

// GetStudentAttendance lists a student's attendance records, optionally
// filtered by subject.
func GetStudentAttendance(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	query := database.DB.Where("student_id = ?", studentID).Order("date desc")
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var records []models.StudentAttendance
	if err := query.Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(records)
}

// GetStudentsForAttendance lists the students a teacher can mark for a
// subject and grade.
func GetStudentsForAttendance(c *fiber.Ctx) error {
	grade := c.Query("grade")
	subject := c.Query("subject")
	if grade == "" || subject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Grade and subject are required"})
	}

	var students []models.User
	err := database.DB.
		Joins("JOIN user_subjects ON user_subjects.user_id = users.id AND user_subjects.subject = ?", subject).
		Where("users.role = ? AND users.class_name = ?", "student", "Grade "+grade).
		Find(&students).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(students)
}

type TeacherCheckInRequest struct {
	Status string `json:"status" validate:"required,oneof=Present Absent"`
}

// MarkTeacherAttendance records today's attendance for the authenticated
// teacher. One record per teacher per day.
func MarkTeacherAttendance(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var req TeacherCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	today := utils.StartOfDay(time.Now())

	record := models.TeacherAttendance{
		TeacherID: teacherID,
		Status:    req.Status,
		Date:      today,
	}
	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "teacher_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&record).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save attendance"})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// GetMyTeacherAttendance lists the authenticated teacher's own attendance.
func GetMyTeacherAttendance(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var records []models.TeacherAttendance
	if err := database.DB.Where("teacher_id = ?", teacherID).Order("date desc").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(records)
}

// GetTeacherAttendanceRecords lists teacher attendance in a date range for
// admin review.
func GetTeacherAttendanceRecords(c *fiber.Ctx) error {
	query := database.DB.Preload("Teacher").Order("date desc")

	if start := c.Query("start"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if end := c.Query("end"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			query = query.Where("date <= ?", t)
		}
	}

	var records []models.TeacherAttendance
	if err := query.Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(records)
}
