package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
)

type GradeEntryRequest struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Subject   string  `json:"subject" validate:"required"`
	Grade     string  `json:"grade" validate:"required"`
	Term      string  `json:"term" validate:"required,oneof='Term 1' 'Term 2' Final"`
	Score     float64 `json:"score" validate:"min=0"`
	MaxScore  float64 `json:"max_score" validate:"required,gt=0"`
	Comment   *string `json:"comment,omitempty"`
}

// CreateGrade records a score for a student. Duplicate entries for the same
// student, subject, grade and term are rejected.
func CreateGrade(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var req GradeEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Score > req.MaxScore {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Score cannot exceed max score"})
	}

	studentID, _ := uuid.Parse(req.StudentID)

	var existing models.Grade
	err = database.DB.
		Where("student_id = ? AND subject = ? AND grade = ? AND term = ?", studentID, req.Subject, req.Grade, req.Term).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Grade already entered for this student, subject and term"})
	}

	grade := models.Grade{
		StudentID: studentID,
		TeacherID: teacherID,
		Subject:   req.Subject,
		Grade:     req.Grade,
		Term:      req.Term,
		Score:     req.Score,
		MaxScore:  req.MaxScore,
		Comment:   req.Comment,
	}
	if err := database.DB.Create(&grade).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save grade"})
	}

	return c.Status(fiber.StatusCreated).JSON(grade)
}

// GetStudentGrades lists a student's grades, optionally filtered by term.
func GetStudentGrades(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	query := database.DB.Where("student_id = ?", studentID).Order("created_at desc")
	if term := c.Query("term"); term != "" {
		query = query.Where("term = ?", term)
	}

	var grades []models.Grade
	if err := query.Find(&grades).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}

	return c.JSON(grades)
}

// GetMyGrades lists the authenticated student's own grades.
func GetMyGrades(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var grades []models.Grade
	if err := database.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&grades).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}

	return c.JSON(grades)
}

// GetClassGrades lists grades entered for a subject and class, for teachers
// reviewing their own entries.
func GetClassGrades(c *fiber.Ctx) error {
	subject := c.Query("subject")
	grade := c.Query("grade")
	if subject == "" || grade == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Grade and subject are required"})
	}

	var grades []models.Grade
	err := database.DB.
		Preload("Student").
		Where("subject = ? AND grade = ?", subject, grade).
		Order("created_at desc").
		Find(&grades).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}

	return c.JSON(grades)
}
