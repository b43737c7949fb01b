package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
	"github.com/sandunipw/school_manager/services"
)

func ListSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	if err := database.DB.Order("name").Find(&subjects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}
	return c.JSON(subjects)
}

// GetSubjectsForGrade returns the curriculum's common and optional subject
// sets for a grade, using the stream for grades 12 and 13.
func GetSubjectsForGrade(c *fiber.Ctx) error {
	grade, err := strconv.Atoi(c.Params("grade"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid grade"})
	}
	stream := c.Query("stream")

	return c.JSON(services.SubjectsForGrade(grade, stream))
}

type AssignSubjectRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
	Subject   string `json:"subject" validate:"required"`
	Grade     int    `json:"grade" validate:"required,min=6,max=13"`
}

// AssignSubject gives a teacher a subject and grade to teach.
func AssignSubject(c *fiber.Ctx) error {
	var req AssignSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacherID, _ := uuid.Parse(req.TeacherID)

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ? AND role = ?", teacherID, "teacher").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var existing models.SubjectAssignment
	err := database.DB.
		Where("teacher_id = ? AND subject = ? AND grade = ?", teacherID, req.Subject, req.Grade).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Subject already assigned to this teacher"})
	}

	assignment := models.SubjectAssignment{
		TeacherID: teacherID,
		Subject:   req.Subject,
		Grade:     req.Grade,
	}
	if err := database.DB.Create(&assignment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save assignment"})
	}

	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// ListAssignments lists subject assignments, filtered to the teacher when a
// teacherId is passed.
func ListAssignments(c *fiber.Ctx) error {
	query := database.DB.Preload("Teacher").Order("grade, subject")
	if teacherID := c.Query("teacherId"); teacherID != "" {
		id, err := uuid.Parse(teacherID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
		}
		query = query.Where("teacher_id = ?", id)
	}

	var assignments []models.SubjectAssignment
	if err := query.Find(&assignments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}

	return c.JSON(assignments)
}

// GetMyAssignments lists the authenticated teacher's subject assignments.
func GetMyAssignments(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var assignments []models.SubjectAssignment
	if err := database.DB.Where("teacher_id = ?", teacherID).Order("grade, subject").Find(&assignments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}

	return c.JSON(assignments)
}

func RemoveAssignment(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("assignmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignment id"})
	}

	result := database.DB.Delete(&models.SubjectAssignment{}, "id = ?", assignmentID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete assignment"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}

	return c.JSON(fiber.Map{"message": "Assignment removed"})
}
