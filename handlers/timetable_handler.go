package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
)

// timeSlots maps a period number to its display time.
var timeSlots = map[int]string{
	1: "7:50 - 8:30 am",
	2: "8:30 - 9:10 am",
	3: "9:10 - 9:50 am",
	4: "9:50 - 10:30 am",
	5: "10:50 - 11:30 am",
	6: "11:30 - 12:10 pm",
	7: "12:10 - 12:50 pm",
	8: "12:50 - 1:30 pm",
}

type TimetableEntryRequest struct {
	Grade     int     `json:"grade" validate:"required,min=6,max=13"`
	Stream    *string `json:"stream,omitempty"`
	Day       string  `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday"`
	Period    int     `json:"period" validate:"required,min=1,max=8"`
	SubjectID string  `json:"subject_id" validate:"required,uuid"`
	TeacherID string  `json:"teacher_id" validate:"required,uuid"`
	Classroom *string `json:"classroom,omitempty"`
}

// CreateTimetableEntry adds a period to the timetable, rejecting entries that
// would double-book the teacher for the same day and period.
func CreateTimetableEntry(c *fiber.Ctx) error {
	var req TimetableEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacherID, _ := uuid.Parse(req.TeacherID)
	subjectID, _ := uuid.Parse(req.SubjectID)

	// streams only exist in grades 12 and 13
	stream := req.Stream
	if req.Grade < 12 {
		stream = nil
	}

	var conflict models.TimetableEntry
	err := database.DB.
		Preload("Teacher").
		Where("teacher_id = ? AND day = ? AND period = ?", teacherID, req.Day, req.Period).
		First(&conflict).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Teacher %s is already assigned to another class on %s period %d",
				conflict.Teacher.FullName, req.Day, req.Period),
		})
	}

	entry := models.TimetableEntry{
		Grade:     req.Grade,
		Stream:    stream,
		Day:       req.Day,
		Period:    req.Period,
		SubjectID: subjectID,
		TeacherID: teacherID,
		Classroom: req.Classroom,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create timetable entry"})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetGradeTimetable lists a grade's timetable with period time labels.
func GetGradeTimetable(c *fiber.Ctx) error {
	grade, err := strconv.Atoi(c.Params("grade"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid grade"})
	}

	query := database.DB.
		Preload("Subject").
		Preload("Teacher").
		Where("grade = ?", grade)
	if stream := c.Query("stream"); stream != "" {
		query = query.Where("stream = ?", stream)
	}

	var entries []models.TimetableEntry
	if err := query.Order("day, period").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch timetable"})
	}

	return c.JSON(fiber.Map{"entries": entries, "time_slots": timeSlots})
}

// GetTeacherTimetable lists the authenticated teacher's weekly schedule.
func GetTeacherTimetable(c *fiber.Ctx) error {
	teacherID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var entries []models.TimetableEntry
	err = database.DB.
		Preload("Subject").
		Where("teacher_id = ?", teacherID).
		Order("day, period").
		Find(&entries).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch timetable"})
	}

	return c.JSON(fiber.Map{"entries": entries, "time_slots": timeSlots})
}

func DeleteTimetableEntry(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entryId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry id"})
	}

	result := database.DB.Delete(&models.TimetableEntry{}, "id = ?", entryID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete entry"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found"})
	}

	return c.JSON(fiber.Map{"message": "Entry deleted"})
}
