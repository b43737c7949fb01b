package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/handlers"
	"github.com/sandunipw/school_manager/middleware"
)

func AttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	attendance := api.Group("/attendance", middleware.Protected())
	attendance.Post("/students", middleware.TeacherRequired(), handlers.MarkStudentAttendance)
	attendance.Get("/students/roster", middleware.TeacherRequired(), handlers.GetStudentsForAttendance)
	attendance.Get("/students/:studentId", handlers.GetStudentAttendance)

	attendance.Post("/teachers/check-in", middleware.TeacherRequired(), handlers.MarkTeacherAttendance)
	attendance.Get("/teachers/me", middleware.TeacherRequired(), handlers.GetMyTeacherAttendance)
}
