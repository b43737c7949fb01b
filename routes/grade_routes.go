package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/handlers"
	"github.com/sandunipw/school_manager/middleware"
)

func GradeRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	grades := api.Group("/grades", middleware.Protected())
	grades.Post("", middleware.TeacherRequired(), handlers.CreateGrade)
	grades.Get("/me", handlers.GetMyGrades)
	grades.Get("/class", middleware.TeacherRequired(), handlers.GetClassGrades)
	grades.Get("/students/:studentId", handlers.GetStudentGrades)
}
