package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sandunipw/school_manager/handlers"
	"github.com/sandunipw/school_manager/middleware"
)

func SubjectRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	subjects := api.Group("/subjects", middleware.Protected())
	subjects.Get("", handlers.ListSubjects)
	subjects.Get("/grades/:grade", handlers.GetSubjectsForGrade)

	assignments := api.Group("/assignments", middleware.Protected())
	assignments.Post("", middleware.AdminRequired(), handlers.AssignSubject)
	assignments.Get("", middleware.AdminRequired(), handlers.ListAssignments)
	assignments.Get("/me", middleware.TeacherRequired(), handlers.GetMyAssignments)
	assignments.Delete("/:assignmentId", middleware.AdminRequired(), handlers.RemoveAssignment)
}
