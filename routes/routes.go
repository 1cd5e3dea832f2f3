package routes

import (
	"sas_go/controllers"
	"sas_go/middleware"
	"sas_go/services"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	departmentController := &controllers.DepartmentController{}
	batchController := &controllers.BatchController{}
	sectionController := &controllers.SectionController{}
	courseController := &controllers.CourseController{}
	studentController := &controllers.StudentController{}
	facultyController := &controllers.FacultyController{}
	timetableController := &controllers.TimetableController{}
	attendanceController := &controllers.AttendanceController{}
	reportController := &controllers.ReportController{}
	logController := &controllers.LogController{}
	healthController := controllers.NewHealthController(
		services.NewHealthService("Student Attendance System API", "1.0.0"))

	// Health check (no authentication)
	app.Get("/health", healthController.GetHealthStatus)

	// API group
	api := app.Group("/api")

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware(), middleware.LogActivityMiddleware())

	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)
	protected.Post("/auth/logout", authController.Logout)

	// Department management
	departments := protected.Group("/departments")
	departments.Get("/", departmentController.GetDepartments)
	departments.Post("/", middleware.RequireAdmin(), departmentController.CreateDepartment)
	departments.Put("/:id", middleware.RequireAdmin(), departmentController.UpdateDepartment)
	departments.Delete("/:id", middleware.RequireAdmin(), departmentController.DeleteDepartment)

	// Batch management
	batches := protected.Group("/batches")
	batches.Get("/", batchController.GetBatches)
	batches.Post("/", middleware.RequireAdmin(), batchController.CreateBatch)
	batches.Put("/:id", middleware.RequireAdmin(), batchController.UpdateBatch)
	batches.Delete("/:id", middleware.RequireAdmin(), batchController.DeleteBatch)

	// Section management
	sections := protected.Group("/sections")
	sections.Get("/", sectionController.GetSections)
	sections.Post("/", middleware.RequireAdmin(), sectionController.CreateSection)
	sections.Put("/:id", middleware.RequireAdmin(), sectionController.UpdateSection)
	sections.Delete("/:id", middleware.RequireAdmin(), sectionController.DeleteSection)

	// Course management (update/delete keyed by course code)
	courses := protected.Group("/courses")
	courses.Get("/", courseController.GetCourses)
	courses.Post("/", middleware.RequireAdmin(), courseController.CreateCourse)
	courses.Put("/:code", middleware.RequireAdmin(), courseController.UpdateCourse)
	courses.Delete("/:code", middleware.RequireAdmin(), courseController.DeleteCourse)

	// Student management
	students := protected.Group("/students")
	students.Get("/", studentController.GetStudents)
	students.Post("/", middleware.RequireAdmin(), studentController.CreateStudent)
	students.Put("/:id", middleware.RequireAdmin(), studentController.UpdateStudent)
	students.Delete("/:id", middleware.RequireAdmin(), studentController.DeleteStudent)

	// Faculty directory and login provisioning
	faculty := protected.Group("/faculty")
	faculty.Get("/", facultyController.GetFaculty)
	faculty.Post("/", middleware.RequireAdmin(), facultyController.CreateProfile)
	faculty.Post("/provision-login", middleware.RequireAdmin(), facultyController.ProvisionLogin)
	faculty.Put("/by-user/:userId", middleware.RequireAdmin(), facultyController.UpdateByUserID)
	faculty.Delete("/by-user/:userId", middleware.RequireAdmin(), facultyController.DeleteByUserID)

	// Faculty self-service (attestation key + session verification)
	faculty.Put("/regen-token", middleware.RequireFaculty(), facultyController.RegenerateAuthKey)
	faculty.Put("/verify/:sessionId", middleware.RequireFaculty(), facultyController.VerifySession)

	// Timetable management and views
	timetable := protected.Group("/timetable")
	timetable.Get("/", timetableController.GetSlots)
	timetable.Post("/", middleware.RequireAdmin(), timetableController.CreateSlot)
	timetable.Put("/:id", middleware.RequireAdmin(), timetableController.UpdateSlot)
	timetable.Delete("/:id", middleware.RequireAdmin(), timetableController.DeleteSlot)
	timetable.Get("/by-class", timetableController.GetByClass)
	timetable.Get("/week-grid", timetableController.GetWeekGrid)

	// Attendance recording (cr, faculty or admin)
	protected.Post("/attendance", middleware.RequireAttendanceMarker(), attendanceController.RecordAttendance)

	// Admin-only reads and promotion
	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.Post("/promote-cr", studentController.PromoteCR)
	admin.Get("/sessions-by-timetable/:id", attendanceController.GetSessionsByTimetable)
	admin.Get("/records-by-session/:id", attendanceController.GetRecordsBySession)
	admin.Get("/students-by-filter", studentController.GetStudentsByFilter)
	admin.Get("/logs", logController.GetActivityLogs)

	// CR self-service reads
	cr := protected.Group("/cr", middleware.RequireAttendanceMarker())
	cr.Get("/students-by-timetable/:id", studentController.GetStudentsByTimetable)
	cr.Get("/students-by-studentid", studentController.GetMySectionStudents)
	cr.Get("/my-courses", timetableController.GetMyCourses)

	// Reports
	reports := protected.Group("/reports")
	reports.Get("/attendance", reportController.GetShortageReport)
	reports.Get("/attendance/export", reportController.ExportShortageReport)
}
