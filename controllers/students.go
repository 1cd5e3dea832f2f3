package controllers

import (
	"sas_go/database"
	"sas_go/middleware"
	"sas_go/models"
	"sas_go/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type StudentController struct{}

// StudentRequest represents the create request body
type StudentRequest struct {
	RollNumber string `json:"roll_number" validate:"required,max=50"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	SectionID  uint   `json:"section_id" validate:"required"`
}

// GetStudents returns students, optionally filtered by section
func (sc *StudentController) GetStudents(c *fiber.Ctx) error {
	var students []models.Student
	query := database.DB.Preload("Section")

	if sectionID := c.Query("section_id"); sectionID != "" {
		query = query.Where("section_id = ?", sectionID)
	}

	if err := query.Order("roll_number").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"total":    len(students),
	})
}

// sectionFilterClauses builds the roster-lookup conditions: the section id is
// always filtered, batch and department only when supplied.
func sectionFilterClauses(sectionID, batchID, deptID string) (clauses []string, args []interface{}) {
	clauses = append(clauses, "sections.id = ?")
	args = append(args, sectionID)
	if batchID != "" {
		clauses = append(clauses, "sections.batch_id = ?")
		args = append(args, batchID)
	}
	if deptID != "" {
		clauses = append(clauses, "batches.dept_id = ?")
		args = append(args, deptID)
	}
	return clauses, args
}

// GetStudentsByFilter returns the roster of a section. The section id alone
// identifies the roster; dept_id and batch_id, when present, narrow the
// lookup so a mismatched hierarchy reads as not-found instead of silently
// returning another department's students.
func (sc *StudentController) GetStudentsByFilter(c *fiber.Ctx) error {
	sectionID := c.Query("section_id")
	if sectionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "section_id is required",
		})
	}

	query := database.DB.Joins("JOIN batches ON batches.id = sections.batch_id")
	clauses, args := sectionFilterClauses(sectionID, c.Query("batch_id"), c.Query("dept_id"))
	for i, clause := range clauses {
		query = query.Where(clause, args[i])
	}

	var section models.Section
	if err := query.First(&section).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Section not found",
		})
	}

	var students []models.Student
	if err := database.DB.Where("section_id = ?", section.ID).
		Order("roll_number").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"total":    len(students),
	})
}

// GetStudentsByTimetable returns the roster of the section a timetable slot
// belongs to. Used by attendance-marking screens.
func (sc *StudentController) GetStudentsByTimetable(c *fiber.Ctx) error {
	slotID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timetable ID",
		})
	}

	var slot models.TimetableSlot
	if err := database.DB.First(&slot, uint(slotID)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Timetable slot not found",
		})
	}

	var students []models.Student
	if err := database.DB.Where("section_id = ?", slot.SectionID).
		Order("roll_number").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"total":    len(students),
	})
}

// GetMySectionStudents returns the roster of the calling CR's own section,
// resolved from the student linked to the account.
func (sc *StudentController) GetMySectionStudents(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}
	if claims.StudentID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Account is not linked to a student",
		})
	}

	var me models.Student
	if err := database.DB.First(&me, *claims.StudentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Linked student not found",
		})
	}

	var students []models.Student
	if err := database.DB.Where("section_id = ?", me.SectionID).
		Order("roll_number").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	return c.JSON(fiber.Map{
		"section_id": me.SectionID,
		"students":   students,
		"total":      len(students),
	})
}

// CreateStudent creates a new student (admin only)
func (sc *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var section models.Section
	if err := database.DB.First(&section, req.SectionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Section not found",
		})
	}

	student := models.Student{
		RollNumber: utils.SanitizeString(req.RollNumber),
		FullName:   utils.SanitizeString(req.FullName),
		Email:      utils.SanitizeString(req.Email),
		SectionID:  req.SectionID,
	}
	if err := database.DB.Create(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create student",
		})
	}

	middleware.LogActivity(c, "CREATE", "students", student.ID, student)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Student created successfully",
		"student": student,
	})
}

// UpdateStudent updates a student's details (admin only)
func (sc *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	var req struct {
		RollNumber *string `json:"roll_number"`
		FullName   *string `json:"full_name"`
		Email      *string `json:"email"`
		SectionID  *uint   `json:"section_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := make(map[string]interface{})
	if req.RollNumber != nil {
		updates["roll_number"] = utils.SanitizeString(*req.RollNumber)
	}
	if req.FullName != nil {
		updates["full_name"] = utils.SanitizeString(*req.FullName)
	}
	if req.Email != nil {
		updates["email"] = utils.SanitizeString(*req.Email)
	}
	if req.SectionID != nil {
		var section models.Section
		if err := database.DB.First(&section, *req.SectionID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Section not found",
			})
		}
		updates["section_id"] = *req.SectionID
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if err := database.DB.Model(&student).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update student",
		})
	}

	middleware.LogActivity(c, "UPDATE", "students", student.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"student": student,
	})
}

// DeleteStudent deletes a student (admin only)
func (sc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	if err := database.DB.Delete(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete student",
		})
	}

	middleware.LogActivity(c, "DELETE", "students", student.ID, student)

	return c.JSON(fiber.Map{
		"message": "Student deleted successfully",
	})
}

// PromoteCRRequest represents the CR promotion request body
type PromoteCRRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// PromoteCR provisions a class-representative login linked to a student
// (admin only). The student keeps exactly one CR account.
func (sc *StudentController) PromoteCR(c *fiber.Ctx) error {
	var req PromoteCRRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var student models.Student
	if err := database.DB.First(&student, req.StudentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	var existing models.User
	if err := database.DB.Where("student_id = ?", student.ID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Student already has a CR account",
		})
	}
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already in use",
		})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process password",
		})
	}

	user := models.User{
		Email:     utils.SanitizeString(req.Email),
		Password:  hashed,
		Role:      "cr",
		StudentID: &student.ID,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create CR account",
		})
	}

	middleware.LogActivity(c, "CREATE", "users", user.ID, fiber.Map{
		"role":       user.Role,
		"student_id": student.ID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "CR account created successfully",
		"user": fiber.Map{
			"id":         user.ID,
			"email":      user.Email,
			"role":       user.Role,
			"student_id": user.StudentID,
		},
	})
}
