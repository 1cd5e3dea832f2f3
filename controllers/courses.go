package controllers

import (
	"sas_go/database"
	"sas_go/middleware"
	"sas_go/models"
	"sas_go/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CourseController struct{}

// CourseRequest represents the create request body
type CourseRequest struct {
	Code         string `json:"course_code" validate:"required,max=32"`
	Name         string `json:"course_name" validate:"required"`
	Credits      int    `json:"credits" validate:"min=0,max=20"`
	DepartmentID uint   `json:"dept_id" validate:"required"`
}

// courseFromRequest maps a validated request onto a course row. The code is
// uppercased so lookups keyed by code stay case-stable.
func courseFromRequest(req CourseRequest) models.Course {
	return models.Course{
		Code:         strings.ToUpper(utils.SanitizeString(req.Code)),
		Name:         utils.SanitizeString(req.Name),
		Credits:      req.Credits,
		DepartmentID: req.DepartmentID,
	}
}

// GetCourses returns all courses ordered by code
func (cc *CourseController) GetCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.DB.Order("course_code").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch courses",
		})
	}

	return c.JSON(fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// CreateCourse creates a new course (admin only)
func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
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

	var dept models.Department
	if err := database.DB.First(&dept, req.DepartmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Department not found",
		})
	}

	course := courseFromRequest(req)

	var existing models.Course
	if err := database.DB.Where("course_code = ?", course.Code).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Course code already exists",
		})
	}

	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create course",
		})
	}

	middleware.LogActivity(c, "CREATE", "courses", course.ID, course)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created successfully",
		"course":  course,
	})
}

// UpdateCourse updates a course's name and credits, keyed by course code
// (admin only)
func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))

	var course models.Course
	if err := database.DB.Where("course_code = ?", code).First(&course).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	var req struct {
		Name    *string `json:"course_name"`
		Credits *int    `json:"credits"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["course_name"] = utils.SanitizeString(*req.Name)
	}
	if req.Credits != nil {
		if *req.Credits < 0 || *req.Credits > 20 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "credits must be between 0 and 20",
			})
		}
		updates["credits"] = *req.Credits
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if err := database.DB.Model(&course).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update course",
		})
	}

	middleware.LogActivity(c, "UPDATE", "courses", course.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Course updated successfully",
		"course":  course,
	})
}

// DeleteCourse deletes a course, keyed by course code (admin only)
func (cc *CourseController) DeleteCourse(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))

	var course models.Course
	if err := database.DB.Where("course_code = ?", code).First(&course).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	if err := database.DB.Delete(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete course",
		})
	}

	middleware.LogActivity(c, "DELETE", "courses", course.ID, course)

	return c.JSON(fiber.Map{
		"message": "Course deleted successfully",
	})
}
