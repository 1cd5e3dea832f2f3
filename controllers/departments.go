package controllers

import (
	"sas_go/database"
	"sas_go/middleware"
	"sas_go/models"
	"sas_go/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type DepartmentController struct{}

// DepartmentRequest represents the create/update request body
type DepartmentRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

// GetDepartments returns all departments
func (dc *DepartmentController) GetDepartments(c *fiber.Ctx) error {
	var departments []models.Department
	if err := database.DB.Find(&departments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch departments",
		})
	}

	return c.JSON(fiber.Map{
		"departments": departments,
		"total":       len(departments),
	})
}

// CreateDepartment creates a new department (admin only)
func (dc *DepartmentController) CreateDepartment(c *fiber.Ctx) error {
	var req DepartmentRequest
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

	// Check if code already exists
	var existing models.Department
	if err := database.DB.Where("dept_code = ?", req.Code).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Department code already exists",
		})
	}

	department := models.Department{
		Name: utils.SanitizeString(req.Name),
		Code: utils.SanitizeString(req.Code),
	}
	if err := database.DB.Create(&department).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create department",
		})
	}

	middleware.LogActivity(c, "CREATE", "departments", department.ID, department)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Department created successfully",
		"department": department,
	})
}

// UpdateDepartment updates an existing department (admin only)
func (dc *DepartmentController) UpdateDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid department ID",
		})
	}

	var department models.Department
	if err := database.DB.First(&department, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Department not found",
		})
	}

	var req DepartmentRequest
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

	updates := map[string]interface{}{
		"dept_name": utils.SanitizeString(req.Name),
		"dept_code": utils.SanitizeString(req.Code),
	}
	if err := database.DB.Model(&department).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update department",
		})
	}

	middleware.LogActivity(c, "UPDATE", "departments", department.ID, updates)

	return c.JSON(fiber.Map{
		"message":    "Department updated successfully",
		"department": department,
	})
}

// DeleteDepartment deletes a department (admin only)
func (dc *DepartmentController) DeleteDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid department ID",
		})
	}

	var department models.Department
	if err := database.DB.First(&department, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Department not found",
		})
	}

	// Soft delete
	if err := database.DB.Delete(&department).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete department",
		})
	}

	middleware.LogActivity(c, "DELETE", "departments", department.ID, department)

	return c.JSON(fiber.Map{
		"message": "Department deleted successfully",
	})
}
