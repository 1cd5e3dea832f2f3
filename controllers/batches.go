package controllers

import (
	"sas_go/database"
	"sas_go/middleware"
	"sas_go/models"
	"sas_go/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type BatchController struct{}

// BatchRequest represents the create/update request body
type BatchRequest struct {
	DepartmentID uint   `json:"dept_id" validate:"required"`
	StartYear    int    `json:"start_year" validate:"required"`
	EndYear      int    `json:"end_year" validate:"required,gtefield=StartYear"`
	Name         string `json:"batch_name" validate:"required"`
}

// GetBatches returns all batches with their department
func (bc *BatchController) GetBatches(c *fiber.Ctx) error {
	var batches []models.Batch
	query := database.DB.Preload("Department")

	if deptID := c.Query("dept_id"); deptID != "" {
		query = query.Where("dept_id = ?", deptID)
	}

	if err := query.Find(&batches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch batches",
		})
	}

	return c.JSON(fiber.Map{
		"batches": batches,
		"total":   len(batches),
	})
}

// CreateBatch creates a new batch (admin only)
func (bc *BatchController) CreateBatch(c *fiber.Ctx) error {
	var req BatchRequest
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

	// The department must exist before a batch can hang off it
	var department models.Department
	if err := database.DB.First(&department, req.DepartmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Department not found",
		})
	}

	batch := models.Batch{
		DepartmentID: req.DepartmentID,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
		Name:         utils.SanitizeString(req.Name),
	}
	if err := database.DB.Create(&batch).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create batch",
		})
	}

	database.DB.Preload("Department").First(&batch, batch.ID)

	middleware.LogActivity(c, "CREATE", "batches", batch.ID, batch)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Batch created successfully",
		"batch":   batch,
	})
}

// UpdateBatch updates an existing batch (admin only)
func (bc *BatchController) UpdateBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID",
		})
	}

	var batch models.Batch
	if err := database.DB.First(&batch, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	var req struct {
		StartYear int    `json:"start_year" validate:"required"`
		EndYear   int    `json:"end_year" validate:"required"`
		Name      string `json:"batch_name" validate:"required"`
	}
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
		"start_year": req.StartYear,
		"end_year":   req.EndYear,
		"batch_name": utils.SanitizeString(req.Name),
	}
	if err := database.DB.Model(&batch).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update batch",
		})
	}

	middleware.LogActivity(c, "UPDATE", "batches", batch.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Batch updated successfully",
		"batch":   batch,
	})
}

// DeleteBatch deletes a batch (admin only)
func (bc *BatchController) DeleteBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID",
		})
	}

	var batch models.Batch
	if err := database.DB.First(&batch, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	if err := database.DB.Delete(&batch).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete batch",
		})
	}

	middleware.LogActivity(c, "DELETE", "batches", batch.ID, batch)

	return c.JSON(fiber.Map{
		"message": "Batch deleted successfully",
	})
}
