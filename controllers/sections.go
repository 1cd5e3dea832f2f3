package controllers

import (
	"sas_go/database"
	"sas_go/middleware"
	"sas_go/models"
	"sas_go/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type SectionController struct{}

// SectionRequest represents the create request body
type SectionRequest struct {
	BatchID uint   `json:"batch_id" validate:"required"`
	Name    string `json:"section_name" validate:"required"`
}

// GetSections returns all sections with their batch
func (sc *SectionController) GetSections(c *fiber.Ctx) error {
	var sections []models.Section
	query := database.DB.Preload("Batch")

	if batchID := c.Query("batch_id"); batchID != "" {
		query = query.Where("batch_id = ?", batchID)
	}

	if err := query.Find(&sections).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sections",
		})
	}

	return c.JSON(fiber.Map{
		"sections": sections,
		"total":    len(sections),
	})
}

// CreateSection creates a new section (admin only)
func (sc *SectionController) CreateSection(c *fiber.Ctx) error {
	var req SectionRequest
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

	var batch models.Batch
	if err := database.DB.First(&batch, req.BatchID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	section := models.Section{
		BatchID: req.BatchID,
		Name:    utils.SanitizeString(req.Name),
	}
	if err := database.DB.Create(&section).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create section",
		})
	}

	database.DB.Preload("Batch").First(&section, section.ID)

	middleware.LogActivity(c, "CREATE", "sections", section.ID, section)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Section created successfully",
		"section": section,
	})
}

// UpdateSection updates a section's name (admin only)
func (sc *SectionController) UpdateSection(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid section ID",
		})
	}

	var section models.Section
	if err := database.DB.First(&section, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Section not found",
		})
	}

	var req struct {
		Name string `json:"section_name" validate:"required"`
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

	if err := database.DB.Model(&section).Update("section_name", utils.SanitizeString(req.Name)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update section",
		})
	}

	middleware.LogActivity(c, "UPDATE", "sections", section.ID, fiber.Map{"section_name": req.Name})

	return c.JSON(fiber.Map{
		"message": "Section updated successfully",
		"section": section,
	})
}

// DeleteSection deletes a section (admin only)
func (sc *SectionController) DeleteSection(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid section ID",
		})
	}

	var section models.Section
	if err := database.DB.First(&section, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Section not found",
		})
	}

	if err := database.DB.Delete(&section).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete section",
		})
	}

	middleware.LogActivity(c, "DELETE", "sections", section.ID, section)

	return c.JSON(fiber.Map{
		"message": "Section deleted successfully",
	})
}
