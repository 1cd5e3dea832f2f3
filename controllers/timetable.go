package controllers

import (
	"time"

	"sas_go/database"
	"sas_go/middleware"
	"sas_go/models"
	"sas_go/services"
	"sas_go/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type TimetableController struct{}

// TimetableSlotRequest represents the create request body
type TimetableSlotRequest struct {
	SectionID        uint   `json:"section_id" validate:"required"`
	Semester         int    `json:"semester" validate:"required,min=1,max=12"`
	Day              string `json:"day" validate:"required"`
	SlotNumber       int    `json:"slot_number" validate:"required,min=1"`
	CourseCode       string `json:"course_code" validate:"required"`
	FacultyProfileID uint   `json:"faculty_profile_id" validate:"required"`
	Room             string `json:"room_info"`
}

// GetSlots returns raw timetable slots, optionally filtered by section
func (tc *TimetableController) GetSlots(c *fiber.Ctx) error {
	var slots []models.TimetableSlot
	query := database.DB.Preload("FacultyProfile")

	if sectionID := c.Query("section_id"); sectionID != "" {
		query = query.Where("section_id = ?", sectionID)
	}
	if semester := c.Query("semester"); semester != "" {
		query = query.Where("semester = ?", semester)
	}

	if err := query.Order("day, slot_number").Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch timetable slots",
		})
	}

	return c.JSON(fiber.Map{
		"slots": slots,
		"total": len(slots),
	})
}

// CreateSlot creates a timetable slot (admin only)
func (tc *TimetableController) CreateSlot(c *fiber.Ctx) error {
	var req TimetableSlotRequest
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
	var course models.Course
	if err := database.DB.Where("course_code = ?", req.CourseCode).First(&course).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}
	var faculty models.FacultyProfile
	if err := database.DB.First(&faculty, req.FacultyProfileID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty profile not found",
		})
	}

	slot := models.TimetableSlot{
		SectionID:        req.SectionID,
		Semester:         req.Semester,
		Day:              req.Day,
		SlotNumber:       req.SlotNumber,
		CourseCode:       course.Code,
		FacultyProfileID: req.FacultyProfileID,
		Room:             utils.SanitizeString(req.Room),
	}
	if err := database.DB.Create(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create timetable slot",
		})
	}

	middleware.LogActivity(c, "CREATE", "timetable", slot.ID, slot)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Timetable slot created successfully",
		"slot":    slot,
	})
}

// UpdateSlot updates a timetable slot (admin only)
func (tc *TimetableController) UpdateSlot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timetable ID",
		})
	}

	var slot models.TimetableSlot
	if err := database.DB.First(&slot, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Timetable slot not found",
		})
	}

	var req struct {
		Day              *string `json:"day"`
		SlotNumber       *int    `json:"slot_number"`
		CourseCode       *string `json:"course_code"`
		FacultyProfileID *uint   `json:"faculty_profile_id"`
		Room             *string `json:"room_info"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := make(map[string]interface{})
	if req.Day != nil {
		updates["day"] = *req.Day
	}
	if req.SlotNumber != nil {
		updates["slot_number"] = *req.SlotNumber
	}
	if req.CourseCode != nil {
		var course models.Course
		if err := database.DB.Where("course_code = ?", *req.CourseCode).First(&course).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		updates["course_code"] = course.Code
	}
	if req.FacultyProfileID != nil {
		var faculty models.FacultyProfile
		if err := database.DB.First(&faculty, *req.FacultyProfileID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Faculty profile not found",
			})
		}
		updates["faculty_profile_id"] = *req.FacultyProfileID
	}
	if req.Room != nil {
		updates["room_info"] = utils.SanitizeString(*req.Room)
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if err := database.DB.Model(&slot).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update timetable slot",
		})
	}

	middleware.LogActivity(c, "UPDATE", "timetable", slot.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Timetable slot updated successfully",
		"slot":    slot,
	})
}

// DeleteSlot deletes a timetable slot (admin only)
func (tc *TimetableController) DeleteSlot(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timetable ID",
		})
	}

	var slot models.TimetableSlot
	if err := database.DB.First(&slot, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Timetable slot not found",
		})
	}

	if err := database.DB.Delete(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete timetable slot",
		})
	}

	middleware.LogActivity(c, "DELETE", "timetable", slot.ID, slot)

	return c.JSON(fiber.Map{
		"message": "Timetable slot deleted successfully",
	})
}

// GetByClass returns the recurring schedule of a section for a semester
func (tc *TimetableController) GetByClass(c *fiber.Ctx) error {
	sectionID, err := strconv.ParseUint(c.Query("section_id"), 10, 32)
	if err != nil || sectionID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "section_id is required",
		})
	}
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil || semester <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "semester is required",
		})
	}

	slots, err := services.TimetableByClass(uint(sectionID), semester)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch timetable",
		})
	}

	return c.JSON(fiber.Map{
		"timetable": slots,
		"total":     len(slots),
	})
}

// GetWeekGrid returns the schedule of a section with each slot joined to the
// attendance session recorded at its concrete date within the given week
func (tc *TimetableController) GetWeekGrid(c *fiber.Ctx) error {
	sectionID, err := strconv.ParseUint(c.Query("section_id"), 10, 32)
	if err != nil || sectionID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "section_id is required",
		})
	}
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil || semester <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "semester is required",
		})
	}
	weekStart, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start_date must be YYYY-MM-DD",
		})
	}

	grid, err := services.WeekGrid(uint(sectionID), semester, weekStart)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build week grid",
		})
	}

	return c.JSON(fiber.Map{
		"week_start": weekStart.Format("2006-01-02"),
		"grid":       grid,
		"total":      len(grid),
	})
}

// GetMyCourses returns the distinct courses scheduled for the calling CR's
// own section.
func (tc *TimetableController) GetMyCourses(c *fiber.Ctx) error {
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

	var courses []models.Course
	if err := database.DB.
		Joins("JOIN timetable ON timetable.course_code = courses.course_code").
		Where("timetable.section_id = ? AND timetable.deleted_at IS NULL", me.SectionID).
		Distinct("courses.*").
		Order("courses.course_code").
		Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch courses",
		})
	}

	return c.JSON(fiber.Map{
		"section_id": me.SectionID,
		"courses":    courses,
		"total":      len(courses),
	})
}
