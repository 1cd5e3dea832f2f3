package controllers

import (
	"errors"
	"time"

	"sas_go/database"
	"sas_go/middleware"
	"sas_go/models"
	"sas_go/services"
	"sas_go/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AttendanceController struct{}

// RecordAttendanceRequest represents the attendance-marking request body
type RecordAttendanceRequest struct {
	TimetableSlotID    uint                          `json:"timetable_id" validate:"required"`
	Date               string                        `json:"date" validate:"required"`
	SelectedCourseCode string                        `json:"selected_course_code"`
	IsFree             bool                          `json:"is_free"`
	Records            []services.StudentRecordInput `json:"records"`
}

// RecordAttendance persists one attendance-marking event: the session row,
// its per-student records, and any derived swap entry, atomically.
func (ac *AttendanceController) RecordAttendance(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req RecordAttendanceRequest
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

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be YYYY-MM-DD",
		})
	}
	if !req.IsFree {
		if req.SelectedCourseCode == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "selected_course_code is required unless the class is free",
			})
		}
		if len(req.Records) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "records are required unless the class is free",
			})
		}
	}

	result, err := services.RecordAttendance(services.RecordAttendanceInput{
		TimetableSlotID:    req.TimetableSlotID,
		Date:               date,
		MarkedByUserID:     claims.UserID,
		MarkedByRole:       claims.Role,
		SelectedCourseCode: req.SelectedCourseCode,
		IsFree:             req.IsFree,
		Records:            req.Records,
	})
	if err != nil {
		if errors.Is(err, services.ErrSlotNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Timetable slot not found",
			})
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"timetable_id": req.TimetableSlotID,
			"user_id":      claims.UserID,
		}).Error("Failed to record attendance")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record attendance",
		})
	}

	middleware.LogActivity(c, "CREATE", "attendance_sessions", result.SessionID, fiber.Map{
		"timetable_id":     req.TimetableSlotID,
		"session_category": result.Category,
		"records":          len(req.Records),
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":          "Attendance recorded successfully",
		"session_id":       result.SessionID,
		"session_category": result.Category,
	})
}

// GetSessionsByTimetable returns all sessions recorded against a slot,
// newest date first.
func (ac *AttendanceController) GetSessionsByTimetable(c *fiber.Ctx) error {
	slotID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid timetable ID",
		})
	}

	var sessions []models.AttendanceSession
	if err := database.DB.Where("timetable_id = ?", uint(slotID)).
		Order("session_date DESC, id DESC").
		Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sessions",
		})
	}

	return c.JSON(fiber.Map{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// GetRecordsBySession returns the per-student records of one session with
// student details preloaded.
func (ac *AttendanceController) GetRecordsBySession(c *fiber.Ctx) error {
	sessionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	var session models.AttendanceSession
	if err := database.DB.First(&session, uint(sessionID)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attendance session not found",
		})
	}

	var records []models.AttendanceRecord
	if err := database.DB.Preload("Student").
		Where("session_id = ?", session.ID).
		Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch records",
		})
	}

	return c.JSON(fiber.Map{
		"session": session,
		"records": records,
		"total":   len(records),
	})
}
