package controllers

import (
	"crypto/subtle"
	"time"

	"sas_go/database"
	"sas_go/middleware"
	"sas_go/models"
	"sas_go/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FacultyController struct{}

// FacultyProfileRequest represents the create-profile request body
type FacultyProfileRequest struct {
	Name         string `json:"faculty_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	DepartmentID uint   `json:"dept_id" validate:"required"`
}

// ProvisionLoginRequest represents the login-provisioning request body
type ProvisionLoginRequest struct {
	FacultyProfileID uint   `json:"faculty_profile_id" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
}

// GetFaculty returns all faculty profiles with their linked login, if any
func (fc *FacultyController) GetFaculty(c *fiber.Ctx) error {
	var profiles []models.FacultyProfile
	query := database.DB.Preload("Department").Preload("User")

	if deptID := c.Query("dept_id"); deptID != "" {
		query = query.Where("dept_id = ?", deptID)
	}

	if err := query.Order("faculty_name").Find(&profiles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch faculty",
		})
	}

	return c.JSON(fiber.Map{
		"faculty": profiles,
		"total":   len(profiles),
	})
}

// CreateProfile creates a faculty profile without a login (admin only).
// A fresh 6-digit authorization key is issued on creation.
func (fc *FacultyController) CreateProfile(c *fiber.Ctx) error {
	var req FacultyProfileRequest
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

	var existing models.FacultyProfile
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Faculty email already exists",
		})
	}

	key, err := utils.GenerateAuthKey()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate authorization key",
		})
	}

	profile := models.FacultyProfile{
		Name:             utils.SanitizeString(req.Name),
		Email:            utils.SanitizeString(req.Email),
		DepartmentID:     req.DepartmentID,
		AuthorizationKey: key,
	}
	if err := database.DB.Create(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create faculty profile",
		})
	}

	middleware.LogActivity(c, "CREATE", "faculty_profiles", profile.ID, fiber.Map{
		"faculty_name": profile.Name,
		"dept_id":      profile.DepartmentID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Faculty profile created successfully",
		"faculty": profile,
	})
}

// ProvisionLogin creates a faculty user and links it to an existing profile
// in one transaction (admin only).
func (fc *FacultyController) ProvisionLogin(c *fiber.Ctx) error {
	var req ProvisionLoginRequest
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

	var profile models.FacultyProfile
	if err := database.DB.First(&profile, req.FacultyProfileID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty profile not found",
		})
	}
	if profile.UserID != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Faculty profile already has a login",
		})
	}

	var existing models.User
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

	var user models.User
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Email:    utils.SanitizeString(req.Email),
			Password: hashed,
			Role:     "faculty",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Model(&profile).Update("user_id", user.ID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to provision faculty login",
		})
	}

	middleware.LogActivity(c, "CREATE", "users", user.ID, fiber.Map{
		"role":               user.Role,
		"faculty_profile_id": profile.ID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Faculty login provisioned successfully",
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
		"faculty_profile_id": profile.ID,
	})
}

// UpdateByUserID updates the profile linked to a faculty user (admin only)
func (fc *FacultyController) UpdateByUserID(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var profile models.FacultyProfile
	if err := database.DB.Where("user_id = ?", uint(userID)).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty profile not found for user",
		})
	}

	var req struct {
		Name         *string `json:"faculty_name"`
		Email        *string `json:"email"`
		DepartmentID *uint   `json:"dept_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["faculty_name"] = utils.SanitizeString(*req.Name)
	}
	if req.Email != nil {
		updates["email"] = utils.SanitizeString(*req.Email)
	}
	if req.DepartmentID != nil {
		var dept models.Department
		if err := database.DB.First(&dept, *req.DepartmentID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Department not found",
			})
		}
		updates["dept_id"] = *req.DepartmentID
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if err := database.DB.Model(&profile).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update faculty profile",
		})
	}

	middleware.LogActivity(c, "UPDATE", "faculty_profiles", profile.ID, updates)

	return c.JSON(fiber.Map{
		"message": "Faculty profile updated successfully",
		"faculty": profile,
	})
}

// DeleteByUserID deletes a faculty login and unlinks its profile (admin only).
// The profile itself survives so timetable history stays intact.
func (fc *FacultyController) DeleteByUserID(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var user models.User
	if err := database.DB.Where("id = ? AND role = ?", uint(userID), "faculty").First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty user not found",
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FacultyProfile{}).
			Where("user_id = ?", user.ID).
			Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete faculty user",
		})
	}

	middleware.LogActivity(c, "DELETE", "users", user.ID, fiber.Map{"role": "faculty"})

	return c.JSON(fiber.Map{
		"message": "Faculty user deleted successfully",
	})
}

// RegenerateAuthKey issues a fresh 6-digit authorization key for the calling
// faculty member. The old key stops working immediately.
func (fc *FacultyController) RegenerateAuthKey(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var profile models.FacultyProfile
	if err := database.DB.Where("user_id = ?", claims.UserID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty profile not found for caller",
		})
	}

	key, err := utils.GenerateAuthKey()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate authorization key",
		})
	}

	if err := database.DB.Model(&profile).Update("authorization_key", key).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update authorization key",
		})
	}

	middleware.LogActivity(c, "UPDATE", "faculty_profiles", profile.ID, fiber.Map{
		"action": "regenerate_auth_key",
	})

	return c.JSON(fiber.Map{
		"message":           "Authorization key regenerated",
		"authorization_key": key,
	})
}

// VerifySession marks an attendance session as attested by the calling
// faculty member. The submitted token must match the caller's stored
// authorization key exactly. Verification is one-way.
func (fc *FacultyController) VerifySession(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	sessionID, err := strconv.ParseUint(c.Params("sessionId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	var req struct {
		Token string `json:"token" validate:"required"`
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

	var profile models.FacultyProfile
	if err := database.DB.Where("user_id = ?", claims.UserID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Faculty profile not found for caller",
		})
	}

	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(profile.AuthorizationKey)) != 1 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Invalid authorization key",
		})
	}

	var session models.AttendanceSession
	if err := database.DB.First(&session, uint(sessionID)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Attendance session not found",
		})
	}
	if session.VerifiedByFaculty {
		return c.JSON(fiber.Map{
			"message":     "Session already verified",
			"verified_at": session.VerifiedAt,
		})
	}

	now := time.Now()
	if err := database.DB.Model(&session).Updates(map[string]interface{}{
		"is_verified_by_faculty": true,
		"verified_at":            now,
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify session",
		})
	}

	middleware.LogActivity(c, "UPDATE", "attendance_sessions", session.ID, fiber.Map{
		"action": "verify",
	})

	return c.JSON(fiber.Map{
		"message":     "Session verified successfully",
		"session_id":  session.ID,
		"verified_at": now,
	})
}
