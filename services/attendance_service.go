package services

import (
	"errors"
	"fmt"
	"sas_go/database"
	"sas_go/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrSlotNotFound is returned when the referenced timetable slot does not exist.
var ErrSlotNotFound = errors.New("timetable slot not found")

// FreeClassReason is the fixed reason logged for a free-period swap entry.
const FreeClassReason = "Class declared Free during attendance marking"

// StudentRecordInput is one caller-submitted per-student status.
type StudentRecordInput struct {
	StudentID uint   `json:"id" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// RecordAttendanceInput carries everything the session engine needs for one
// recording event.
type RecordAttendanceInput struct {
	TimetableSlotID    uint
	Date               time.Time
	MarkedByUserID     uint
	MarkedByRole       string
	SelectedCourseCode string
	IsFree             bool
	Records            []StudentRecordInput
}

// RecordAttendanceResult reports the persisted session.
type RecordAttendanceResult struct {
	SessionID uint   `json:"session_id"`
	Category  string `json:"category"`
}

// ClassifySession decides the session category from the scheduled course, the
// course actually taught, and the free flag. Free wins over everything.
func ClassifySession(scheduledCourse, selectedCourse string, isFree bool) string {
	if isFree {
		return models.SessionFree
	}
	if selectedCourse != scheduledCourse {
		return models.SessionSwap
	}
	return models.SessionNormal
}

// NormalizeStatus maps a caller-submitted status to its canonical lowercase form.
func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// SwapReason builds the human-readable reason stored on an auto-logged swap.
func SwapReason(category, scheduledCourse, selectedCourse string) string {
	if category == models.SessionFree {
		return FreeClassReason
	}
	return fmt.Sprintf("Course changed from %s to %s", scheduledCourse, selectedCourse)
}

// substituteResolver is one strategy for finding the faculty member who
// actually taught a swapped class. Returns nil when the strategy has no answer.
type substituteResolver func(tx *gorm.DB, in RecordAttendanceInput, slot models.TimetableSlot) (*uint, error)

// resolveSectionFaculty finds any timetable slot in the same section teaching
// the selected course and takes its assigned faculty.
func resolveSectionFaculty(tx *gorm.DB, in RecordAttendanceInput, slot models.TimetableSlot) (*uint, error) {
	var other models.TimetableSlot
	err := tx.Where("section_id = ? AND course_code = ?", slot.SectionID, in.SelectedCourseCode).
		Limit(1).First(&other).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &other.FacultyProfileID, nil
}

// resolveCallerFaculty assumes the marking faculty member is the substitute
// when they have a profile. Non-faculty callers yield no answer.
func resolveCallerFaculty(tx *gorm.DB, in RecordAttendanceInput, _ models.TimetableSlot) (*uint, error) {
	if in.MarkedByRole != "faculty" {
		return nil, nil
	}
	var profile models.FacultyProfile
	err := tx.Where("user_id = ?", in.MarkedByUserID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile.ID, nil
}

// substituteResolvers is the ordered resolution chain; first success wins,
// and nil from every strategy means "no substitute found".
var substituteResolvers = []substituteResolver{
	resolveSectionFaculty,
	resolveCallerFaculty,
}

func resolveSubstitute(tx *gorm.DB, in RecordAttendanceInput, slot models.TimetableSlot) (*uint, error) {
	return resolveThroughChain(substituteResolvers, tx, in, slot)
}

func resolveThroughChain(chain []substituteResolver, tx *gorm.DB, in RecordAttendanceInput, slot models.TimetableSlot) (*uint, error) {
	for _, resolve := range chain {
		target, err := resolve(tx, in, slot)
		if err != nil {
			return nil, err
		}
		if target != nil {
			return target, nil
		}
	}
	return nil, nil
}

// RecordAttendance is the core write: it classifies the session, persists the
// session row and its per-student records, and derives the class-swap entry
// for swapped or free sessions. The whole operation runs in one transaction;
// any failure rolls back every row.
func RecordAttendance(in RecordAttendanceInput) (*RecordAttendanceResult, error) {
	var result RecordAttendanceResult

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var slot models.TimetableSlot
		if err := tx.First(&slot, in.TimetableSlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		category := ClassifySession(slot.CourseCode, in.SelectedCourseCode, in.IsFree)

		session := models.AttendanceSession{
			TimetableSlotID: slot.ID,
			SessionDate:     in.Date,
			MarkedByUserID:  in.MarkedByUserID,
			Category:        category,
		}
		if category != models.SessionFree {
			code := in.SelectedCourseCode
			session.ActualCourseCode = &code
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		// Free periods carry no per-student records
		if category != models.SessionFree {
			for _, r := range in.Records {
				record := models.AttendanceRecord{
					SessionID: session.ID,
					StudentID: r.StudentID,
					Status:    NormalizeStatus(r.Status),
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
		}

		if category == models.SessionSwap || category == models.SessionFree {
			var targetFacultyID *uint
			if category == models.SessionSwap {
				var err error
				targetFacultyID, err = resolveSubstitute(tx, in, slot)
				if err != nil {
					return err
				}
			}

			swap := models.ClassSwap{
				SourceTimetableSlotID: slot.ID,
				RequestingFacultyID:   slot.FacultyProfileID,
				TargetFacultyID:       targetFacultyID,
				RequestedDate:         in.Date,
				Reason:                SwapReason(category, slot.CourseCode, in.SelectedCourseCode),
				Status:                "approved",
			}
			if err := tx.Create(&swap).Error; err != nil {
				return err
			}
		}

		result = RecordAttendanceResult{SessionID: session.ID, Category: category}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
