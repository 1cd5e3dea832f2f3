package services

import (
	"sas_go/database"
	"sas_go/models"
	"strconv"
	"time"
)

// SlotView is one timetable slot joined with course and faculty display data,
// optionally correlated with the attendance session recorded for a concrete
// calendar date. Session fields stay nil when nothing has been recorded yet.
type SlotView struct {
	ID               uint   `json:"id"`
	SectionID        uint   `json:"section_id"`
	Semester         int    `json:"semester"`
	Day              string `json:"day"`
	SlotNumber       int    `json:"slot_number"`
	CourseCode       string `json:"course_code"`
	FacultyProfileID uint   `json:"faculty_profile_id"`
	Room             string `json:"room_info"`
	CourseName       string `json:"course_name"`
	FacultyName      string `json:"faculty_name"`

	SessionID        *uint      `json:"session_id"`
	SessionCategory  *string    `json:"session_category"`
	SessionDate      *time.Time `json:"session_date"`
	ActualCourseCode *string    `json:"actual_course_code"`
	ActualCourseName *string    `json:"actual_course_name"`
}

// WeekdayOffset maps a slot's weekday to its day offset from the week start
// (Mon=0 .. Fri=4). Slots scheduled outside Mon-Fri collapse to the week
// start date; this mirrors the long-standing grid behavior and is kept as an
// explicit default rather than an accidental fallthrough.
func WeekdayOffset(day string) int {
	switch day {
	case "Mon":
		return 0
	case "Tue":
		return 1
	case "Wed":
		return 2
	case "Thu":
		return 3
	case "Fri":
		return 4
	default:
		return 0
	}
}

const slotViewQuery = `
	SELECT t.id, t.section_id, t.semester, t.day, t.slot_number, t.course_code,
	       t.faculty_profile_id, t.room_info,
	       c.course_name, f.faculty_name
	FROM timetable t
	JOIN courses c ON t.course_code = c.course_code
	JOIN faculty_profiles f ON t.faculty_profile_id = f.id
	WHERE t.section_id = ? AND t.semester = ?
	  AND t.deleted_at IS NULL AND c.deleted_at IS NULL AND f.deleted_at IS NULL
	ORDER BY FIELD(t.day, 'Mon', 'Tue', 'Wed', 'Thu', 'Fri', 'Sat', 'Sun'), t.slot_number`

// TimetableByClass returns the plain schedule for a section/semester with no
// date correlation.
func TimetableByClass(sectionID uint, semester int) ([]SlotView, error) {
	var views []SlotView
	if err := database.DB.Raw(slotViewQuery, sectionID, semester).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// WeekGrid returns one row per scheduled slot for the week starting at
// weekStart, each left-joined with the attendance session (if any) recorded
// for that slot on its computed calendar date, and with the actual course
// name when the session recorded a substitution.
func WeekGrid(sectionID uint, semester int, weekStart time.Time) ([]SlotView, error) {
	views, err := TimetableByClass(sectionID, semester)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return views, nil
	}

	slotIDs := make([]uint, 0, len(views))
	slotDates := make(map[uint]time.Time, len(views))
	for _, v := range views {
		slotIDs = append(slotIDs, v.ID)
		slotDates[v.ID] = weekStart.AddDate(0, 0, WeekdayOffset(v.Day))
	}

	var sessions []models.AttendanceSession
	if err := database.DB.
		Where("timetable_id IN ?", slotIDs).
		Where("session_date BETWEEN ? AND ?", weekStart, weekStart.AddDate(0, 0, 6)).
		Order("id").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	// Duplicate recordings for the same slot/date are possible; the grid
	// shows the earliest one.
	const dateLayout = "2006-01-02"
	bySlotDate := make(map[string]models.AttendanceSession)
	for _, sess := range sessions {
		key := keyFor(sess.TimetableSlotID, sess.SessionDate.Format(dateLayout))
		if _, seen := bySlotDate[key]; !seen {
			bySlotDate[key] = sess
		}
	}

	courseNames, err := courseNamesByCode(sessions)
	if err != nil {
		return nil, err
	}

	for i := range views {
		date := slotDates[views[i].ID]
		sess, ok := bySlotDate[keyFor(views[i].ID, date.Format(dateLayout))]
		if !ok {
			continue
		}
		sessID := sess.ID
		category := sess.Category
		sessDate := sess.SessionDate
		views[i].SessionID = &sessID
		views[i].SessionCategory = &category
		views[i].SessionDate = &sessDate
		views[i].ActualCourseCode = sess.ActualCourseCode
		if sess.ActualCourseCode != nil {
			if name, ok := courseNames[*sess.ActualCourseCode]; ok {
				actualName := name
				views[i].ActualCourseName = &actualName
			}
		}
	}
	return views, nil
}

func keyFor(slotID uint, date string) string {
	return date + "#" + strconv.FormatUint(uint64(slotID), 10)
}

// courseNamesByCode resolves display names for every actual course code the
// sessions reference.
func courseNamesByCode(sessions []models.AttendanceSession) (map[string]string, error) {
	codes := make([]string, 0)
	seen := make(map[string]bool)
	for _, sess := range sessions {
		if sess.ActualCourseCode != nil && !seen[*sess.ActualCourseCode] {
			seen[*sess.ActualCourseCode] = true
			codes = append(codes, *sess.ActualCourseCode)
		}
	}
	names := make(map[string]string, len(codes))
	if len(codes) == 0 {
		return names, nil
	}
	var courses []models.Course
	if err := database.DB.Where("course_code IN ?", codes).Find(&courses).Error; err != nil {
		return nil, err
	}
	for _, course := range courses {
		names[course.Code] = course.Name
	}
	return names, nil
}
