package services

import (
	"math"
	"sas_go/database"
)

// ShortageRow is one student/course line of the attendance shortage report.
type ShortageRow struct {
	RollNumber string  `json:"roll_number"`
	FullName   string  `json:"full_name"`
	Subject    string  `json:"subject"`
	Total      int     `json:"total"`
	Attended   int     `json:"attended"`
	Percentage float64 `json:"percentage"`
}

// AllCourses selects every course taught to the section.
const AllCourses = "ALL"

// AttendancePercentage computes attended/total as a percentage rounded to one
// decimal. ok is false when total is zero: the percentage is undefined and
// the row must be excluded, never divided.
func AttendancePercentage(attended, total int) (percentage float64, ok bool) {
	if total == 0 {
		return 0, false
	}
	raw := float64(attended) / float64(total) * 100
	return math.Round(raw*10) / 10, true
}

// Free sessions are not teaching events; they count toward neither total nor
// attended. Session grouping keys off the actual course taught so swapped
// sessions accrue to the substituted course.
const shortageCountsQuery = `
	WITH session_counts AS (
		SELECT sess.actual_course_code, COUNT(sess.id) AS total_sessions
		FROM attendance_sessions sess
		JOIN timetable t ON sess.timetable_id = t.id
		WHERE t.section_id = ?
		  AND (? = 'ALL' OR sess.actual_course_code = ?)
		  AND sess.session_category <> 'free'
		  AND sess.deleted_at IS NULL AND t.deleted_at IS NULL
		GROUP BY sess.actual_course_code
	),
	student_attendance AS (
		SELECT s.id AS student_id, s.roll_number, s.full_name,
		       sess.actual_course_code,
		       COUNT(CASE WHEN r.status = 'present' THEN 1 END) AS attended_sessions
		FROM students s
		JOIN attendance_records r ON s.id = r.student_id
		JOIN attendance_sessions sess ON r.session_id = sess.id
		JOIN timetable t ON sess.timetable_id = t.id
		WHERE s.section_id = ?
		  AND (? = 'ALL' OR sess.actual_course_code = ?)
		  AND sess.session_category <> 'free'
		  AND s.deleted_at IS NULL AND r.deleted_at IS NULL
		  AND sess.deleted_at IS NULL AND t.deleted_at IS NULL
		GROUP BY s.id, s.roll_number, s.full_name, sess.actual_course_code
	)
	SELECT sa.roll_number, sa.full_name,
	       sa.actual_course_code AS subject,
	       COALESCE(sc.total_sessions, 0) AS total,
	       sa.attended_sessions AS attended
	FROM student_attendance sa
	JOIN session_counts sc ON sa.actual_course_code = sc.actual_course_code
	ORDER BY sa.roll_number, sa.actual_course_code`

// ShortageReport computes, per student per course, countable vs attended
// sessions for a section and keeps the rows below the threshold percentage.
// courseCode restricts to one course; AllCourses (or empty) includes every
// course taught to the section.
func ShortageReport(sectionID uint, courseCode string, threshold float64) ([]ShortageRow, error) {
	if courseCode == "" {
		courseCode = AllCourses
	}

	var counts []ShortageRow
	err := database.DB.Raw(shortageCountsQuery,
		sectionID, courseCode, courseCode,
		sectionID, courseCode, courseCode,
	).Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	rows := make([]ShortageRow, 0, len(counts))
	for _, row := range counts {
		percentage, ok := AttendancePercentage(row.Attended, row.Total)
		if !ok {
			continue
		}
		if percentage >= threshold {
			continue
		}
		row.Percentage = percentage
		rows = append(rows, row)
	}
	return rows, nil
}
