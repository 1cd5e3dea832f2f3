package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User model. Role is immutable after provisioning; CR promotion creates a
// new user row linked to a student instead of mutating an existing one.
type User struct {
	BaseModel
	Email     string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password  string `json:"-" gorm:"size:255;not null"`
	Role      string `json:"role" gorm:"size:50;not null;type:enum('admin','faculty','cr')"` // admin, faculty, cr
	StudentID *uint  `json:"student_id"`

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

// Department model
type Department struct {
	BaseModel
	Name string `json:"dept_name" gorm:"column:dept_name;size:255;not null"`
	Code string `json:"dept_code" gorm:"column:dept_code;size:50;not null;uniqueIndex"`

	// Relationships
	Batches []Batch  `json:"batches,omitempty" gorm:"foreignKey:DepartmentID"`
	Courses []Course `json:"courses,omitempty" gorm:"foreignKey:DepartmentID"`
}

// Batch model
type Batch struct {
	BaseModel
	DepartmentID uint   `json:"dept_id" gorm:"column:dept_id;not null"`
	StartYear    int    `json:"start_year" gorm:"not null"`
	EndYear      int    `json:"end_year" gorm:"not null"`
	Name         string `json:"batch_name" gorm:"column:batch_name;size:100;not null"`

	// Relationships
	Department Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Sections   []Section  `json:"sections,omitempty" gorm:"foreignKey:BatchID"`
}

// Section model. A section resolves to exactly one batch and, through it,
// one department.
type Section struct {
	BaseModel
	BatchID uint   `json:"batch_id" gorm:"not null"`
	Name    string `json:"section_name" gorm:"column:section_name;size:100;not null"`

	// Relationships
	Batch    Batch     `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	Students []Student `json:"students,omitempty" gorm:"foreignKey:SectionID"`
}

// Course model. Code is the natural key referenced by timetable slots and
// attendance sessions.
type Course struct {
	BaseModel
	Code         string `json:"course_code" gorm:"column:course_code;size:50;not null;uniqueIndex"`
	Name         string `json:"course_name" gorm:"column:course_name;size:255;not null"`
	Credits      int    `json:"credits"`
	DepartmentID uint   `json:"dept_id" gorm:"column:dept_id;not null"`

	// Relationships
	Department Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

// FacultyProfile model. May exist without a linked user account; profile
// creation and login provisioning are two independent steps. AuthorizationKey
// is the 6-digit shared secret a faculty member uses to attest sessions.
type FacultyProfile struct {
	BaseModel
	Name             string `json:"faculty_name" gorm:"column:faculty_name;size:255;not null"`
	Email            string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	DepartmentID     uint   `json:"dept_id" gorm:"column:dept_id;not null"`
	AuthorizationKey string `json:"authorization_key" gorm:"size:10;not null"`
	UserID           *uint  `json:"user_id"`

	// Relationships
	Department Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	User       *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Student model
type Student struct {
	BaseModel
	RollNumber string `json:"roll_number" gorm:"size:50;not null"`
	FullName   string `json:"full_name" gorm:"size:255;not null"`
	Email      string `json:"email" gorm:"size:255;not null"`
	SectionID  uint   `json:"section_id" gorm:"not null;index"`

	// Relationships
	Section Section `json:"section,omitempty" gorm:"foreignKey:SectionID"`
}

// TimetableSlot model. The authoritative recurring schedule: what should be
// taught to a section at a given weekday/period.
type TimetableSlot struct {
	BaseModel
	SectionID        uint   `json:"section_id" gorm:"not null;index"`
	Semester         int    `json:"semester" gorm:"not null"`
	Day              string `json:"day" gorm:"size:10;not null"` // Mon..Sun
	SlotNumber       int    `json:"slot_number" gorm:"not null"`
	CourseCode       string `json:"course_code" gorm:"size:50;not null"`
	FacultyProfileID uint   `json:"faculty_profile_id" gorm:"not null"`
	Room             string `json:"room_info" gorm:"column:room_info;size:100"`

	// Relationships
	Section        Section        `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	FacultyProfile FacultyProfile `json:"faculty_profile,omitempty" gorm:"foreignKey:FacultyProfileID"`
}

func (TimetableSlot) TableName() string { return "timetable" }

// Session categories.
const (
	SessionNormal = "normal"
	SessionSwap   = "swap"
	SessionFree   = "free"
)

// AttendanceSession model. One row per (slot, date) recording event. The
// schema intentionally carries no uniqueness constraint on slot+date:
// duplicate recordings for the same slot and date are accepted behavior.
type AttendanceSession struct {
	BaseModel
	TimetableSlotID   uint       `json:"timetable_id" gorm:"column:timetable_id;not null;index"`
	SessionDate       time.Time  `json:"session_date" gorm:"type:date;not null"`
	MarkedByUserID    uint       `json:"marked_by_user_id" gorm:"not null"`
	Category          string     `json:"session_category" gorm:"column:session_category;size:20;not null;type:enum('normal','swap','free')"`
	ActualCourseCode  *string    `json:"actual_course_code" gorm:"size:50"` // null when free
	VerifiedByFaculty bool       `json:"is_verified_by_faculty" gorm:"column:is_verified_by_faculty;default:false"`
	VerifiedAt        *time.Time `json:"verified_at"`

	// Relationships
	TimetableSlot TimetableSlot `json:"timetable_slot,omitempty" gorm:"foreignKey:TimetableSlotID"`
	MarkedBy      User          `json:"marked_by,omitempty" gorm:"foreignKey:MarkedByUserID"`
}

func (AttendanceSession) TableName() string { return "attendance_sessions" }

// AttendanceRecord model. One row per student per non-free session.
type AttendanceRecord struct {
	BaseModel
	SessionID uint   `json:"session_id" gorm:"not null;index"`
	StudentID uint   `json:"student_id" gorm:"not null;index"`
	Status    string `json:"status" gorm:"size:20;not null"` // canonical lowercase: present, absent, ...

	// Relationships
	Session AttendanceSession `json:"session,omitempty" gorm:"foreignKey:SessionID"`
	Student Student           `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

// ClassSwap model. Auto-logged, pre-approved substitution record derived
// whenever a session is recorded as swap or free.
type ClassSwap struct {
	BaseModel
	SourceTimetableSlotID uint      `json:"source_timetable_id" gorm:"column:source_timetable_id;not null"`
	RequestingFacultyID   uint      `json:"requesting_faculty_id" gorm:"not null"`
	TargetFacultyID       *uint     `json:"target_faculty_id"` // null when no substitute resolved
	RequestedDate         time.Time `json:"requested_date" gorm:"type:date;not null"`
	Reason                string    `json:"reason" gorm:"size:500"`
	Status                string    `json:"status" gorm:"size:20;not null;default:'approved';type:enum('pending','approved','rejected')"`

	// Relationships
	SourceSlot        TimetableSlot   `json:"source_slot,omitempty" gorm:"foreignKey:SourceTimetableSlotID"`
	RequestingFaculty FacultyProfile  `json:"requesting_faculty,omitempty" gorm:"foreignKey:RequestingFacultyID"`
	TargetFaculty     *FacultyProfile `json:"target_faculty,omitempty" gorm:"foreignKey:TargetFacultyID"`
}

// ActivityLog model for audit trails
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id" gorm:"index"`
	Action     string `json:"action" gorm:"size:50;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`
}
