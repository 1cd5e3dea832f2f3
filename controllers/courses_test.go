package controllers

import "testing"

func TestCourseFromRequest(t *testing.T) {
	course := courseFromRequest(CourseRequest{
		Code:         "cs101",
		Name:         "Introduction to Programming",
		Credits:      4,
		DepartmentID: 3,
	})

	if course.Code != "CS101" {
		t.Fatalf("code = %q, expected uppercased CS101", course.Code)
	}
	if course.Name != "Introduction to Programming" {
		t.Fatalf("name = %q", course.Name)
	}
	if course.Credits != 4 {
		t.Fatalf("credits = %d, expected 4", course.Credits)
	}
	if course.DepartmentID != 3 {
		t.Fatalf("dept id = %d, expected 3", course.DepartmentID)
	}
}
