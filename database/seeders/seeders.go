package seeders

import (
	"log"
	"os"

	"sas_go/database"
	"sas_go/models"
	"sas_go/utils"
)

// Seed runs all seeders. Each seeder is idempotent: it skips when its table
// already has rows.
func Seed() error {
	log.Println("Starting database seeding...")

	if err := seedAdmin(); err != nil {
		return err
	}
	if err := seedAcademicHierarchy(); err != nil {
		return err
	}

	log.Println("Database seeding completed")
	return nil
}

// seedAdmin creates the bootstrap admin account.
func seedAdmin() error {
	var count int64
	database.DB.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		log.Println("Admin already seeded, skipping...")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: hashed,
		Role:     "admin",
	}
	if admin.Email == "" {
		admin.Email = "admin@sas.local"
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account %s", admin.Email)
	return nil
}

// seedAcademicHierarchy creates one demo department/batch/section with a
// course, a faculty profile and a handful of students, enough to exercise
// timetable and attendance flows on a fresh install.
func seedAcademicHierarchy() error {
	var count int64
	database.DB.Model(&models.Department{}).Count(&count)
	if count > 0 {
		log.Println("Departments already seeded, skipping...")
		return nil
	}

	dept := models.Department{Name: "Computer Science & Engineering", Code: "CSE"}
	if err := database.DB.Create(&dept).Error; err != nil {
		return err
	}

	batch := models.Batch{
		DepartmentID: dept.ID,
		StartYear:    2024,
		EndYear:      2028,
		Name:         "CSE 2024-28",
	}
	if err := database.DB.Create(&batch).Error; err != nil {
		return err
	}

	section := models.Section{BatchID: batch.ID, Name: "A"}
	if err := database.DB.Create(&section).Error; err != nil {
		return err
	}

	courses := []models.Course{
		{Code: "CS101", Name: "Introduction to Programming", Credits: 4, DepartmentID: dept.ID},
		{Code: "CS102", Name: "Discrete Mathematics", Credits: 3, DepartmentID: dept.ID},
	}
	for i := range courses {
		if err := database.DB.Create(&courses[i]).Error; err != nil {
			return err
		}
	}

	key, err := utils.GenerateAuthKey()
	if err != nil {
		return err
	}
	faculty := models.FacultyProfile{
		Name:             "Dr. A. Sharma",
		Email:            "a.sharma@sas.local",
		DepartmentID:     dept.ID,
		AuthorizationKey: key,
	}
	if err := database.DB.Create(&faculty).Error; err != nil {
		return err
	}

	students := []models.Student{
		{RollNumber: "CSE24A001", FullName: "Ishaan Verma", Email: "ishaan@sas.local", SectionID: section.ID},
		{RollNumber: "CSE24A002", FullName: "Priya Nair", Email: "priya@sas.local", SectionID: section.ID},
		{RollNumber: "CSE24A003", FullName: "Rohan Das", Email: "rohan@sas.local", SectionID: section.ID},
	}
	for i := range students {
		if err := database.DB.Create(&students[i]).Error; err != nil {
			return err
		}
	}

	slot := models.TimetableSlot{
		SectionID:        section.ID,
		Semester:         1,
		Day:              "Mon",
		SlotNumber:       1,
		CourseCode:       "CS101",
		FacultyProfileID: faculty.ID,
		Room:             "LT-1",
	}
	if err := database.DB.Create(&slot).Error; err != nil {
		return err
	}

	log.Println("Seeded demo academic hierarchy")
	return nil
}
