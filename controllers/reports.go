package controllers

import (
	"fmt"

	"sas_go/config"
	"sas_go/services"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type ReportController struct{}

func (rc *ReportController) shortageParams(c *fiber.Ctx) (uint, string, float64, error) {
	sectionID, err := strconv.ParseUint(c.Query("section_id"), 10, 32)
	if err != nil || sectionID == 0 {
		return 0, "", 0, fmt.Errorf("section_id is required")
	}

	courseCode := c.Query("course_code", services.AllCourses)

	threshold := config.AppConfig.DefaultShortageThreshold
	if raw := c.Query("threshold"); raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil || threshold < 0 || threshold > 100 {
			return 0, "", 0, fmt.Errorf("threshold must be a number between 0 and 100")
		}
	}

	return uint(sectionID), courseCode, threshold, nil
}

// GetShortageReport returns students whose attendance fell below the
// threshold, per course.
func (rc *ReportController) GetShortageReport(c *fiber.Ctx) error {
	sectionID, courseCode, threshold, err := rc.shortageParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	rows, err := services.ShortageReport(sectionID, courseCode, threshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate report",
		})
	}

	return c.JSON(fiber.Map{
		"section_id":  sectionID,
		"course_code": courseCode,
		"threshold":   threshold,
		"report":      rows,
		"total":       len(rows),
	})
}

// ExportShortageReport returns the same shortage rows as an .xlsx download.
func (rc *ReportController) ExportShortageReport(c *fiber.Ctx) error {
	sectionID, courseCode, threshold, err := rc.shortageParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	rows, err := services.ShortageReport(sectionID, courseCode, threshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate report",
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Shortage Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Roll Number", "Student Name", "Subject", "Classes Held", "Classes Attended", "Percentage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.RollNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Subject)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Total)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Attended)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.Percentage)
	}

	f.SetColWidth(sheet, "A", "C", 22)
	f.SetColWidth(sheet, "D", "F", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build spreadsheet",
		})
	}

	filename := fmt.Sprintf("attendance_shortage_section_%d.xlsx", sectionID)
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
