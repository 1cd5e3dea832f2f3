package controllers

import (
	"sas_go/services"

	"github.com/gofiber/fiber/v2"
)

// HealthController reports whether attendance marking is currently possible:
// the database is the hard dependency, Redis only degrades logout and log
// caching.
type HealthController struct {
	service *services.HealthService
}

func NewHealthController(service *services.HealthService) *HealthController {
	return &HealthController{service: service}
}

// GetHealthStatus returns the dependency report. The HTTP status mirrors the
// overall state so load balancers can act on it without parsing the body.
func (hc *HealthController) GetHealthStatus(c *fiber.Ctx) error {
	report := hc.service.GetHealthReport()
	return c.Status(hc.service.HTTPStatusForOverall(report.Status)).JSON(report)
}
