package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keremaydin/acadport/internal/app/models/dto"
	"github.com/keremaydin/acadport/internal/app/services"
	"github.com/keremaydin/acadport/internal/middleware"
)

// RegistryController serves the course and department code registries
type RegistryController struct {
	registryService *services.RegistryService
}

// NewRegistryController creates a new RegistryController
func NewRegistryController(registryService *services.RegistryService) *RegistryController {
	return &RegistryController{
		registryService: registryService,
	}
}

// ListCourses retrieves all course options
// @Summary List courses
// @Description Retrieves all registered courses for the selection dropdown
// @Tags registry
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseOption} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *RegistryController) ListCourses(ctx *gin.Context) {
	courses, err := c.registryService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// ListDepartments retrieves all department options
// @Summary List departments
// @Description Retrieves all registered departments for the selection dropdown
// @Tags registry
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.DepartmentOption} "Departments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *RegistryController) ListDepartments(ctx *gin.Context) {
	departments, err := c.registryService.ListDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      departments,
		Timestamp: time.Now(),
	})
}
