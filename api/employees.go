package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Aidin1998/laptrack/api/responses"
	"github.com/Aidin1998/laptrack/pkg/models"
)

func (s *Server) createEmployee(c *gin.Context) {
	var req models.CreateEmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	employee, err := s.inventory.CreateEmployee(c.Request.Context(), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Created(c, employee, "employee created")
}

func (s *Server) listEmployees(c *gin.Context) {
	var filter models.EmployeeFilter
	if err := bindQuery(c, &filter); err != nil {
		responses.Fail(c, err)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	employees, total, err := s.inventory.ListEmployees(c.Request.Context(), filter, page)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Paginated(c, employees, page, total)
}

func (s *Server) getEmployee(c *gin.Context) {
	employee, err := s.inventory.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, employee)
}

// employeeAssignments godoc
// @Summary      Assignments of an employee
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id      path   string  true   "Employee id"
// @Param        status  query  string  false  "active or returned"
// @Success      200  {object}  responses.PaginatedResponse{data=[]models.Assignment}
// @Router       /api/employees/{id}/assignments [get]
func (s *Server) employeeAssignments(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	status := models.AssignmentStatus(c.Query("status"))
	assignments, total, err := s.inventory.EmployeeAssignments(c.Request.Context(), c.Param("id"), status, page)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Paginated(c, assignments, page, total)
}

func (s *Server) updateEmployee(c *gin.Context) {
	var req models.UpdateEmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	employee, err := s.inventory.UpdateEmployee(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, employee, "employee updated")
}

func (s *Server) deleteEmployee(c *gin.Context) {
	if err := s.inventory.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, nil, "employee deleted")
}
