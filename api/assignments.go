package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Aidin1998/laptrack/api/responses"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// createAssignment godoc
// @Summary      Assign a laptop
// @Description  The laptop must be available and the employee active.
// @Tags         assignments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreateAssignmentRequest  true  "Assignment"
// @Success      201   {object}  responses.StandardResponse{data=models.Assignment}
// @Failure      409   {object}  errors.ProblemDetails
// @Router       /api/assignments [post]
func (s *Server) createAssignment(c *gin.Context) {
	var req models.CreateAssignmentRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	assignment, err := s.inventory.CreateAssignment(c.Request.Context(), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Created(c, assignment, "laptop assigned")
}

func (s *Server) listAssignments(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	filter := models.AssignmentFilter{Status: models.AssignmentStatus(c.Query("status"))}
	if filter.LaptopID, err = queryID(c, "laptop_id"); err != nil {
		responses.Fail(c, err)
		return
	}
	if filter.EmployeeID, err = queryID(c, "employee_id"); err != nil {
		responses.Fail(c, err)
		return
	}
	assignments, total, err := s.inventory.ListAssignments(c.Request.Context(), filter, page)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Paginated(c, assignments, page, total)
}

func (s *Server) getAssignment(c *gin.Context) {
	assignment, err := s.inventory.GetAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, assignment)
}

// returnAssignment godoc
// @Summary      Return an assigned laptop
// @Tags         assignments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string                          true   "Assignment id"
// @Param        body  body      models.ReturnAssignmentRequest  false  "Return details"
// @Success      200   {object}  responses.StandardResponse{data=models.Assignment}
// @Failure      409   {object}  errors.ProblemDetails
// @Router       /api/assignments/{id}/return [post]
func (s *Server) returnAssignment(c *gin.Context) {
	var req models.ReturnAssignmentRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			responses.Fail(c, err)
			return
		}
	}
	assignment, err := s.inventory.ReturnAssignment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, assignment, "laptop returned")
}

func (s *Server) deleteAssignment(c *gin.Context) {
	if err := s.inventory.DeleteAssignment(c.Request.Context(), c.Param("id")); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, nil, "assignment deleted")
}
