package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Aidin1998/laptrack/api/responses"
	"github.com/Aidin1998/laptrack/pkg/models"
)

// createLaptop godoc
// @Summary      Create a laptop
// @Tags         laptops
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreateLaptopRequest  true  "Laptop"
// @Success      201   {object}  responses.StandardResponse{data=models.Laptop}
// @Failure      400   {object}  errors.ProblemDetails
// @Failure      409   {object}  errors.ProblemDetails
// @Router       /api/laptops [post]
func (s *Server) createLaptop(c *gin.Context) {
	var req models.CreateLaptopRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	laptop, err := s.inventory.CreateLaptop(c.Request.Context(), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Created(c, laptop, "laptop created")
}

// listLaptops godoc
// @Summary      List laptops
// @Tags         laptops
// @Security     BearerAuth
// @Produce      json
// @Param        status    query  string  false  "available, assigned, maintenance or retired"
// @Param        brand     query  string  false  "Exact brand, case insensitive"
// @Param        search    query  string  false  "Matches brand, model or serial number"
// @Param        page      query  int     false  "Page, 1-based"
// @Param        per_page  query  int     false  "Page size, max 100"
// @Success      200  {object}  responses.PaginatedResponse{data=[]models.Laptop}
// @Router       /api/laptops [get]
func (s *Server) listLaptops(c *gin.Context) {
	var filter models.LaptopFilter
	if err := bindQuery(c, &filter); err != nil {
		responses.Fail(c, err)
		return
	}
	page, err := bindPage(c)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	laptops, total, err := s.inventory.ListLaptops(c.Request.Context(), filter, page)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Paginated(c, laptops, page, total)
}

func (s *Server) getLaptop(c *gin.Context) {
	laptop, err := s.inventory.GetLaptop(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, laptop)
}

// laptopHistory godoc
// @Summary      Laptop history
// @Description  Assignments, maintenance records and issues of one laptop.
// @Tags         laptops
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Laptop id"
// @Success      200  {object}  responses.StandardResponse{data=inventory.LaptopHistory}
// @Failure      404  {object}  errors.ProblemDetails
// @Router       /api/laptops/{id}/history [get]
func (s *Server) laptopHistory(c *gin.Context) {
	history, err := s.inventory.LaptopHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, history)
}

func (s *Server) updateLaptop(c *gin.Context) {
	var req models.UpdateLaptopRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	laptop, err := s.inventory.UpdateLaptop(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, laptop, "laptop updated")
}

func (s *Server) deleteLaptop(c *gin.Context) {
	if err := s.inventory.DeleteLaptop(c.Request.Context(), c.Param("id")); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, nil, "laptop deleted")
}
