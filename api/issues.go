package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Aidin1998/laptrack/api/responses"
	"github.com/Aidin1998/laptrack/pkg/models"
)

func (s *Server) createIssue(c *gin.Context) {
	var req models.CreateIssueRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	issue, err := s.inventory.CreateIssue(c.Request.Context(), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Created(c, issue, "issue reported")
}

func (s *Server) listIssues(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	filter := models.IssueFilter{
		Status:   models.IssueStatus(c.Query("status")),
		Priority: models.IssuePriority(c.Query("priority")),
	}
	if filter.LaptopID, err = queryID(c, "laptop_id"); err != nil {
		responses.Fail(c, err)
		return
	}
	issues, total, err := s.inventory.ListIssues(c.Request.Context(), filter, page)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Paginated(c, issues, page, total)
}

func (s *Server) getIssue(c *gin.Context) {
	issue, err := s.inventory.GetIssue(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, issue)
}

func (s *Server) updateIssue(c *gin.Context) {
	var req models.UpdateIssueRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	issue, err := s.inventory.UpdateIssue(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, issue, "issue updated")
}

func (s *Server) deleteIssue(c *gin.Context) {
	if err := s.inventory.DeleteIssue(c.Request.Context(), c.Param("id")); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, nil, "issue deleted")
}
