package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Aidin1998/laptrack/api/responses"
	"github.com/Aidin1998/laptrack/pkg/models"
)

func (s *Server) createMaintenance(c *gin.Context) {
	var req models.CreateMaintenanceRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	record, err := s.inventory.CreateMaintenance(c.Request.Context(), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Created(c, record, "maintenance scheduled")
}

func (s *Server) listMaintenance(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	filter := models.MaintenanceFilter{
		Status: models.MaintenanceStatus(c.Query("status")),
		Type:   models.MaintenanceType(c.Query("type")),
	}
	if filter.LaptopID, err = queryID(c, "laptop_id"); err != nil {
		responses.Fail(c, err)
		return
	}
	records, total, err := s.inventory.ListMaintenance(c.Request.Context(), filter, page)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Paginated(c, records, page, total)
}

func (s *Server) getMaintenance(c *gin.Context) {
	record, err := s.inventory.GetMaintenance(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, record)
}

func (s *Server) updateMaintenance(c *gin.Context) {
	var req models.UpdateMaintenanceRequest
	if err := bindJSON(c, &req); err != nil {
		responses.Fail(c, err)
		return
	}
	record, err := s.inventory.UpdateMaintenance(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, record, "maintenance updated")
}

func (s *Server) deleteMaintenance(c *gin.Context) {
	if err := s.inventory.DeleteMaintenance(c.Request.Context(), c.Param("id")); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, nil, "maintenance deleted")
}
