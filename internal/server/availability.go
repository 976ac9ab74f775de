package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshuahuffman02/Keepr-sub014/internal/availability"
)

type availabilityRequest struct {
	ArrivalDate   *time.Time                      `json:"arrival_date"`
	DepartureDate *time.Time                      `json:"departure_date"`
	Sites         []availability.Site             `json:"sites"`
	Reservations  []availability.Reservation      `json:"reservations"`
	Maintenance   []availability.MaintenanceBlock `json:"maintenance_blocks"`
}

func (s *Server) CheckAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.ArrivalDate == nil || req.DepartureDate == nil || !req.ArrivalDate.Before(*req.DepartureDate) {
		AbortWithError(c, invalidRequestError())
		return
	}

	result := availability.FilterAvailableSites(
		req.Sites,
		*req.ArrivalDate,
		*req.DepartureDate,
		req.Reservations,
		req.Maintenance,
	)

	c.JSON(http.StatusOK, gin.H{"data": result})
}
