package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshuahuffman02/Keepr-sub014/internal/forecast"
)

func (s *Server) GenerateForecast(c *gin.Context) {
	var req forecast.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if req.WindowDays <= 0 {
		req.WindowDays = s.pricingCfg.Get().ForecastWindowDays
	}

	result, err := forecast.Generate(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
