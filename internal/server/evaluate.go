package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	quotedomain "github.com/joshuahuffman02/Keepr-sub014/internal/ratequote/domain"
)

func (s *Server) EvaluatePricing(c *gin.Context) {
	var req quotedomain.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.quoteSvc.Evaluate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": quote})
}
