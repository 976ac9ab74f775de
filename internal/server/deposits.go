package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshuahuffman02/Keepr-sub014/internal/deposit"
)

type depositRequest struct {
	PolicyType      *deposit.PolicyType `json:"policy_type"`
	PolicyValue     *float64            `json:"policy_value"`
	TotalCents      int64               `json:"total_cents"`
	FirstNightCents int64               `json:"first_night_cents"`
}

// CalculateDeposit falls back to the campground-wide policy from live config
// when the request leaves the policy out.
func (s *Server) CalculateDeposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	pricing := s.pricingCfg.Get()
	calc := deposit.CalculateRequest{
		PolicyType:      deposit.PolicyType(pricing.DepositPolicyType),
		PolicyValue:     pricing.DepositPolicyValue,
		TotalCents:      req.TotalCents,
		FirstNightCents: req.FirstNightCents,
	}
	if req.PolicyType != nil {
		calc.PolicyType = *req.PolicyType
	}
	if req.PolicyValue != nil {
		calc.PolicyValue = *req.PolicyValue
	}

	result, err := deposit.Calculate(calc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
