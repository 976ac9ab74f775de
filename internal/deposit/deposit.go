// Package deposit computes the up-front deposit owed for a reservation.
package deposit

import (
	"errors"
	"math"
)

type PolicyType string

var (
	Percent    PolicyType = "percent"
	Flat       PolicyType = "flat"
	FirstNight PolicyType = "first_night"
)

type CalculateRequest struct {
	PolicyType      PolicyType `json:"policy_type"`
	PolicyValue     float64    `json:"policy_value"`
	TotalCents      int64      `json:"total_cents"`
	FirstNightCents int64      `json:"first_night_cents"`
}

type CalculateResult struct {
	DepositCents int64      `json:"deposit_cents"`
	PolicyType   PolicyType `json:"policy_type"`
}

var (
	ErrInvalidPolicy = errors.New("invalid_deposit_policy")
	ErrInvalidTotal  = errors.New("invalid_total")
)

// Calculate applies the deposit policy to a reservation total. The deposit
// never exceeds the total and never goes below zero.
func Calculate(req CalculateRequest) (*CalculateResult, error) {
	if req.TotalCents < 0 {
		return nil, ErrInvalidTotal
	}

	var deposit int64
	switch req.PolicyType {
	case Percent:
		if req.PolicyValue < 0 || req.PolicyValue > 1 {
			return nil, ErrInvalidPolicy
		}
		deposit = roundCents(float64(req.TotalCents) * req.PolicyValue)
	case Flat:
		if req.PolicyValue < 0 {
			return nil, ErrInvalidPolicy
		}
		deposit = roundCents(req.PolicyValue)
	case FirstNight:
		if req.FirstNightCents < 0 {
			return nil, ErrInvalidTotal
		}
		deposit = req.FirstNightCents
	default:
		return nil, ErrInvalidPolicy
	}

	if deposit > req.TotalCents {
		deposit = req.TotalCents
	}
	if deposit < 0 {
		deposit = 0
	}

	return &CalculateResult{DepositCents: deposit, PolicyType: req.PolicyType}, nil
}

func roundCents(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}
