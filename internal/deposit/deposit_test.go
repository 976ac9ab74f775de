package deposit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		req  CalculateRequest
		want int64
		err  error
	}{
		{
			name: "percent of total",
			req:  CalculateRequest{PolicyType: Percent, PolicyValue: 0.25, TotalCents: 40000},
			want: 10000,
		},
		{
			name: "percent rounds half up",
			req:  CalculateRequest{PolicyType: Percent, PolicyValue: 0.5, TotalCents: 101},
			want: 51,
		},
		{
			name: "flat amount",
			req:  CalculateRequest{PolicyType: Flat, PolicyValue: 5000, TotalCents: 40000},
			want: 5000,
		},
		{
			name: "flat clamps to total",
			req:  CalculateRequest{PolicyType: Flat, PolicyValue: 50000, TotalCents: 40000},
			want: 40000,
		},
		{
			name: "first night",
			req:  CalculateRequest{PolicyType: FirstNight, TotalCents: 40000, FirstNightCents: 12500},
			want: 12500,
		},
		{
			name: "zero total",
			req:  CalculateRequest{PolicyType: Percent, PolicyValue: 0.25, TotalCents: 0},
			want: 0,
		},
		{
			name: "negative total",
			req:  CalculateRequest{PolicyType: Percent, PolicyValue: 0.25, TotalCents: -100},
			err:  ErrInvalidTotal,
		},
		{
			name: "percent above one",
			req:  CalculateRequest{PolicyType: Percent, PolicyValue: 1.5, TotalCents: 40000},
			err:  ErrInvalidPolicy,
		},
		{
			name: "unknown policy",
			req:  CalculateRequest{PolicyType: "half_up_front", TotalCents: 40000},
			err:  ErrInvalidPolicy,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Calculate(tc.req)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.DepositCents)
			assert.Equal(t, tc.req.PolicyType, result.PolicyType)
		})
	}
}
