package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSplitCommission(t *testing.T) {
	cases := []struct {
		gross      int64
		rate       float64
		commission int64
		net        int64
	}{
		{5000, 0.12, 600, 4400},
		{2000, 0.05, 100, 1900},
		// 333 * 0.12 = 39.96 rounds up; the net absorbs the remainder.
		{333, 0.12, 40, 293},
		{100, 0, 0, 100},
		{100, 1, 100, 0},
		{0, 0.12, 0, 0},
	}

	for _, tc := range cases {
		commission, net := SplitCommission(tc.gross, tc.rate)
		require.Equal(t, tc.commission, commission, "gross=%d rate=%v", tc.gross, tc.rate)
		require.Equal(t, tc.net, net, "gross=%d rate=%v", tc.gross, tc.rate)
		require.Equal(t, tc.gross, commission+net, "split must preserve the gross")
	}
}

func TestNewMerchantEarning(t *testing.T) {
	now := time.Now()
	item := &OrderItem{
		ID:         uuid.New(),
		OrderID:    uuid.New(),
		MerchantID: uuid.New(),
		LineTotal:  5000,
	}

	earning := NewMerchantEarning(item, 0.12, now)
	require.Equal(t, item.MerchantID, earning.MerchantID)
	require.Equal(t, item.OrderID, earning.OrderID)
	require.Equal(t, item.ID, earning.OrderItemID)
	require.Equal(t, int64(5000), earning.Amount)
	require.Equal(t, 0.12, earning.CommissionRate)
	require.Equal(t, int64(600), earning.CommissionAmount)
	require.Equal(t, int64(4400), earning.NetAmount)
	require.Equal(t, EarningStatusPending, earning.Status)
	require.False(t, earning.PaidAt.Valid)
}
