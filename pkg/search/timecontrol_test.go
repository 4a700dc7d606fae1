package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeControlBudgetUsesMoveTimeDirectly(t *testing.T) {
	tc := TimeControl{MoveTime: 3 * time.Second, Time: time.Minute, Increment: time.Second}
	require.Equal(t, 3*time.Second, tc.Budget())
}

func TestTimeControlBudgetIncrementTiers(t *testing.T) {
	cases := []struct {
		remaining time.Duration
		want      time.Duration
	}{
		{25 * time.Second, time.Second},
		{15 * time.Second, 750 * time.Millisecond},
		{5 * time.Second, 500 * time.Millisecond},
		{1 * time.Second, 250 * time.Millisecond},
	}
	for _, c := range cases {
		tc := TimeControl{Time: c.remaining, Increment: time.Second}
		require.Equal(t, c.want, tc.Budget())
	}
}

func TestTimeControlBudgetNoIncrementUsesTimeOverSixty(t *testing.T) {
	tc := TimeControl{Time: 120 * time.Second}
	require.Equal(t, 2*time.Second, tc.Budget())
}
