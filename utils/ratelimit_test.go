package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedWindowLimiter(t *testing.T) {
	l := NewFixedWindowLimiter(2, time.Minute)

	require.True(t, l.Check("1.2.3.4").Allowed)
	l.Record("1.2.3.4")
	require.True(t, l.Check("1.2.3.4").Allowed)
	l.Record("1.2.3.4")

	decision := l.Check("1.2.3.4")
	require.False(t, decision.Allowed)
	require.GreaterOrEqual(t, decision.RetryAfter, 1)

	// Other keys are unaffected.
	require.True(t, l.Check("5.6.7.8").Allowed)

	l.Clear("1.2.3.4")
	require.True(t, l.Check("1.2.3.4").Allowed)
}

func TestFixedWindowLimiterAllow(t *testing.T) {
	l := NewFixedWindowLimiter(2, time.Minute)

	require.True(t, l.Allow("1.2.3.4").Allowed)
	require.True(t, l.Allow("1.2.3.4").Allowed)

	decision := l.Allow("1.2.3.4")
	require.False(t, decision.Allowed)
	require.GreaterOrEqual(t, decision.RetryAfter, 1)

	require.True(t, l.Allow("5.6.7.8").Allowed)
}

func TestFixedWindowLimiterRollsOver(t *testing.T) {
	l := NewFixedWindowLimiter(1, 30*time.Millisecond)

	l.Record("k")
	require.False(t, l.Check("k").Allowed)

	time.Sleep(40 * time.Millisecond)
	require.True(t, l.Check("k").Allowed)
}

func TestLoginLockout(t *testing.T) {
	l := NewLoginLockout(3, time.Minute)
	key := "1.2.3.4|Owner"

	for i := 0; i < 2; i++ {
		require.True(t, l.Check(key).Allowed)
		l.Record(key)
	}
	require.True(t, l.Check(key).Allowed)
	l.Record(key)

	decision := l.Check(key)
	require.False(t, decision.Allowed)
	require.Greater(t, decision.RetryAfter, 0)

	// A different name from the same address has its own budget.
	require.True(t, l.Check("1.2.3.4|Manager").Allowed)

	l.Clear(key)
	require.True(t, l.Check(key).Allowed)
}

func TestLoginLockoutExpires(t *testing.T) {
	l := NewLoginLockout(1, 30*time.Millisecond)

	l.Record("k")
	require.False(t, l.Check("k").Allowed)

	time.Sleep(40 * time.Millisecond)
	require.True(t, l.Check("k").Allowed)
}
