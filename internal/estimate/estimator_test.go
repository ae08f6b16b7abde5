package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoursFixedRandomTerm(t *testing.T) {
	// 239 is the highest draw from intn(240), giving the upper bound 240
	// after the +1 offset.
	est := NewWithSource(func(int) int { return 239 })

	// "ab cd" has 4 non-whitespace runes, "inquiry" has 7.
	hours := est.Hours("ab cd", "inquiry")
	assert.Equal(t, (4+7)*10+240, hours)
}

func TestHoursLowerBound(t *testing.T) {
	est := NewWithSource(func(int) int { return 0 })

	hours := est.Hours("a", "b")
	assert.Equal(t, 2*10+1, hours)
}

func TestHoursWhitespaceIgnored(t *testing.T) {
	est := NewWithSource(func(int) int { return 0 })

	assert.Equal(t, est.Hours("abc", "xy"), est.Hours(" a b c ", "\tx y\n"))
}

func TestHoursRandomWithinRange(t *testing.T) {
	est := New()
	for i := 0; i < 100; i++ {
		hours := est.Hours("title", "payment")
		base := (5 + 7) * 10
		assert.GreaterOrEqual(t, hours, base+1)
		assert.LessOrEqual(t, hours, base+240)
	}
}

func TestDaysFromHours(t *testing.T) {
	assert.Equal(t, 0, DaysFromHours(11))  // 0.458 rounds down
	assert.Equal(t, 1, DaysFromHours(12))  // 0.5 rounds up
	assert.Equal(t, 1, DaysFromHours(24))
	assert.Equal(t, 2, DaysFromHours(36))  // 1.5 rounds up
	assert.Equal(t, 10, DaysFromHours(240))
}
