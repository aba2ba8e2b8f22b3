package reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stayharbor/stayharbor-backend/pkg/types"
)

func d(day int) types.Date {
	return types.NewDate(2026, time.March, day)
}

func TestOverlapping(t *testing.T) {
	// existing stay: March 10 to March 15
	existingIn, existingOut := d(10), d(15)

	cases := []struct {
		name     string
		checkIn  int
		checkOut int
		want     bool
	}{
		{"identical range", 10, 15, true},
		{"starts inside existing", 12, 20, true},
		{"ends inside existing", 5, 12, true},
		{"encloses existing", 5, 20, true},
		{"enclosed by existing", 11, 14, true},
		{"single night inside", 12, 13, true},
		{"checkout touches check-in", 5, 10, false},
		{"check-in touches checkout", 15, 20, false},
		{"fully before", 1, 5, false},
		{"fully after", 20, 25, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := overlapping(existingIn, existingOut, d(tc.checkIn), d(tc.checkOut))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIntersectsWindow(t *testing.T) {
	// reporting window: March 10 to March 20, bounds inclusive
	start, end := d(10), d(20)

	cases := []struct {
		name     string
		checkIn  int
		checkOut int
		want     bool
	}{
		{"entirely inside", 12, 15, true},
		{"check-in on window end", 20, 25, true},
		{"checkout on window start", 5, 10, true},
		{"spans whole window", 5, 25, true},
		{"checkout inside only", 5, 12, true},
		{"check-in inside only", 18, 25, true},
		{"ends before window", 1, 9, false},
		{"starts after window", 21, 25, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := intersectsWindow(d(tc.checkIn), d(tc.checkOut), start, end)
			assert.Equal(t, tc.want, got)
		})
	}
}
