package models

import (
	"math/rand"
	"testing"
)

func TestRideReserveRelease(t *testing.T) {
	r := Ride{ID: "r1", MaxPassengers: 4, AvailableSeats: 4}

	if err := r.Reserve(2); err != nil {
		t.Fatalf("reserve 2: %v", err)
	}
	if r.AvailableSeats != 2 {
		t.Fatalf("expected 2 seats left, got %d", r.AvailableSeats)
	}

	if err := r.Reserve(3); err == nil {
		t.Fatalf("reserve 3 with 2 available should fail")
	}
	if r.AvailableSeats != 2 {
		t.Fatalf("failed reserve changed seats to %d", r.AvailableSeats)
	}

	r.Release(2)
	if r.AvailableSeats != 4 {
		t.Fatalf("expected 4 seats after release, got %d", r.AvailableSeats)
	}
}

func TestRideReserveRejectsNonPositive(t *testing.T) {
	r := Ride{MaxPassengers: 2, AvailableSeats: 2}
	if err := r.Reserve(0); err == nil {
		t.Fatalf("reserve 0 should fail")
	}
	if err := r.Reserve(-1); err == nil {
		t.Fatalf("reserve -1 should fail")
	}
	if r.AvailableSeats != 2 {
		t.Fatalf("seats changed to %d", r.AvailableSeats)
	}
}

// Random create/cancel sequences must keep available + reserved == max.
func TestRideConservationUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		max := 1 + rng.Intn(8)
		ride := Ride{MaxPassengers: max, AvailableSeats: max}
		var active []int

		for step := 0; step < 50; step++ {
			if len(active) > 0 && rng.Intn(3) == 0 {
				i := rng.Intn(len(active))
				ride.Release(active[i])
				active = append(active[:i], active[i+1:]...)
			} else {
				n := 1 + rng.Intn(4)
				if err := ride.Reserve(n); err == nil {
					active = append(active, n)
				}
			}

			reserved := 0
			for _, n := range active {
				reserved += n
			}
			if ride.AvailableSeats+reserved != max {
				t.Fatalf("round %d step %d: available %d + reserved %d != max %d", round, step, ride.AvailableSeats, reserved, max)
			}
			if !ride.Consistent() {
				t.Fatalf("round %d step %d: inconsistent ride %+v", round, step, ride)
			}
		}
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingNoShow, true},
		{BookingConfirmed, BookingActive, true},
		{BookingCompleted, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v want %v", tc.from, tc.to, got, tc.want)
		}
	}
	if !BookingNoShow.Terminal() || BookingConfirmed.Terminal() {
		t.Fatalf("terminal states misreported")
	}
	if BookingStatus("lost").Valid() {
		t.Fatalf("unknown status reported valid")
	}
}

func TestBookingUpdateEmpty(t *testing.T) {
	if !(BookingUpdate{}).Empty() {
		t.Fatalf("zero update should be empty")
	}
	method := "card"
	if (BookingUpdate{PaymentMethod: &method}).Empty() {
		t.Fatalf("update with payment method should not be empty")
	}
}
