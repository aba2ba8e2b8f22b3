package reservations

import "github.com/stayharbor/stayharbor-backend/pkg/types"

// overlapping reports whether an existing stay collides with a requested
// half-open range [checkIn, checkOut). Three cases, mirrored in the SQL of
// FindOverlapping: the request starts inside the existing stay, ends inside
// it, or fully encloses it. Back-to-back stays where one checkout equals the
// next check-in do not collide.
func overlapping(existingIn, existingOut, checkIn, checkOut types.Date) bool {
	startsInside := !existingIn.After(checkIn) && existingOut.After(checkIn)
	endsInside := existingIn.Before(checkOut) && !existingOut.Before(checkOut)
	encloses := !existingIn.Before(checkIn) && !existingOut.After(checkOut)
	return startsInside || endsInside || encloses
}

// intersectsWindow reports whether a reservation touches the closed reporting
// window [start, end]. Unlike overlapping this treats both bounds as
// inclusive, so a stay checking out on the window's start date still shows up
// in the listing. Mirrored in the SQL of ListIntersectingWindow.
func intersectsWindow(checkIn, checkOut, start, end types.Date) bool {
	checkInInside := !checkIn.Before(start) && !checkIn.After(end)
	checkOutInside := !checkOut.Before(start) && !checkOut.After(end)
	spansWindow := !checkIn.After(start) && !checkOut.Before(end)
	return checkInInside || checkOutInside || spansWindow
}
