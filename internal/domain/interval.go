package domain

import "time"

// Overlaps reports whether [s1,e1) and [s2,e2) intersect.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// Contains reports whether t lies in [start,end).
func Contains(start, end, t time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
