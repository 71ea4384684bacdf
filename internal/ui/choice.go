package ui

// cycleChoice steps through n options in direction, wrapping at both ends.
// An unknown current index starts from the first option.
func cycleChoice(n, current, direction int) int {
	if n <= 0 {
		return current
	}
	if current < 0 || current >= n {
		return 0
	}
	return ((current+direction)%n + n) % n
}
