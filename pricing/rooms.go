package pricing

// RoomsNeeded is the occupancy rounding rule used wherever rooms are costed:
// a partly filled room is still a whole room, and nobody travelling means no
// room. A capacity below 1 is a catalog defect and is treated as 1.
func RoomsNeeded(pax, capacity int) int {
	if pax <= 0 {
		return 0
	}
	if capacity < 1 {
		capacity = 1
	}
	return (pax + capacity - 1) / capacity
}
