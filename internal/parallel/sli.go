package parallel

// MaxUnits is the largest number of scanline units a frame is split into.
const MaxUnits = 16

// Slice selects the scanlines y with y&Mask == Value.
type Slice struct {
	Mask  int
	Value int
}

// Owns reports whether row y belongs to the slice.
func (s Slice) Owns(y int) bool {
	return y&s.Mask == s.Value
}

// Units rounds a requested core count down to a power of two in
// [1, MaxUnits].
func Units(cores int) int {
	if cores <= 1 {
		return 1
	}
	n := 1
	for n*2 <= cores && n*2 <= MaxUnits {
		n *= 2
	}
	return n
}

// Partition splits the rows of a frame between Units(cores) slices.
// Every row is owned by exactly one slice.
func Partition(cores int) []Slice {
	n := Units(cores)
	slices := make([]Slice, n)
	for i := range slices {
		slices[i] = Slice{Mask: n - 1, Value: i}
	}
	return slices
}
