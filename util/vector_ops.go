package util

// sum the vector
func VectorSum(data []uint32) uint64 {
	sum := uint64(0)
	for _, d := range data {
		sum += uint64(d)
	}
	return sum
}

// sum the int vector
func IntSum(data []int) int {
	sum := 0
	for _, d := range data {
		sum += d
	}
	return sum
}
