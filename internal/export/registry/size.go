package registry

import "fmt"

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// SizeLabel renders n bytes with base-1024 units and two decimals.
func SizeLabel(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}
