package mathutil

import "math"

// ModelFlip converts Z-up (CAD/STL) to Y-up (camera): Rx(-90°)
var ModelFlip = RotX(math.Pi / -2)
