package surface

// Morph blends from and to at (u, v, t). Both functions are evaluated on every
// call because their output depends on t. progress is not clamped; values
// outside [0, 1] extrapolate along the same line.
func Morph(u, v, t float64, to, from Func, progress float64) Point3 {
	a := from(u, v, t)
	b := to(u, v, t)
	return Lerp(a, b, progress)
}

// Lerp interpolates componentwise between a and b. The result is exactly a at
// p == 0, exactly b at p == 1, and exactly a whenever a == b.
func Lerp(a, b Point3, p float64) Point3 {
	return Point3{
		X: lerp(a.X, b.X, p),
		Y: lerp(a.Y, b.Y, p),
		Z: lerp(a.Z, b.Z, p),
	}
}

func lerp(a, b, p float64) float64 {
	if p == 1 {
		return b
	}
	return a + p*(b-a)
}
