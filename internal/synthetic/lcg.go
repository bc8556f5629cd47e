package synthetic

const (
	lcgMultiplier = 16807
	lcgModulus    = 2147483647

	// Used when the identifier has no usable numeric suffix.
	fallbackSeed = 123456
	seedDigits   = 6
)

// lcg is the Park-Miller minimal standard generator.
type lcg struct {
	state int64
}

func newLCG(seed int64) *lcg {
	return &lcg{state: seed}
}

// next returns a value in [0, 1).
func (g *lcg) next() float64 {
	g.state = g.state * lcgMultiplier % lcgModulus
	return float64(g.state-1) / float64(lcgModulus-1)
}

// intn returns floor(next() * n).
func (g *lcg) intn(n int) int {
	return int(g.next() * float64(n))
}

// seedFor parses the leading digits of the identifier's last six characters.
func seedFor(placeID string) int64 {
	tail := placeID
	if r := []rune(placeID); len(r) > seedDigits {
		tail = string(r[len(r)-seedDigits:])
	}
	var seed int64
	for _, c := range tail {
		if c < '0' || c > '9' {
			break
		}
		seed = seed*10 + int64(c-'0')
	}
	if seed == 0 {
		return fallbackSeed
	}
	return seed
}
