package brew

// BloomMultiplier is how much water the grounds hold during bloom, relative to
// their dry weight.
const BloomMultiplier = 2

// BloomWater returns the water poured during bloom for the given coffee dose.
func BloomWater(coffee int) int {
	return coffee * BloomMultiplier
}
