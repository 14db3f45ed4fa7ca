package track

import (
	"math"
	"strconv"
)

// ToAverage returns value as a percentage of total, rounded to precision decimals.
// A zero total yields NaN or Inf.
func ToAverage(value, total float64, precision int) float64 {
	r := math.Pow10(precision)
	return roundHalfUp((value*100/total)*r) / r
}

// FromAverage returns the value that average percent of total represents,
// rounded to precision decimals
func FromAverage(average, total float64, precision int) float64 {
	r := math.Pow10(precision)
	return roundHalfUp((total/100*average)*r) / r
}

// HumanizeTime formats seconds as MM:SS, or HH:MM:SS when withHours is set.
// Without hours the minutes are not wrapped at 60. A NaN component renders as "--".
func HumanizeTime(seconds float64, withHours bool) string {
	h := math.Floor(seconds / 3600)
	var m float64
	if withHours {
		m = math.Floor(math.Mod(seconds/60, 60))
	} else {
		m = math.Floor(seconds / 60)
	}
	s := math.Floor(math.Mod(seconds, 60))

	if withHours {
		return pad(h) + ":" + pad(m) + ":" + pad(s)
	}
	return pad(m) + ":" + pad(s)
}

// roundHalfUp rounds .5 towards positive infinity
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// pad zero-pads v to two digits. Inf and negative values are not special-cased.
func pad(v float64) string {
	if math.IsNaN(v) {
		return "--"
	}
	str := strconv.FormatFloat(v, 'f', -1, 64)
	if v >= 10 {
		return str
	}
	return "0" + str
}
