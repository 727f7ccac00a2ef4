package event

import (
	"regexp"
	"strconv"
)

var (
	flareClassRe = regexp.MustCompile(`^([ABCMX])(\d+(?:\.\d+)?)`)
	cmeSpeedRe   = regexp.MustCompile(`\((\d+(?:\.\d+)?) km/s\)`)
	kpRe         = regexp.MustCompile(`^Kp (\d+(?:\.\d+)?)$`)
)

// Flare classes step by a factor of ten; the class suffix scales within
// the band, so M5.0 = 5000 and X1.0 = 10000 on a common axis.
var flareScale = map[string]float64{
	"A": 1,
	"B": 10,
	"C": 100,
	"M": 1000,
	"X": 10000,
}

// Magnitude extracts the numeric reading from a type-specific intensity
// label: the flare class on a common logarithmic axis, the CME speed in
// km/s, or the storm's peak Kp. The second return is false when the label
// carries no parseable number ("Unknown", "N/A", free-form classes).
func Magnitude(t Type, intensity string) (float64, bool) {
	switch t {
	case TypeFlare:
		m := flareClassRe.FindStringSubmatch(intensity)
		if m == nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		return flareScale[m[1]] * v, true
	case TypeCME:
		m := cmeSpeedRe.FindStringSubmatch(intensity)
		if m == nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case TypeStorm:
		m := kpRe.FindStringSubmatch(intensity)
		if m == nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
