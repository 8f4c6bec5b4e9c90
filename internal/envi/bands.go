package envi

import "fmt"

// PresetBands is the default-bands triplet used when no better source is
// available, as 1-based band numbers.
var PresetBands = [3]int{70, 53, 19}

// BandsMode selects where the default bands triplet comes from.
type BandsMode uint8

const (
	// BandsOff omits the default bands field.
	BandsOff BandsMode = iota
	// BandsFromSynthesis uses the colour synthesis configuration, falling
	// back to PresetBands.
	BandsFromSynthesis
	// BandsPreset always uses PresetBands.
	BandsPreset
	// BandsCustom uses the caller's triplet.
	BandsCustom
)

// ParseBandsMode accepts "off", "synthesis", "preset" and "custom".
func ParseBandsMode(s string) (BandsMode, error) {
	switch s {
	case "", "off", "none":
		return BandsOff, nil
	case "synthesis", "auto":
		return BandsFromSynthesis, nil
	case "preset":
		return BandsPreset, nil
	case "custom":
		return BandsCustom, nil
	}
	return BandsOff, fmt.Errorf("unknown default bands mode %q", s)
}

// SynthesisMode is the visualization mode of a colour synthesis config.
type SynthesisMode uint8

const (
	TrueColor SynthesisMode = iota
	RangeAverage
	// PCA has no channel mapping.
	PCA
)

// ChannelRange is an inclusive range of 0-based channel indices.
type ChannelRange struct {
	Start int
	End   int
}

// Synthesis is the colour synthesis configuration supplied by the
// visualization side. Channel indices are 0-based.
type Synthesis struct {
	Mode      SynthesisMode
	TrueColor [3]int          // red, green, blue channels
	Ranges    [3]ChannelRange // red, green, blue ranges
}

// DefaultBands configures the default bands header field.
type DefaultBands struct {
	Mode      BandsMode
	Custom    [3]int // 1-based
	Synthesis *Synthesis
}

// Resolve returns three 1-based band numbers for a cube with the given
// channel count. ok is false when the field should be omitted.
func (d DefaultBands) Resolve(channels int) (bands [3]int, ok bool) {
	if channels <= 0 {
		return bands, false
	}
	switch d.Mode {
	case BandsOff:
		return bands, false
	case BandsFromSynthesis:
		if b, ok := d.Synthesis.bands(channels); ok {
			return b, true
		}
		return clampBands(PresetBands, channels), true
	case BandsPreset:
		return clampBands(PresetBands, channels), true
	case BandsCustom:
		return clampBands(d.Custom, channels), true
	}
	return bands, false
}

func (s *Synthesis) bands(channels int) (out [3]int, ok bool) {
	if s == nil {
		return out, false
	}
	switch s.Mode {
	case TrueColor:
		for i, c := range s.TrueColor {
			out[i] = clamp(c, 0, channels-1) + 1
		}
		return out, true
	case RangeAverage:
		for i, r := range s.Ranges {
			out[i] = clamp((r.Start+r.End)/2, 0, channels-1) + 1
		}
		return out, true
	}
	return out, false
}

func clampBands(b [3]int, channels int) [3]int {
	for i := range b {
		b[i] = clamp(b[i], 1, channels)
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
