package board

import "fmt"

// Score is a signed move or position score in centipawns. Positive favors White. 16 bits.
type Score int16

const (
	MinScore Score = -32000
	MaxScore Score = 32000

	// MateScore is the base magnitude for a forced-mate score. A mate found in N plies
	// from the reporting node is encoded as MateScore-N (losing side: -(MateScore-N)), so
	// shallower mates always compare as more extreme than deeper ones.
	MateScore Score = 31000
	// MateThreshold marks the boundary above which a score represents some mate distance,
	// as opposed to a purely material/positional evaluation.
	MateThreshold Score = MateScore - 1000
)

// IsMateScore reports whether s encodes a forced mate (for either side).
func (s Score) IsMateScore() bool {
	return s > MateThreshold || s < -MateThreshold
}

func (s Score) Negate() Score {
	return -s
}

func (s Score) String() string {
	if s.IsMateScore() {
		if s > 0 {
			return fmt.Sprintf("#%v", (MateScore-s+1)/2)
		}
		return fmt.Sprintf("#-%v", (MateScore+s+1)/2)
	}
	return fmt.Sprintf("%.2f", float64(s)/100)
}
