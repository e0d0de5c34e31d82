package types

import "fmt"

type Quality int

const (
	QualityNormal Quality = iota
	QualityHigh
	QualityLossless
)

func (q Quality) String() string {
	switch q {
	case QualityNormal:
		return "normal"
	case QualityHigh:
		return "high"
	case QualityLossless:
		return "lossless"
	}

	return "unknown"
}

func ParseQuality(s string) (Quality, error) {
	switch s {
	case "normal", "nq":
		return QualityNormal, nil
	case "high", "hq":
		return QualityHigh, nil
	case "lossless":
		return QualityLossless, nil
	default:
		return 0, fmt.Errorf("unknown quality tier %q", s)
	}
}
