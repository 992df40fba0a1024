package models

// MatchStatus classifies a joined genotype/reference row.
type MatchStatus string

const (
	// StatusConfirmedRisk means the resolved risk allele is present in the
	// personal genotype at the matched position.
	StatusConfirmedRisk MatchStatus = "confirmed_risk"
	// StatusPositionMismatch means the position matched but the genotype does
	// not carry the risk allele.
	StatusPositionMismatch MatchStatus = "position_mismatch"
)

// Zygosity describes how many copies of the risk allele are carried.
type Zygosity string

const (
	ZygosityHomozygous        Zygosity = "homozygous"
	ZygosityHeterozygous      Zygosity = "heterozygous"
	ZygosityHemizygousOrOther Zygosity = "hemizygous_or_other"
	ZygosityUnknown           Zygosity = "unknown"
)

// Label returns a human-readable form for reports.
func (z Zygosity) Label() string {
	switch z {
	case ZygosityHomozygous:
		return "Homozygous (2 copies)"
	case ZygosityHeterozygous:
		return "Heterozygous (1 copy / carrier)"
	case ZygosityHemizygousOrOther:
		return "Hemizygous/Other"
	default:
		return "Unknown"
	}
}

// Label returns a human-readable form for reports.
func (s MatchStatus) Label() string {
	switch s {
	case StatusConfirmedRisk:
		return "Confirmed Risk"
	case StatusPositionMismatch:
		return "Position Match (Allele Mismatch)"
	default:
		return string(s)
	}
}

// SortRank orders confirmed risks ahead of positional mismatches.
func (s MatchStatus) SortRank() int {
	if s == StatusConfirmedRisk {
		return 0
	}
	return 1
}
