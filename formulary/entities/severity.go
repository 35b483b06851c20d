package entities

// Severity is the risk tier attached to an interaction. The five tiers are
// ordered: BLACK_FLAG > RED_FLAG > ORANGE_FLAG > YELLOW_FLAG > GREEN_FLAG.
type Severity string

const (
	BlackFlag  Severity = "BLACK_FLAG"  // contraindicated / deadly
	RedFlag    Severity = "RED_FLAG"    // dangerous
	OrangeFlag Severity = "ORANGE_FLAG" // major warning
	YellowFlag Severity = "YELLOW_FLAG" // moderate warning
	GreenFlag  Severity = "GREEN_FLAG"  // safe / informational
)

// severityRanks orders the tiers for precedence comparisons. Higher is worse.
var severityRanks = map[Severity]int{
	BlackFlag:  5,
	RedFlag:    4,
	OrangeFlag: 3,
	YellowFlag: 2,
	GreenFlag:  1,
}

// Rank returns the precedence of the severity, 0 for unknown tags.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// Valid reports whether s is one of the five known tiers.
func (s Severity) Valid() bool {
	return severityRanks[s] != 0
}
