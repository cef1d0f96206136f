package dtrack

import "strings"

// Severity is the closed set of severity levels Dependency-Track assigns to
// a vulnerability. Values outside the set parse to SeverityUnknown; callers
// that need the original spelling keep the raw string alongside.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityInfo
	SeverityUnassigned
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// ParseSeverity maps an API severity string to its enum value. Matching is
// case-insensitive; unrecognized input yields SeverityUnknown and ok=false.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToUpper(s) {
	case "CRITICAL":
		return SeverityCritical, true
	case "HIGH":
		return SeverityHigh, true
	case "MEDIUM":
		return SeverityMedium, true
	case "LOW":
		return SeverityLow, true
	case "UNASSIGNED":
		return SeverityUnassigned, true
	case "INFO":
		return SeverityInfo, true
	default:
		return SeverityUnknown, false
	}
}

// String returns the canonical upper-case label, or "UNKNOWN" for values
// outside the closed set.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	case SeverityUnassigned:
		return "UNASSIGNED"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Glyph returns the colored marker used in text reports.
func (s Severity) Glyph() string {
	switch s {
	case SeverityCritical:
		return "🔴"
	case SeverityHigh:
		return "🟠"
	case SeverityMedium:
		return "🟡"
	case SeverityLow:
		return "🟢"
	case SeverityInfo:
		return "🔵"
	default:
		return "⚪"
	}
}

// FormatSeverity renders a raw API severity string as "glyph LABEL". Input
// is upper-cased before lookup; unrecognized values pass through verbatim so
// new platform severities are never hidden.
func FormatSeverity(raw string) string {
	sev, ok := ParseSeverity(raw)
	if !ok {
		return raw
	}
	return sev.Glyph() + " " + sev.String()
}

// Tally counts vulnerabilities per actionable severity. UNASSIGNED, INFO and
// unknown severities are deliberately excluded, matching the report summary.
type Tally struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Add counts one vulnerability of the given severity. Non-actionable
// severities are ignored.
func (t *Tally) Add(s Severity) {
	switch s {
	case SeverityCritical:
		t.Critical++
	case SeverityHigh:
		t.High++
	case SeverityMedium:
		t.Medium++
	case SeverityLow:
		t.Low++
	}
}

// Merge folds another tally into this one.
func (t *Tally) Merge(other Tally) {
	t.Critical += other.Critical
	t.High += other.High
	t.Medium += other.Medium
	t.Low += other.Low
}

// Total is the sum across the four actionable severities.
func (t Tally) Total() int {
	return t.Critical + t.High + t.Medium + t.Low
}

// IsZero reports whether no actionable vulnerability was counted.
func (t Tally) IsZero() bool {
	return t.Total() == 0
}
