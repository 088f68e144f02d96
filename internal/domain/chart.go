package domain

// ColorToken names a color in the dashboard theme. Renderers map tokens to
// concrete colors.
type ColorToken string

const (
	ColorRed300    ColorToken = "red300"
	ColorOrange300 ColorToken = "orange300"
	ColorYellow300 ColorToken = "yellow300"
	ColorGrey300   ColorToken = "grey300"
	ColorGrey100   ColorToken = "grey100"
	ColorBlue200   ColorToken = "blue200"
)

const (
	ChartTitle        = "Total Policies"
	ChartSummaryColor = ColorBlue200
)

// SeverityColor is the fixed severity-to-color table.
func SeverityColor(sev Severity) ColorToken {
	switch sev {
	case SeverityCritical:
		return ColorRed300
	case SeverityHigh:
		return ColorOrange300
	case SeverityMedium:
		return ColorYellow300
	case SeverityLow:
		return ColorGrey300
	default:
		return ColorGrey100
	}
}

// SeverityDisplayEntry is one bar of the policies-by-severity chart.
type SeverityDisplayEntry struct {
	Severity Severity   `json:"severity"`
	Label    string     `json:"label"`
	Value    int        `json:"value"`
	Color    ColorToken `json:"color"`
}

// SeverityChart is the display model handed to a renderer: a summary total
// plus one entry per severity in fixed order.
type SeverityChart struct {
	Title        string                 `json:"title"`
	Total        int                    `json:"total"`
	SummaryColor ColorToken             `json:"summary_color"`
	Entries      []SeverityDisplayEntry `json:"entries"`
}

// Max returns the largest entry value, or 0 for an empty chart.
func (c SeverityChart) Max() int {
	m := 0
	for _, e := range c.Entries {
		if e.Value > m {
			m = e.Value
		}
	}
	return m
}

// Value returns the entry value for sev.
func (c SeverityChart) Value(sev Severity) int {
	for _, e := range c.Entries {
		if e.Severity == sev {
			return e.Value
		}
	}
	return 0
}
