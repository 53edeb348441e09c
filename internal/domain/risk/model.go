package risk

// Reading is one raw sensor observation about a food-supply item. Values
// arrive unvalidated and may be physically implausible; scoring clamps the
// derived danger values, never the inputs.
type Reading struct {
	Temperature    float64 `json:"temp"`
	Humidity       float64 `json:"humidity"`
	PH             float64 `json:"pH"`
	BacterialCount float64 `json:"bacterialCount"`
}

// Category buckets an overall risk score.
type Category string

const (
	CategoryLow    Category = "Low"
	CategoryMedium Category = "Medium"
	CategoryHigh   Category = "High"
)

// Assessment is the scorer's verdict on a single reading.
type Assessment struct {
	Score    float64            `json:"score"`
	Category Category           `json:"category"`
	Reasons  []string           `json:"reasons"`
	Raw      map[string]float64 `json:"raw"`
}
