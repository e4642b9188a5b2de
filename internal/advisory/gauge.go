package advisory

import "aqi-predictor/internal/models"

// GaugeMax is the top of the severity gauge axis
const GaugeMax = 500

// GaugeStep is a colored segment of the severity gauge
type GaugeStep struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Color string `json:"color"`
}

var gaugeSteps = []GaugeStep{
	{From: 0, To: 50, Color: "#00e400"},
	{From: 51, To: 100, Color: "#ffff00"},
	{From: 101, To: 200, Color: "#ff7e00"},
	{From: 201, To: 300, Color: "#ff0000"},
	{From: 301, To: GaugeMax, Color: "#7e0023"},
}

// GaugeSteps returns the gauge segments from low to high severity
func GaugeSteps() []GaugeStep {
	out := make([]GaugeStep, len(gaugeSteps))
	copy(out, gaugeSteps)
	return out
}

// GaugePosition returns the needle position as a fraction of the axis.
// Values past GaugeMax pin the needle at 1.
func GaugePosition(aqi models.AQIPrediction) float64 {
	v := int(aqi)
	if v <= 0 {
		return 0
	}
	if v >= GaugeMax {
		return 1
	}
	return float64(v) / GaugeMax
}

// Bounded reports whether the band has a finite upper bound
func (b Band) Bounded() bool {
	return b.Max != Unbounded
}
