// Package advisory maps AQI values to severity labels and health guidance.
//
// Classification is table driven: bands are checked in ascending order of
// their inclusive upper bound and the first match wins. The last band has no
// upper bound, so every non-negative AQI lands somewhere.
package advisory

import (
	"math"

	"aqi-predictor/internal/models"
)

// Category identifies an advisory band
type Category string

const (
	CategoryExcellent  Category = "excellent"
	CategoryAcceptable Category = "acceptable"
	CategoryModerate   Category = "moderate"
	CategoryPoor       Category = "poor"
	CategorySevere     Category = "severe"
)

// Color tokens understood by the rendering surface
const (
	ColorGreen     = "green"
	ColorLightBlue = "light-blue"
	ColorYellow    = "yellow"
	ColorOrange    = "orange"
	ColorRed       = "red"
)

// Unbounded marks the open upper end of the most severe band
const Unbounded = math.MaxInt

// Band is one row of the classification table
type Band struct {
	Category   Category `json:"category"`
	Min        int      `json:"min"`
	Max        int      `json:"max"`
	Label      string   `json:"label"`
	ColorToken string   `json:"color_token"`
	Color      string   `json:"color"`
	Icon       string   `json:"icon"`
	Points     []string `json:"points"`
}

// Result is the advisory rendered for one prediction
type Result struct {
	Category   Category `json:"category"`
	Label      string   `json:"label"`
	Points     []string `json:"points"`
	ColorToken string   `json:"color_token"`
	Color      string   `json:"color"`
	Icon       string   `json:"icon"`
}

var bands = []Band{
	{
		Category:   CategoryExcellent,
		Min:        0,
		Max:        50,
		Label:      "Excellent Air Quality",
		ColorToken: ColorGreen,
		Color:      "#00ff87",
		Icon:       "✅",
		Points: []string{
			"Safe for everyone",
			"Ideal for outdoor exercise",
			"Safe for children & elderly",
		},
	},
	{
		Category:   CategoryAcceptable,
		Min:        51,
		Max:        100,
		Label:      "Acceptable Air Quality",
		ColorToken: ColorLightBlue,
		Color:      "#7dd3fc",
		Icon:       "🙂",
		Points: []string{
			"Mild discomfort for sensitive groups",
			"Asthma patients should monitor symptoms",
			"Outdoor activity allowed with breaks",
		},
	},
	{
		Category:   CategoryModerate,
		Min:        101,
		Max:        200,
		Label:      "Moderate Pollution",
		ColorToken: ColorYellow,
		Color:      "#ffd166",
		Icon:       "😐",
		Points: []string{
			"Children & elderly should stay indoors",
			"Wear masks outdoors",
			"Avoid heavy exercise",
		},
	},
	{
		Category:   CategoryPoor,
		Min:        201,
		Max:        300,
		Label:      "Poor Air Quality",
		ColorToken: ColorOrange,
		Color:      "#ff9f1c",
		Icon:       "🚨",
		Points: []string{
			"Avoid outdoor activities",
			"Masks mandatory",
			"Use air purifiers",
			"Outdoor work not recommended",
		},
	},
	{
		Category:   CategorySevere,
		Min:        301,
		Max:        Unbounded,
		Label:      "Severe Air Emergency",
		ColorToken: ColorRed,
		Color:      "#ff4d4d",
		Icon:       "☠️",
		Points: []string{
			"Everyone must stay indoors",
			"High risk for heart & lung patients",
			"No outdoor exposure",
			"Follow government health advisories",
		},
	},
}

// Classify returns the advisory for an AQI value.
// Boundary values belong to the lower band; anything above 300 is severe.
func Classify(aqi models.AQIPrediction) Result {
	band := bandFor(int(aqi))

	points := make([]string, len(band.Points))
	copy(points, band.Points)

	return Result{
		Category:   band.Category,
		Label:      band.Label,
		Points:     points,
		ColorToken: band.ColorToken,
		Color:      band.Color,
		Icon:       band.Icon,
	}
}

func bandFor(aqi int) Band {
	for _, b := range bands {
		if aqi <= b.Max {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Bands returns a copy of the classification table in ascending order
func Bands() []Band {
	out := make([]Band, len(bands))
	for i, b := range bands {
		out[i] = b
		out[i].Points = append([]string(nil), b.Points...)
	}
	return out
}
