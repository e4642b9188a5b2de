package main

import (
	"bytes"
	"strings"
	"testing"

	"aqi-predictor/internal/advisory"
	"aqi-predictor/internal/models"
	"aqi-predictor/internal/services"
)

func TestPrintResult(t *testing.T) {
	reading := models.PollutantReading{PM25: 250, PM10: 300, NO2: 40, SO2: 15}
	result := &services.PredictionResult{
		Reading:  reading,
		AQI:      92,
		Advisory: advisory.Classify(92),
		Bars:     services.BuildBars(reading),
	}

	var buf bytes.Buffer
	printResult(&buf, result)
	out := buf.String()

	for _, want := range []string{
		"PREDICTED AQI: 92",
		"Acceptable Air Quality (light-blue)",
		"  - Asthma patients should monitor symptoms",
		"PM2.5  " + strings.Repeat("#", 20),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
