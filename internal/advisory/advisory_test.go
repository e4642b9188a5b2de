package advisory

import (
	"reflect"
	"testing"

	"aqi-predictor/internal/models"
)

func TestClassify_Ranges(t *testing.T) {
	tests := []struct {
		name       string
		from, to   int
		wantLabel  string
		wantColor  string
		wantPoints int
	}{
		{"excellent", 0, 50, "Excellent Air Quality", ColorGreen, 3},
		{"acceptable", 51, 100, "Acceptable Air Quality", ColorLightBlue, 3},
		{"moderate", 101, 200, "Moderate Pollution", ColorYellow, 3},
		{"poor", 201, 300, "Poor Air Quality", ColorOrange, 4},
		{"severe", 301, 1500, "Severe Air Emergency", ColorRed, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for aqi := tt.from; aqi <= tt.to; aqi++ {
				got := Classify(models.AQIPrediction(aqi))
				if got.Label != tt.wantLabel {
					t.Fatalf("Classify(%d).Label = %q, want %q", aqi, got.Label, tt.wantLabel)
				}
				if got.ColorToken != tt.wantColor {
					t.Fatalf("Classify(%d).ColorToken = %q, want %q", aqi, got.ColorToken, tt.wantColor)
				}
				if len(got.Points) != tt.wantPoints {
					t.Fatalf("Classify(%d) has %d points, want %d", aqi, len(got.Points), tt.wantPoints)
				}
			}
		})
	}
}

func TestClassify_VeryLargeValues(t *testing.T) {
	for _, aqi := range []int{10000, 1 << 30, Unbounded} {
		if got := Classify(models.AQIPrediction(aqi)); got.Category != CategorySevere {
			t.Errorf("Classify(%d).Category = %s, want severe", aqi, got.Category)
		}
	}
}

func TestClassify_BoundariesBelongToLowerBand(t *testing.T) {
	for _, boundary := range []int{50, 100, 200, 300} {
		lower := Classify(models.AQIPrediction(boundary))
		upper := Classify(models.AQIPrediction(boundary + 1))
		if lower.Label == upper.Label {
			t.Errorf("Classify(%d) and Classify(%d) share label %q", boundary, boundary+1, lower.Label)
		}
		if bandFor(boundary).Max != boundary {
			t.Errorf("boundary %d should be the inclusive upper bound of its band", boundary)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for _, aqi := range []int{0, 50, 51, 150, 250, 305} {
		first := Classify(models.AQIPrediction(aqi))
		second := Classify(models.AQIPrediction(aqi))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Classify(%d) not deterministic: %+v vs %+v", aqi, first, second)
		}
	}
}

func TestClassify_ResultIsIndependentOfTable(t *testing.T) {
	first := Classify(10)
	first.Points[0] = "mutated"

	if got := Classify(10).Points[0]; got != "Safe for everyone" {
		t.Errorf("Points[0] = %q after mutating a previous result", got)
	}
}

func TestBands(t *testing.T) {
	got := Bands()
	if len(got) != 5 {
		t.Fatalf("len(Bands()) = %d, want 5", len(got))
	}

	for i := 1; i < len(got); i++ {
		if got[i].Min != got[i-1].Max+1 {
			t.Errorf("band %s does not start right after %s", got[i].Category, got[i-1].Category)
		}
	}
	if got[len(got)-1].Bounded() {
		t.Error("most severe band should be unbounded")
	}
	if !got[0].Bounded() {
		t.Error("excellent band should be bounded")
	}

	got[0].Points[0] = "mutated"
	if Bands()[0].Points[0] == "mutated" {
		t.Error("Bands() should deep copy guidance points")
	}
}

func TestGaugePosition(t *testing.T) {
	tests := []struct {
		aqi  int
		want float64
	}{
		{0, 0},
		{250, 0.5},
		{500, 1},
		{1200, 1},
	}

	for _, tt := range tests {
		if got := GaugePosition(models.AQIPrediction(tt.aqi)); got != tt.want {
			t.Errorf("GaugePosition(%d) = %v, want %v", tt.aqi, got, tt.want)
		}
	}
}

func TestGaugeSteps(t *testing.T) {
	steps := GaugeSteps()
	if len(steps) != 5 {
		t.Fatalf("len(GaugeSteps()) = %d, want 5", len(steps))
	}
	if steps[0].From != 0 || steps[len(steps)-1].To != GaugeMax {
		t.Errorf("gauge should span 0..%d, got %d..%d", GaugeMax, steps[0].From, steps[len(steps)-1].To)
	}
}
