package handlers

import (
	"fmt"
	"html/template"

	"aqi-predictor/internal/models"
	"aqi-predictor/internal/services"
)

// formField is one bounded numeric input on the prediction form
type formField struct {
	models.FieldBounds
	Value float64
}

// pageData feeds the index and result pages
type pageData struct {
	Fields []formField
	Result *services.PredictionResult
	Error  string
}

func newPageData(reading models.PollutantReading) pageData {
	bounds := models.Bounds()
	fields := make([]formField, len(bounds))
	for i, b := range bounds {
		v, _ := reading.Value(b.Field)
		fields[i] = formField{FieldBounds: b, Value: v}
	}
	return pageData{Fields: fields}
}

var pageFuncs = template.FuncMap{
	"percent": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f*100)
	},
	"stepWidth": func(from, to, max int) string {
		return fmt.Sprintf("%.1f%%", float64(to-from+1)/float64(max+1)*100)
	},
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>AQI Predictor</title>
    <style>
        body { background: radial-gradient(circle at top, #0f2027 0%, #000000 65%); color: white; font-family: sans-serif; max-width: 760px; margin: 0 auto; padding: 24px; }
        .title { font-size: 44px; font-weight: 900; text-align: center; color: #00f5ff; }
        .subtitle { text-align: center; color: #9ee7ff; margin-bottom: 30px; }
        .glass { background: rgba(255,255,255,0.12); border-radius: 22px; padding: 25px; border: 1px solid rgba(255,255,255,0.18); margin-bottom: 30px; }
        .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; }
        label { display: block; margin-bottom: 4px; }
        input { width: 100%; padding: 8px; border-radius: 8px; border: none; }
        button { width: 100%; height: 55px; border-radius: 16px; font-size: 18px; font-weight: 800; background: #00c6ff; border: none; margin-top: 20px; }
        .aqi-box { background: #0072ff; padding: 30px; border-radius: 24px; text-align: center; font-size: 32px; font-weight: 900; }
        .gauge { display: flex; height: 24px; border-radius: 12px; overflow: hidden; position: relative; }
        .needle { position: absolute; top: -4px; width: 4px; height: 32px; background: #00ffff; }
        .bar-row { display: flex; align-items: center; margin: 8px 0; }
        .bar-label { width: 70px; }
        .bar { height: 20px; background: #00ffcc; border-radius: 6px; }
        .error { border-left: 6px solid #ff4d4d; }
    </style>
</head>
<body>
    <div class="title">AQI Prediction System</div>
    <div class="subtitle">ML-Based Air Quality Intelligence</div>

    <form class="glass" method="POST" action="/predict">
        <h3>Pollutant Inputs (µg/m³)</h3>
        <div class="grid">
        {{range .Fields}}
            <div>
                <label for="{{.Field}}">{{.Label}}</label>
                <input id="{{.Field}}" name="{{.Field}}" type="number" step="any" min="{{.Min}}" max="{{.Max}}" value="{{.Value}}" required>
            </div>
        {{end}}
        </div>
        <button type="submit">Predict AQI</button>
    </form>

    {{with .Error}}
    <div class="glass error">
        <h3>Prediction failed</h3>
        <p>{{.}}</p>
    </div>
    {{end}}

    {{with .Result}}
    <div class="glass">
        <div class="aqi-box">Predicted AQI: {{.AQI}}</div>
    </div>

    <div class="glass" style="border-left: 6px solid {{.Advisory.Color}};">
        <h3 style="color: {{.Advisory.Color}};">Health Advisory</h3>
        <h4 data-color-token="{{.Advisory.ColorToken}}">{{.Advisory.Icon}} {{.Advisory.Label}}</h4>
        <ul>
        {{range .Advisory.Points}}<li>{{.}}</li>
        {{end}}
        </ul>
    </div>

    <div class="glass">
        <h3>AQI Severity Gauge</h3>
        {{$max := .Gauge.Max}}
        <div class="gauge">
            {{range .Gauge.Steps}}<div style="width: {{stepWidth .From .To $max}}; background: {{.Color}};"></div>{{end}}
            <div class="needle" style="left: {{percent .Gauge.Position}};"></div>
        </div>
    </div>

    <div class="glass">
        <h3>Pollutant Concentration Levels</h3>
        {{range .Bars}}
        <div class="bar-row">
            <span class="bar-label">{{.Label}}</span>
            <div class="bar" style="width: {{percent .Fraction}};"></div>
            <span>&nbsp;{{.Value}}</span>
        </div>
        {{end}}
    </div>
    {{end}}

    <center style="color: #7dd3fc;">ML Project • AQI Analytics</center>
</body>
</html>`))
