package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"aqi-predictor/internal/config"
	"aqi-predictor/internal/inference"
	"aqi-predictor/internal/models"
	"aqi-predictor/internal/services"
	"aqi-predictor/pkg/logging"
	"aqi-predictor/pkg/metrics"
)

func main() {
	defaults := models.DefaultReading()

	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	modelPath := flag.String("model", "", "Model artifact path (overrides config)")
	pm25 := flag.Float64("pm25", defaults.PM25, "PM2.5 concentration in µg/m³ [0, 500]")
	pm10 := flag.Float64("pm10", defaults.PM10, "PM10 concentration in µg/m³ [0, 600]")
	no2 := flag.Float64("no2", defaults.NO2, "NO₂ concentration in µg/m³ [0, 300]")
	so2 := flag.Float64("so2", defaults.SO2, "SO₂ concentration in µg/m³ [0, 200]")
	asJSON := flag.Bool("json", false, "Print the result as JSON")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout stays machine readable with -json
	logger := logging.NewStructuredLogger("aqi-predict", "1.0.0", logging.ParseLevel(cfg.Logging.Level))
	logger.SetOutput(os.Stderr)

	ctx := context.Background()
	metricsCollector := metrics.NewCollector("aqi_predict", prometheus.NewRegistry())

	model, err := services.LoadModel(ctx, cfg.Model.Path, logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[PREDICT_CLI_ERROR] Model artifact is missing or corrupt", logging.Fields{
			"model_path": cfg.Model.Path,
		}, err)
	}

	adapter, err := inference.NewAdapter(model)
	if err != nil {
		logger.Fatal(ctx, "[PREDICT_CLI_ERROR] Model features do not match pollutant schema", logging.Fields{}, err)
	}

	reading, clamped := models.PollutantReading{PM25: *pm25, PM10: *pm10, NO2: *no2, SO2: *so2}.Clamp()
	if len(clamped) > 0 {
		logger.Warn(ctx, "[PREDICT_CLI_CLAMPED] Inputs pulled into valid range", logging.Fields{
			"fields": clamped,
		})
	}

	service := services.NewPredictionService(adapter, logger, metricsCollector)
	result, err := service.Predict(ctx, reading)
	if err != nil {
		logger.Error(ctx, "[PREDICT_CLI_ERROR] Prediction failed", logging.Fields{}, err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
			os.Exit(1)
		}
		return
	}
	printResult(os.Stdout, result)
}

func printResult(w io.Writer, result *services.PredictionResult) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "PREDICTED AQI: %d\n", result.AQI.Int())
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "%s %s (%s)\n", result.Advisory.Icon, result.Advisory.Label, result.Advisory.ColorToken)
	for _, point := range result.Advisory.Points {
		fmt.Fprintf(w, "  - %s\n", point)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pollutant Concentration Levels")
	for _, bar := range result.Bars {
		width := int(bar.Fraction * 40)
		fmt.Fprintf(w, "  %-6s %-40s %7.1f\n", bar.Label, strings.Repeat("#", width), bar.Value)
	}
}
