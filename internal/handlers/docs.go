package handlers

import (
	"encoding/json"
	"net/http"

	"aqi-predictor/internal/models"
)

func pollutantSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(models.FeatureNames))
	for _, b := range models.Bounds() {
		properties[b.Field] = map[string]interface{}{
			"type":        "number",
			"minimum":     b.Min,
			"maximum":     b.Max,
			"default":     b.Default,
			"description": b.Label + " concentration in µg/m³; clamped into range",
		}
	}

	return map[string]interface{}{
		"type":                 "object",
		"required":             models.FeatureNames,
		"properties":           properties,
		"additionalProperties": false,
	}
}

func jsonResponse(description, schemaRef string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]string{"$ref": schemaRef},
			},
		},
	}
}

// OpenAPISpec returns the OpenAPI 3.0 specification for the AQI Predictor API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	errorRef := "#/components/schemas/Error"

	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "AQI Predictor API",
			"description": "Predicts an Air Quality Index from PM2.5, PM10, NO₂ and SO₂ readings and returns health guidance",
			"version":     "1.0.0",
		},
		"servers": []map[string]string{
			{"url": "http://127.0.0.1:8501", "description": "Local interactive server"},
		},
		"paths": map[string]interface{}{
			"/api/predict": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Predict AQI",
					"description": "Scores the four pollutant readings with the loaded model and classifies the result",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]string{"$ref": "#/components/schemas/PollutantReading"},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Prediction with advisory, gauge and chart data"},
						"400": jsonResponse("Body is not a JSON object of numbers", errorRef),
						"422": jsonResponse("Feature set does not match the model schema", errorRef),
						"500": jsonResponse("Internal server error", errorRef),
					},
				},
			},
			"/api/advisory": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Classify an AQI value",
					"parameters": []map[string]interface{}{
						{
							"name":        "aqi",
							"in":          "query",
							"description": "Non-negative integer AQI",
							"required":    true,
							"schema":      map[string]interface{}{"type": "integer", "minimum": 0},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Advisory label, guidance points and color token"},
						"400": jsonResponse("Invalid aqi parameter", errorRef),
					},
				},
			},
			"/api/bands": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "List advisory bands",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Bands in ascending severity; max is null for the open-ended band"},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Health check",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{"description": "Service is healthy"},
					},
				},
			},
		},
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"PollutantReading": pollutantSchema(),
				"Error": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"error":   map[string]string{"type": "string"},
						"message": map[string]string{"type": "string"},
						"code":    map[string]string{"type": "integer"},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
