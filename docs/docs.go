// Package docs is generated by swag from the handler annotations in cmd/api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/ping": {
            "get": {
                "description": "Check if the API is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Ping health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.PingResponse"}}
                }
            }
        },
        "/routes/plan": {
            "post": {
                "description": "Forecast weather along a route at the estimated arrival times and score the wind",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["routes"],
                "summary": "Plan a ride",
                "parameters": [
                    {"description": "Route and ride parameters", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.PlanRouteInput"}},
                    {"enum": ["json", "geojson"], "type": "string", "description": "Response format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/planning.Plan"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/routes/tailwind": {
            "post": {
                "description": "Average along-track wind component over a few points of the route, in km/h",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["routes"],
                "summary": "Score the wind along a route",
                "parameters": [
                    {"description": "Route and ride parameters", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.TailwindInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.TailwindResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/routes/round-trip": {
            "post": {
                "description": "Generate loop candidates around a center, rank them by tailwind and plan the best one",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["routes"],
                "summary": "Generate a loop with the best wind",
                "parameters": [
                    {"description": "Loop parameters", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.RoundTripInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.RoundTripResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/activities/analyze": {
            "post": {
                "description": "Distance, elevation and speed metrics, plus the wind and weather at the recorded times when the ride has timestamps",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "Analyze a recorded ride",
                "parameters": [
                    {"description": "Recorded points", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.AnalyzeActivityInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/activity.Analysis"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/locations/search": {
            "get": {
                "description": "Find places by name, for example to pick waypoints or the center of a loop",
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Search places",
                "parameters": [
                    {"type": "string", "example": "Nijmegen", "description": "Place name", "name": "q", "in": "query", "required": true},
                    {"maximum": 10, "minimum": 1, "type": "integer", "default": 5, "description": "Maximum number of matches", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/location.Place"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/locations/reverse": {
            "get": {
                "description": "Retrieve the place at a latitude and longitude",
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Name a coordinate",
                "parameters": [
                    {"maximum": 90, "minimum": -90, "type": "number", "example": 51.8425, "description": "Latitude in decimal degrees", "name": "lat", "in": "query", "required": true},
                    {"maximum": 180, "minimum": -180, "type": "number", "example": 5.8528, "description": "Longitude in decimal degrees", "name": "lng", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/location.Place"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/preferences": {
            "get": {
                "produces": ["application/json"],
                "tags": ["preferences"],
                "summary": "Get preferences",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/preferences.Preferences"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Known keys are avgSpeedKmh, weatherPoints and roundTripLengthKm. Values must be positive.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["preferences"],
                "summary": "Update a preference",
                "parameters": [
                    {"description": "Preference to update", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.SetPreferenceInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/preferences.Preferences"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "geo.Point": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lng": {"type": "number"}
            }
        },
        "geo.TimedPoint": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "elevation": {"type": "number"},
                "time": {"type": "string"}
            }
        },
        "geo.ElevationStats": {
            "type": "object",
            "properties": {
                "hasElevation": {"type": "boolean"},
                "ascent": {"type": "number"},
                "descent": {"type": "number"},
                "min": {"type": "number"},
                "max": {"type": "number"}
            }
        },
        "types.Wind": {
            "type": "object",
            "properties": {
                "speed": {"type": "object", "properties": {"metersPerSecond": {"type": "number"}, "kph": {"type": "number"}}},
                "direction": {"type": "object", "properties": {"degrees": {"type": "number"}, "cardinal": {"type": "string"}}}
            }
        },
        "weather.Sample": {
            "type": "object",
            "properties": {
                "time": {"type": "string"},
                "wind": {"$ref": "#/definitions/types.Wind"},
                "temperature": {"type": "object", "properties": {"celsius": {"type": "number"}, "fahrenheit": {"type": "number"}}},
                "precipitation": {"type": "object", "properties": {"mm": {"type": "number"}, "inches": {"type": "number"}}},
                "humidity": {"type": "number"},
                "conditions": {"type": "object", "properties": {"code": {"type": "integer"}, "main": {"type": "string"}, "description": {"type": "string"}}}
            }
        },
        "location.Place": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "displayName": {"type": "string"},
                "point": {"$ref": "#/definitions/geo.Point"},
                "locality": {"type": "string"},
                "state": {"type": "string"},
                "country": {"type": "string"},
                "countryCode": {"type": "string"}
            }
        },
        "main.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "one of points, geojson, waypoints or places is required"}
            }
        },
        "main.PingResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "pong"}
            }
        },
        "main.PlanRouteInput": {
            "type": "object",
            "properties": {
                "points": {"type": "array", "items": {"$ref": "#/definitions/geo.TimedPoint"}},
                "geojson": {"type": "object"},
                "waypoints": {"type": "array", "items": {"$ref": "#/definitions/geo.Point"}},
                "places": {"type": "array", "items": {"type": "string"}, "example": ["Nijmegen", "Arnhem"]},
                "start": {"type": "string", "example": "2024-06-01T08:00:00Z"},
                "avgSpeedKmh": {"type": "number", "example": 22},
                "weatherPoints": {"type": "integer", "maximum": 50, "example": 10}
            }
        },
        "main.TailwindInput": {
            "type": "object",
            "properties": {
                "points": {"type": "array", "items": {"$ref": "#/definitions/geo.TimedPoint"}},
                "geojson": {"type": "object"},
                "waypoints": {"type": "array", "items": {"$ref": "#/definitions/geo.Point"}},
                "places": {"type": "array", "items": {"type": "string"}, "example": ["Nijmegen", "Arnhem"]},
                "start": {"type": "string", "example": "2024-06-01T08:00:00Z"},
                "avgSpeedKmh": {"type": "number", "example": 22}
            }
        },
        "main.TailwindResponse": {
            "type": "object",
            "properties": {
                "tailwindKmh": {"type": "number", "example": 4.2},
                "policy": {"type": "string", "example": "planned"}
            }
        },
        "main.RoundTripInput": {
            "type": "object",
            "properties": {
                "center": {"$ref": "#/definitions/geo.Point"},
                "location": {"type": "string", "example": "Nijmegen"},
                "lengthKm": {"type": "number", "maximum": 300, "example": 50},
                "start": {"type": "string", "example": "2024-06-01T08:00:00Z"},
                "avgSpeedKmh": {"type": "number", "example": 22},
                "candidates": {"type": "integer", "maximum": 10, "example": 3},
                "weatherPoints": {"type": "integer", "maximum": 50, "example": 10}
            }
        },
        "main.RoundTripCandidate": {
            "type": "object",
            "properties": {
                "seed": {"type": "integer"},
                "distanceKm": {"type": "number"},
                "tailwindKmh": {"type": "number"}
            }
        },
        "main.RoundTripResponse": {
            "type": "object",
            "properties": {
                "plan": {"$ref": "#/definitions/planning.Plan"},
                "candidates": {"type": "array", "items": {"$ref": "#/definitions/main.RoundTripCandidate"}}
            }
        },
        "main.AnalyzeActivityInput": {
            "type": "object",
            "required": ["points"],
            "properties": {
                "points": {"type": "array", "items": {"$ref": "#/definitions/geo.TimedPoint"}}
            }
        },
        "main.SetPreferenceInput": {
            "type": "object",
            "required": ["key", "value"],
            "properties": {
                "key": {"type": "string", "example": "avgSpeedKmh"},
                "value": {"type": "number", "example": 25}
            }
        },
        "planning.Marker": {
            "type": "object",
            "properties": {
                "point": {"$ref": "#/definitions/geo.Point"},
                "distanceKm": {"type": "number"},
                "estimatedArrival": {"type": "string"},
                "status": {"type": "string", "enum": ["ok", "time_mismatch", "unavailable"]},
                "message": {"type": "string"},
                "forecast": {"$ref": "#/definitions/weather.Sample"},
                "precipitationType": {"type": "string"}
            }
        },
        "planning.Plan": {
            "type": "object",
            "properties": {
                "route": {"type": "array", "items": {"$ref": "#/definitions/geo.TimedPoint"}},
                "distanceKm": {"type": "number"},
                "avgSpeedKmh": {"type": "number"},
                "start": {"type": "string"},
                "estimatedEnd": {"type": "string"},
                "estimatedDurationMinutes": {"type": "number"},
                "elevation": {"$ref": "#/definitions/geo.ElevationStats"},
                "markers": {"type": "array", "items": {"$ref": "#/definitions/planning.Marker"}},
                "failedWeatherPoints": {"type": "integer"},
                "tailwindKmh": {"type": "number"}
            }
        },
        "activity.Metrics": {
            "type": "object",
            "properties": {
                "distanceKm": {"type": "number"},
                "elevation": {"$ref": "#/definitions/geo.ElevationStats"},
                "highestPoint": {"$ref": "#/definitions/geo.TimedPoint"},
                "movingTimeSeconds": {"type": "number"},
                "maxSpeedKmh": {"type": "number"},
                "fastestPoint": {"$ref": "#/definitions/geo.TimedPoint"},
                "avgSpeedKmh": {"type": "number"},
                "hasTimestamps": {"type": "boolean"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            }
        },
        "activity.WeatherMarker": {
            "type": "object",
            "properties": {
                "point": {"$ref": "#/definitions/geo.Point"},
                "time": {"type": "string"},
                "distanceKm": {"type": "number"},
                "weather": {"$ref": "#/definitions/weather.Sample"}
            }
        },
        "activity.Analysis": {
            "type": "object",
            "properties": {
                "metrics": {"$ref": "#/definitions/activity.Metrics"},
                "tailwindKmh": {"type": "number"},
                "weather": {"type": "array", "items": {"$ref": "#/definitions/activity.WeatherMarker"}},
                "failedWeatherPoints": {"type": "integer"}
            }
        },
        "preferences.Preferences": {
            "type": "object",
            "properties": {
                "avgSpeedKmh": {"type": "number"},
                "weatherPoints": {"type": "integer"},
                "roundTripLengthKm": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "WeatherMap API",
	Description:      "Weather forecasts, tailwind scores and ride analysis for cycling routes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
