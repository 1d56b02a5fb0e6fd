package types

import "time"

// Sample is one hourly gauge observation used as model input.
type Sample struct {
	// Observation time.
	Time time.Time `json:"time"`
	// Stream discharge in cubic feet per second.
	FlowCFS float64 `json:"flow_cfs"`
	// Rainfall accumulated during the hour, in inches.
	RainIn float64 `json:"rain_in"`
	// Photosynthetically active radiation, W/m^2.
	PAR float64 `json:"par"`
	// Water temperature in degrees Celsius.
	WaterTempC float64 `json:"water_temp_c"`
}
