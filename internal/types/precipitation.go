package types

const MmToInches = 1 / 25.4

type Precipitation struct {
	Mm     float64 `json:"mm"`
	Inches float64 `json:"inches"`
}

func NewPrecipitationFromMm(amountInMm float64) Precipitation {
	return Precipitation{
		Mm:     amountInMm,
		Inches: amountInMm * MmToInches,
	}
}
