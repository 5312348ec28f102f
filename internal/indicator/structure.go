package indicator

import (
	"fxconfluence/internal/model"
)

// structureWindow is the number of recent bars the swing-trend fit
// looks at.
const structureWindow = 12

// Structure classifies the trend of swings independently of the EMA
// trend: least-squares slopes of highs and lows over the recent
// window. Both rising means higher-highs/higher-lows, both falling
// means lower-highs/lower-lows, mixed signs mean range.
func Structure(s model.Series) string {
	recent := s.Tail(structureWindow)
	if recent.Len() < 3 {
		return model.StructureUnknown
	}

	highSlope := LinearSlope(recent.Highs())
	lowSlope := LinearSlope(recent.Lows())

	switch {
	case highSlope > 0 && lowSlope > 0:
		return model.StructureBullish
	case highSlope < 0 && lowSlope < 0:
		return model.StructureBearish
	default:
		return model.StructureRange
	}
}
