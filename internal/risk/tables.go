package risk

// Rating tables mapping categorical attributes to component scores. These
// are compile-time constants of the model; calculators read them through
// lookupScore with an explicit default so unmapped or missing values stay
// risk-neutral.

var constructionRisk = map[string]float64{
	"Fire Resistive":          10,
	"Non-Combustible":         25,
	"Masonry Non-Combustible": 30,
	"Joisted Masonry":         50,
	"Frame":                   80,
}

var roofConditionRisk = map[string]float64{
	"New":       10,
	"Very Good": 20,
	"Good":      30,
	"Fair":      50,
	"Poor":      80,
}

var femaFloodZoneRisk = map[string]float64{
	"X":  10,
	"D":  20,
	"A":  50,
	"AE": 60,
	"VE": 90,
}

var earthquakeZoneRisk = map[string]float64{
	"Zone 0": 10,
	"Zone 1": 25,
	"Zone 2": 45,
	"Zone 3": 65,
	"Zone 4": 85,
}

var burglarAlarmRisk = map[string]float64{
	"Central Station": 10,
	"Video Verified":  20,
	"Monitored":       35,
	"Local":           50,
	"None":            80,
}

func lookupScore(table map[string]float64, key string, def float64) float64 {
	if s, ok := table[key]; ok {
		return s
	}
	return def
}

// Field defaults applied when a submission omits a value entirely.
const (
	defaultYearBuilt       = 1970
	defaultSprinklerPct    = 50.0
	defaultWildfireScore   = 50.0
	defaultCrimeScore      = 50.0
	defaultProtectionClass = 5
	defaultStationDistance = 10.0
	defaultCategoryScore   = 50.0
	defaultEarthquakeScore = 30.0
)

// DefaultReferenceYear anchors building-age computation. Configurable per
// Scorer so historical books can be re-rated consistently.
const DefaultReferenceYear = 2025
