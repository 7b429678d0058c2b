package sgcorrect

const (
	SEPARATION_PASS_BUDGET = 12
	SEPARATION_GAP         = 20.

	COMPACT_STEP     = 0.93
	COMPACT_ATTEMPTS = 4

	// quadrant area imbalance: max deviation from mean, as a fraction of
	// total node area, before correction kicks in
	QUADRANT_IMBALANCE_THRESHOLD = 0.35
	PRESSURE_SHIFT_FRACTION      = 0.18

	// x/y correlation above which diagonal clustering is corrected
	SKEW_CORRELATION_THRESHOLD = 0.45
	SHEAR_FRACTION             = 0.6
)
