package sgscore

const (
	// hard constraint thresholds
	MIN_NODE_GAP            = 16.
	MIN_SUBGRAPH_GAP        = 20.
	MIN_EDGE_NODE_CLEARANCE = 8.
	MIN_LABEL_GAP           = 6.
	TEXT_PADDING            = 8.

	// WCAG AA for normal text
	MIN_CONTRAST_RATIO = 4.5

	// soft scoring
	LABEL_COMFORT_DISTANCE = 30.
	TARGET_OCCUPANCY       = 0.35
	MIN_OCCUPANCY          = 0.12
	MAX_OCCUPANCY          = 0.65

	// reference canvas used for the fit-scale ratio: a 16:9 slide at 96dpi
	CANVAS_WIDTH = 1280.

	// penalty weights
	HARD_UNIT_PENALTY     = 1000.
	WEIGHT_CROSSING       = 12.
	WEIGHT_THROUGH_NODE   = 30.
	WEIGHT_LABEL_DISTANCE = 0.8
	WEIGHT_LOW_CONTRAST   = 10.
	WEIGHT_BEND           = 1.5
	WEIGHT_BACKFLOW       = 0.25
	WEIGHT_OCCUPANCY      = 60.

	// tolerance band when comparing candidate layouts tier by tier, so
	// floating point noise between near-identical candidates cannot flip
	// the ordering
	COMPARE_TOLERANCE = 1e-3
)
