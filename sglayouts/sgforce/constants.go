package sgforce

const (
	// iteration budget scales with sqrt(node count), bounded
	BASE_ITERATIONS = 60
	MIN_ITERATIONS  = 30
	MAX_ITERATIONS  = 240

	INITIAL_TEMPERATURE = 48.
	TEMPERATURE_DECAY   = 0.96

	// pairwise repulsion
	REPULSION_RADIUS   = 140.
	REPULSION_STRENGTH = 16000.
	SEPARATION_PUSH    = 0.6

	// spring toward the ideal edge length
	SPRING_STRENGTH = 0.08

	// forward edges must advance at least this much along the flow axis
	MIN_FORWARD_PROGRESS = 24.
	FLOW_STRENGTH        = 0.5

	// periodic passes
	CROSSING_CHECK_EVERY = 6
	CROSSING_NUDGE       = 7.
	COLLISION_EVERY      = 5

	// diagonal clustering counter-force
	SKEW_THRESHOLD = 0.45
	SKEW_STRENGTH  = 0.04

	// discrete local search after annealing
	LOCAL_SEARCH_ROUNDS = 3
	DRIFT_WEIGHT        = 0.05
	LOCAL_OVERLAP_COST  = 40.
	LOCAL_CROSSING_COST = 25.
	LOCAL_BACKFLOW_COST = 0.8

	PAIR_GAP = 16.
)
