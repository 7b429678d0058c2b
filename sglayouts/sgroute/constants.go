package sgroute

const (
	// length of the straight stub leaving an anchor along the side normal
	STUB_LENGTH = 14.

	// cost of a side whose outward normal points away from the other
	// endpoint, so edges do not visually back into their shape
	MISALIGN_PENALTY     = 42.
	MISALIGN_DIST_FACTOR = 0.42

	// mild preference for axis-consistent side pairings
	AXIS_MISMATCH_PENALTY = 5.

	// flow penalty per unit of travel against the diagram direction
	BACKFLOW_COST_FACTOR = 0.2

	// load balancing: spread edges across sides and across exact side pairs
	// on the same node pair
	SIDE_LOAD_PENALTY = 18.
	PAIR_LOAD_PENALTY = 60.

	// accept hinted sides only when not materially worse than the best
	// automatic choice
	HINT_TOLERANCE_MIN  = 10.
	HINT_TOLERANCE_FRAC = 0.20

	// perpendicular offset from the route midpoint to the label center
	LABEL_OFFSET = 16.

	// self-loop bulge extents, clamped
	LOOP_MIN_EXTENT = 25.
	LOOP_MAX_EXTENT = 120.

	// lane spread between parallel edges anchored on the same side
	LANE_STEP_MIN = 6.
	LANE_STEP_MAX = 15.
)
