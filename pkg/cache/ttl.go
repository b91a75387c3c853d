package cache

import "time"

// Cache lifetimes per entry kind. Rendered figures and outlier reports
// are pure functions of the input data and options, so the TTLs exist
// only to bound cache growth.
const (
	// TTLArtifact is the lifetime of rendered figures.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLOutliers is the lifetime of outlier reports.
	TTLOutliers = 7 * 24 * time.Hour
)
