package models

// FeatureContract is the frozen artifact produced once at training time:
// the ordered feature-column list plus the fitted scaler parameters. It is
// the single source of truth both the training and the serving path must
// apply identically. Immutable after fit; safe to share by reference across
// concurrent inference requests.
type FeatureContract struct {
	Columns []string  `json:"columns"`
	Means   []float64 `json:"means"`
	Stds    []float64 `json:"stds"`
}

// Fitted reports whether the contract carries fitted scaler state.
func (c *FeatureContract) Fitted() bool {
	return c != nil && len(c.Columns) > 0 && len(c.Columns) == len(c.Means) && len(c.Means) == len(c.Stds)
}

// Index returns the position of a column in the frozen order, or -1.
func (c *FeatureContract) Index(col string) int {
	for i, name := range c.Columns {
		if name == col {
			return i
		}
	}
	return -1
}
