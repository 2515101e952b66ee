package schema

// Weights maps each signal key to its configured weight.
type Weights map[SignalKey]float64

// DefaultWeights returns the stock weight map. The values sum to 1.0 so the
// composite stays within [0,100].
func DefaultWeights() Weights {
	return Weights{
		SignalChurnRate:              0.22,
		SignalCodeSmellDensity:       0.20,
		SignalCouplingIndex:          0.18,
		SignalChangeCoupling:         0.12,
		SignalTestCoverageGap:        0.12,
		SignalKnowledgeConcentration: 0.08,
		SignalCyclomaticComplexity:   0.05,
		SignalDecisionStaleness:      0.03,
	}
}

// Get returns the weight for a key, falling back to the default when the key
// is absent from the map.
func (w Weights) Get(key SignalKey) float64 {
	if v, ok := w[key]; ok {
		return v
	}
	return DefaultWeights()[key]
}

// Normalized returns a copy with every key present, invalid entries replaced
// by defaults, and all values rescaled so they sum to 1.0. A map whose values
// sum to zero falls back to the defaults entirely.
func (w Weights) Normalized() Weights {
	defaults := DefaultWeights()
	out := make(Weights, len(SignalOrder))

	var sum float64
	for _, key := range SignalOrder {
		v, ok := w[key]
		if !ok || v < 0 || v > 1 {
			v = defaults[key]
		}
		out[key] = v
		sum += v
	}
	if sum <= 0 {
		return defaults
	}
	for key, v := range out {
		out[key] = v / sum
	}
	return out
}
