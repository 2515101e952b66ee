// Package signal has the per-file debt signal analyzers.
//
// Each analyzer is a pure function from file content and workspace facts to a
// raw score in [0, 100]. Analyzers hold no state across calls; anything
// workspace-wide (churn counts, blame, co-change pairs, the import graph) is
// precomputed once per run and passed in.
package signal

// FileSmells holds the per-category smell counters for one file.
type FileSmells struct {
	GodFunction   int `json:"god_function"`
	DeepNesting   int `json:"deep_nesting"`
	LongParamList int `json:"long_param_list"`
	MagicNumber   int `json:"magic_number"`
	EmptyCatch    int `json:"empty_catch"`
	TodoFixme     int `json:"todo_fixme"`
	Total         int `json:"total"`
	LOC           int `json:"loc"`
}

// FunctionComplexity is the heuristic complexity of a single function.
type FunctionComplexity struct {
	Name       string `json:"name"`
	Complexity int    `json:"complexity"`
}

// FileComplexity aggregates per-function complexity for one file.
type FileComplexity struct {
	Functions []FunctionComplexity `json:"functions"`
	Average   float64              `json:"average"`
}
