package entity

// CategorySuggestion is a transient category guess for a transaction.
// Suggestions are the output of one scoring call and are never persisted.
type CategorySuggestion struct {
	Category   string
	Confidence float64 // In [0, 1]
	Reasoning  string
}
