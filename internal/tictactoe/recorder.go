package tictactoe

// Recorder - receives search edges for external visualization. It must not influence the search.
type Recorder interface {
	// RecordEdge - an explored edge of the first search plies with its score.
	RecordEdge(parent, child Board, score int)
	// RecordBest - the edge chosen for the final answer.
	RecordBest(parent, child Board, score int)
}
