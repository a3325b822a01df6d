package domain

// NoContextAnswer is returned when retrieval finds no relevant chunks.
// An empty retrieval is a valid outcome, not an error.
const NoContextAnswer = "No relevant documentation was found for this query."

// AnswerContext is one cited source passage backing an answer.
type AnswerContext struct {
	// Source is the originating document of the cited chunk.
	Source string `json:"source"`

	// ChunkID identifies the cited chunk within the index generation.
	ChunkID string `json:"chunk_id"`

	// Score is the similarity score the chunk was retrieved with.
	Score float64 `json:"score"`

	// Text is the full chunk body.
	Text string `json:"text"`
}

// Answer is the composed response to a query, with the ordered
// retrieval contexts it was grounded on.
type Answer struct {
	Query    string          `json:"query"`
	Answer   string          `json:"answer"`
	Contexts []AnswerContext `json:"contexts"`
}
