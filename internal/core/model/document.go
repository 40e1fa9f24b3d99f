package model

// Document is one decoded input text. The core never mutates or persists it.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// CandidatePair is a sentence from each of two documents that may conflict.
type CandidatePair struct {
	SentenceA string `json:"sentence_a"`
	SentenceB string `json:"sentence_b"`
}
