package models

// Question is a top-level forum post. Replies are persisted as separate
// records and assembled in creation order when the full question is read.
type Question struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	// Created timestamp (ns), assigned by the store on creation
	CreatedTS int64 `json:"created_ts,omitempty"`
	// Replies in insertion order; append-only
	Replies []ReplyShort `json:"replies"`
}

// Reply is attached to exactly one question, fixed at creation time.
type Reply struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Content    string `json:"content"`
	CreatedTS  int64  `json:"created_ts,omitempty"`
}

// Message is the unpersisted input payload used to create a question or a
// reply. It has no identity until the store assigns one.
type Message struct {
	Content string `json:"content"`
}

// QuestionShort is the read-optimized projection returned from list and
// create responses; reply bodies are never included.
type QuestionShort struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	// Reply count; omitted while zero so fresh questions stay compact
	Replies int `json:"replies,omitempty"`
}

// ReplyShort is the reduced projection of a reply.
type ReplyShort struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// ToShort returns the summary projection of q.
func (q Question) ToShort() QuestionShort {
	return QuestionShort{ID: q.ID, Content: q.Content, Replies: len(q.Replies)}
}

// ToShort returns the reduced projection of r.
func (r Reply) ToShort() ReplyShort {
	return ReplyShort{ID: r.ID, Content: r.Content}
}
