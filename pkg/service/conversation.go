package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forumd/pkg/models"
	"forumd/pkg/store"
)

// ErrNotFound is the distinguished signal raised when an id does not
// resolve to a record. Callers map it to a client error; every other
// failure from this package is a storage fault.
var ErrNotFound = errors.New("record not found")

// Conversation is the collaborator surface consumed by the HTTP layer.
// Implementations are supplied at construction; the API holds no state of
// its own.
type Conversation interface {
	// ListQuestions returns all questions in store order.
	ListQuestions(ctx context.Context) ([]models.Question, error)
	// FindQuestion resolves a question by id, replies included. Fails with
	// ErrNotFound when the id is unknown.
	FindQuestion(ctx context.Context, id int64) (models.Question, error)
	// CreateQuestion persists a new question from the message payload and
	// returns it with its assigned id.
	CreateQuestion(ctx context.Context, msg models.Message) (models.Question, error)
	// CreateReplyForQuestion persists a new reply attached to the given
	// (already resolved) question.
	CreateReplyForQuestion(ctx context.Context, q models.Question, msg models.Message) (models.Reply, error)
}

// Pebble is the store-backed Conversation implementation. It is stateless;
// the underlying DB handle lives in pkg/store and is opened at startup.
type Pebble struct{}

// NewPebble returns a Conversation backed by the opened pebble store.
func NewPebble() *Pebble { return &Pebble{} }

func (*Pebble) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return store.ListQuestions()
}

func (*Pebble) FindQuestion(ctx context.Context, id int64) (models.Question, error) {
	q, err := store.GetQuestion(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Question{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
		return models.Question{}, err
	}
	return q, nil
}

func (*Pebble) CreateQuestion(ctx context.Context, msg models.Message) (models.Question, error) {
	id, err := store.NextQuestionID()
	if err != nil {
		return models.Question{}, err
	}
	q := models.Question{
		ID:        id,
		Content:   msg.Content,
		CreatedTS: time.Now().UTC().UnixNano(),
		Replies:   make([]models.ReplyShort, 0),
	}
	if err := store.SaveQuestion(q); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

func (*Pebble) CreateReplyForQuestion(ctx context.Context, q models.Question, msg models.Message) (models.Reply, error) {
	id, err := store.NextReplyID()
	if err != nil {
		return models.Reply{}, err
	}
	r := models.Reply{
		ID:         id,
		QuestionID: q.ID,
		Content:    msg.Content,
		CreatedTS:  time.Now().UTC().UnixNano(),
	}
	if err := store.SaveReply(r); err != nil {
		return models.Reply{}, err
	}
	return r, nil
}
