package store

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"forumd/pkg/logger"
	"forumd/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

var (
	db     *pebble.DB
	dbPath string

	// seqMu serializes read-modify-write of the durable id counters.
	seqMu sync.Mutex
)

// Key layout. Question ids are zero-padded so lexicographic iteration over
// the "q:" prefix yields numeric (insertion) order; reply keys nest under
// their parent question for the same reason.
//
//	q:<id20>            question record
//	q:<id20>:r:<id20>   reply record
//	seq:question        8-byte big-endian counter
//	seq:reply           8-byte big-endian counter
func questionKey(id int64) []byte {
	return []byte(fmt.Sprintf("q:%020d", id))
}

func replyKey(questionID, replyID int64) []byte {
	return []byte(fmt.Sprintf("q:%020d:r:%020d", questionID, replyID))
}

// Open opens (or creates) a Pebble database at the given path and keeps a
// global handle for simple usage in this package.
func Open(path string) error {
	var err error
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "error", err)
		return err
	}
	dbPath = path
	logger.Info("pebble_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	dbPath = ""
	logger.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

// nextSeq durably increments the named counter and returns the new value.
// The first id handed out is 1.
func nextSeq(name string) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("pebble not opened; call store.Open first")
	}
	seqMu.Lock()
	defer seqMu.Unlock()

	key := []byte("seq:" + name)
	var cur uint64
	v, closer, err := db.Get(key)
	switch {
	case err == nil:
		if len(v) == 8 {
			cur = binary.BigEndian.Uint64(v)
		}
		_ = closer.Close()
	case errors.Is(err, pebble.ErrNotFound):
		// counter starts at zero
	default:
		return 0, err
	}

	cur++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, cur)
	if err := db.Set(key, buf, pebble.Sync); err != nil {
		return 0, err
	}
	return int64(cur), nil
}

// NextQuestionID returns the next question id from the durable sequence.
func NextQuestionID() (int64, error) { return nextSeq("question") }

// NextReplyID returns the next reply id from the durable sequence.
func NextReplyID() (int64, error) { return nextSeq("reply") }

// SaveQuestion persists the question record. Replies are stored separately;
// whatever q.Replies holds is not written.
func SaveQuestion(q models.Question) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	q.Replies = nil
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal question: %w", err)
	}
	if err := db.Set(questionKey(q.ID), data, pebble.Sync); err != nil {
		logger.Error("save_question_failed", "id", q.ID, "error", err)
		return err
	}
	logger.Debug("question_saved", "id", q.ID)
	return nil
}

// SaveReply persists the reply record under its parent question.
func SaveReply(r models.Reply) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}
	if err := db.Set(replyKey(r.QuestionID, r.ID), data, pebble.Sync); err != nil {
		logger.Error("save_reply_failed", "question", r.QuestionID, "id", r.ID, "error", err)
		return err
	}
	logger.Debug("reply_saved", "question", r.QuestionID, "id", r.ID)
	return nil
}

// GetQuestion returns the question with the given id, replies assembled in
// insertion order. Returns ErrNotFound when the id is unknown.
func GetQuestion(id int64) (models.Question, error) {
	var q models.Question
	if db == nil {
		return q, fmt.Errorf("pebble not opened; call store.Open first")
	}
	v, closer, err := db.Get(questionKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return q, fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
		return q, err
	}
	uerr := json.Unmarshal(v, &q)
	_ = closer.Close()
	if uerr != nil {
		return q, fmt.Errorf("invalid question record %d: %w", id, uerr)
	}

	replies, err := ListReplies(id)
	if err != nil {
		return q, err
	}
	q.Replies = make([]models.ReplyShort, 0, len(replies))
	for _, r := range replies {
		q.Replies = append(q.Replies, r.ToShort())
	}
	return q, nil
}

// ListReplies returns all replies for a question in insertion order.
func ListReplies(questionID int64) ([]models.Reply, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := []byte(fmt.Sprintf("q:%020d:r:", questionID))
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []models.Reply
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		var r models.Reply
		if err := json.Unmarshal(iter.Value(), &r); err != nil {
			return nil, fmt.Errorf("invalid reply record %s: %w", iter.Key(), err)
		}
		out = append(out, r)
	}
	return out, iter.Error()
}

// ListQuestions returns all questions in insertion order, each with its
// replies assembled. Question and reply keys share the "q:" prefix and sort
// together, so one iterator pass builds the full set.
func ListQuestions() ([]models.Question, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := []byte("q:")
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	out := make([]models.Question, 0)
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		key := iter.Key()
		if !bytes.HasPrefix(key, prefix) {
			break
		}
		if bytes.Contains(key, []byte(":r:")) {
			var r models.Reply
			if err := json.Unmarshal(iter.Value(), &r); err != nil {
				return nil, fmt.Errorf("invalid reply record %s: %w", key, err)
			}
			if len(out) == 0 || out[len(out)-1].ID != r.QuestionID {
				// orphan reply; the parent key always precedes its replies
				return nil, fmt.Errorf("reply %d has no parent question %d", r.ID, r.QuestionID)
			}
			out[len(out)-1].Replies = append(out[len(out)-1].Replies, r.ToShort())
			continue
		}
		var q models.Question
		if err := json.Unmarshal(iter.Value(), &q); err != nil {
			return nil, fmt.Errorf("invalid question record %s: %w", key, err)
		}
		q.Replies = make([]models.ReplyShort, 0)
		out = append(out, q)
	}
	return out, iter.Error()
}

// Counts returns the number of questions and replies currently stored.
func Counts() (questions, replies int, err error) {
	if db == nil {
		return 0, 0, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := []byte("q:")
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer iter.Close()
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		if bytes.Contains(iter.Key(), []byte(":r:")) {
			replies++
		} else {
			questions++
		}
	}
	return questions, replies, iter.Error()
}
