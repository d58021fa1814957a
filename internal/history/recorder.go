// Package history records game actions for later replay and audit. Records
// are pushed to a Redis list per room, fire-and-forget: a missing or slow
// Redis never blocks or fails a game operation.
package history

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ActionRecord is one logged game action.
type ActionRecord struct {
	RoomID      string                 `json:"roomId"`
	ActionIndex int64                  `json:"actionIndex"`
	ActorID     string                 `json:"actorId,omitempty"`
	Action      string                 `json:"action"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	Timestamp   int64                  `json:"timestamp"`
}

type Recorder struct {
	rdb *redis.Client
	seq atomic.Int64
}

// New connects a recorder to Redis. An empty addr disables recording; every
// Record call becomes a no-op.
func New(addr string) *Recorder {
	if addr == "" {
		return &Recorder{}
	}
	return &Recorder{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Record queues one action record. Returns immediately; the push happens on
// its own goroutine with a short timeout.
func (r *Recorder) Record(roomID, actorID, action string, payload map[string]interface{}) {
	if r == nil || r.rdb == nil {
		return
	}
	rec := ActionRecord{
		RoomID:      roomID,
		ActionIndex: r.seq.Add(1),
		ActorID:     actorID,
		Action:      action,
		Payload:     payload,
		Timestamp:   time.Now().UnixMilli(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		data, err := json.Marshal(rec)
		if err != nil {
			logrus.WithError(err).Warn("history: marshal action record")
			return
		}
		if err := r.rdb.RPush(ctx, "history:room:"+roomID, data).Err(); err != nil {
			logrus.WithError(err).WithField("room", roomID).Warn("history: push action record")
		}
	}()
}

// Close releases the Redis connection.
func (r *Recorder) Close() error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}
