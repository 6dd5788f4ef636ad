package store

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/factorysh/solsta/task"
	"github.com/google/uuid"
)

// Record is one execution of a task
type Record struct {
	Id       uuid.UUID   `json:"id"`
	Job      uuid.UUID   `json:"job"`
	Node     string      `json:"node"`
	Element  string      `json:"element"`
	Status   task.Status `json:"status"`
	Error    string      `json:"error,omitempty"`
	Start    time.Time   `json:"start"`
	Finish   time.Time   `json:"finish"`
	Products []string    `json:"products,omitempty"`
}

// History stores Records as JSON
type History struct {
	store Store
}

func NewHistory(store Store) *History {
	return &History{store}
}

func (h *History) Get(id uuid.UUID) (*Record, error) {
	v, err := h.store.Get([]byte(id.String()))
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	var r Record
	err = json.Unmarshal(v, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (h *History) Put(r *Record) error {
	if r.Id == uuid.Nil {
		return errors.New("Record without id")
	}
	value, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return h.store.Put([]byte(r.Id.String()), value)
}

func (h *History) Delete(id uuid.UUID) error {
	return h.store.Delete([]byte(id.String()))
}

func (h *History) Length() int {
	return h.store.Length()
}

// List all records, oldest first
func (h *History) List() ([]*Record, error) {
	records := make([]*Record, 0)
	err := h.store.ForEach(func(k, v []byte) error {
		var r Record
		err := json.Unmarshal(v, &r)
		if err != nil {
			return err
		}
		records = append(records, &r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(a, b int) bool {
		return records[a].Start.Before(records[b].Start)
	})
	return records, nil
}

// Flush removes records older than age, returns the number of removed records
func (h *History) Flush(age time.Duration) (int, error) {
	records, err := h.List()
	if err != nil {
		return 0, err
	}
	now := time.Now()
	i := 0
	for _, r := range records {
		if now.Sub(r.Finish) > age {
			err = h.Delete(r.Id)
			if err != nil {
				return i, err
			}
			i++
		}
	}
	return i, nil
}
