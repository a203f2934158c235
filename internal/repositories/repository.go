package repositories

import (
	"errors"
	"sort"
	"time"
)

// ErrNotFound is wrapped by every lookup or write that targets a missing record.
var ErrNotFound = errors.New("not found")

// newestFirst orders ids by creation time, most recent first. Ties keep the
// later insertion ahead.
func newestFirst(ids []string, created func(id string) time.Time) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	sort.SliceStable(out, func(i, j int) bool {
		return created(out[i]).After(created(out[j]))
	})
	return out
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
