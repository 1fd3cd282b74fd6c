package main

// queryCache holds task list responses keyed by their query string. Drag and
// drop rewrites cached entries optimistically before the PATCH request is
// sent; the snapshot taken at that moment restores the previous state when
// the request fails.
type queryCache struct {
	lists map[string][]Task
}

func newQueryCache() *queryCache {
	return &queryCache{lists: make(map[string][]Task)}
}

func (qc *queryCache) set(key string, tasks []Task) {
	qc.lists[key] = tasks
}

func (qc *queryCache) get(key string) ([]Task, bool) {
	tasks, ok := qc.lists[key]
	return tasks, ok
}

// snapshot deep-copies every cached list so a later restore is unaffected by
// in-place rewrites.
func (qc *queryCache) snapshot() map[string][]Task {
	snap := make(map[string][]Task, len(qc.lists))
	for key, tasks := range qc.lists {
		cp := make([]Task, len(tasks))
		copy(cp, tasks)
		snap[key] = cp
	}
	return snap
}

// restore replaces the cache contents with a previously taken snapshot.
func (qc *queryCache) restore(snap map[string][]Task) {
	qc.lists = snap
}

// setTaskStatus rewrites the task's status in every cached list that
// contains it and returns the pre-update snapshot for rollback.
func (qc *queryCache) setTaskStatus(id, status string) map[string][]Task {
	snap := qc.snapshot()
	for key, tasks := range qc.lists {
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].Status = status
			}
		}
		qc.lists[key] = tasks
	}
	return snap
}

// invalidate drops cached lists so the next read refetches authoritative
// data. With no arguments the whole cache is dropped.
func (qc *queryCache) invalidate(keys ...string) {
	if len(keys) == 0 {
		qc.lists = make(map[string][]Task)
		return
	}
	for _, key := range keys {
		delete(qc.lists, key)
	}
}
