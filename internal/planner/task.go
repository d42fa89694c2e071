package planner

// TaskRecord is one row of the extracted care schedule.
// Date is DD/MM/YYYY, Time is HH:MM (24h), both in the locale the plan was
// generated for. The JSON shape matches the persisted project state blob.
type TaskRecord struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// Key is the completion-tracking identity of a task. Time is intentionally
// not part of the key: two rows with the same date and activity but different
// times collide. The format is fixed because persisted status maps use it.
func (t TaskRecord) Key() string {
	return t.Date + " - " + t.Activity
}

// StatusMap tracks completion per task key. A missing key reads as not
// completed.
type StatusMap map[string]bool

// Done reports whether the task with the given key is marked completed.
func (m StatusMap) Done(key string) bool {
	return m[key]
}

// MarkDone flips a tracked key to completed and reports whether it did.
// Unknown keys are a no-op.
func (m StatusMap) MarkDone(key string) bool {
	if _, ok := m[key]; !ok {
		return false
	}
	m[key] = true
	return true
}

// MergeStatus builds the status map for a fresh extraction round. Every task
// in the new round gets an entry; completion carries forward for keys that
// were already tracked, and keys absent from the new round are discarded.
func MergeStatus(prev StatusMap, tasks []TaskRecord) StatusMap {
	next := make(StatusMap, len(tasks))
	for _, t := range tasks {
		next[t.Key()] = prev[t.Key()]
	}
	return next
}
