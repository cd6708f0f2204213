package invoice

import "sort"

// MergeStatus describes what a merge did to the history.
type MergeStatus string

const (
	// StatusLoaded means no batch was supplied.
	StatusLoaded MergeStatus = "loaded"
	// StatusCreated means the history was empty and the batch replaced it.
	StatusCreated MergeStatus = "created"
	// StatusMerged means new rows were merged into the history.
	StatusMerged MergeStatus = "merged"
	// StatusNoNewData means every batch row was already present.
	StatusNoNewData MergeStatus = "no_new_data"
)

// MergeOutcome is the history after a merge.
type MergeOutcome struct {
	Records []Record
	Status  MergeStatus
	// Added counts batch rows that survived deduplication.
	Added int
}

// Merge folds batch into history.
//
// A batch is a no-op when every row matches a history row on all four
// fields. Otherwise the rows are concatenated, deduplicated on
// (date, aux document, amount) keeping the first occurrence, and stably
// sorted by date. The presence check includes the client while
// deduplication does not: a batch row that differs from history only in
// client makes the merge run but is then dropped.
func Merge(history, batch []Record) MergeOutcome {
	if len(history) == 0 {
		records := make([]Record, len(batch))
		copy(records, batch)
		return MergeOutcome{Records: records, Status: StatusCreated, Added: len(batch)}
	}

	present := make(map[presenceKey]struct{}, len(history))
	for _, r := range history {
		present[r.presenceKey()] = struct{}{}
	}
	allPresent := true
	for _, r := range batch {
		if _, ok := present[r.presenceKey()]; !ok {
			allPresent = false
			break
		}
	}
	if allPresent {
		return MergeOutcome{Records: history, Status: StatusNoNewData}
	}

	seen := make(map[uniqueKey]struct{}, len(history)+len(batch))
	merged := make([]Record, 0, len(history)+len(batch))
	added := 0
	for i, r := range append(append(make([]Record, 0, len(history)+len(batch)), history...), batch...) {
		key := r.uniqueKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, r)
		if i >= len(history) {
			added++
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].IssueDate.Before(merged[j].IssueDate)
	})

	return MergeOutcome{Records: merged, Status: StatusMerged, Added: added}
}
