package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/studioline/intake-backend/internal/logging"
	"github.com/studioline/intake-backend/internal/projects/domain"
)

// RepairReport summarises one RepairIndex pass.
type RepairReport struct {
	Indexed           int  `json:"indexed"`
	Records           int  `json:"records"`
	DanglingRemoved   int  `json:"danglingRemoved"`
	DuplicatesRemoved int  `json:"duplicatesRemoved"`
	OrphansAdopted    int  `json:"orphansAdopted"`
	IndexCorrupt      bool `json:"indexCorrupt"`
	Rewritten         bool `json:"rewritten"`
}

// RepairIndex rebuilds the index from the records actually present.
// Dangling and duplicate ids are dropped, records missing from the index are
// added back, and the index is rewritten only when something changed.
// An index that no longer decodes is rebuilt from the records alone.
//
// The rewrite is the same read-modify-write as Create and Delete, so a
// concurrent mutation can still be lost; the next pass picks it up.
func (r *ProjectRepository) RepairIndex(ctx context.Context) (RepairReport, error) {
	const op = "project.repair_index"
	logger := logging.FromContext(ctx)
	var report RepairReport

	index, err := r.readIndex(ctx)
	var storeErr *domain.StoreError
	switch {
	case errors.As(err, &storeErr) && storeErr.Op == "decode":
		logger.LogWarnf(op, "index undecodable, rebuilding from records error=%v", err)
		report.IndexCorrupt = true
		index = nil
	case err != nil:
		logger.LogError(op, err)
		return report, err
	}
	report.Indexed = len(index)

	keys, err := r.store.Scan(ctx, projectKeyPrefix)
	if err != nil {
		err = r.storeErr("scan", projectKeyPrefix, err)
		logger.LogError(op, err)
		return report, err
	}

	recordKeys := keys[:0]
	for _, k := range keys {
		if k != projectIndexKey {
			recordKeys = append(recordKeys, k)
		}
	}

	values, err := r.store.MGet(ctx, recordKeys)
	if err != nil {
		err = r.storeErr("mget", projectKeyPrefix, err)
		logger.LogError(op, err)
		return report, err
	}

	live := make(map[string]domain.Project, len(recordKeys))
	for i, data := range values {
		if data == nil {
			continue
		}
		var p domain.Project
		if err := json.Unmarshal(data, &p); err != nil {
			logger.LogWarnf(op, "key=%s undecodable record, leaving unindexed error=%v", recordKeys[i], err)
			continue
		}
		live[strings.TrimPrefix(recordKeys[i], projectKeyPrefix)] = p
	}
	report.Records = len(live)

	repaired := make([]string, 0, len(live))
	seen := make(map[string]struct{}, len(index))
	for _, id := range index {
		if _, ok := live[id]; !ok {
			report.DanglingRemoved++
			continue
		}
		if _, dup := seen[id]; dup {
			report.DuplicatesRemoved++
			continue
		}
		seen[id] = struct{}{}
		repaired = append(repaired, id)
	}

	for id := range live {
		if _, ok := seen[id]; !ok {
			repaired = append(repaired, id)
			report.OrphansAdopted++
		}
	}

	if report.OrphansAdopted > 0 {
		sort.SliceStable(repaired, func(i, j int) bool {
			a, b := live[repaired[i]], live[repaired[j]]
			if a.SubmittedAt.Equal(b.SubmittedAt) {
				return a.ID > b.ID
			}
			return a.SubmittedAt.After(b.SubmittedAt)
		})
	}

	if !report.IndexCorrupt && report.DanglingRemoved == 0 && report.DuplicatesRemoved == 0 && report.OrphansAdopted == 0 {
		return report, nil
	}

	if err := r.writeIndex(ctx, repaired); err != nil {
		logger.LogError(op, err)
		return report, err
	}
	report.Rewritten = true
	r.metrics.recordRepair()

	logger.LogInfof(op, "dangling_removed=%d duplicates_removed=%d orphans_adopted=%d index_corrupt=%t",
		report.DanglingRemoved, report.DuplicatesRemoved, report.OrphansAdopted, report.IndexCorrupt)
	return report, nil
}
