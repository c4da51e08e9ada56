package normalizer

import (
	"strings"

	"github.com/davrax/lineagetools/internal/maputil"
)

// Normalize converts a whole lineage report into its merged form.
//
// The top-level graph (or, when absent, the nested
// report.report_result.graph location) is merged once under "entire_report".
// Every top-level key whose name contains ".xml" (case-insensitive) is
// treated as a job collection and walked recursively; all other top-level
// keys are carried through unchanged. A report with no ".xml" key and no
// graph still yields a valid result whose "entire_report" is empty.
//
// Normalize is pure: the input document is never mutated, and every call
// uses fresh key-disambiguation state per graph scope.
func Normalize(document any, opts ...Option) map[string]any {
	doc, _ := document.(map[string]any)

	out := make(map[string]any, len(doc)+1)
	out["entire_report"] = MergeGraph(topLevelGraph(doc), opts...).Document()

	for _, key := range maputil.SortedKeys(doc) {
		if key == "graph" {
			continue
		}
		if !isJobCollectionKey(key) {
			out[key] = copyValue(doc[key])
			continue
		}
		jobs, ok := doc[key].(map[string]any)
		if !ok {
			out[key] = copyValue(doc[key])
			continue
		}
		out[key] = normalizeJobs(jobs, opts...)
	}

	return out
}

// isJobCollectionKey reports whether a top-level key holds a job collection.
// The case-insensitive ".xml" substring test is the sole discriminator
// between job collections and ordinary metadata; it is a narrow convention
// of the source report format and applies to string keys only.
func isJobCollectionKey(key string) bool {
	return strings.Contains(strings.ToLower(key), ".xml")
}

// topLevelGraph locates the report's own graph: the "graph" key when
// present, otherwise the nested report.report_result.graph fallback.
func topLevelGraph(doc map[string]any) any {
	if doc == nil {
		return nil
	}
	if g, ok := doc["graph"]; ok {
		return g
	}
	report, ok := doc["report"].(map[string]any)
	if !ok {
		return nil
	}
	reportResult, ok := report["report_result"].(map[string]any)
	if !ok {
		return nil
	}
	return reportResult["graph"]
}

// normalizeJobs walks a job collection: every map-valued entry is a job
// whose entries are processes.
func normalizeJobs(jobs map[string]any, opts ...Option) map[string]any {
	out := make(map[string]any, len(jobs))
	for _, jobName := range maputil.SortedKeys(jobs) {
		job, ok := jobs[jobName].(map[string]any)
		if !ok {
			out[jobName] = copyValue(jobs[jobName])
			continue
		}
		out[jobName] = normalizeJob(job, opts...)
	}
	return out
}

func normalizeJob(job map[string]any, opts ...Option) map[string]any {
	out := make(map[string]any, len(job))
	for _, processName := range maputil.SortedKeys(job) {
		process, ok := job[processName].(map[string]any)
		if !ok {
			out[processName] = copyValue(job[processName])
			continue
		}
		out[processName] = normalizeProcess(process, opts...)
	}
	return out
}

// normalizeProcess merges the process's own graph as its key_info, then
// merges every sibling key holding a graph as a stage. Each stage copy gets
// the merged result attached under "key_info" and is collected into the
// "stages" mapping; remaining keys pass through unchanged. Sibling scopes
// never share key-disambiguation state.
func normalizeProcess(process map[string]any, opts ...Option) map[string]any {
	out := make(map[string]any, len(process)+1)
	stages := make(map[string]any)

	for _, key := range maputil.SortedKeys(process) {
		val := process[key]
		if key == "graph" {
			out["key_info"] = MergeGraph(val, opts...).Document()
			continue
		}
		stage, ok := val.(map[string]any)
		if !ok {
			out[key] = copyValue(val)
			continue
		}
		g, hasGraph := stage["graph"]
		if !hasGraph {
			out[key] = copyValue(val)
			continue
		}

		stageCopy := make(map[string]any, len(stage))
		for k, v := range stage {
			if k == "graph" {
				continue
			}
			stageCopy[k] = copyValue(v)
		}
		stageCopy["key_info"] = MergeGraph(g, opts...).Document()
		stages[key] = stageCopy
	}

	out["stages"] = stages
	return out
}
