package ops

import "brronson/internal/batch"

// BatchFields is the accounting block shared by every mutating report.
type BatchFields struct {
	Found             int      `json:"found"`
	Acted             int      `json:"acted"`
	Skipped           int      `json:"skipped"`
	Errors            int      `json:"errors"`
	ActedPaths        []string `json:"actedPaths"`
	SkippedPaths      []string `json:"skippedPaths"`
	ErrorDetails      []string `json:"errorDetails"`
	BatchLimitReached bool     `json:"batchLimitReached"`
	Remaining         int      `json:"remaining"`
}

func batchFields(res batch.Result) BatchFields {
	return BatchFields{
		Found:             res.Found,
		Acted:             res.Acted,
		Skipped:           res.Skipped,
		Errors:            res.Errored,
		ActedPaths:        emptyIfNil(res.ActedPaths),
		SkippedPaths:      emptyIfNil(res.SkippedPaths),
		ErrorDetails:      emptyIfNil(res.Errors),
		BatchLimitReached: res.BatchLimitReached,
		Remaining:         res.Remaining,
	}
}

// emptyIfNil keeps JSON list fields as [] rather than null.
func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
