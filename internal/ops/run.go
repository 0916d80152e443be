package ops

import (
	"context"
	"encoding/json"
	"fmt"
)

// Operation names accepted by Run. The queue stores these alongside raw
// request parameters, so the set doubles as the job vocabulary.
const (
	OpPruneEmpty            = "prune-empty"
	OpCleanUnwanted         = "clean-unwanted"
	OpScanUnwanted          = "scan-unwanted"
	OpRelocateNonDuplicates = "relocate-non-duplicates"
	OpMigrateNonMovie       = "migrate-non-movie"
	OpSalvageSubtitles      = "salvage-subtitles"
	OpSyncSubtitles         = "sync-subtitles-to-target"
	OpCompareDirectories    = "compare-directories"
)

// OperationNames lists every operation Run dispatches, in a stable order.
func OperationNames() []string {
	return []string{
		OpPruneEmpty,
		OpCleanUnwanted,
		OpScanUnwanted,
		OpRelocateNonDuplicates,
		OpMigrateNonMovie,
		OpSalvageSubtitles,
		OpSyncSubtitles,
		OpCompareDirectories,
	}
}

// Run decodes params into the request type for the named operation and
// executes it, returning the report for JSON serialization. Unknown names
// and undecodable params are validation errors. Mutating requests decode
// over safe defaults: an omitted dryRun field means dry run, and only an
// explicit "dryRun": false mutates disk.
func (e *Engine) Run(ctx context.Context, operation string, params []byte) (any, error) {
	if len(params) == 0 {
		params = []byte("{}")
	}
	decode := func(v any) error {
		if err := json.Unmarshal(params, v); err != nil {
			return Wrap(ErrValidation, operation, "decode parameters", err)
		}
		return nil
	}

	switch operation {
	case OpPruneEmpty:
		req := PruneRequest{DryRun: true}
		if err := decode(&req); err != nil {
			return nil, err
		}
		return e.PruneEmpty(ctx, req)
	case OpCleanUnwanted:
		req := CleanRequest{DryRun: true}
		if err := decode(&req); err != nil {
			return nil, err
		}
		return e.CleanUnwanted(ctx, req)
	case OpScanUnwanted:
		var req ScanUnwantedRequest
		if err := decode(&req); err != nil {
			return nil, err
		}
		return e.ScanUnwanted(ctx, req)
	case OpRelocateNonDuplicates:
		req := RelocateRequest{DryRun: true}
		if err := decode(&req); err != nil {
			return nil, err
		}
		return e.RelocateNonDuplicates(ctx, req)
	case OpMigrateNonMovie:
		req := MigrateRequest{DryRun: true}
		if err := decode(&req); err != nil {
			return nil, err
		}
		return e.MigrateNonMovie(ctx, req)
	case OpSalvageSubtitles:
		req := SalvageRequest{DryRun: true}
		if err := decode(&req); err != nil {
			return nil, err
		}
		return e.SalvageSubtitles(ctx, req)
	case OpSyncSubtitles:
		req := SyncRequest{DryRun: true}
		if err := decode(&req); err != nil {
			return nil, err
		}
		return e.SyncSubtitlesToTarget(ctx, req)
	case OpCompareDirectories:
		var req CompareRequest
		if err := decode(&req); err != nil {
			return nil, err
		}
		return e.CompareDirectories(ctx, req)
	default:
		return nil, Wrap(ErrValidation, operation, fmt.Sprintf("unknown operation %q", operation), nil)
	}
}
