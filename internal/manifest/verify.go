package manifest

import (
	"context"
	"path/filepath"

	"schemagen/pkg/metadata"
)

// Mismatch is a recorded document whose file no longer matches its hash.
type Mismatch struct {
	Document Document
	Err      error
}

// VerifyRun re-hashes every successfully written file of run and returns the
// ones that are missing or changed. When several rows wrote the same file
// only the last write is checked.
func (s *Store) VerifyRun(ctx context.Context, run Run) (checked int, mismatches []Mismatch, err error) {
	docs, err := s.Documents(ctx, run.ID)
	if err != nil {
		return 0, nil, err
	}

	last := make(map[string]int, len(docs))
	for i, doc := range docs {
		if doc.Status == DocumentOK {
			last[doc.File] = i
		}
	}

	for i, doc := range docs {
		if doc.Status != DocumentOK || last[doc.File] != i {
			continue
		}

		if err := ctx.Err(); err != nil {
			return checked, mismatches, err
		}

		checked++

		if verr := metadata.VerifyFile(filepath.Join(run.OutputDir, doc.File), doc.SHA256); verr != nil {
			mismatches = append(mismatches, Mismatch{Document: doc, Err: verr})
		}
	}

	return checked, mismatches, nil
}
