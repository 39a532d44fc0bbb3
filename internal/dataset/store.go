package dataset

import (
	"context"

	"costpulse/internal/domain/cpih"
)

// Store provides access to the historical CPIH index dataset.
//
// Latest returns the chronologically latest published record. The dataset is
// consulted on every call rather than cached, so an update landing between
// requests is observed on the next call. Implementations return
// errors.ErrDataUnavailable (wrapped) when the dataset is missing, empty or
// unparsable.
type Store interface {
	Latest(ctx context.Context) (*cpih.IndexRecord, error)
}
