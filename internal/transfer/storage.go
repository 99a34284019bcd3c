package transfer

import (
	"os"
	"path/filepath"

	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

// ArtifactStorage stages export artifacts on the local filesystem. Store
// overwrites and Delete tolerates a missing file, so both are idempotent.
type ArtifactStorage struct{}

// Path returns the deterministic artifact location inside dir.
func (ArtifactStorage) Path(dir, filePrefix, orderCode string) string {
	return filepath.Join(dir, filePrefix+orderCode+".csv")
}

// Store writes the artifact, creating the directory as needed and replacing
// any previous file at the same path.
func (ArtifactStorage) Store(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create artifact directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write artifact")
	}
	return nil
}

// Delete removes the artifact. A nonexistent file is not an error.
func (ArtifactStorage) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete artifact")
	}
	return nil
}
