package fs

import (
	"github.com/fwojciec/sentimeter"
)

// WriteExport writes the export text of the stored result to path.
// Returns EINVALID if the store holds no result.
func WriteExport(path string, store *sentimeter.ResultStore) error {
	if path == "" {
		return sentimeter.Errorf(sentimeter.EINVALID, "export path required")
	}
	if store.Result() == nil {
		return sentimeter.Errorf(sentimeter.EINVALID, "nothing to export")
	}
	return WriteFileAtomic(path, []byte(store.ExportText()+"\n"), 0644)
}
