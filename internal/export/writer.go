package export

import (
	"io"
	"strings"

	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

const (
	delimiter      = ","
	lineTerminator = "\r\n"
)

// RecordWriter emits delimited records. Cells are written verbatim without
// quoting; downstream consumers depend on the unquoted format, so a cell
// containing the delimiter or terminator corrupts the row.
type RecordWriter struct {
	w io.Writer
}

// NewRecordWriter wraps the destination stream.
func NewRecordWriter(w io.Writer) *RecordWriter {
	return &RecordWriter{w: w}
}

// WriteRecord writes the cells joined by the delimiter, terminated by CRLF.
func (r *RecordWriter) WriteRecord(cells []string) error {
	if _, err := io.WriteString(r.w, strings.Join(cells, delimiter)+lineTerminator); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write export record")
	}
	return nil
}
