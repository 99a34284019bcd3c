package enums

// ColumnContext names the object graph a file column resolves against.
// An empty value defaults to the line-item context, which older templates
// rely on, so no validation rejects it.
type ColumnContext string

const (
	ColumnContextOrder    ColumnContext = "order"
	ColumnContextLineItem ColumnContext = "lineItem"
	// ColumnContextLiteral renders the key path itself as a constant cell.
	ColumnContextLiteral ColumnContext = "string"
	// ColumnContextLineNumber renders the 1-based running line counter.
	ColumnContextLineNumber ColumnContext = "line_no"
)

// String implements fmt.Stringer.
func (c ColumnContext) String() string {
	return string(c)
}
