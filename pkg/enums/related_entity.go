package enums

// RelatedEntity names a reference-data type a resolved identifier can be
// expanded into. The set is closed; unknown values resolve to an empty cell
// rather than an error, which existing templates depend on.
type RelatedEntity string

const (
	RelatedEntityFacility  RelatedEntity = "Facility"
	RelatedEntityOrderable RelatedEntity = "Orderable"
	RelatedEntityPeriod    RelatedEntity = "ProcessingPeriod"
)

// String implements fmt.Stringer.
func (r RelatedEntity) String() string {
	return string(r)
}
