package enums

import "fmt"

// TemplateType names the export kind a file template serves. Only order
// exports are produced by this service today.
type TemplateType string

const (
	TemplateTypeOrder TemplateType = "ORDER"
)

var validTemplateTypes = []TemplateType{
	TemplateTypeOrder,
}

// String implements fmt.Stringer.
func (t TemplateType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TemplateType.
func (t TemplateType) IsValid() bool {
	for _, candidate := range validTemplateTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTemplateType converts raw input into a TemplateType.
func ParseTemplateType(value string) (TemplateType, error) {
	for _, candidate := range validTemplateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid template type %q", value)
}
