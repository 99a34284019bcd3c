package enums

import "fmt"

// TransferType discriminates the transfer-properties variants.
type TransferType string

const (
	TransferTypeLocal TransferType = "local"
	TransferTypeFtp   TransferType = "ftp"
)

var validTransferTypes = []TransferType{
	TransferTypeLocal,
	TransferTypeFtp,
}

// String implements fmt.Stringer.
func (t TransferType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransferType.
func (t TransferType) IsValid() bool {
	for _, candidate := range validTransferTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransferType converts raw input into a TransferType.
func ParseTransferType(value string) (TransferType, error) {
	for _, candidate := range validTransferTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transfer type %q", value)
}
