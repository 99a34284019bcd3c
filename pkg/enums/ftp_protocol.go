package enums

import (
	"fmt"
	"strings"
)

// FtpProtocol selects the wire protocol used by the FTP transfer variant.
type FtpProtocol string

const (
	FtpProtocolFtp  FtpProtocol = "FTP"
	FtpProtocolSftp FtpProtocol = "SFTP"
	FtpProtocolFtps FtpProtocol = "FTPS"
)

var validFtpProtocols = []FtpProtocol{
	FtpProtocolFtp,
	FtpProtocolSftp,
	FtpProtocolFtps,
}

// String implements fmt.Stringer.
func (p FtpProtocol) String() string {
	return string(p)
}

// IsValid reports whether the value is a known FtpProtocol.
func (p FtpProtocol) IsValid() bool {
	for _, candidate := range validFtpProtocols {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseFtpProtocol converts raw input into an FtpProtocol, ignoring case.
func ParseFtpProtocol(value string) (FtpProtocol, error) {
	for _, candidate := range validFtpProtocols {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ftp protocol %q", value)
}
