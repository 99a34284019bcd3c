package transfer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

// FtpSender delivers artifacts over FTP, with explicit TLS for FTPS.
// The client transfers in passive mode; the passive-mode flag selects
// plain PASV over EPSV for servers that do not support the extension.
type FtpSender struct {
	connectTimeout time.Duration
}

// NewFtpSender builds an FTP sender with the given connect timeout.
func NewFtpSender(connectTimeout time.Duration) *FtpSender {
	return &FtpSender{connectTimeout: connectTimeout}
}

// Send uploads the artifact into the configured remote directory.
func (s *FtpSender) Send(ctx context.Context, props *models.TransferProperties, fileName string, content io.Reader) error {
	addr := fmt.Sprintf("%s:%d", props.ServerHost, props.ServerPort)
	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(s.connectTimeout),
	}
	if !props.PassiveMode {
		opts = append(opts, ftp.DialWithDisabledEPSV(true))
	}
	if props.Protocol == enums.FtpProtocolFtps {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{ServerName: props.ServerHost}))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransfer, err, "connect to ftp server")
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Login(props.Username, props.Password); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransfer, err, "ftp login")
	}
	remotePath := path.Join(props.RemoteDirectory, fileName)
	if err := conn.Stor(remotePath, content); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransfer, err, "store artifact on ftp server")
	}
	return nil
}
