package transfer

import (
	"context"
	"io"
	"time"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	"github.com/openlmis/fulfillment-backend/pkg/enums"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

// Sender pushes a staged artifact to the facility's remote destination.
type Sender interface {
	Send(ctx context.Context, props *models.TransferProperties, fileName string, content io.Reader) error
}

// ProtocolSender dispatches on the configured wire protocol.
type ProtocolSender struct {
	ftp  *FtpSender
	sftp *SftpSender
}

// NewProtocolSender builds the production sender with the given connect timeout.
func NewProtocolSender(connectTimeout time.Duration) *ProtocolSender {
	return &ProtocolSender{
		ftp:  NewFtpSender(connectTimeout),
		sftp: NewSftpSender(connectTimeout),
	}
}

// Send delivers the artifact over FTP, FTPS or SFTP per the properties.
func (s *ProtocolSender) Send(ctx context.Context, props *models.TransferProperties, fileName string, content io.Reader) error {
	switch props.Protocol {
	case enums.FtpProtocolFtp, enums.FtpProtocolFtps:
		return s.ftp.Send(ctx, props, fileName, content)
	case enums.FtpProtocolSftp:
		return s.sftp.Send(ctx, props, fileName, content)
	default:
		return pkgerrors.New(pkgerrors.CodeConfiguration, "no sender for protocol "+props.Protocol.String())
	}
}
