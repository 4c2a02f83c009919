package services

import (
	"io"
	"strings"

	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/jlaffaye/ftp"
)

// FtpClient is the remote file store the upload flows talk to. Tests
// substitute an in-memory fake.
type FtpClient interface {
	Upload(folder, name string, data io.Reader) error
	ListWithPrefix(folder, prefix string) ([]string, error)
	Delete(folder string, names []string) (failed []string, err error)
}

// FtpService speaks FTP to the remote file store. Each call dials a
// fresh connection and quits when done.
type FtpService struct {
	logger *gecho.Logger
	cfg    *structs.FtpConfig
}

func NewFtpService(logger *gecho.Logger, cfg *structs.FtpConfig) *FtpService {
	return &FtpService{
		logger: logger,
		cfg:    cfg,
	}
}

func (fs *FtpService) connect() (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(fs.cfg.Host, ftp.DialWithTimeout(fs.cfg.Timeout))
	if err != nil {
		return nil, err
	}
	if err := conn.Login(fs.cfg.User, fs.cfg.Pass); err != nil {
		conn.Quit()
		return nil, err
	}
	if fs.cfg.BaseDir != "" {
		if err := conn.ChangeDir(fs.cfg.BaseDir); err != nil {
			conn.Quit()
			return nil, err
		}
	}
	return conn, nil
}

// Upload stores one file under folder/name, creating the folder when it
// does not exist yet.
func (fs *FtpService) Upload(folder, name string, data io.Reader) error {
	conn, err := fs.connect()
	if err != nil {
		return err
	}
	defer conn.Quit()

	// folder may already exist
	_ = conn.MakeDir(folder)

	if err := conn.ChangeDir(folder); err != nil {
		return err
	}
	if err := conn.Stor(name, data); err != nil {
		fs.logger.Error("FTP upload failed",
			gecho.Field("folder", folder),
			gecho.Field("name", name),
			gecho.Field("error", err))
		return err
	}
	return nil
}

// ListWithPrefix returns the file names in folder whose name starts with
// prefix (case-insensitive).
func (fs *FtpService) ListWithPrefix(folder, prefix string) ([]string, error) {
	conn, err := fs.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Quit()

	if err := conn.ChangeDir(folder); err != nil {
		return nil, err
	}
	names, err := conn.NameList("")
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(prefix)
	matched := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lowered) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// Delete removes the named files from folder. Files that could not be
// removed are returned; a missing file is not an error for the call as
// a whole.
func (fs *FtpService) Delete(folder string, names []string) ([]string, error) {
	conn, err := fs.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Quit()

	if err := conn.ChangeDir(folder); err != nil {
		return nil, err
	}

	failed := make([]string, 0)
	for _, name := range names {
		if err := conn.Delete(name); err != nil {
			fs.logger.Warn("FTP delete failed",
				gecho.Field("folder", folder),
				gecho.Field("name", name),
				gecho.Field("error", err))
			failed = append(failed, name)
		}
	}
	return failed, nil
}
