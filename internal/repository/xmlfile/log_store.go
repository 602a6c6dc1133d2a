package xmlfile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vytor/syncstore/internal/errors"
	"github.com/vytor/syncstore/internal/logger"
	"github.com/vytor/syncstore/internal/models"
	"github.com/vytor/syncstore/internal/repository"
)

type logStore struct {
	primary string
}

// NewLogStore creates a LogStore writing under the primary root. Sync logs
// live at <primary>/sync/logs/<name>.log.xml and never fall back to the
// secondary root.
func NewLogStore(primary string) repository.LogStore {
	return &logStore{primary: filepath.Clean(primary)}
}

func (s *logStore) Load(ctx context.Context, profileName string) (*models.SyncLog, error) {
	log := logger.FromContext(ctx).WithPrefix("log_store")

	path := s.logPath(profileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debug("no sync log found for profile: %s", profileName)
		return nil, nil
	}
	if err != nil {
		log.Warn("failed to open sync log for reading: %s: %v", path, err)
		return nil, nil
	}

	syncLog, err := models.ParseSyncLog(data)
	if err != nil {
		log.Warn("failed to parse sync log %s: %v", path, err)
		return nil, nil
	}
	return syncLog, nil
}

func (s *logStore) Save(ctx context.Context, syncLog *models.SyncLog) error {
	log := logger.FromContext(ctx).WithPrefix("log_store")
	log.Debug("saving sync log for profile: %s", syncLog.ProfileName())

	doc, err := syncLog.ToXML()
	if err != nil {
		return errors.NewParseError("sync log", err)
	}

	dir := filepath.Join(s.primary, models.TypeSync, logDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("failed to create log directory %s: %v", dir, err)
		return errors.NewWriteError(dir, err)
	}

	path := s.logPath(syncLog.ProfileName())
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		log.Error("failed to write sync log %s: %v", path, err)
		return errors.NewWriteError(path, err)
	}
	return nil
}

func (s *logStore) logPath(profileName string) string {
	return filepath.Join(s.primary, models.TypeSync, logDirName, profileName+logExt+formatExt)
}
