// Package xmlfile implements the repository interfaces over plain XML
// documents on disk. Profiles live at <root>/<type>/<name>.xml under two
// configured roots: a read-write primary and a read-only secondary fallback.
// Writes use a backup-file protocol instead of atomic renames: the previous
// document is copied to <path>.bak before the truncate-and-write, and a
// backup found at load time means the last write never completed.
package xmlfile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vytor/syncstore/internal/errors"
	"github.com/vytor/syncstore/internal/logger"
	"github.com/vytor/syncstore/internal/models"
	"github.com/vytor/syncstore/internal/repository"
)

const (
	formatExt  = ".xml"
	backupExt  = ".bak"
	logExt     = ".log"
	logDirName = "logs"
)

type profileStore struct {
	primary   string
	secondary string
}

// NewProfileStore creates a ProfileStore over the two configured roots.
// All writes target primary; secondary is a read-only fallback.
func NewProfileStore(primary, secondary string) repository.ProfileStore {
	return &profileStore{
		primary:   strings.TrimRight(primary, string(os.PathSeparator)),
		secondary: strings.TrimRight(secondary, string(os.PathSeparator)),
	}
}

func (s *profileStore) Load(ctx context.Context, name, typ string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_store")
	log.Debug("loading profile: name=%s type=%s", name, typ)

	path := s.findProfileFile(name, typ)
	backupPath := path + backupExt

	// Backups exist only under the primary root; the secondary is never
	// written, not even to repair it.
	inPrimary := path == filepath.Join(s.primary, typ, name+formatExt)
	if inPrimary {
		s.restoreBackupIfFound(ctx, path, backupPath)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debug("profile file not found: %s", path)
		return nil, nil
	}
	if err != nil {
		log.Warn("failed to open profile file for reading: %s: %v", path, err)
		return nil, nil
	}

	p, err := models.ParseProfile(data)
	if err != nil {
		log.Warn("failed to parse profile %s: %v", name, err)
		return nil, nil
	}

	// A fully successful load retires any lingering backup.
	if inPrimary && fileExists(backupPath) {
		if err := os.Remove(backupPath); err != nil {
			log.Warn("failed to remove backup file %s: %v", backupPath, err)
		}
	}

	return p, nil
}

func (s *profileStore) Save(ctx context.Context, p *models.Profile) error {
	log := logger.FromContext(ctx).WithPrefix("profile_store")
	log.Debug("saving profile: name=%s type=%s", p.Name(), p.Type())

	doc, err := p.ToXML()
	if err != nil {
		log.Warn("no profile data to write: %v", err)
		return errors.NewValidationError("profile", err.Error())
	}

	dir := filepath.Join(s.primary, p.Type())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("failed to create profile directory %s: %v", dir, err)
		return errors.NewWriteError(dir, err)
	}

	path := filepath.Join(dir, p.Name()+formatExt)
	backupPath := path + backupExt

	if fileExists(path) {
		if err := copyFile(path, backupPath); err != nil {
			log.Warn("failed to create profile backup: %v", err)
		}
	}

	if err := os.WriteFile(path, doc, 0o644); err != nil {
		// The backup stays behind as the recovery source for the
		// next load.
		log.Error("failed to save profile %s: %v", p.Name(), err)
		return errors.NewWriteError(path, err)
	}

	if err := os.Remove(backupPath); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to remove backup file %s: %v", backupPath, err)
	}
	return nil
}

func (s *profileStore) Remove(ctx context.Context, name, typ string) error {
	log := logger.FromContext(ctx).WithPrefix("profile_store")
	log.Debug("removing profile: name=%s type=%s", name, typ)

	// Load first: the protected flag lives in the profile data and a
	// protected profile must be refused before the filesystem is touched.
	p, err := s.Load(ctx, name, typ)
	if err != nil {
		return err
	}
	if p == nil {
		log.Debug("profile not found, cannot remove: %s", name)
		return errors.NewNotFoundError("profile", name)
	}
	if p.IsProtected() {
		log.Debug("cannot remove protected profile: %s", name)
		return errors.NewProtectedError(name)
	}

	path := filepath.Join(s.primary, typ, name+formatExt)
	if err := os.Remove(path); err != nil {
		log.Warn("failed to remove profile file %s: %v", path, err)
		return errors.NewWriteError(path, err)
	}
	// A stale backup would resurrect the profile on the next load.
	if err := os.Remove(path + backupExt); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to remove backup file: %v", err)
	}

	if typ == models.TypeSync {
		logPath := s.syncLogPath(name)
		if err := os.Remove(logPath); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove sync log %s: %v", logPath, err)
			return errors.NewWriteError(logPath, err)
		}
	}
	return nil
}

// Rename renames a sync profile document together with its log document.
// When the log rename fails after the profile rename succeeded, the profile
// rename is rolled back so the store is never split between two names.
func (s *profileStore) Rename(ctx context.Context, oldName, newName string) error {
	log := logger.FromContext(ctx).WithPrefix("profile_store")
	log.Debug("renaming profile: %s -> %s", oldName, newName)

	src := filepath.Join(s.primary, models.TypeSync, oldName+formatExt)
	dst := filepath.Join(s.primary, models.TypeSync, newName+formatExt)
	if err := os.Rename(src, dst); err != nil {
		log.Warn("failed to rename profile %s: %v", oldName, err)
		return errors.NewWriteError(src, err)
	}

	srcLog := s.syncLogPath(oldName)
	if !fileExists(srcLog) {
		// Nothing to carry over; a profile that has never synced has
		// no log document.
		return nil
	}
	if err := os.Rename(srcLog, s.syncLogPath(newName)); err != nil {
		log.Warn("failed to rename sync log for %s, rolling back: %v", oldName, err)
		if rbErr := os.Rename(dst, src); rbErr != nil {
			log.Error("rollback of profile rename failed: %v", rbErr)
		}
		return errors.NewWriteError(srcLog, err)
	}
	return nil
}

func (s *profileStore) ProfileNames(ctx context.Context, typ string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_store")

	names := listDocumentNames(filepath.Join(s.primary, typ))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	// The secondary root is a strictly lower-priority overlay: it only
	// contributes names the primary does not already have.
	for _, name := range listDocumentNames(filepath.Join(s.secondary, typ)) {
		if !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}

	log.Debug("found %d profiles of type %s", len(names), typ)
	return names, nil
}

// findProfileFile resolves the document path for a profile: primary wins if
// the file exists there, the secondary is the fallback, and a profile that
// exists in neither defaults to the primary path as the target of a future
// save.
func (s *profileStore) findProfileFile(name, typ string) string {
	rel := filepath.Join(typ, name+formatExt)
	primaryPath := filepath.Join(s.primary, rel)
	secondaryPath := filepath.Join(s.secondary, rel)

	if fileExists(primaryPath) {
		return primaryPath
	}
	if fileExists(secondaryPath) {
		return secondaryPath
	}
	return primaryPath
}

// restoreBackupIfFound repairs an interrupted write. A parseable backup
// means the previous save never completed: the possibly corrupt document is
// replaced with the backup's content. An unparseable backup is discarded so
// recovery is not retried fruitlessly on every load.
func (s *profileStore) restoreBackupIfFound(ctx context.Context, path, backupPath string) {
	if !fileExists(backupPath) {
		return
	}
	log := logger.FromContext(ctx).WithPrefix("profile_store")
	log.Warn("profile backup found, the document may be corrupted: %s", path)

	data, err := os.ReadFile(backupPath)
	if err == nil {
		_, err = models.ParseProfile(data)
	}
	if err != nil {
		log.Warn("backup file is unusable, removing: %v", err)
		if rmErr := os.Remove(backupPath); rmErr != nil {
			log.Warn("failed to remove backup file: %v", rmErr)
		}
		return
	}

	log.Debug("restoring profile from backup: %s", path)
	os.Remove(path)
	if err := copyFile(backupPath, path); err != nil {
		log.Error("failed to restore profile from backup: %v", err)
	}
}

func (s *profileStore) syncLogPath(profileName string) string {
	return filepath.Join(s.primary, models.TypeSync, logDirName, profileName+logExt+formatExt)
}

func listDocumentNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, formatExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, formatExt))
	}
	return names
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
