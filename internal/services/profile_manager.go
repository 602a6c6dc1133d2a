package services

import (
	"context"

	"github.com/vytor/syncstore/internal/criteria"
	"github.com/vytor/syncstore/internal/errors"
	"github.com/vytor/syncstore/internal/logger"
	"github.com/vytor/syncstore/internal/models"
	"github.com/vytor/syncstore/internal/repository"
	"github.com/vytor/syncstore/internal/resolver"
)

// ProfileManager is the public surface of the profile store. It composes
// the document store, the sub-profile resolver and the log store; callers
// own every profile tree it returns.
type ProfileManager interface {
	// Profile loads a single document without expansion.
	Profile(ctx context.Context, name, typ string) (*models.Profile, error)
	// SyncProfile loads a sync profile, expands its sub-profiles and
	// attaches its log, creating an empty one when none is stored.
	SyncProfile(ctx context.Context, name string) (*models.SyncProfile, error)
	ProfileNames(ctx context.Context, typ string) ([]string, error)
	AllSyncProfiles(ctx context.Context) ([]*models.SyncProfile, error)
	AllVisibleSyncProfiles(ctx context.Context) ([]*models.SyncProfile, error)
	SyncProfilesByData(ctx context.Context, subName, subType, key, value string) ([]*models.SyncProfile, error)
	SyncProfilesByCriteria(ctx context.Context, cs []criteria.Criteria) ([]*models.SyncProfile, error)
	SyncProfilesByStorage(ctx context.Context, storageName string, mustBeEnabled bool) ([]*models.SyncProfile, error)

	Save(ctx context.Context, p *models.Profile) error
	Remove(ctx context.Context, name, typ string) error
	Rename(ctx context.Context, oldName, newName string) error

	SaveSyncResults(ctx context.Context, profileName string, results models.SyncResults) error
	LastSyncResults(ctx context.Context, profileName string) (*models.SyncResults, error)
	SetSyncSchedule(ctx context.Context, name string, scheduleXML []byte) error

	// AddProfile parses a serialized profile document, saves it and
	// returns the profile's name.
	AddProfile(ctx context.Context, profileXML []byte) (string, error)
	// UpdateProfile is AddProfile restricted to not replace a stored
	// profile marked protected.
	UpdateProfile(ctx context.Context, profileXML []byte) (string, error)
	// EnableStorages toggles the enabled key on the named storage
	// sub-profiles of p. The change is in-memory; save separately.
	EnableStorages(ctx context.Context, p *models.Profile, storages map[string]bool)
	// SetRemoteTargetID records the remote sync target id on p and saves.
	SetRemoteTargetID(ctx context.Context, p *models.Profile, targetID string) error
}

type profileManager struct {
	profiles repository.ProfileStore
	logs     repository.LogStore
	expander *resolver.Expander
}

// NewProfileManager creates a ProfileManager over the given stores.
func NewProfileManager(profiles repository.ProfileStore, logs repository.LogStore) ProfileManager {
	return &profileManager{
		profiles: profiles,
		logs:     logs,
		expander: resolver.New(profiles),
	}
}

func (m *profileManager) Profile(ctx context.Context, name, typ string) (*models.Profile, error) {
	return m.profiles.Load(ctx, name, typ)
}

func (m *profileManager) SyncProfile(ctx context.Context, name string) (*models.SyncProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("manager")

	p, err := m.profiles.Load(ctx, name, models.TypeSync)
	if err != nil {
		return nil, err
	}
	if p == nil {
		log.Debug("sync profile not found: %s", name)
		return nil, nil
	}
	if err := m.expander.Expand(ctx, p); err != nil {
		return nil, err
	}

	sp, ok := models.AsSyncProfile(p)
	if !ok {
		return nil, errors.NewValidationError("type", "stored document is not a sync profile")
	}

	syncLog, err := m.logs.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if syncLog == nil {
		syncLog = models.NewSyncLog(name)
	}
	sp.SetLog(syncLog)
	return sp, nil
}

func (m *profileManager) ProfileNames(ctx context.Context, typ string) ([]string, error) {
	return m.profiles.ProfileNames(ctx, typ)
}

func (m *profileManager) AllSyncProfiles(ctx context.Context) ([]*models.SyncProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("manager")

	names, err := m.profiles.ProfileNames(ctx, models.TypeSync)
	if err != nil {
		return nil, err
	}

	var out []*models.SyncProfile
	for _, name := range names {
		sp, err := m.SyncProfile(ctx, name)
		if err != nil {
			return nil, err
		}
		if sp == nil {
			// The document disappeared or stopped parsing between the
			// listing and the load.
			log.Warn("listed sync profile could not be loaded: %s", name)
			continue
		}
		out = append(out, sp)
	}
	return out, nil
}

func (m *profileManager) AllVisibleSyncProfiles(ctx context.Context) ([]*models.SyncProfile, error) {
	all, err := m.AllSyncProfiles(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.SyncProfile
	for _, sp := range all {
		if !sp.IsHidden() {
			out = append(out, sp)
		}
	}
	return out, nil
}

// SyncProfilesByData selects sync profiles by one key/value constraint.
// A sub-profile name scopes the test to that named sub-profile; a bare
// sub-profile type scopes it to the first sub-profile of that type. A
// profile whose scoped sub-profile is missing never matches. An empty value
// turns the key test into an existence test.
func (m *profileManager) SyncProfilesByData(ctx context.Context, subName, subType, key, value string) ([]*models.SyncProfile, error) {
	all, err := m.AllSyncProfiles(ctx)
	if err != nil {
		return nil, err
	}

	var out []*models.SyncProfile
	for _, sp := range all {
		test := sp.Profile
		switch {
		case subName != "":
			test = sp.SubProfile(subName, subType)
		case subType != "":
			test = nil
			if names := sp.SubProfileNames(subType); len(names) > 0 {
				test = sp.SubProfile(names[0], subType)
			}
		}
		if test == nil {
			continue
		}

		if key != "" {
			v, ok := test.Key(key)
			if !ok || (value != "" && v != value) {
				continue
			}
		}
		out = append(out, sp)
	}
	return out, nil
}

func (m *profileManager) SyncProfilesByCriteria(ctx context.Context, cs []criteria.Criteria) ([]*models.SyncProfile, error) {
	all, err := m.AllSyncProfiles(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.SyncProfile
	for _, sp := range all {
		if criteria.MatchAll(sp.Profile, cs) {
			out = append(out, sp)
		}
	}
	return out, nil
}

// SyncProfilesByStorage selects the enabled, visible sync profiles that
// target an online service and carry the named storage sub-profile. The
// enabled and hidden tests are phrased as NotEqual against the explicit
// value so profiles relying on the defaults still match.
func (m *profileManager) SyncProfilesByStorage(ctx context.Context, storageName string, mustBeEnabled bool) ([]*models.SyncProfile, error) {
	cs := []criteria.Criteria{
		{Type: criteria.NotEqual, Key: models.KeyEnabled, Value: models.ValueFalse},
		{Type: criteria.NotEqual, Key: models.KeyHidden, Value: models.ValueTrue},
		{
			Type:           criteria.Equal,
			SubProfileType: models.TypeService,
			Key:            models.KeyDestinationType,
			Value:          models.ValueOnline,
		},
	}

	storage := criteria.Criteria{
		SubProfileName: storageName,
		SubProfileType: models.TypeStorage,
	}
	if mustBeEnabled {
		// Storages are disabled by default, so an explicit enabled=true
		// comparison is safe here.
		storage.Type = criteria.Equal
		storage.Key = models.KeyEnabled
		storage.Value = models.ValueTrue
	} else {
		storage.Type = criteria.Exists
	}
	cs = append(cs, storage)

	return m.SyncProfilesByCriteria(ctx, cs)
}

func (m *profileManager) Save(ctx context.Context, p *models.Profile) error {
	return m.profiles.Save(ctx, p)
}

func (m *profileManager) Remove(ctx context.Context, name, typ string) error {
	return m.profiles.Remove(ctx, name, typ)
}

func (m *profileManager) Rename(ctx context.Context, oldName, newName string) error {
	return m.profiles.Rename(ctx, oldName, newName)
}

func (m *profileManager) SaveSyncResults(ctx context.Context, profileName string, results models.SyncResults) error {
	log := logger.FromContext(ctx).WithPrefix("manager")
	log.Debug("saving sync results for profile: %s", profileName)

	syncLog, err := m.logs.Load(ctx, profileName)
	if err != nil {
		return err
	}
	if syncLog == nil {
		syncLog = models.NewSyncLog(profileName)
	}
	syncLog.AddResults(results)
	return m.logs.Save(ctx, syncLog)
}

func (m *profileManager) LastSyncResults(ctx context.Context, profileName string) (*models.SyncResults, error) {
	syncLog, err := m.logs.Load(ctx, profileName)
	if err != nil {
		return nil, err
	}
	if syncLog == nil {
		return nil, nil
	}
	return syncLog.LastResults(), nil
}

func (m *profileManager) SetSyncSchedule(ctx context.Context, name string, scheduleXML []byte) error {
	log := logger.FromContext(ctx).WithPrefix("manager")

	sp, err := m.SyncProfile(ctx, name)
	if err != nil {
		return err
	}
	if sp == nil {
		log.Warn("cannot set schedule, profile not found: %s", name)
		return errors.NewNotFoundError("profile", name)
	}

	schedule, err := models.ParseSchedule(scheduleXML)
	if err != nil {
		return errors.NewParseError("schedule", err)
	}

	sp.SetSyncType(models.SyncTypeScheduled)
	sp.SetSchedule(schedule)
	return m.profiles.Save(ctx, sp.Profile)
}

func (m *profileManager) AddProfile(ctx context.Context, profileXML []byte) (string, error) {
	p, err := models.ParseProfile(profileXML)
	if err != nil {
		return "", errors.NewParseError("profile", err)
	}
	if err := m.profiles.Save(ctx, p); err != nil {
		return "", err
	}
	return p.Name(), nil
}

func (m *profileManager) UpdateProfile(ctx context.Context, profileXML []byte) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("manager")

	p, err := models.ParseProfile(profileXML)
	if err != nil {
		return "", errors.NewParseError("profile", err)
	}

	existing, err := m.profiles.Load(ctx, p.Name(), p.Type())
	if err != nil {
		return "", err
	}
	if existing != nil && existing.IsProtected() {
		log.Debug("refusing to update protected profile: %s", p.Name())
		return "", errors.NewProtectedError(p.Name())
	}

	if err := m.profiles.Save(ctx, p); err != nil {
		return "", err
	}
	return p.Name(), nil
}

func (m *profileManager) EnableStorages(ctx context.Context, p *models.Profile, storages map[string]bool) {
	log := logger.FromContext(ctx).WithPrefix("manager")

	for name, enabled := range storages {
		storage := p.SubProfile(name, models.TypeStorage)
		if storage == nil {
			log.Warn("no storage sub-profile named %s in %s", name, p.Name())
			continue
		}
		storage.SetEnabled(enabled)
	}
}

func (m *profileManager) SetRemoteTargetID(ctx context.Context, p *models.Profile, targetID string) error {
	logger.FromContext(ctx).WithPrefix("manager").Debug("saving remote target id: %s", targetID)
	p.SetKey(models.KeyRemoteID, targetID)
	return m.profiles.Save(ctx, p)
}
