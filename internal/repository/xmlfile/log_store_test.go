package xmlfile_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/syncstore/internal/models"
	"github.com/vytor/syncstore/internal/repository"
	"github.com/vytor/syncstore/internal/repository/xmlfile"
	"github.com/vytor/syncstore/internal/testutil"
)

type LogStoreSuite struct {
	suite.Suite
	primary string
	store   repository.LogStore
}

func (s *LogStoreSuite) SetupTest() {
	s.primary, _ = testutil.ProfileDirs(s.T())
	s.store = xmlfile.NewLogStore(s.primary)
}

func (s *LogStoreSuite) TestSaveAndLoad_RoundTrip() {
	ctx := context.Background()

	log := models.NewSyncLog("contacts")
	log.AddResults(models.SyncResults{
		Time:      time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		MajorCode: models.ResultSuccess,
		Scheduled: true,
		Targets: []models.TargetResults{
			{Name: "hcontacts", Added: 3, Deleted: 1, Modified: 2},
		},
	})
	log.AddResults(models.SyncResults{
		Time:      time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC),
		MajorCode: models.ResultFailed,
		MinorCode: 401,
	})

	s.Require().NoError(s.store.Save(ctx, log))

	loaded, err := s.store.Load(ctx, "contacts")
	s.Require().NoError(err)
	s.Require().NotNil(loaded)
	s.Assert().Equal("contacts", loaded.ProfileName())
	s.Assert().Equal(log.Results(), loaded.Results())

	last := loaded.LastResults()
	s.Require().NotNil(last)
	s.Assert().Equal(models.ResultFailed, last.MajorCode)
	s.Assert().Equal(401, last.MinorCode)
}

func (s *LogStoreSuite) TestLoad_NotFound() {
	loaded, err := s.store.Load(context.Background(), "missing")
	s.Require().NoError(err)
	s.Assert().Nil(loaded)
}

func (s *LogStoreSuite) TestLoad_ParseFailureIsAbsence() {
	path := filepath.Join(s.primary, "sync", "logs", "broken.log.xml")
	testutil.WriteFile(s.T(), path, "<synclog name=")

	loaded, err := s.store.Load(context.Background(), "broken")
	s.Require().NoError(err)
	s.Assert().Nil(loaded)
}

func (s *LogStoreSuite) TestSave_OverwritesExisting() {
	ctx := context.Background()

	log := models.NewSyncLog("contacts")
	log.AddResults(models.SyncResults{Time: time.Now().UTC().Truncate(time.Second)})
	s.Require().NoError(s.store.Save(ctx, log))
	log.AddResults(models.SyncResults{
		Time:      time.Now().UTC().Truncate(time.Second).Add(time.Hour),
		MajorCode: models.ResultSuccess,
	})
	s.Require().NoError(s.store.Save(ctx, log))

	loaded, err := s.store.Load(ctx, "contacts")
	s.Require().NoError(err)
	s.Require().NotNil(loaded)
	s.Assert().Len(loaded.Results(), 2)
}

func TestLogStoreSuite(t *testing.T) {
	suite.Run(t, new(LogStoreSuite))
}
