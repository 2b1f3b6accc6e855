// Package migrate runs the identifier store through its ordered,
// 1-indexed schema migrations on startup, refusing to proceed if the
// store's recorded version is newer than the binary knows about.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/autokuma-go/autokuma/internal/kuma"
	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/autokuma-go/autokuma/internal/store"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type migrationFunc func(ctx context.Context, logger log.Logger, s *store.Store, k *kuma.Client, tagName string) error

var migrations = []migrationFunc{
	migrateV1,
	migrateV2,
}

// Run advances s to the latest known schema version, applying each
// pending migration in order and persisting the version after each one
// succeeds so a crash mid-migration resumes instead of re-running
// earlier steps.
func Run(ctx context.Context, logger log.Logger, s *store.Store, k *kuma.Client, tagName string) error {
	for {
		version, err := s.GetVersion()
		if err != nil {
			return err
		}

		if version > len(migrations) {
			level.Error(logger).Log("msg", "identifier store version is newer than this binary supports, refusing to continue", "store_version", version, "binary_version", len(migrations))
			return fmt.Errorf("identifier store version %d is newer than supported version %d", version, len(migrations))
		}

		if version == len(migrations) {
			return nil
		}

		level.Info(logger).Log("msg", "migrating identifier store", "to_version", version+1)
		if err := migrations[version](ctx, logger, s, k, tagName); err != nil {
			return err
		}
		if err := s.SetVersion(version + 1); err != nil {
			return err
		}
	}
}

// migrateV1 absorbs the pre-identifier-store releases of AutoKuma,
// which tracked managed monitors purely through a marker tag's value. It
// copies each tagged monitor's (name -> id) mapping into the store and
// deletes the now-redundant tag, gated behind an explicit opt-in
// environment variable to avoid silently discarding state on an
// unexpected upgrade.
func migrateV1(ctx context.Context, logger log.Logger, s *store.Store, k *kuma.Client, tagName string) error {
	tags, err := k.GetTags(ctx)
	if err != nil {
		return err
	}

	var tagID *int64
	for _, t := range tags {
		if t.Name == tagName && t.ID != nil {
			tagID = t.ID
			break
		}
	}
	if tagID == nil {
		return nil
	}

	if os.Getenv("AUTOKUMA_MIGRATE") != "true" {
		level.Error(logger).Log("msg", "migration required but AUTOKUMA_MIGRATE is not set to 'true', refusing to continue to avoid data loss; read the changelog then set AUTOKUMA_MIGRATE=true")
		return errors.New("migration v1 requires AUTOKUMA_MIGRATE=true")
	}

	monitors := k.GetMonitors()
	count := 0
	for idStr, m := range monitors {
		for _, tag := range m.Tags {
			if tag.TagID == nil || *tag.TagID != *tagID || tag.Value == nil {
				continue
			}
			id, err := parseID(idStr)
			if err != nil {
				continue
			}
			if err := s.StoreID(model.Name{Kind: model.KindMonitor, Value: *tag.Value}, id); err != nil {
				return err
			}
			count++
		}
	}
	level.Info(logger).Log("msg", "migrated monitors from marker tag to identifier store", "count", count)

	return k.DeleteTag(ctx, *tagID)
}

// migrateV2 is a no-op placeholder: no data migration is required for
// this schema revision, only the version bump itself.
func migrateV2(ctx context.Context, logger log.Logger, s *store.Store, k *kuma.Client, tagName string) error {
	return nil
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
