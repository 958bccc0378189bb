package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
	"wardreport/lib/scrapers/churchorg"
	"wardreport/lib/serviceutil"
	"wardreport/lib/snapstore"
	"wardreport/lib/timezone"
)

func createClient(ctx context.Context, cfg PortalConfig) *churchorg.Client {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	client, err := churchorg.NewClient(ctx, churchorg.ClientOptions{
		BaseUrl: cfg.BaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize portal client", err)
	}
	err = client.Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		serviceutil.Fatal("failed to sign in to the member portal", err)
	}
	slog.Info("signed in", "unit", client.UnitNumber, "ward", client.WardName, "stake", client.StakeName)
	return client
}

func openArchive(cfg ArchiveConfig) *snapstore.Store {
	if cfg.Path == "" {
		return nil
	}
	store, err := snapstore.Open(cfg.Path)
	if err != nil {
		// the archive is an optimization; a broken one should not
		// stop the run
		slog.Warn("failed to open archive, running without it", "path", cfg.Path, "err", err)
		return nil
	}
	return &store
}

// fetchArchived reads today's payload of the given kind from the
// archive, falling back to a live fetch exactly once, and archives
// what it fetched.
func fetchArchived[T any](ctx context.Context, store *snapstore.Store, kind string, fetch func(context.Context) (T, error)) (T, error) {
	var out T
	today := timezone.Now()

	if store != nil {
		raw, err := store.Get(ctx, today, kind)
		if err == nil {
			err = json.Unmarshal(raw, &out)
			if err == nil {
				slog.InfoContext(ctx, "using archived payload", "kind", kind)
				return out, nil
			}
			slog.WarnContext(ctx, "archived payload is corrupt, refetching", "kind", kind, "err", err)
		} else if !errors.Is(err, snapstore.ErrNoSnapshot) {
			slog.WarnContext(ctx, "archive read failed, refetching", "kind", kind, "err", err)
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return out, err
	}

	if store != nil {
		raw, err := json.Marshal(out)
		if err == nil {
			err = store.Put(ctx, today, kind, raw)
		}
		if err != nil {
			slog.WarnContext(ctx, "failed to archive payload", "kind", kind, "err", err)
		}
	}
	return out, nil
}

func fetchMembership(ctx context.Context, store *snapstore.Store, client *churchorg.Client) (churchorg.MembershipPayload, error) {
	return fetchArchived(ctx, store, snapstore.KindMembership, client.Membership)
}

func fetchRecommends(ctx context.Context, store *snapstore.Store, client *churchorg.Client) ([]churchorg.RecommendEntry, error) {
	return fetchArchived(ctx, store, snapstore.KindRecommends, client.RecommendEntries)
}
