package main

import (
	"context"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"github.com/vango-dev/hyperoop/internal/config"
	"github.com/vango-dev/hyperoop/internal/errors"
	"github.com/vango-dev/hyperoop/pkg/snapshot"
)

// openStore returns the configured snapshot store. Callers release it with
// closeStore.
func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.SnapshotStore() {
	case config.StoreS3:
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.Snapshot.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Snapshot.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.New("E021").
				WithDetail("could not load AWS configuration").
				Wrap(err)
		}
		return snapshot.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Snapshot.Bucket, cfg.Snapshot.Prefix), nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Snapshot.Redis})
		prefix := cfg.Snapshot.Prefix
		if prefix == "" {
			prefix = "hyperoop:snapshot:"
		}
		return snapshot.NewRedisStore(client, prefix, 0), nil

	case config.StoreBolt:
		store, err := snapshot.OpenBoltStore(cfg.SnapshotDBPath())
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := snapshot.NewFileStore(cfg.SnapshotPath())
	if err != nil {
		return nil, err
	}
	return store, nil
}

// closeStore closes stores that hold a connection or a file lock.
func closeStore(store snapshot.Store) {
	if c, ok := store.(io.Closer); ok {
		c.Close()
	}
}
