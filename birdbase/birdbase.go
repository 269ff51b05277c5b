package birdbase

import (
	"context"
	"fmt"
	"time"

	"presetbird/logger"

	"git.mills.io/prologic/bitcask"
)

var (
	Data *bitcask.Bitcask
)

// Init opens the database at path. maxValueSize of 0 keeps bitcask's default.
func Init(path string, maxValueSize int) error {
	var options []bitcask.Option
	if maxValueSize > 0 {
		options = append(options, bitcask.WithMaxValueSize(uint64(maxValueSize)))
	}

	db, err := bitcask.Open(path, options...)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", path, err)
	}
	Data = db
	return nil
}

// MergeEvery reclaims space on a fixed interval until ctx is done.
func MergeEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			Merge()
		}
	}
}

func Merge() {
	logger.Info("Merging database to reclaim space...")
	err := Data.Merge()
	if err != nil {
		logger.Error("Error merging database", "error", err)
	} else {
		logger.Info("Database merge complete.")
	}
}

func Close() error {
	if Data == nil {
		return nil
	}
	err := Data.Close()
	Data = nil
	return err
}

func PutString(key string, value string) error {
	return PutBytes(key, []byte(value))
}

func PutBytes(key string, value []byte) error {
	compressedValue, err := compress(value)
	if err != nil {
		return err
	}
	return Data.Put(CacheKey(key), compressedValue)
}

func Get(key string) ([]byte, error) {
	compressedValue, err := Data.Get(CacheKey(key))
	if err != nil {
		return nil, err
	}
	return decompress(compressedValue)
}

func GetString(key string) (string, error) {
	value, err := Get(key)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func Has(key string) bool {
	return Data.Has(CacheKey(key))
}

func Delete(key string) error {
	return Data.Delete(CacheKey(key))
}
