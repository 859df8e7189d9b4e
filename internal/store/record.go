package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/mod/semver"
)

// Codec names how a record's value is encoded on disk.
type Codec string

const (
	CodecJSON Codec = "json"
	CodecZstd Codec = "zstd"
)

// compressAbove is the payload size at which records are zstd-compressed.
const compressAbove = 4 << 10

var (
	// ErrNewerVersion is returned for records written by a newer build.
	ErrNewerVersion = errors.New("record written by a newer version")

	// ErrBadVersion is returned for records whose version is not semver.
	ErrBadVersion = errors.New("record version is not valid semver")
)

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// record is one row of the records table.
type record struct {
	Key     string
	Value   []byte
	Codec   Codec
	Version string
}

func encodeValue(data []byte) ([]byte, Codec) {
	if len(data) <= compressAbove {
		return data, CodecJSON
	}
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), CodecZstd
}

// payload returns the decoded JSON document of r.
func (r record) payload() ([]byte, error) {
	switch r.Codec {
	case CodecJSON:
		return r.Value, nil
	case CodecZstd:
		out, err := decoder.DecodeAll(r.Value, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decode %s: %w", r.Key, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("record %s: unknown codec %q", r.Key, r.Codec)
	}
}

// checkVersion reports records written by a newer or unknown version.
func (r record) checkVersion(current string) error {
	if !semver.IsValid(r.Version) {
		return fmt.Errorf("%w: %q", ErrBadVersion, r.Version)
	}
	if semver.Compare(r.Version, current) > 0 {
		return fmt.Errorf("%w: %s > %s", ErrNewerVersion, r.Version, current)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (record, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("key", "value", "codec", "version").
		From(entsql.Table(recordsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return record{}, false, fmt.Errorf("query %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return record{}, false, rows.Err()
	}
	var (
		r     record
		codec string
	)
	if err := rows.Scan(&r.Key, &r.Value, &codec, &r.Version); err != nil {
		return record{}, false, fmt.Errorf("scan %s: %w", key, err)
	}
	r.Codec = Codec(codec)
	return r, true, rows.Err()
}

func (s *Store) put(ctx context.Context, key, version string, data []byte) error {
	value, codec := encodeValue(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(recordsTable).
		Columns("key", "value", "codec", "version", "updated_at").
		Values(key, value, string(codec), version, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query, qargs := entsql.Dialect(dialect.SQLite).
		Delete(recordsTable).
		Where(entsql.In("key", args...)).
		Query()
	if err := s.drv.Exec(ctx, query, qargs, nil); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}
