package redis

import (
	"context"

	"github.com/medialib/gallerybot/internal/db"
)

// SUnionStore stores the union of the given sets at dst.
func (s *Store) SUnionStore(ctx context.Context, dst string, keys ...string) error {
	cmd := s.b().Sunionstore().Destination(dst).Key(keys...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSUnionStore, Err: err}
	}
	return nil
}

// SInterStore stores the intersection of the given sets at dst.
func (s *Store) SInterStore(ctx context.Context, dst string, keys ...string) error {
	cmd := s.b().Sinterstore().Destination(dst).Key(keys...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSInterStore, Err: err}
	}
	return nil
}

// SDiffStore stores the difference of the first set against the rest at dst.
func (s *Store) SDiffStore(ctx context.Context, dst string, keys ...string) error {
	cmd := s.b().Sdiffstore().Destination(dst).Key(keys...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSDiffStore, Err: err}
	}
	return nil
}

// SRandMember returns up to count distinct random members of a set.
func (s *Store) SRandMember(ctx context.Context, key string, count int) ([]string, error) {
	cmd := s.b().Srandmember().Key(key).Count(int64(count)).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSRandMember, Err: err}
	}
	return members, nil
}

// Del deletes keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	cmd := s.b().Del().Key(keys...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
