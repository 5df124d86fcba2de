package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisCacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	cache  Cache
}

func (s *RedisCacheTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	c, err := NewRedis(&Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.cache = c
}

func (s *RedisCacheTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheTestSuite))
}

type standing struct {
	Username string  `json:"username"`
	Points   float64 `json:"points"`
}

func (s *RedisCacheTestSuite) TestSetAndGet() {
	ctx := context.Background()
	want := []standing{{Username: "ace", Points: 29.5}}

	s.Require().NoError(s.cache.SetJSON(ctx, "standings:1:all", want, time.Minute))

	var got []standing
	hit, err := s.cache.GetJSON(ctx, "standings:1:all", &got)
	s.Require().NoError(err)
	s.True(hit)
	s.Equal(want, got)
	s.True(s.mr.Exists("frolf-stats:standings:1:all"))
}

func (s *RedisCacheTestSuite) TestMiss() {
	var got []standing
	hit, err := s.cache.GetJSON(context.Background(), "nope", &got)
	s.Require().NoError(err)
	s.False(hit)
}

func (s *RedisCacheTestSuite) TestExpiry() {
	ctx := context.Background()
	s.Require().NoError(s.cache.SetJSON(ctx, "median:1", 54.0, time.Minute))
	s.mr.FastForward(2 * time.Minute)

	var got float64
	hit, err := s.cache.GetJSON(ctx, "median:1", &got)
	s.Require().NoError(err)
	s.False(hit)
}

func (s *RedisCacheTestSuite) TestDeletePrefix() {
	ctx := context.Background()
	s.Require().NoError(s.cache.SetJSON(ctx, "session:1:standings:all", 1, 0))
	s.Require().NoError(s.cache.SetJSON(ctx, "session:1:median:MPO", 2, 0))
	s.Require().NoError(s.cache.SetJSON(ctx, "session:2:standings:all", 3, 0))

	s.Require().NoError(s.cache.DeletePrefix(ctx, "session:1:"))

	s.False(s.mr.Exists("frolf-stats:session:1:standings:all"))
	s.False(s.mr.Exists("frolf-stats:session:1:median:MPO"))
	s.True(s.mr.Exists("frolf-stats:session:2:standings:all"))

	s.Require().NoError(s.cache.DeletePrefix(ctx, "session:9:"))
}

func (s *RedisCacheTestSuite) TestNewRedisValidation() {
	_, err := NewRedis(nil)
	s.Error(err)
	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisCacheTestSuite) TestNoop() {
	c := NewNoop()
	var v int
	hit, err := c.GetJSON(context.Background(), "k", &v)
	s.NoError(err)
	s.False(hit)
	s.NoError(c.SetJSON(context.Background(), "k", 1, 0))
	s.NoError(c.DeletePrefix(context.Background(), "k"))
}
