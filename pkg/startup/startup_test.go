package startup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDependency struct {
	name      string
	dependsOn []string
	failures  int
	log       *[]string
}

func (f *fakeDependency) GetName() string     { return f.name }
func (f *fakeDependency) DependsOn() []string { return f.dependsOn }

func (f *fakeDependency) Start(ctx context.Context) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("not ready")
	}
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f *fakeDependency) Stop(ctx context.Context) error {
	*f.log = append(*f.log, "stop "+f.name)
	return nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestStartup_StartsInDependencyOrderAndStopsInReverse(t *testing.T) {
	var log []string
	s := NewStartup(testLogger(), 3).WithBackoff(time.Millisecond)
	s.AddDependency(&fakeDependency{name: "events", dependsOn: []string{"session"}, log: &log})
	s.AddDependency(&fakeDependency{name: "session", log: &log})

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, StatusStarted, s.Status("events"))

	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, []string{"start session", "start events", "stop events", "stop session"}, log)
	assert.Equal(t, StatusStopped, s.Status("session"))
}

func TestStartup_RetriesWithBackoff(t *testing.T) {
	var log []string
	s := NewStartup(testLogger(), 3).WithBackoff(time.Millisecond)
	s.AddDependency(&fakeDependency{name: "redis", failures: 2, log: &log})

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, []string{"start redis"}, log)
}

func TestStartup_GivesUp(t *testing.T) {
	var log []string
	s := NewStartup(testLogger(), 2).WithBackoff(time.Millisecond)
	s.AddDependency(&fakeDependency{name: "kafka", failures: 5, log: &log})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startup failed after 2 attempts")
	assert.Equal(t, StatusFailed, s.Status("kafka"))
}

func TestStartup_UnknownDependency(t *testing.T) {
	var log []string
	s := NewStartup(testLogger(), 1)
	s.AddDependency(&fakeDependency{name: "events", dependsOn: []string{"missing"}, log: &log})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dependency 'missing'")
}
