package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

type ProfilerConfig struct {
	Enabled       bool
	ServerAddress string
	// ApplicationName defaults to DefaultServiceName
	ApplicationName string
	// ProfileTypes defaults to CPU, allocations, in-use heap and goroutines
	ProfileTypes []pyroscope.ProfileType
}

var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// Profiler pushes continuous profiles to Pyroscope. The zero-value session
// of a disabled Profiler makes every method a no-op.
type Profiler struct {
	session  *pyroscope.Profiler
	logger   *zap.Logger
	stopOnce sync.Once
	stopErr  error
}

func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Profiler{logger: logger}
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return p, nil
	}
	if cfg.ServerAddress == "" {
		return nil, errors.New("profiler server address is required when profiling is enabled")
	}

	pc := pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          logger.Named("pyroscope").Sugar(),
		ProfileTypes:    cfg.ProfileTypes,
		Tags:            map[string]string{},
	}
	if pc.ApplicationName == "" {
		pc.ApplicationName = DefaultServiceName
	}
	if len(pc.ProfileTypes) == 0 {
		pc.ProfileTypes = defaultProfileTypes
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		pc.Tags["hostname"] = host
	}

	session, err := pyroscope.Start(pc)
	if err != nil {
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	p.session = session
	logger.Info("Pyroscope profiler started",
		zap.String("server_address", pc.ServerAddress),
		zap.String("application_name", pc.ApplicationName),
		zap.Int("profile_types", len(pc.ProfileTypes)),
	)
	return p, nil
}

// Stop flushes pending profiles. Later calls return the first result.
func (p *Profiler) Stop() error {
	p.stopOnce.Do(func() {
		if p.session == nil {
			return
		}
		if err := p.session.Stop(); err != nil {
			p.stopErr = fmt.Errorf("stop pyroscope: %w", err)
			return
		}
		p.logger.Info("Pyroscope profiler stopped")
	})
	return p.stopErr
}

func (p *Profiler) IsEnabled() bool {
	return p != nil && p.session != nil
}

// WithProfilingLabels runs fn under pprof labels so its samples can be
// filtered in Pyroscope. keyValues alternate name and value; an odd
// trailing name is dropped.
func WithProfilingLabels(ctx context.Context, fn func(context.Context), keyValues ...string) {
	keyValues = keyValues[:len(keyValues)&^1]
	pyroscope.TagWrapper(ctx, pyroscope.Labels(keyValues...), fn)
}
