package telemetry

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// ProfilerConfig holds Pyroscope continuous profiling configuration.
type ProfilerConfig struct {
	Enabled           bool
	ServerAddress     string // e.g. "http://pyroscope:4040"
	ApplicationName   string
	BasicAuthUser     string
	BasicAuthPassword string
	// ProfileTypes names the profiles to collect, e.g. "cpu", "inuse_space",
	// "mutex_duration". Empty means CPU and memory profiles.
	ProfileTypes         []string
	MutexProfileFraction int // default 5 when a mutex profile is enabled
	BlockProfileRate     int // default 5 when a block profile is enabled
}

var knownProfileTypes = map[string]pyroscope.ProfileType{
	string(pyroscope.ProfileCPU):           pyroscope.ProfileCPU,
	string(pyroscope.ProfileAllocObjects):  pyroscope.ProfileAllocObjects,
	string(pyroscope.ProfileAllocSpace):    pyroscope.ProfileAllocSpace,
	string(pyroscope.ProfileInuseObjects):  pyroscope.ProfileInuseObjects,
	string(pyroscope.ProfileInuseSpace):    pyroscope.ProfileInuseSpace,
	string(pyroscope.ProfileGoroutines):    pyroscope.ProfileGoroutines,
	string(pyroscope.ProfileMutexCount):    pyroscope.ProfileMutexCount,
	string(pyroscope.ProfileMutexDuration): pyroscope.ProfileMutexDuration,
	string(pyroscope.ProfileBlockCount):    pyroscope.ProfileBlockCount,
	string(pyroscope.ProfileBlockDuration): pyroscope.ProfileBlockDuration,
}

var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
}

// Profiler wraps the Pyroscope profiler with lifecycle management.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	config   ProfilerConfig
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler creates and starts a Pyroscope profiler. When profiling is
// disabled it returns a no-op profiler.
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{
		logger: logger,
		config: cfg,
	}

	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled, using no-op profiler")
		return p, nil
	}

	if cfg.ServerAddress == "" {
		return nil, fmt.Errorf("profiler server address is required when profiling is enabled")
	}
	if cfg.ApplicationName == "" {
		return nil, fmt.Errorf("profiler application name is required when profiling is enabled")
	}

	profileTypes, err := parseProfileTypes(cfg.ProfileTypes)
	if err != nil {
		return nil, err
	}
	configureRuntimeProfiles(profileTypes, cfg, logger)

	tags := map[string]string{}
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		tags["hostname"] = hostname
	}

	pyroscopeCfg := pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          newPyroscopeLogger(logger),
		Tags:            tags,
		ProfileTypes:    profileTypes,
	}
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPassword != "" {
		pyroscopeCfg.BasicAuthUser = cfg.BasicAuthUser
		pyroscopeCfg.BasicAuthPassword = cfg.BasicAuthPassword
	}

	profiler, err := pyroscope.Start(pyroscopeCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
		zap.Int("profile_types", len(profileTypes)),
	)
	return p, nil
}

func parseProfileTypes(names []string) ([]pyroscope.ProfileType, error) {
	if len(names) == 0 {
		return defaultProfileTypes, nil
	}
	types := make([]pyroscope.ProfileType, 0, len(names))
	for _, name := range names {
		t, ok := knownProfileTypes[name]
		if !ok {
			return nil, fmt.Errorf("unknown profile type %q", name)
		}
		types = append(types, t)
	}
	return types, nil
}

// configureRuntimeProfiles turns on the runtime sampling that mutex and block
// profiles depend on.
func configureRuntimeProfiles(types []pyroscope.ProfileType, cfg ProfilerConfig, logger *zap.Logger) {
	var mutex, block bool
	for _, t := range types {
		switch t {
		case pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration:
			mutex = true
		case pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration:
			block = true
		}
	}
	if mutex {
		fraction := cfg.MutexProfileFraction
		if fraction <= 0 {
			fraction = 5
		}
		runtime.SetMutexProfileFraction(fraction)
		logger.Debug("Mutex profiling enabled", zap.Int("fraction", fraction))
	}
	if block {
		rate := cfg.BlockProfileRate
		if rate <= 0 {
			rate = 5
		}
		runtime.SetBlockProfileRate(rate)
		logger.Debug("Block profiling enabled", zap.Int("rate", rate))
	}
}

// Stop flushes pending profiles and stops the profiler. It is safe to call
// more than once. The SDK takes no context; it bounds the flush internally.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true

	if err := p.profiler.Stop(); err != nil {
		p.logger.Error("Error stopping profiler", zap.Error(err))
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	p.logger.Info("Pyroscope profiler stopped")
	return nil
}

// IsEnabled returns whether profiles are being collected.
func (p *Profiler) IsEnabled() bool {
	return p.config.Enabled && p.profiler != nil
}

// pyroscopeLogger adapts zap.Logger to pyroscope.Logger.
type pyroscopeLogger struct {
	logger *zap.Logger
}

func newPyroscopeLogger(logger *zap.Logger) pyroscope.Logger {
	return &pyroscopeLogger{logger: logger.Named("pyroscope")}
}

func (l *pyroscopeLogger) Infof(format string, args ...any) {
	l.logger.Sugar().Infof(format, args...)
}

func (l *pyroscopeLogger) Debugf(format string, args ...any) {
	l.logger.Sugar().Debugf(format, args...)
}

func (l *pyroscopeLogger) Errorf(format string, args ...any) {
	l.logger.Sugar().Errorf(format, args...)
}
