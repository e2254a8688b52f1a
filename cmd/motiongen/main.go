// motiongen runs a jerk-limited, time-optimal, multi-DoF trajectory
// generator from the command line: it plans one rest-to-target move,
// drives it tick by tick on a reactor timer, and can optionally stream the
// sampled state over WebSocket or render the solved profile to a PNG.
//
// Usage:
//
//	motiongen -delta 0.01 -target 1,0.5 -config printer.cfg
//
// Options:
//
//	-config string   printer.cfg-style file with one [dof <name>] section
//	                 per axis (max_velocity/max_accel/max_jerk); if absent,
//	                 -dofs/-vmax/-amax/-jmax describe uniform axes
//	-dofs int        number of DoFs when -config is not given (default 1)
//	-delta float     cycle period in seconds (default 0.01)
//	-target string   comma-separated target positions, one per DoF
//	-serve string    telemetry WebSocket address, e.g. ":7780" (optional)
//	-plot string     PNG path to render the limiting DoF's profile (optional)
//	-log-file string also write logs to this rotating file (optional)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	trajconfig "motiongen/pkg/config"
	"motiongen/pkg/log"
	"motiongen/pkg/metrics"
	"motiongen/pkg/reactor"
	"motiongen/pkg/telemetry"
	"motiongen/pkg/trajectory"
	"motiongen/pkg/trajviz"
)

func main() {
	configFile := flag.String("config", "", "printer.cfg-style file with [dof <name>] sections")
	dofs := flag.Int("dofs", 1, "number of DoFs when -config is not given")
	vMax := flag.Float64("vmax", 1.0, "default max velocity when -config is not given")
	aMax := flag.Float64("amax", 1.0, "default max acceleration when -config is not given")
	jMax := flag.Float64("jmax", 1.0, "default max jerk when -config is not given")
	delta := flag.Float64("delta", 0.01, "cycle period in seconds")
	target := flag.String("target", "1.0", "comma-separated target positions, one per DoF")
	minDuration := flag.Float64("min-duration", 0, "force every DoF to finish no sooner than this")
	serveAddr := flag.String("serve", "", "telemetry WebSocket address, e.g. :7780")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address, e.g. :9100")
	plotPath := flag.String("plot", "", "PNG path to render the limiting DoF's profile")
	logFile := flag.String("log-file", "", "also write logs to this file, rotating at 10MB/5 backups")

	flag.Parse()

	logger := log.New("motiongen")
	if *logFile != "" {
		fileLogger, _, err := log.NewConsoleAndFileLogger("motiongen", log.RotationConfig{
			Filename:   *logFile,
			MaxSize:    10,
			MaxBackups: 5,
			Compress:   true,
		})
		if err != nil {
			logger.WithError(err).Error("failed to open -log-file")
			os.Exit(1)
		}
		logger = fileLogger
	}

	names, limits, err := loadLimits(*configFile, *dofs, *vMax, *aMax, *jMax)
	if err != nil {
		logger.WithError(err).Error("failed to load DoF limits")
		os.Exit(1)
	}

	targets, err := parseTargets(*target, len(limits))
	if err != nil {
		logger.WithError(err).Error("failed to parse -target")
		os.Exit(1)
	}

	in := &trajectory.Input{
		CurrentPosition:     make([]float64, len(limits)),
		CurrentVelocity:     make([]float64, len(limits)),
		CurrentAcceleration: make([]float64, len(limits)),
		TargetPosition:      targets,
		TargetVelocity:      make([]float64, len(limits)),
		TargetAcceleration:  make([]float64, len(limits)),
		MaxVelocity:         make([]float64, len(limits)),
		MaxAcceleration:     make([]float64, len(limits)),
		MaxJerk:             make([]float64, len(limits)),
		MinimumDuration:     *minDuration,
		DoFNames:            names,
	}
	for i, l := range limits {
		in.MaxVelocity[i] = l.MaxVelocity
		in.MaxAcceleration[i] = l.MaxAcceleration
		in.MaxJerk[i] = l.MaxJerk
	}

	for i, name := range names {
		logger.WithFields(log.Fields{
			"dof": name, "vmax": limits[i].MaxVelocity,
			"amax": limits[i].MaxAcceleration, "jmax": limits[i].MaxJerk,
		}).Info("loaded DoF limits")
	}

	registry := metrics.DefaultRegistry()
	recorder := trajectory.NewRecorder(registry)

	gen := trajectory.NewGenerator(*delta, len(limits))
	gen.SetLogger(logger)
	gen.SetRecorder(recorder)

	if *metricsAddr != "" {
		metricsSrv := metrics.NewMetricsServer(registry, *metricsAddr)
		errCh := metricsSrv.StartAsync()
		go func() {
			if err := <-errCh; err != nil {
				logger.WithError(err).Error("metrics server stopped")
			}
		}()
		logger.Info("prometheus metrics on " + *metricsAddr + "/metrics")
		defer metricsSrv.Shutdown(context.Background())
	}

	var telem *telemetry.Server
	if *serveAddr != "" {
		telem = telemetry.New(*serveAddr)
		go func() {
			if err := telem.Serve(); err != nil {
				logger.WithError(err).Error("telemetry server stopped")
			}
		}()
		logger.Info("telemetry streaming on " + *serveAddr + "/telemetry")
		defer telem.Close()
	}

	react := reactor.New()
	done := make(chan struct{})

	react.DriveGenerator(gen, in, *delta, func(out trajectory.Output, res trajectory.Result) bool {
		switch res {
		case trajectory.Working:
			if telem != nil {
				telem.Publish(telemetry.Frame{
					RunID: out.RunID, Time: out.TrajectoryTime,
					Position: out.NewPosition, Velocity: out.NewVelocity,
					Acceleration: out.NewAcceleration,
				})
			}
			return true
		case trajectory.Finished:
			logger.Info("trajectory finished")
			if *plotPath != "" {
				plotLimitingProfile(gen, *plotPath, logger)
			}
			close(done)
			return false
		default:
			logger.WithFields(log.Fields{"result": res.String()}).Error("planning failed")
			close(done)
			return false
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	react.Run()

	select {
	case <-done:
	case <-sigCh:
		logger.Info("interrupted")
	}
	react.End()
}

// loadLimits reads [dof] sections from configFile if given, else builds
// `dofs` uniform axes from the -vmax/-amax/-jmax flags.
func loadLimits(configFile string, dofs int, vMax, aMax, jMax float64) ([]string, []trajectory.AxisLimits, error) {
	if configFile == "" {
		names := make([]string, dofs)
		limits := make([]trajectory.AxisLimits, dofs)
		for i := range limits {
			names[i] = fmt.Sprintf("dof%d", i)
			limits[i] = trajectory.AxisLimits{MaxVelocity: vMax, MaxAcceleration: aMax, MaxJerk: jMax}
		}
		return names, limits, nil
	}
	cfg, err := trajconfig.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	return trajconfig.LoadDoFLimits(cfg)
}

func parseTargets(spec string, n int) ([]float64, error) {
	parts := strings.Split(spec, ",")
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		s := parts[0]
		if i < len(parts) {
			s = parts[i]
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("motiongen: invalid target %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func plotLimitingProfile(gen *trajectory.Generator, path string, logger *log.Logger) {
	profile := gen.LimitingProfile()
	if profile == nil {
		return
	}
	if err := trajviz.PlotProfile(profile, profile.Duration()+profile.TBrake, path); err != nil {
		logger.WithError(err).Error("failed to render trajectory plot")
		return
	}
	logger.Info("wrote trajectory plot to " + path)
}
