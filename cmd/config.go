package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "torture.dev/pkg/torture/internal/model"
)

const (
	configBaseName = "torture"
	configFileName = configBaseName + ".yaml"

	compilerKey        = "compiler"
	runtimeKey         = "runtime"
	compilerArgsKey    = "compiler_args"
	allowedFailuresKey = "allowed_failures"
	failFastKey        = "fail_fast"
	batchParallelKey   = "batch.parallel"

	outDirFlagName      = "out-dir"
	outputFlagName      = "output"
	clearCacheFlagName  = "clear-elm-stuff"
	failFastFlagName    = "fail-fast"
	parallelFlagName    = "parallel"
	interactiveFlagName = "interactive"

	defaultBatchParallel = 1

	envPrefix = "TORTURE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".torture.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(compilerKey, "elm")
	viper.SetDefault(runtimeKey, "node")
	viper.SetDefault(compilerArgsKey, []string{})
	viper.SetDefault(allowedFailuresKey, []string{})
	viper.SetDefault(failFastKey, false)
	viper.SetDefault(batchParallelKey, defaultBatchParallel)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// readConfigFile loads the explicit --config file when given, falling back
// to ./torture.yaml when one exists.
func readConfigFile(explicit string) error {
	if explicit != "" {
		viper.SetConfigFile(explicit)

		return viper.ReadInConfig()
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return err
	}

	return nil
}

// loadConfig assembles the toolchain configuration from viper. Allowed
// failure paths from a config file are resolved against that file's
// directory, so a checked-in config works from any working directory.
func loadConfig() m.Config {
	cfg := m.Config{
		Compiler:     viper.GetString(compilerKey),
		Runtime:      viper.GetString(runtimeKey),
		CompilerArgs: viper.GetStringSlice(compilerArgsKey),
	}

	base := ""
	if used := viper.ConfigFileUsed(); used != "" {
		base = filepath.Dir(used)
	}

	for _, allowed := range viper.GetStringSlice(allowedFailuresKey) {
		if base != "" && !filepath.IsAbs(allowed) {
			allowed = filepath.Join(base, allowed)
		}

		cfg.AllowedFailures = append(cfg.AllowedFailures, m.Path(allowed))
	}

	slog.Debug("effective configuration",
		"compiler", cfg.Compiler,
		"runtime", cfg.Runtime,
		"compiler_args", cfg.CompilerArgs,
		"allowed_failures", cfg.AllowedFailures,
	)

	return cfg
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(verbose bool) {
	logPath := viper.GetString(logFilenameKey)
	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
