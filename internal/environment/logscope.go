package environment

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultLogFileName names the log file used when callers do not choose one.
	DefaultLogFileName = "run.log"

	logFileOpenErrorTemplateConstant  = "unable to open log file %q: %w"
	logFileCloseErrorTemplateConstant = "unable to close log file %q: %w"
	logFilePermissionsMode            = os.FileMode(0o644)
)

// PathResolver resolves workspace-relative file names to absolute paths.
type PathResolver interface {
	Resolve(fileName string) string
}

// WithFileLogging tees a JSON logging core writing to the resolved file into
// baseLogger while scopedAction runs. The scoped logger is handed to the
// action; the base logger is never modified, and the file core is flushed
// and closed on every exit path.
//
// An empty logFileName selects DefaultLogFileName; a nil baseLogger selects
// a no-op logger so the file receives the scoped output alone.
func WithFileLogging(pathResolver PathResolver, logFileName string, baseLogger *zap.Logger, scopedAction func(scopedLogger *zap.Logger) error) (scopedError error) {
	if len(logFileName) == 0 {
		logFileName = DefaultLogFileName
	}
	if baseLogger == nil {
		baseLogger = zap.NewNop()
	}

	logFilePath := pathResolver.Resolve(logFileName)
	logFile, openError := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePermissionsMode)
	if openError != nil {
		return fmt.Errorf(logFileOpenErrorTemplateConstant, logFilePath, openError)
	}

	fileSyncer := zapcore.AddSync(logFile)
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		fileSyncer,
		zapcore.DebugLevel,
	)

	scopedLogger := baseLogger.WithOptions(zap.WrapCore(func(existingCore zapcore.Core) zapcore.Core {
		return zapcore.NewTee(existingCore, fileCore)
	}))

	defer func() {
		_ = fileCore.Sync()
		if closeError := logFile.Close(); closeError != nil && scopedError == nil {
			scopedError = fmt.Errorf(logFileCloseErrorTemplateConstant, logFilePath, closeError)
		}
	}()

	return scopedAction(scopedLogger)
}
