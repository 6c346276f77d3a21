package logsvc

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rollbar/rollbar-go"
	rollbarerrors "github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cumaze/registro-consorcio/core"
)

// Logger writes structured logs with zap and forwards warnings and errors to rollbar when enabled.
type Logger struct {
	sugar   *zap.SugaredLogger
	rollbar bool
}

var _ core.Logger = (*Logger)(nil)

// New builds a development logger in debug mode and a JSON production logger otherwise.
// Rollbar is only enabled outside debug mode and when a token is configured.
func New(conf *core.Config) (*Logger, error) {
	var cfg zap.Config
	if conf.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, errors.Wrap(err, "building zap logger")
	}
	zl = zl.With(zap.String("app", conf.AppName), zap.String("env", conf.Env))

	enabled := !conf.Debug && conf.RollbarToken != ""
	if enabled {
		rollbar.SetToken(conf.RollbarToken)
		rollbar.SetEnvironment(conf.Env)
		rollbar.SetServerHost(conf.Server.Host)
		rollbar.SetCodeVersion(conf.Build)
		rollbar.SetStackTracer(rollbarerrors.StackTracer)
	}
	rollbar.SetEnabled(enabled)

	return &Logger{sugar: zl.Sugar(), rollbar: enabled}, nil
}

// NewWithCore wraps an existing zap core; rollbar stays disabled.
func NewWithCore(c zapcore.Core) *Logger {
	return &Logger{sugar: zap.New(c).Sugar()}
}

// expected fmt: msg | error, map[string]interface{}, anything else
func fields(args []interface{}) []interface{} {
	kv := make([]interface{}, 0, len(args)*2)
	for i, arg := range args {
		switch a := arg.(type) {
		case error:
			kv = append(kv, "error", a.Error())
		case map[string]interface{}:
			for k, v := range a {
				kv = append(kv, k, v)
			}
		default:
			kv = append(kv, argKey(i), a)
		}
	}
	return kv
}

func argKey(i int) string {
	return fmt.Sprintf("arg%d", i)
}

func (l *Logger) forward(level string, msg string, args []interface{}) {
	if !l.rollbar {
		return
	}
	rollbar.Log(level, append([]interface{}{msg}, args...)...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugw(msg, fields(args)...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.sugar.Infow(msg, fields(args)...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.forward(rollbar.WARN, msg, args)
	l.sugar.Warnw(msg, fields(args)...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.forward(rollbar.ERR, msg, args)
	l.sugar.Errorw(msg, fields(args)...)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.forward(rollbar.CRIT, msg, args)
	if l.rollbar {
		rollbar.Wait()
	}
	l.sugar.Fatalw(msg, fields(args)...)
}

// Sync flushes buffered entries and pending rollbar items.
func (l *Logger) Sync() {
	if l.rollbar {
		rollbar.Wait()
	}
	_ = l.sugar.Sync()
}
