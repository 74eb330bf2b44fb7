package observability

import (
	"context"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogging tees Logger into an OTLP log exporter. The exported stream
// follows the same runtime level as stdout.
func InitLogging(ctx context.Context) (func(context.Context) error, error) {

	exporter, err := otlploghttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exporter),
		),
	)

	otelCore := otelzap.NewCore(ServiceName(), otelzap.WithLoggerProvider(provider))

	Logger = zap.New(zapcore.NewTee(Logger.Core(), leveled(otelCore, level)), zap.AddCaller())

	return provider.Shutdown, nil
}

// leveledCore gates a core that has no level of its own.
type leveledCore struct {
	zapcore.Core
	enabler zapcore.LevelEnabler
}

func leveled(core zapcore.Core, enabler zapcore.LevelEnabler) zapcore.Core {
	return &leveledCore{Core: core, enabler: enabler}
}

func (c *leveledCore) Enabled(l zapcore.Level) bool {
	return c.enabler.Enabled(l) && c.Core.Enabled(l)
}

func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return leveled(c.Core.With(fields), c.enabler)
}

func (c *leveledCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.enabler.Enabled(ent.Level) {
		return ce
	}
	return c.Core.Check(ent, ce)
}
