package observability

import "time"

// Logger is the minimal structured logging facade used across the engine.
// Callers plug in their own implementation; the default is NopLogger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field is a typed key/value pair attached to a log entry.
type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type boolField struct {
	key string
	val bool
}

func (f boolField) Key() string        { return f.key }
func (f boolField) Value() interface{} { return f.val }

type durationField struct {
	key string
	val time.Duration
}

func (f durationField) Key() string        { return f.key }
func (f durationField) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field { return stringField{key, value} }

func Int(key string, value int) Field { return intField{key, value} }

func Bool(key string, value bool) Field { return boolField{key, value} }

func Duration(key string, value time.Duration) Field { return durationField{key, value} }

func Error(key string, err error) Field { return errorField{key, err} }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// Metrics is the counter/timer facade the engine emits into. Callers plug in
// their own sink; the default is NopMetrics.
type Metrics interface {
	Count(name string, delta int, fields ...Field)
	Timing(name string, d time.Duration, fields ...Field)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) Count(string, int, ...Field)            {}
func (NopMetrics) Timing(string, time.Duration, ...Field) {}

// Standard metric names emitted by the engine.
const (
	MetricRenderTime    = "docgen.render.duration"
	MetricSerializeTime = "docgen.serialize.duration"
	MetricPageCount     = "docgen.pages.count"
	MetricCacheHit      = "docgen.cache.hit"
	MetricCacheMiss     = "docgen.cache.miss"
	MetricCacheEvict    = "docgen.cache.evict"
	MetricOutputBytes   = "docgen.output.bytes"
)
