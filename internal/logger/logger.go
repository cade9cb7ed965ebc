// Package logger 提供统一的日志工具
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Level 日志级别
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel 解析日志级别字符串
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return DEBUG
	case "INFO", "info":
		return INFO
	case "WARN", "warn", "WARNING", "warning":
		return WARN
	case "ERROR", "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger 日志记录器
// 控制台输出使用 tint，文件输出使用 JSON 格式
type Logger struct {
	// 写日志持有读锁，替换或关闭文件持有写锁
	mu       sync.RWMutex
	level    slog.LevelVar
	enabled  bool
	console  bool
	file     bool
	filePath string
	out      io.Writer
	fileOut  *os.File
	logger   *slog.Logger
}

// 全局默认 logger
var defaultLogger = New()

// New 创建新的 Logger 实例
func New() *Logger {
	l := &Logger{
		enabled: true,
		console: true,
		out:     os.Stderr,
	}
	l.level.Set(slog.LevelInfo)
	l.updateOutput()
	return l
}

// Default 获取默认 logger
func Default() *Logger {
	return defaultLogger
}

// SetLevel 设置日志级别
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slogLevel())
}

// SetEnabled 设置是否启用日志
func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// SetConsole 设置是否输出到控制台
func (l *Logger) SetConsole(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = enabled
	l.updateOutput()
}

// SetWriter 替换控制台输出目标
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.updateOutput()
}

// SetFile 设置是否输出到文件
// 新文件打开失败时保留原有输出
func (l *Logger) SetFile(enabled bool, path string) error {
	var f *os.File
	if enabled && path != "" {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("无法打开日志文件: %w", err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	old := l.fileOut
	l.file = enabled
	l.filePath = path
	l.fileOut = f
	l.updateOutput()

	// 先切换 handler 再关闭旧文件
	if old != nil {
		old.Close()
	}
	return nil
}

func (l *Logger) updateOutput() {
	var handlers []slog.Handler

	if l.console && l.out != nil {
		noColor := true
		if f, ok := l.out.(*os.File); ok {
			noColor = !isatty.IsTerminal(f.Fd())
		}
		handlers = append(handlers, tint.NewHandler(l.out, &tint.Options{
			Level:      &l.level,
			TimeFormat: "15:04:05",
			NoColor:    noColor,
		}))
	}
	if l.file && l.fileOut != nil {
		handlers = append(handlers, slog.NewJSONHandler(l.fileOut, &slog.HandlerOptions{
			Level: &l.level,
		}))
	}

	switch len(handlers) {
	case 0:
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	case 1:
		l.logger = slog.New(handlers[0])
	default:
		l.logger = slog.New(fanout(handlers))
	}
}

// log 内部日志方法
func (l *Logger) log(level Level, msg string, attrs ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.enabled {
		return
	}
	l.logger.Log(context.Background(), level.slogLevel(), msg, attrs...)
}

// Debug 输出 DEBUG 级别日志
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, fmt.Sprintf(format, args...))
}

// Info 输出 INFO 级别日志
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, fmt.Sprintf(format, args...))
}

// Warn 输出 WARN 级别日志
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, fmt.Sprintf(format, args...))
}

// Error 输出 ERROR 级别日志
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, fmt.Sprintf(format, args...))
}

// LogEvent 记录带分类的事件日志
func (l *Logger) LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	status := "OK"
	level := INFO
	if !ok {
		status = "NG"
		level = ERROR
	}

	l.log(level, detail,
		slog.String("category", category),
		slog.String("status", status),
		slog.Float64("elapsed_ms", elapsedMs),
	)
}

// Close 关闭 logger，释放资源
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileOut != nil {
		err := l.fileOut.Close()
		l.fileOut = nil
		l.updateOutput()
		return err
	}
	return nil
}

// fanout 将同一条记录写入多个 handler
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}

// 包级别便捷函数
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
func LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	defaultLogger.LogEvent(category, ok, elapsedMs, detail)
}
