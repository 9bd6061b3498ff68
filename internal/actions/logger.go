// Package actions integrates the tool with the GitHub Actions runner:
// workflow-command logging and step outputs.
package actions

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InActions reports whether the process runs inside a GitHub Actions job.
func InActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// NewLogger builds the process logger. Inside Actions every entry becomes a
// workflow command on w; elsewhere a zap development console logger is used.
func NewLogger(w io.Writer, debug, annotate bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	if annotate {
		return zap.New(NewWorkflowCore(w, level))
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}

// workflowCore renders entries as GitHub workflow commands.
type workflowCore struct {
	zapcore.LevelEnabler
	mu     *sync.Mutex
	out    io.Writer
	fields []zapcore.Field
}

// NewWorkflowCore returns a zapcore.Core writing workflow commands to w.
func NewWorkflowCore(w io.Writer, enab zapcore.LevelEnabler) zapcore.Core {
	return &workflowCore{LevelEnabler: enab, mu: &sync.Mutex{}, out: w}
}

func (c *workflowCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field{}, c.fields...), fields...)
	return &clone
}

func (c *workflowCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *workflowCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	text := ent.Message + formatFields(enc.Fields)
	prefix := commandPrefix(ent.Level)
	if prefix != "" {
		text = escapeData(text)
	}
	line := prefix + text + "\n"
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.out, line)
	return err
}

func (c *workflowCore) Sync() error {
	if s, ok := c.out.(zapcore.WriteSyncer); ok {
		return s.Sync()
	}
	return nil
}

func commandPrefix(level zapcore.Level) string {
	switch {
	case level == zapcore.DebugLevel:
		return "::debug::"
	case level == zapcore.InfoLevel:
		return ""
	case level == zapcore.WarnLevel:
		return "::warning::"
	default:
		return "::error::"
	}
}

func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

// escapeData applies the workflow command data escaping rules.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}
