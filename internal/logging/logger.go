package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Format names accepted by --log-format
const (
	FormatSimple  = "simple"
	FormatContext = "context"
)

// ComponentField names the subsystem a log line comes from (shown by the context format)
const ComponentField = "component"

// Config holds logger configuration
type Config struct {
	Level  string    // error, warn, info, debug, trace
	Format string    // simple or context
	Output io.Writer // defaults to stderr
}

// New creates a logger with the given configuration
func New(config Config) (*logrus.Logger, error) {
	if config.Level == "" {
		config.Level = "info"
	}
	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level '%s': %w", config.Level, err)
	}

	var formatter logrus.Formatter
	switch strings.ToLower(config.Format) {
	case "", FormatSimple:
		formatter = &simpleFormatter{}
	case FormatContext:
		formatter = &contextFormatter{now: time.Now}
	default:
		return nil, fmt.Errorf("invalid log format '%s' (expected simple or context)", config.Format)
	}

	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(formatter)
	logger.SetOutput(output)
	return logger, nil
}

// Component returns an entry tagged with the component name
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField(ComponentField, name)
}

// simpleFormatter prints only the message; fields are dropped
type simpleFormatter struct{}

func (f *simpleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(entry.Message + "\n"), nil
}

// contextFormatter prints "[<utc time> <LEVEL>] <component>: <message>"
// followed by the remaining fields as sorted key=value pairs
type contextFormatter struct {
	now func() time.Time
}

func (f *contextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	ts := entry.Time
	if ts.IsZero() {
		ts = f.now()
	}

	component, _ := entry.Data[ComponentField].(string)
	if component == "" {
		component = "gitclock"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s %s] %s: %s",
		ts.UTC().Format("2006-01-02T15:04:05"),
		strings.ToUpper(entry.Level.String()),
		component,
		entry.Message)
	writeFields(&b, entry.Data)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func writeFields(b *bytes.Buffer, data logrus.Fields) {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k == ComponentField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, data[k])
	}
}
