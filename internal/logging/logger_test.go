package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleFormatPrintsOnlyMessage(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: FormatSimple, Output: &buf})
	require.NoError(t, err)

	Component(logger, "collector").WithField("commits", 3).Debug("Collected commits")

	assert.Equal(t, "Collected commits\n", buf.String())
}

func TestContextFormat(t *testing.T) {
	f := &contextFormatter{now: time.Now}
	entry := &logrus.Entry{
		Time:    time.Date(2015, time.February, 18, 10, 10, 9, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "Done",
		Data:    logrus.Fields{ComponentField: "stats", "authors": 2},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2015-02-18T10:10:09 INFO] stats: Done authors=2\n", string(out))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Output: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.Equal(t, "shown\n", buf.String())
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Format: "fancy"})
	assert.Error(t, err)
}
