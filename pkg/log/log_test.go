package log

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger, &buf
}

func TestErrorWithTraceIDTo_ReusesRequestID(t *testing.T) {
	logger, buf := newBufferLogger()

	traceID := ErrorWithTraceIDTo(logger, Fields{RequestIDKey: "01HQ3Z"}, "boom")

	assert.Equal(t, "01HQ3Z", traceID)
	assert.Contains(t, buf.String(), `"trace_id":"01HQ3Z"`)
	assert.Contains(t, buf.String(), `"msg":"boom"`)
}

func TestErrorWithTraceIDTo_MintsIDWithoutRequestID(t *testing.T) {
	for _, fields := range []Fields{nil, {RequestIDKey: "unknown"}, {"path": "/x"}} {
		logger, buf := newBufferLogger()

		traceID := ErrorWithTraceIDTo(logger, fields, "boom")

		_, err := uuid.Parse(traceID)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), traceID)
	}
}
