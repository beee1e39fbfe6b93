package submit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/twoloonies/loonies/internal/config"
	"github.com/twoloonies/loonies/internal/model"
)

// Sink receives confirmed submissions.
type Sink interface {
	Deliver(ctx context.Context, doc model.Submission) error
}

// LogSink writes the serialized document to the log and goes no further.
type LogSink struct {
	log logrus.FieldLogger
}

// NewLogSink returns a LogSink.
func NewLogSink(log logrus.FieldLogger) *LogSink {
	return &LogSink{log: log.WithField("component", "submit")}
}

func (s *LogSink) Deliver(_ context.Context, doc model.Submission) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"entries":   len(doc.Entries),
		"submitted": doc.SubmittedAt,
	}).Info("serialized entries: " + string(body))
	return nil
}

// New returns the Sink selected by cfg. The returned close function releases
// any connection the sink holds.
func New(cfg config.SubmissionConfig, log logrus.FieldLogger) (Sink, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Sink {
	case config.SinkLog:
		return NewLogSink(log), noop, nil
	case config.SinkFile:
		return NewFileSink(cfg.ExportDir), noop, nil
	case config.SinkAMQP:
		sink, err := DialAMQP(cfg.AMQP, log)
		if err != nil {
			return nil, nil, err
		}
		return sink, sink.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown submission sink %q", cfg.Sink)
	}
}
