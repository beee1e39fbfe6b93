package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/twoloonies/loonies/internal/config"
	"github.com/twoloonies/loonies/internal/logging"
	"github.com/twoloonies/loonies/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleSubmission() model.Submission {
	return model.Submission{
		Version: model.SubmissionVersion,
		Entries: []model.EntryRecord{
			{
				Category: model.CategoryIncome, Field: "biweeklyPaycheque", Label: "Bi-weekly Paycheque",
				Amount: dec("1000"), MonthlyAmount: dec("2166.67"),
				PayPeriod: model.PayPeriodBiweekly, Origin: model.OriginFixed,
			},
			{
				Category: model.CategoryExpense, Field: "custom_1", Label: "Gym, Pool",
				Amount: dec("45.5"), MonthlyAmount: dec("45.5"),
				PayPeriod: model.PayPeriodMonthly, Origin: model.OriginCustom,
			},
		},
		Totals: model.Totals{
			Income:   dec("2166.67"),
			Expenses: dec("45.5"),
			Net:      dec("2121.17"),
		},
		SubmittedAt: time.Date(2025, 2, 3, 4, 5, 6, 7_000_000, time.UTC),
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithOutput(config.LogConfig{Level: "info", Format: "json"}, &buf)

	err := NewLogSink(log).Deliver(context.Background(), sampleSubmission())
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "submit", line["component"])
	assert.EqualValues(t, 2, line["entries"])
	assert.Contains(t, line["msg"], `"field":"biweeklyPaycheque"`)
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir)
	doc := sampleSubmission()

	require.NoError(t, sink.Deliver(context.Background(), doc))

	paths := sink.Paths(doc)
	assert.True(t, strings.HasSuffix(paths.JSON, "submission-20250203T040506.007Z.json"), paths.JSON)

	data, err := os.ReadFile(paths.JSON)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "2025-02-03T04:05:06.007Z", got["submittedAt"])
	assert.Len(t, got["entries"], 2)

	f, err := os.Open(paths.CSV)
	require.NoError(t, err)
	defer f.Close()
	records, err := ReadRecords(f)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Gym, Pool", records[1].Label)
	assert.True(t, records[0].MonthlyAmount.Equal(dec("2166.67")))
	assert.Equal(t, model.PayPeriodBiweekly, records[0].PayPeriod)
	assert.Equal(t, model.OriginCustom, records[1].Origin)
}

func TestFileSink_Workbook(t *testing.T) {
	sink := NewFileSink(t.TempDir())
	doc := sampleSubmission()
	require.NoError(t, sink.Deliver(context.Background(), doc))

	wb, err := excelize.OpenFile(sink.Paths(doc).XLSX)
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, []string{"Entries", "Totals"}, wb.GetSheetList())
}

func TestFileSink_FailedWriteLeavesNoPartialExport(t *testing.T) {
	sink := NewFileSink(t.TempDir())
	doc := sampleSubmission()
	paths := sink.Paths(doc)
	require.NoError(t, os.MkdirAll(paths.XLSX, 0o755))

	require.Error(t, sink.Deliver(context.Background(), doc))
	for _, p := range []string{paths.JSON, paths.CSV} {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), p)
	}

	require.NoError(t, os.Remove(paths.XLSX))
	require.NoError(t, sink.Deliver(context.Background(), doc))
	entries, err := os.ReadDir(filepath.Dir(paths.JSON))
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, sampleSubmission()))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Entries")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, strings.Split(Header, ","), rows[0])
	assert.Equal(t, []string{"income", "biweeklyPaycheque", "Bi-weekly Paycheque", "1000", "2166.67", "biweekly", "fixed"}, rows[1])
	assert.Equal(t, "Gym, Pool", rows[2][2])

	totals, err := wb.GetRows("Totals")
	require.NoError(t, err)
	require.Len(t, totals, 4)
	assert.Equal(t, []string{"income", "2166.67"}, totals[0])
	assert.Equal(t, []string{"submitted_at", "2025-02-03T04:05:06.007Z"}, totals[3])
}

func TestWriteRecords_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, sampleSubmission().Entries))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, "income,biweeklyPaycheque,Bi-weekly Paycheque,1000,2166.67,biweekly,fixed", lines[1])
	assert.Equal(t, `expense,custom_1,"Gym, Pool",45.5,45.50,monthly,custom`, lines[2])
}

func TestUnmarshalRecord_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"short row", []string{"income", "x"}},
		{"bad category", []string{"savings", "x", "X", "1", "1", "monthly", "fixed"}},
		{"bad amount", []string{"income", "x", "X", "one", "1", "monthly", "fixed"}},
		{"bad monthly", []string{"income", "x", "X", "1", "", "monthly", "fixed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalRecord(tt.row)
			assert.Error(t, err)
		})
	}
}

type fakePublisher struct {
	exchange, key string
	msg           amqp091.Publishing
	err           error
}

func (p *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return p.err
}

func TestAMQPSink_Deliver(t *testing.T) {
	pub := &fakePublisher{}
	sink := newAMQPSink(pub, "loonies", "submissions", logging.Discard())
	doc := sampleSubmission()

	require.NoError(t, sink.Deliver(context.Background(), doc))

	assert.Equal(t, "loonies", pub.exchange)
	assert.Equal(t, "submissions", pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, doc.SubmittedAt, pub.msg.Timestamp)

	var body map[string]any
	require.NoError(t, json.Unmarshal(pub.msg.Body, &body))
	assert.EqualValues(t, 1, body["version"])
	assert.NoError(t, sink.Close())
}

func TestAMQPSink_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	sink := newAMQPSink(pub, "loonies", "submissions", logging.Discard())

	err := sink.Deliver(context.Background(), sampleSubmission())
	assert.ErrorContains(t, err, "channel closed")
}

func TestNew(t *testing.T) {
	log := logrus.New()

	sink, closeFn, err := New(config.SubmissionConfig{Sink: config.SinkLog}, log)
	require.NoError(t, err)
	assert.IsType(t, &LogSink{}, sink)
	assert.NoError(t, closeFn())

	sink, _, err = New(config.SubmissionConfig{Sink: config.SinkFile, ExportDir: t.TempDir()}, log)
	require.NoError(t, err)
	assert.IsType(t, &FileSink{}, sink)

	_, _, err = New(config.SubmissionConfig{Sink: "email"}, log)
	assert.Error(t, err)

	_, _, err = New(config.SubmissionConfig{Sink: config.SinkAMQP, AMQP: config.AMQPConfig{URL: "amqp://127.0.0.1:1/"}}, log)
	assert.Error(t, err)
}
