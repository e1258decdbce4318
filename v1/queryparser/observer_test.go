package queryparser

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/querystd/v1/observability"
)

// TestObserver is a mock observer for testing.
type TestObserver struct {
	mu         sync.Mutex
	operations []observability.OperationContext
}

func (t *TestObserver) ObserveOperation(ctx observability.OperationContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = append(t.operations, ctx)
}

func (t *TestObserver) GetOperations() []observability.OperationContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]observability.OperationContext, len(t.operations))
	copy(out, t.operations)
	return out
}

func TestObserveOperationNilObserverNoPanic(t *testing.T) {
	p := &Parser{observer: nil}

	// Should not panic.
	p.observeOperation("parse", "", "", 10*time.Millisecond, nil, 0, nil)
}

func TestWithObserver(t *testing.T) {
	obs := &TestObserver{}
	p := NewParser(DefaultConfig(), nil)

	out := p.WithObserver(obs)
	if out != p {
		t.Fatalf("WithObserver should return same instance for chaining")
	}
	if p.observer != obs {
		t.Fatalf("expected observer to be set")
	}
}

func TestParse_ReportsParseOperation(t *testing.T) {
	obs := &TestObserver{}
	p := NewParser(DefaultConfig(), nil).WithObserver(obs)

	p.Parse(Params{"status": "active", "type": "a"})

	ops := obs.GetOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, "queryparser", ops[0].Component)
	assert.Equal(t, "parse", ops[0].Operation)
	assert.NoError(t, ops[0].Error)
	assert.Equal(t, int64(3), ops[0].Size)
	assert.Equal(t, 0, ops[0].Metadata["diagnostics"])
}

func TestParse_ReportsDiagnostics(t *testing.T) {
	obs := &TestObserver{}
	p := NewParser(DefaultConfig(), nil).WithObserver(obs)

	p.Parse(Params{
		KeyNested: `[`,
		KeyRegex:  `[{"key":"name","value":"("}]`,
	})

	ops := obs.GetOperations()
	require.Len(t, ops, 3)

	assert.Equal(t, "diagnostic", ops[0].Operation)
	assert.Equal(t, KeyNested, ops[0].Resource)
	assert.Equal(t, "malformed_value", ops[0].SubResource)
	assert.ErrorIs(t, ops[0].Error, ErrMalformedValue)

	assert.Equal(t, "diagnostic", ops[1].Operation)
	assert.Equal(t, KeyRegex, ops[1].Resource)
	assert.Equal(t, "invalid_pattern", ops[1].SubResource)

	assert.Equal(t, "parse", ops[2].Operation)
	assert.Equal(t, 2, ops[2].Metadata["diagnostics"])
}

func TestParse_LogsDiagnosticsAtWarn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn("query parameter degraded", gomock.Any(), gomock.Any()).
		Do(func(msg string, err error, fields ...map[string]interface{}) {
			require.Len(t, fields, 1)
			assert.Equal(t, KeyCondition, fields[0]["param"])
			assert.Equal(t, "empty_condition", fields[0]["reason"])
			assert.Equal(t, "svc", fields[0]["service"])
			assert.ErrorIs(t, err, ErrEmptyCondition)
		}).
		Times(1)

	p := NewParser(Config{ServiceName: "svc"}, mockLogger)
	p.Parse(Params{KeyCondition: `{"key":"or","array":[]}`})
}

func TestParse_NoWarnWithoutDiagnostics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	p := NewParser(DefaultConfig(), mockLogger)
	p.Parse(Params{KeySort: "name", "deleted": "true"})
}
