package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rickchristie/listen"
	"github.com/rickchristie/listen/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveCall(t *testing.T) {
	c := NewCollector("listen")

	c.ObserveCall("Printer", "end_test", 10*time.Millisecond, nil)
	c.ObserveCall("Printer", "end_test", 20*time.Millisecond, nil)
	c.ObserveCall("Printer", "end_test", time.Millisecond, errors.New("boom"))
	c.ObserveCall("Printer", "end_test", time.Second, &listen.TimeoutError{Message: "late"})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.calls.WithLabelValues("Printer", "end_test", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("Printer", "end_test", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("Printer", "end_test", OutcomeTimeout)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration, "listen_listener_call_duration_seconds"))
}

func TestCollector_ObserveDropped(t *testing.T) {
	c := NewCollector("listen")

	c.ObserveDropped("Printer", "start_keyword")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.dropped.WithLabelValues("Printer", "start_keyword")))
	assert.Equal(t, 0, testutil.CollectAndCount(c.calls))
}

func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("listen")

	require.NoError(t, c.Register(reg))
	require.NoError(t, c.Register(reg), "registering twice is allowed")

	c.ObserveCall("Printer", "close", 0, nil)
	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "listen_listener_calls_total")
	assert.Contains(t, names, "listen_listener_call_duration_seconds")
}

func TestCollector_RegisterConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "listen",
		Subsystem: "listener",
		Name:      "calls_total",
		Help:      "Different help",
	})))

	err := NewCollector("listen").Register(reg)

	assert.Error(t, err)
	assert.Panics(t, func() { NewCollector("listen").MustRegister(reg) })
}

func TestCollector_AsRecorder(t *testing.T) {
	c := NewCollector("listen")
	listen.SetRecorder(c)
	t.Cleanup(func() { listen.SetRecorder(nil) })

	log := &tt.CallLog{}
	l := tt.NewRecordingListener(log, "Printer", "start_test", "end_test").
		Fail("end_test", errors.New("disk full"))
	f, err := listen.Import(l, nil, nil)
	require.NoError(t, err)
	data, result := tt.Test()

	require.NoError(t, f.StartTest(data, result))
	require.NoError(t, f.EndTest(data, result))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("Printer", "start_test", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("Printer", "end_test", OutcomeError)))
}
