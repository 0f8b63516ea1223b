package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSample_Observe_TracksBounds(t *testing.T) {
	var s Sample
	for _, v := range []float64{3, 1, 2} {
		s.Observe(v)
	}
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.Equal(t, 2.0, s.Mean())
}

func TestSample_Empty_ReportsZeroesNotNaN(t *testing.T) {
	var s Sample
	stats := s.Stats()
	assert.Equal(t, SampleStats{}, stats)
	assert.Equal(t, 0.0, s.Mean())
}

func TestUtilization_Formula(t *testing.T) {
	var service Sample
	service.Observe(10)
	service.Observe(20)

	// 30 minutes of service over 2 staff across a 60-minute makespan
	got := utilization(service, 2, 60)
	assert.InDelta(t, 25.0, got, 1e-9)
}

func TestUtilization_ZeroMakespan_IsZero(t *testing.T) {
	var service Sample
	service.Observe(5)
	assert.Equal(t, 0.0, utilization(service, 2, 0))
}

func TestCollector_EmptyRun_ProducesValidReport(t *testing.T) {
	cfg := emptyConfig()
	c := NewCollector()

	report := c.Report(&cfg, false)

	assert.Equal(t, 0, report.Completed)
	assert.False(t, report.Truncated)
	assert.Equal(t, 0.0, report.Makespan)
	assert.Equal(t, 0.0, report.Throughput)
	assert.Empty(t, report.Records)
	assert.NotEmpty(t, report.RunID)
}

func TestCollector_Report_MakespanAndThroughput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalItems = 3
	c := NewCollector()
	base := time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	c.RecordCompletion(0, 10, base.Add(10*time.Minute))
	c.RecordCompletion(2, 30, base.Add(30*time.Minute))
	c.RecordCompletion(1, 20, base.Add(20*time.Minute))

	report := c.Report(&cfg, false)

	assert.Equal(t, 3, report.Completed)
	assert.Equal(t, 30.0, report.Makespan)
	assert.InDelta(t, 0.1, report.Throughput, 1e-9)
	// records keep completion order, not id order
	assert.Equal(t, []int{0, 2, 1}, []int{
		report.Records[0].ItemID, report.Records[1].ItemID, report.Records[2].ItemID,
	})
}

func TestCollector_RecordBatch_FeedsBatchStats(t *testing.T) {
	cfg := DefaultConfig()
	c := NewCollector()
	for _, size := range []int{5, 8, 6} {
		c.RecordBatch(size)
	}

	report := c.Report(&cfg, false)

	assert.Equal(t, 3, report.Batches.Count)
	assert.Equal(t, 5.0, report.Batches.Min)
	assert.Equal(t, 8.0, report.Batches.Max)
	assert.InDelta(t, 19.0/3.0, report.Batches.Mean, 1e-9)
}
