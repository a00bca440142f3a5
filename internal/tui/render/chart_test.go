package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

func TestScaleSegmentsProportional(t *testing.T) {
	seg := ScaleSegments(domain.ChannelAggregate{Success: 5, Failed: 3, Pending: 2}, 10, 20)

	assert.Equal(t, Segments{Success: 10, Failed: 6, Pending: 4}, seg)
}

func TestScaleSegmentsRelativeToLargestChannel(t *testing.T) {
	seg := ScaleSegments(domain.ChannelAggregate{Success: 1, Pending: 1}, 10, 20)

	assert.Equal(t, 4, seg.Total())
	assert.Equal(t, 0, seg.Failed)
}

func TestScaleSegmentsKeepsSmallCountsVisible(t *testing.T) {
	seg := ScaleSegments(domain.ChannelAggregate{Success: 100, Failed: 1, Pending: 1}, 102, 10)

	assert.Equal(t, 10, seg.Total())
	assert.GreaterOrEqual(t, seg.Failed, 1)
	assert.GreaterOrEqual(t, seg.Pending, 1)
}

func TestScaleSegmentsNeverExceedsWidth(t *testing.T) {
	for total := 1; total <= 60; total++ {
		for failed := 0; failed <= total; failed++ {
			a := domain.ChannelAggregate{Success: total - failed, Failed: failed, Pending: failed % 3}
			seg := ScaleSegments(a, 60, 15)
			assert.LessOrEqual(t, seg.Total(), 15)
			assert.GreaterOrEqual(t, seg.Total(), 1)
		}
	}
}

func TestScaleSegmentsEmpty(t *testing.T) {
	assert.Equal(t, Segments{}, ScaleSegments(domain.ChannelAggregate{}, 10, 20))
	assert.Equal(t, Segments{}, ScaleSegments(domain.ChannelAggregate{Success: 1}, 0, 20))
}

func TestChartOneLinePerChannel(t *testing.T) {
	aggs := domain.Aggregate(domain.Collection{
		{Channel: "shopify", Status: domain.StatusFailed},
		{Channel: "shopify", Status: domain.StatusSuccess},
		{Channel: "amazon", Status: domain.StatusPending},
	})

	lines := strings.Split(plain(Chart(aggs, 60)), "\n")

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "shopify"))
	assert.True(t, strings.HasSuffix(lines[0], "1/1/0"))
	assert.True(t, strings.HasPrefix(lines[1], "amazon"))
	assert.True(t, strings.HasSuffix(lines[1], "0/0/1"))
	assert.Contains(t, lines[2], "success")
}

func TestChartEmpty(t *testing.T) {
	assert.Equal(t, "No orders to chart.", plain(Chart(nil, 80)))
}

func TestStatsCards(t *testing.T) {
	stats := domain.GroupStats([]domain.StatRecord{
		{Key: domain.StatKey{Channel: "shopify", Status: domain.StatusSuccess}, Count: 7},
		{Key: domain.StatKey{Channel: "amazon", Status: "archived"}, Count: 2},
	})

	out := plain(StatsCards(stats, 80))

	assert.Contains(t, out, "shopify")
	assert.Contains(t, out, "success: 7")
	assert.Contains(t, out, "archived: 2")
	assert.Equal(t, "No stats reported.", plain(StatsCards(nil, 80)))
}
