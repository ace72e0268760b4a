package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortingField_String(t *testing.T) {
	assert.Equal(t, "Key", SortByKey.String())
	assert.Equal(t, "LastAccess", SortByLastAccess.String())
	assert.Equal(t, "AccessCount", SortByAccessCount.String())
	assert.Equal(t, "ComputeCost", SortByComputeCost.String())
}

func TestStat_String(t *testing.T) {
	assert.Equal(t, "factorcache_get_count", StatGetCount.String())
	assert.Equal(t, "factorcache_compute_cost", StatComputeCost.String())

	// Every stat name carries the service prefix so collectors from multiple
	// services can share a sink without collisions.
	for _, stat := range []Stat{
		StatGetCount, StatGetDuration, StatPutCount, StatPutDuration,
		StatComputeCount, StatComputeDuration, StatComputeCost,
	} {
		assert.Contains(t, stat.String(), "factorcache_")
	}
}
