package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_ValueCoversEveryStatus(t *testing.T) {
	requests := []VoucherRequest{
		{ID: "a", Status: StatusPending, TotalValue: 500},
		{ID: "b", Status: StatusApproved, TotalValue: 300.25},
		{ID: "c", Status: StatusRejected, TotalValue: 120},
		{ID: "d", Status: StatusDraft, TotalValue: 0.1},
	}

	stats := Aggregate(requests)

	assert.Equal(t, Stats{Total: 4, Pending: 1, Approved: 1, Value: 920.35}, stats)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Aggregate(nil))
}
