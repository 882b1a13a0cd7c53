package workerpool_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facebook/redex-core/internal/workerpool"
)

func TestRunProcessesEveryItemExactlyOnce(t *testing.T) {
	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}

	var sum int64
	workerpool.Run(items, func(n int) {
		atomic.AddInt64(&sum, int64(n))
	})

	want := int64(0)
	for _, n := range items {
		want += int64(n)
	}
	assert.Equal(t, want, sum)
}

func TestRunOnEmptyInputIsANoop(t *testing.T) {
	called := false
	workerpool.Run([]int{}, func(int) { called = true })
	assert.False(t, called)
}

func TestSizeIsAtLeastOne(t *testing.T) {
	assert.GreaterOrEqual(t, workerpool.Size(), 1)
}
