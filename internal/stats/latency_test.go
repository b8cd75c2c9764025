package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_Empty(t *testing.T) {
	s := NewRecorder().Summary()
	assert.Equal(t, Summary{}, s)
}

func TestRecorder_Summary(t *testing.T) {
	r := NewRecorder()
	for i := 1; i <= 100; i++ {
		r.Record(time.Duration(i)*time.Millisecond, i%10 != 0)
	}

	s := r.Summary()
	assert.Equal(t, int64(100), s.Count)
	assert.Equal(t, int64(90), s.Successes)
	assert.Equal(t, int64(10), s.Failures)

	// HDR histograms are accurate to 3 significant figures.
	assert.InDelta(t, float64(time.Millisecond), float64(s.Min), float64(10*time.Microsecond))
	assert.InDelta(t, float64(100*time.Millisecond), float64(s.Max), float64(time.Millisecond))
	assert.InDelta(t, float64(50*time.Millisecond), float64(s.P50), float64(time.Millisecond))
	assert.InDelta(t, float64(90*time.Millisecond), float64(s.P90), float64(time.Millisecond))
	assert.InDelta(t, float64(99*time.Millisecond), float64(s.P99), float64(time.Millisecond))
	assert.InDelta(t, float64(50500*time.Microsecond), float64(s.Mean), float64(time.Millisecond))
}

func TestRecorder_Clamps(t *testing.T) {
	r := NewRecorder()
	r.Record(0, true)
	r.Record(2*time.Hour, true)

	s := r.Summary()
	assert.Equal(t, int64(2), s.Count)
	assert.Equal(t, time.Microsecond, s.Min)
	assert.InDelta(t, float64(time.Hour), float64(s.Max), float64(5*time.Second))
}

func TestRecorder_ConcurrentAndReset(t *testing.T) {
	r := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Record(time.Millisecond, true)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), r.Summary().Count)

	r.Reset()
	assert.Equal(t, Summary{}, r.Summary())
}
