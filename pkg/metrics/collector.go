package metrics

import (
	"sync"
)

// Collector collects running counters across a sweep or decode session.
type Collector struct {
	mu sync.RWMutex

	framesReceived   uint64
	framesDecoded    uint64
	subframesDecoded uint64
	subframesTotal   uint64

	bitErrors    uint64
	bitsCompared uint64

	currentEbN0DB float64
	currentBER    float64

	syncLosses uint64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// FrameReceived records that the correlator delivered a frame to the
// decode path, regardless of whether RS decoding later succeeded.
func (c *Collector) FrameReceived() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.framesReceived++
}

// FrameDecoded records a frame whose RS framer reported overall success.
func (c *Collector) FrameDecoded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.framesDecoded++
}

// SubframeResult records one RS subblock's pass/fail outcome.
func (c *Collector) SubframeResult(ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subframesTotal++
	if ok {
		c.subframesDecoded++
	}
}

// BitsCompared records a batch of payload-bit comparisons against the
// bit errors found within them, feeding the running BER estimate.
func (c *Collector) BitsCompared(errors, total uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bitErrors += errors
	c.bitsCompared += total
	if c.bitsCompared > 0 {
		c.currentBER = float64(c.bitErrors) / float64(c.bitsCompared)
	}
}

// SetCurrentEbN0 records the Eb/N0 point a sweep is currently operating at.
func (c *Collector) SetCurrentEbN0(ebn0dB float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentEbN0DB = ebn0dB
}

// SyncLost records a correlator transition from LOCK back to SEARCH.
func (c *Collector) SyncLost() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLosses++
}

// Reset zeroes all counters. Useful between sweep runs or in tests.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.framesReceived = 0
	c.framesDecoded = 0
	c.subframesDecoded = 0
	c.subframesTotal = 0
	c.bitErrors = 0
	c.bitsCompared = 0
	c.currentEbN0DB = 0
	c.currentBER = 0
	c.syncLosses = 0
}

// GetFramesReceived returns the total frames delivered by the correlator.
func (c *Collector) GetFramesReceived() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.framesReceived
}

// GetFramesDecoded returns the total frames that decoded successfully.
func (c *Collector) GetFramesDecoded() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.framesDecoded
}

// GetSubframesDecoded returns the total RS subblocks that decoded successfully.
func (c *Collector) GetSubframesDecoded() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subframesDecoded
}

// GetSubframesTotal returns the total RS subblocks attempted.
func (c *Collector) GetSubframesTotal() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subframesTotal
}

// GetBitErrors returns the cumulative bit error count.
func (c *Collector) GetBitErrors() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bitErrors
}

// GetBitsCompared returns the cumulative number of bits compared.
func (c *Collector) GetBitsCompared() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bitsCompared
}

// GetCurrentBER returns the running bit error rate estimate.
func (c *Collector) GetCurrentBER() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentBER
}

// GetCurrentEbN0 returns the Eb/N0 point a sweep is currently operating at.
func (c *Collector) GetCurrentEbN0() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentEbN0DB
}

// GetSyncLosses returns the number of LOCK-to-SEARCH transitions observed.
func (c *Collector) GetSyncLosses() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.syncLosses
}
