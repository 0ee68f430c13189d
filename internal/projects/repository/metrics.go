package repository

import "sync/atomic"

// Metrics tracks repository operation counters
type Metrics struct {
	creates         int64
	quotes          int64
	deletes         int64
	storeErrors     int64
	danglingSkipped int64
	repairs         int64
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	Creates         int64 `json:"creates"`
	Quotes          int64 `json:"quotes"`
	Deletes         int64 `json:"deletes"`
	StoreErrors     int64 `json:"storeErrors"`
	DanglingSkipped int64 `json:"danglingSkipped"`
	Repairs         int64 `json:"repairs"`
}

// Snapshot returns the current counter values
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Creates:         atomic.LoadInt64(&m.creates),
		Quotes:          atomic.LoadInt64(&m.quotes),
		Deletes:         atomic.LoadInt64(&m.deletes),
		StoreErrors:     atomic.LoadInt64(&m.storeErrors),
		DanglingSkipped: atomic.LoadInt64(&m.danglingSkipped),
		Repairs:         atomic.LoadInt64(&m.repairs),
	}
}

func (m *Metrics) recordCreate()          { atomic.AddInt64(&m.creates, 1) }
func (m *Metrics) recordQuote()           { atomic.AddInt64(&m.quotes, 1) }
func (m *Metrics) recordDelete()          { atomic.AddInt64(&m.deletes, 1) }
func (m *Metrics) recordStoreError()      { atomic.AddInt64(&m.storeErrors, 1) }
func (m *Metrics) recordDanglingSkipped() { atomic.AddInt64(&m.danglingSkipped, 1) }
func (m *Metrics) recordRepair()          { atomic.AddInt64(&m.repairs, 1) }
