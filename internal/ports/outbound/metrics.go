package outbound

// EngineMetrics is the metrics sink for the freshness engine. Implementations
// must be safe for concurrent use; a no-op implementation is valid.
type EngineMetrics interface {
	ScanCompleted(itemsScanned, itemsChanged, alertCount int)
	ClassificationRecorded(source string, changed bool)
	EstimatorCall(success bool)
	NotificationsGenerated(kind string, count int)
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

func (NopMetrics) ScanCompleted(int, int, int)          {}
func (NopMetrics) ClassificationRecorded(string, bool)  {}
func (NopMetrics) EstimatorCall(bool)                   {}
func (NopMetrics) NotificationsGenerated(string, int)   {}
