package domain

// StatKey identifies one (channel, status) bucket reported by the service.
type StatKey struct {
	Channel string      `json:"channel" validate:"required"`
	Status  OrderStatus `json:"status" validate:"required"`
}

// StatRecord is one server-side aggregate row.
type StatRecord struct {
	Key   StatKey `json:"_id"`
	Count int     `json:"count" validate:"gte=0"`
}

// ChannelStats holds the server-reported counts for one channel.
type ChannelStats struct {
	Channel string
	Counts  map[OrderStatus]int
}

// Count returns the count for a status, 0 when not reported.
func (s ChannelStats) Count(status OrderStatus) int {
	return s.Counts[status]
}

// GroupStats folds stat records into per-channel cards in first-seen order.
// A repeated (channel, status) pair keeps the last reported count.
func GroupStats(records []StatRecord) []ChannelStats {
	index := make(map[string]int)
	result := make([]ChannelStats, 0)
	for _, r := range records {
		i, ok := index[r.Key.Channel]
		if !ok {
			i = len(result)
			index[r.Key.Channel] = i
			result = append(result, ChannelStats{Channel: r.Key.Channel, Counts: make(map[OrderStatus]int)})
		}
		result[i].Counts[r.Key.Status] = r.Count
	}
	return result
}
