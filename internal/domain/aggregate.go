package domain

// ChannelAggregate holds per-status order counts for one channel.
type ChannelAggregate struct {
	Channel string `json:"channel"`
	Success int    `json:"success"`
	Failed  int    `json:"failed"`
	Pending int    `json:"pending"`
}

// Total returns the number of known-status orders in the aggregate.
func (a ChannelAggregate) Total() int {
	return a.Success + a.Failed + a.Pending
}

// Count returns the counter for a known status, or 0.
func (a ChannelAggregate) Count(status OrderStatus) int {
	switch status {
	case StatusSuccess:
		return a.Success
	case StatusFailed:
		return a.Failed
	case StatusPending:
		return a.Pending
	default:
		return 0
	}
}

// Aggregate groups orders by channel in first-seen order and counts them per
// status in a single pass. Orders with an unknown status still register their
// channel but are not counted.
func Aggregate(orders Collection) []ChannelAggregate {
	index := make(map[string]int)
	result := make([]ChannelAggregate, 0)
	for _, o := range orders {
		i, ok := index[o.Channel]
		if !ok {
			i = len(result)
			index[o.Channel] = i
			result = append(result, ChannelAggregate{Channel: o.Channel})
		}
		switch o.Status {
		case StatusSuccess:
			result[i].Success++
		case StatusFailed:
			result[i].Failed++
		case StatusPending:
			result[i].Pending++
		}
	}
	return result
}

// MaxTotal returns the largest per-channel total, used to scale charts.
func MaxTotal(aggregates []ChannelAggregate) int {
	maxTotal := 0
	for _, a := range aggregates {
		if t := a.Total(); t > maxTotal {
			maxTotal = t
		}
	}
	return maxTotal
}
