package liquidation

// ReduceLatest collapses a stream of events into the latest known event per
// address. An event replaces the stored one only when its timestamp is
// strictly greater, so the first event seen wins among equal timestamps.
func ReduceLatest(events []Event) map[string]Event {
	latest := make(map[string]Event)
	for _, ev := range events {
		cur, ok := latest[ev.Address]
		if !ok || ev.Timestamp > cur.Timestamp {
			latest[ev.Address] = ev
		}
	}
	return latest
}
