package record

// KeyFunc returns the natural key used to detect duplicates on import.
type KeyFunc[T any] func(T) string

// VocabularyKey identifies a vocabulary entry by its word.
func VocabularyKey(v Vocabulary) string { return v.Word }

// TravelSpotKey identifies a travel spot by its name.
func TravelSpotKey(s TravelSpot) string { return s.Name }

// Partition splits incoming into records whose key is not yet held by existing and
// records that duplicate one. Duplicates inside incoming itself are kept. A nil key
// keeps everything.
func Partition[T any](existing, incoming []T, key KeyFunc[T]) (kept, dropped []T) {
	if key == nil {
		return incoming, nil
	}

	held := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		held[key(r)] = struct{}{}
	}
	for _, r := range incoming {
		if _, ok := held[key(r)]; ok {
			dropped = append(dropped, r)
			continue
		}
		kept = append(kept, r)
	}
	return kept, dropped
}

// Merge places incoming records ahead of existing ones, dropping those Partition
// reports as duplicates. The second return value counts dropped records.
func Merge[T any](existing, incoming []T, key KeyFunc[T]) ([]T, int) {
	kept, dropped := Partition(existing, incoming, key)
	merged := make([]T, 0, len(kept)+len(existing))
	merged = append(merged, kept...)
	return append(merged, existing...), len(dropped)
}
