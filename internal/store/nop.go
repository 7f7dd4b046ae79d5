package store

import "time"

// NopStore is the scanner's default store when first-seen tracking is
// off. Nothing is recorded, so every posting always counts as new.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) HasSeen(link string) (bool, error)     { return false, nil }
func (s *NopStore) MarkSeen(link string) error            { return nil }
func (s *NopStore) Cleanup(olderThan time.Duration) error { return nil }
func (s *NopStore) IsEmpty() (bool, error)                { return false, nil }
