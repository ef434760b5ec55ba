package status

import "testing"

func TestSearched(t *testing.T) {
	if !Success.Searched() {
		t.Error("Success.Searched() = false")
	}
	if EmptyQuery.Searched() || EmptyIndex.Searched() {
		t.Error("empty statuses must not count as searched")
	}
}
