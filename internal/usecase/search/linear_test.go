package search

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/localsearch/internal/domain"
	"github.com/kailas-cloud/localsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/localsearch/internal/domain/document"
	"github.com/kailas-cloud/localsearch/internal/domain/search/params"
	"github.com/kailas-cloud/localsearch/internal/domain/search/result"
	"github.com/kailas-cloud/localsearch/internal/domain/search/status"
	"github.com/kailas-cloud/localsearch/internal/tokenizer"
)

// --- Mocks ---

type memStore struct {
	order []string
	docs  map[string][]tokenizer.Text
}

func newMemStore() *memStore { return &memStore{docs: map[string][]tokenizer.Text{}} }

func (m *memStore) AddOrUpdate(id string, tags []string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	if _, ok := m.docs[id]; !ok {
		m.order = append(m.order, id)
	}
	texts := make([]tokenizer.Text, len(tags))
	for i, t := range tags {
		texts[i] = tokenizer.Tokenize(t)
	}
	m.docs[id] = texts
	return nil
}

func (m *memStore) Delete(id string) (bool, error) {
	if id == "" {
		return false, domain.ErrInvalidArgument
	}
	if _, ok := m.docs[id]; !ok {
		return false, nil
	}
	delete(m.docs, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *memStore) Size() int { return len(m.docs) }

func (m *memStore) Entries(fn func(id string, tags []tokenizer.Text) bool) {
	for _, id := range m.order {
		if !fn(id, m.docs[id]) {
			return
		}
	}
}

func (m *memStore) Clear() int {
	n := len(m.docs)
	m.order = nil
	m.docs = map[string][]tokenizer.Text{}
	return n
}

// scriptedMatcher scores tags by their exact text, ignoring the query.
type scriptedMatcher struct {
	scores map[string]float64
	calls  []string
}

func (m *scriptedMatcher) IsRelevant(_, tag tokenizer.Text, p params.Params) (bool, float64, []result.Hit) {
	m.calls = append(m.calls, tag.Text())
	s, ok := m.scores[tag.Text()]
	if !ok || s < p.RelevanceThreshold {
		return false, s, nil
	}
	return true, s, []result.Hit{{Start: 0, End: tag.Len()}}
}

type countingTokenizer struct{ calls int }

func (c *countingTokenizer) Tokenize(text string) tokenizer.Text {
	c.calls++
	return tokenizer.Tokenize(text)
}

func doc(id string, tags ...string) domdoc.Document { return domdoc.Reconstruct(id, tags) }

// --- Tests ---

func TestFind_EmptyQuery(t *testing.T) {
	b := NewLinearScan(newMemStore(), &scriptedMatcher{})
	b.AddOrUpdate([]domdoc.Document{doc("a", "alpha")})

	st, res := b.Find("", 0)
	if st != status.EmptyQuery {
		t.Errorf("status = %q, want %q", st, status.EmptyQuery)
	}
	if res != nil {
		t.Errorf("results = %v, want nil", res)
	}
}

func TestFind_EmptyQueryCheckedBeforeEmptyIndex(t *testing.T) {
	b := NewLinearScan(newMemStore(), &scriptedMatcher{})

	if st, _ := b.Find("", 0); st != status.EmptyQuery {
		t.Errorf("status = %q, want %q", st, status.EmptyQuery)
	}
}

func TestFind_EmptyIndex(t *testing.T) {
	m := &scriptedMatcher{}
	b := NewLinearScan(newMemStore(), m)

	st, res := b.Find("anything", 0)
	if st != status.EmptyIndex {
		t.Errorf("status = %q, want %q", st, status.EmptyIndex)
	}
	if res != nil || len(m.calls) != 0 {
		t.Error("empty index must not scan")
	}
}

func TestFind_SuccessWithoutMatches(t *testing.T) {
	b := NewLinearScan(newMemStore(), &scriptedMatcher{})
	b.AddOrUpdate([]domdoc.Document{doc("a", "alpha")})

	st, res := b.Find("zzz", 0)
	if st != status.Success {
		t.Errorf("status = %q, want %q", st, status.Success)
	}
	if res == nil || len(res) != 0 {
		t.Errorf("results = %v, want empty non-nil", res)
	}
}

func TestFind_FirstRelevantTagWins(t *testing.T) {
	m := &scriptedMatcher{scores: map[string]float64{"Beta": 0.9, "Gamma": 1.0}}
	b := NewLinearScan(newMemStore(), m)
	b.AddOrUpdate([]domdoc.Document{doc("doc1", "Alpha", "Beta", "Gamma")})

	_, res := b.Find("q", 0)

	if len(res) != 1 || res[0].Score() != 0.9 {
		t.Fatalf("results = %+v, want doc1 scored by Beta", res)
	}
	if len(m.calls) != 2 || m.calls[1] != "Beta" {
		t.Errorf("tags evaluated = %v, want [Alpha Beta]", m.calls)
	}
}

func TestFind_SortsDescendingStable(t *testing.T) {
	m := &scriptedMatcher{scores: map[string]float64{"low": 0.7, "high": 0.95, "mid": 0.8, "mid2": 0.8}}
	b := NewLinearScan(newMemStore(), m)
	b.AddOrUpdate([]domdoc.Document{
		doc("a", "low"), doc("b", "mid"), doc("c", "high"), doc("d", "mid2"),
	})

	_, res := b.Find("q", 0)

	want := []string{"c", "b", "d", "a"}
	if len(res) != len(want) {
		t.Fatalf("len = %d, want %d", len(res), len(want))
	}
	for i, id := range want {
		if res[i].ID() != id {
			t.Errorf("res[%d] = %q, want %q", i, res[i].ID(), id)
		}
	}
}

func TestFind_MaxResults(t *testing.T) {
	m := &scriptedMatcher{scores: map[string]float64{"x": 0.7, "y": 0.9}}
	b := NewLinearScan(newMemStore(), m)
	b.AddOrUpdate([]domdoc.Document{doc("a", "x"), doc("b", "y")})

	_, res := b.Find("q", 1)

	if len(res) != 1 || res[0].ID() != "b" {
		t.Errorf("results = %+v, want only b", res)
	}
}

func TestFind_UsesQueryTokenizer(t *testing.T) {
	tok := &countingTokenizer{}
	b := NewLinearScan(newMemStore(), &scriptedMatcher{}).WithQueryTokenizer(tok)
	b.AddOrUpdate([]domdoc.Document{doc("a", "alpha")})

	b.Find("q", 0)
	b.Find("", 0)

	if tok.calls != 1 {
		t.Errorf("tokenizer calls = %d, want 1", tok.calls)
	}
}

func TestSetSearchParams_AffectsFind(t *testing.T) {
	m := &scriptedMatcher{scores: map[string]float64{"x": 0.7}}
	b := NewLinearScan(newMemStore(), m)
	b.AddOrUpdate([]domdoc.Document{doc("a", "x")})

	p := params.Default()
	p.RelevanceThreshold = 0.75
	b.SetSearchParams(p)

	if got := b.GetSearchParams(); got != p {
		t.Errorf("GetSearchParams() = %+v, want %+v", got, p)
	}
	if _, res := b.Find("q", 0); len(res) != 0 {
		t.Errorf("results = %+v, want none above 0.75", res)
	}
}

func TestAddOrUpdate_PartialBatch(t *testing.T) {
	b := NewLinearScan(newMemStore(), &scriptedMatcher{})

	results := b.AddOrUpdate([]domdoc.Document{doc("a", "x"), doc("", "y"), doc("c", "z")})

	if b.GetSize() != 2 {
		t.Errorf("GetSize() = %d, want 2", b.GetSize())
	}
	if batch.Failed(results) != 1 {
		t.Fatalf("failed = %d, want 1", batch.Failed(results))
	}
	if !errors.Is(results[1].Err(), domain.ErrInvalidArgument) {
		t.Errorf("results[1].Err() = %v", results[1].Err())
	}
}

func TestDelete_CountsOnlyPresent(t *testing.T) {
	b := NewLinearScan(newMemStore(), &scriptedMatcher{})
	b.AddOrUpdate([]domdoc.Document{doc("a", "x"), doc("b", "y")})

	n, results := b.Delete([]string{"a", "missing", ""})

	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if batch.Failed(results) != 1 || results[1].Status() != batch.StatusOK {
		t.Errorf("unexpected item results: %+v", results)
	}
	if b.GetSize() != 1 {
		t.Errorf("GetSize() = %d, want 1", b.GetSize())
	}
}

func TestUpdateDocuments(t *testing.T) {
	b := NewLinearScan(newMemStore(), &scriptedMatcher{})
	b.AddOrUpdate([]domdoc.Document{doc("a", "x"), doc("b", "y")})

	n, results := b.UpdateDocuments([]domdoc.Document{doc("a"), doc("c", "z"), doc("missing")})

	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if batch.Failed(results) != 0 {
		t.Errorf("unexpected failures: %v", batch.Join(results))
	}
	if b.GetSize() != 2 {
		t.Errorf("GetSize() = %d, want 2", b.GetSize())
	}
}

func TestClearIndex(t *testing.T) {
	b := NewLinearScan(newMemStore(), &scriptedMatcher{})
	b.AddOrUpdate([]domdoc.Document{doc("a", "x"), doc("b", "y")})

	if n := b.ClearIndex(); n != 2 {
		t.Errorf("ClearIndex() = %d, want 2", n)
	}
	if st, _ := b.Find("q", 0); st != status.EmptyIndex {
		t.Errorf("status after clear = %q", st)
	}
}

func TestKind(t *testing.T) {
	b := NewLinearScan(newMemStore(), &scriptedMatcher{})
	if b.Kind() != domain.BackendLinearMap {
		t.Errorf("Kind() = %q", b.Kind())
	}
}
