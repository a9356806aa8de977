package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"resumescore/internal/types"
)

// trackingStore records whether a save arrived after Close
type trackingStore struct {
	mu              sync.Mutex
	closed          bool
	saves           int
	savedAfterClose bool
}

func (s *trackingStore) SaveAnalysis(_ context.Context, _ *types.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.savedAfterClose = true
		return fmt.Errorf("store is closed")
	}
	s.saves++
	return nil
}

func (s *trackingStore) IndustryImportance(_ context.Context, _ string) (map[string]int, error) {
	return map[string]int{}, nil
}

func (s *trackingStore) UpsertKeywordStat(_ context.Context, _, _ string) error {
	return nil
}

func (s *trackingStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func TestShutdownDrainsRequestsBeforeClosingStore(t *testing.T) {
	s := newTestServer(t, nil)
	store := &trackingStore{}
	s.Store = store

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	inHandler := make(chan struct{})
	httpServer := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(inHandler)
		time.Sleep(150 * time.Millisecond)
		if err := s.Store.SaveAnalysis(r.Context(), &types.AnalysisResult{ID: "in-flight"}); err != nil {
			t.Errorf("persist during drain: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})}

	go func() { _ = httpServer.Serve(ln) }()

	statusCh := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			statusCh <- 0
			return
		}
		resp.Body.Close()
		statusCh <- resp.StatusCode
	}()

	<-inHandler
	if err := s.shutdown(httpServer); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if code := <-statusCh; code != http.StatusOK {
		t.Errorf("in-flight request status = %d, want 200", code)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.savedAfterClose {
		t.Error("analysis saved after the store was closed")
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if !store.closed {
		t.Error("store was not closed during shutdown")
	}
}
