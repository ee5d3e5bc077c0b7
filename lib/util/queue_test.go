package util

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"
)

// TestBasicOperations tests push and consume in order
func TestBasicOperations(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	for i := 0; i < 10; i++ {
		v := i
		if !q.Push(&v) {
			t.Fatalf("Failed to push item %d", i)
		}
	}

	for i := 0; i < 10; i++ {
		select {
		case val := <-q.Recv():
			if *val != i {
				t.Errorf("Expected %d, got %v", i, *val)
			}
		case <-time.After(time.Second):
			t.Fatalf("Timeout waiting for item %d", i)
		}
	}

	select {
	case val := <-q.Recv():
		t.Errorf("Queue should be empty, but got %v", val)
	case <-time.After(10 * time.Millisecond):
	}
}

// TestConcurrentProducers verifies that no item is lost or duplicated
func TestConcurrentProducers(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	const numProducers = 10
	const itemsPerProducer = 500
	totalItems := numProducers * itemsPerProducer

	received := make(map[string]bool)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for len(received) < totalItems {
			select {
			case val := <-q.Recv():
				key := fmt.Sprintf("%d", *val)
				if received[key] {
					t.Errorf("Duplicate item received: %v", *val)
					return
				}
				received[key] = true
			case <-time.After(2 * time.Second):
				t.Errorf("Timeout waiting for items, received %d of %d", len(received), totalItems)
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(numProducers)
	for p := 0; p < numProducers; p++ {
		go func(producerID int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				val := producerID*itemsPerProducer + i
				if !q.Push(&val) {
					t.Errorf("Producer %d failed to push item %d", producerID, i)
				}
				if i%100 == 0 {
					runtime.Gosched()
				}
			}
		}(p)
	}
	wg.Wait()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Timeout waiting for consumer to finish")
	}
	if len(received) != totalItems {
		t.Errorf("Expected %d items, got %d", totalItems, len(received))
	}
}

// TestSerialisedProducersKeepOrder checks FIFO order when pushes are serialised by a mutex
func TestSerialisedProducersKeepOrder(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()

	var mu sync.Mutex
	next := 0
	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				mu.Lock()
				v := next
				next++
				q.Push(&v)
				mu.Unlock()
			}
		}()
	}

	go func() {
		wg.Wait()
	}()

	for i := 0; i < 800; i++ {
		select {
		case val := <-q.Recv():
			if *val != i {
				t.Fatalf("Expected item %d, got %d", i, *val)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Timeout waiting for item %d", i)
		}
	}
}

// TestCloseQueue verifies that Close drains accepted items and rejects new ones
func TestCloseQueue(t *testing.T) {
	q := NewQueue[int]()

	for i := 0; i < 5; i++ {
		v := i
		q.Push(&v)
	}
	q.Close()

	val := 100
	if q.Push(&val) {
		t.Error("Should not be able to push after queue is closed")
	}
	if !q.IsClosed() {
		t.Error("Expected queue to report closed")
	}

	for i := 0; i < 5; i++ {
		select {
		case v, ok := <-q.Recv():
			if !ok {
				t.Fatalf("Channel closed before item %d was delivered", i)
			}
			if *v != i {
				t.Errorf("Expected %d, got %d", i, *v)
			}
		case <-time.After(time.Second):
			t.Fatalf("Timeout waiting for item %d", i)
		}
	}

	select {
	case _, ok := <-q.Recv():
		if ok {
			t.Error("Expected channel to be closed after draining")
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for channel to close")
	}

	select {
	case <-q.Done():
	case <-time.After(time.Second):
		t.Fatal("Consumer did not exit")
	}
}

func TestPushNil(t *testing.T) {
	q := NewQueue[int]()
	defer q.Close()
	if q.Push(nil) {
		t.Error("Pushing nil should fail")
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue, got %d", q.Len())
	}
}
