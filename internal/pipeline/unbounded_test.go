package pipeline

import "testing"

func TestUnboundedChanAcceptsMoreSendsThanReceives(t *testing.T) {
	in, out := newUnboundedChan[int]()

	// Send more values than any bounded channel buffer would hold
	// before a single receive happens, proving the relay queues them.
	const n = 500
	done := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			in <- i
		}
		close(in)
		close(done)
	}()

	var got []int
	for v := range out {
		got = append(got, v)
	}
	<-done

	if len(got) != n {
		t.Fatalf("len(got) = %d, want %d", len(got), n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d (order not preserved)", i, v, i)
		}
	}
}

func TestUnboundedChanClosesOutOnInputClose(t *testing.T) {
	in, out := newUnboundedChan[int]()
	close(in)

	if _, ok := <-out; ok {
		t.Fatal("out yielded a value after in closed empty")
	}
}
