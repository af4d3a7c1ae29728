package engine

import (
	"testing"

	coroengine "github.com/wippyai/coro-engine"
)

// testCoro is the host-owned handle used by tests.
type testCoro struct {
	name string
	ctx  *Context
}

func newTestCoro(name string, entry func()) *testCoro {
	return &testCoro{name: name, ctx: NewContext(entry)}
}

func (c *testCoro) CoroContext() *Context { return c.ctx }

func (c *testCoro) Name() string { return c.name }

func bootstrapped(name string) (*Scheduler, *testCoro) {
	s := New()
	main := newTestCoro(name, nil)
	s.Bootstrap(main)
	return s, main
}

func TestBootstrap_SetsCurrent(t *testing.T) {
	s := New()
	if s.Current() != nil {
		t.Fatal("current should be nil before bootstrap")
	}

	main := newTestCoro("main", nil)
	s.Bootstrap(main)

	if s.Current() != Coroutine(main) {
		t.Fatal("current should be main after bootstrap")
	}
	if !main.ctx.Entered() {
		t.Fatal("bootstrap coroutine should be marked entered")
	}
}

func TestTransfer_Symmetric(t *testing.T) {
	s, main := bootstrapped("main")

	var steps []string
	var worker *testCoro
	worker = newTestCoro("worker", func() {
		steps = append(steps, "worker-1")
		s.Transfer(worker, main)
		steps = append(steps, "worker-2")
	})

	steps = append(steps, "main-1")
	s.Transfer(main, worker)
	// Resumed here when worker transfers back.
	steps = append(steps, "main-2")
	s.Transfer(main, worker)
	// Worker's entry returned; the empty queue hands control back to main.
	steps = append(steps, "main-3")

	want := []string{"main-1", "worker-1", "main-2", "worker-2", "main-3"}
	if len(steps) != len(want) {
		t.Fatalf("steps = %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("steps[%d] = %q, want %q (full: %v)", i, steps[i], want[i], steps)
		}
	}

	if !worker.ctx.Finished() {
		t.Fatal("worker should be finished")
	}
	if s.Current() != Coroutine(main) {
		t.Fatal("main should be current again")
	}
}

func TestTransfer_DoesNotTouchReadyState(t *testing.T) {
	s, main := bootstrapped("main")

	bystander := newTestCoro("bystander", func() {})
	s.Ready(bystander)

	var worker *testCoro
	worker = newTestCoro("worker", func() {
		if s.NReady() != 1 {
			t.Errorf("nready = %d inside worker, want 1", s.NReady())
		}
		if s.IsReady(worker) {
			t.Error("running coroutine must not be in the ready queue")
		}
		s.Transfer(worker, main)
	})

	s.Transfer(main, worker)

	if s.NReady() != 1 {
		t.Fatalf("nready = %d after transfer round-trip, want 1", s.NReady())
	}
	if !s.IsReady(bystander) {
		t.Fatal("bystander should still be ready")
	}
}

func TestTransfer_SelfIsNoop(t *testing.T) {
	s, main := bootstrapped("main")
	s.Transfer(main, main)
	if s.Current() != Coroutine(main) {
		t.Fatal("self-transfer must not change current")
	}
}

func TestTransfer_RestoresBindings(t *testing.T) {
	s, main := bootstrapped("main")

	live := s.Live()
	live.Topic = "main-topic"
	live.InputSep = "\n"

	var observed any
	var worker *testCoro
	worker = newTestCoro("worker", func() {
		// Fresh coroutine with SaveAll restores its zero bindings.
		observed = s.Live().Topic
		s.Live().Topic = "worker-topic"
		s.Live().InputSep = "\x00"
		s.Transfer(worker, main)
	})

	s.Transfer(main, worker)

	if observed != nil {
		t.Fatalf("worker observed topic %v, want nil", observed)
	}
	if live.Topic != "main-topic" {
		t.Fatalf("topic = %v after round-trip, want main-topic", live.Topic)
	}
	if live.InputSep != "\n" {
		t.Fatalf("input separator = %q after round-trip, want %q", live.InputSep, "\n")
	}
}

func TestTransfer_PartialMaskLeaksBindings(t *testing.T) {
	s, main := bootstrapped("main")

	s.Live().Topic = "leaked"
	s.Live().InputSep = "\n"

	var observedTopic any
	var observedSep string
	var worker *testCoro
	worker = newTestCoro("worker", func() {
		observedTopic = s.Live().Topic
		observedSep = s.Live().InputSep
		s.Transfer(worker, main)
	})

	// Exclude the topic from the worker's save set: the worker then
	// sees whatever topic the previous coroutine left live.
	s.Save(worker, coroengine.SaveAll&^coroengine.SaveTopic)

	s.Transfer(main, worker)

	if observedTopic != "leaked" {
		t.Fatalf("worker observed topic %v, want the leaked value", observedTopic)
	}
	if observedSep != "" {
		t.Fatalf("worker observed separator %q, want its own zero value", observedSep)
	}
}

func TestReady_Idempotent(t *testing.T) {
	s, main := bootstrapped("main")

	w := newTestCoro("w", func() {})

	if !s.Ready(w) {
		t.Fatal("first Ready should change state")
	}
	if s.NReady() != 1 {
		t.Fatalf("nready = %d, want 1", s.NReady())
	}
	if s.Ready(w) {
		t.Fatal("second Ready should be a no-op")
	}
	if s.NReady() != 1 {
		t.Fatalf("nready = %d after duplicate Ready, want 1", s.NReady())
	}
	if !s.IsReady(w) {
		t.Fatal("w should be ready")
	}

	if s.Ready(main) {
		t.Fatal("readying the running coroutine should be a no-op")
	}
	if s.IsReady(main) {
		t.Fatal("the running coroutine must never be in the ready queue")
	}
}

func TestSchedule_EmptyQueueIsNoop(t *testing.T) {
	s, main := bootstrapped("main")
	s.Schedule()
	if s.Current() != Coroutine(main) {
		t.Fatal("schedule on an empty queue must not switch")
	}
}

func TestCede_EmptyQueue(t *testing.T) {
	s, main := bootstrapped("main")

	if s.Cede() {
		t.Fatal("cede with an empty queue should report no switch")
	}
	if s.Current() != Coroutine(main) {
		t.Fatal("cede with an empty queue must not change current")
	}
	if s.NReady() != 0 {
		t.Fatalf("nready = %d after empty cede, want 0", s.NReady())
	}
}

func TestCedeNotself_AloneLeavesQueueEmpty(t *testing.T) {
	s, main := bootstrapped("main")

	if s.CedeNotself() {
		t.Fatal("cede_notself with an empty queue should report no switch")
	}
	if s.NReady() != 0 {
		t.Fatalf("nready = %d, want 0: caller must not be enqueued", s.NReady())
	}
	if s.IsReady(main) {
		t.Fatal("caller must not be enqueued when alone")
	}
}

func TestCedeNotself_SwitchesWhenOthersReady(t *testing.T) {
	s, main := bootstrapped("main")

	ran := false
	worker := newTestCoro("worker", func() {
		ran = true
	})
	s.Ready(worker)

	// Main is enqueued as last resort, the worker runs and finishes,
	// and finish pops main back off the queue.
	if !s.CedeNotself() {
		t.Fatal("cede_notself should switch when the queue is non-empty")
	}
	if !ran {
		t.Fatal("worker should have run")
	}
	if s.NReady() != 0 {
		t.Fatalf("nready = %d after round-trip, want 0", s.NReady())
	}
	if s.Current() != Coroutine(main) {
		t.Fatal("main should be current again")
	}
}

func TestFIFO_Fairness(t *testing.T) {
	s, _ := bootstrapped("main")

	var order []string
	mk := func(name string) *testCoro {
		var c *testCoro
		c = newTestCoro(name, func() {
			order = append(order, name)
		})
		return c
	}

	x, y, z := mk("X"), mk("Y"), mk("Z")
	s.Ready(x)
	s.Ready(y)
	s.Ready(z)

	if s.NReady() != 3 {
		t.Fatalf("nready = %d, want 3", s.NReady())
	}

	// Each entry returns immediately; finish pops the next ready
	// coroutine, draining the queue in enqueue order before control
	// returns to main.
	s.Schedule()

	want := []string{"X", "Y", "Z"}
	if len(order) != 3 {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if s.NReady() != 0 {
		t.Fatalf("nready = %d after drain, want 0", s.NReady())
	}
}

// TestScenario_ThreeCoroutines drives the canonical three-coroutine
// rotation: A running with B and C ready, A cedes, B cedes, C
// schedules, and A resumes with only B left in the queue.
func TestScenario_ThreeCoroutines(t *testing.T) {
	s, _ := bootstrapped("A")

	type snapshot struct {
		current string
		nready  int
	}
	var snaps []snapshot
	snap := func() {
		snaps = append(snaps, snapshot{coroName(s.Current()), s.NReady()})
	}

	var b, c *testCoro
	b = newTestCoro("B", func() {
		snap() // B running, queue [C, A]
		if s.IsReady(b) {
			t.Error("running B must not be in the ready queue")
		}
		s.Cede() // queue [C, A, B] -> pop C
		// B resumes only after being scheduled again below.
		snap()
	})
	c = newTestCoro("C", func() {
		snap() // C running, queue [A, B]
		s.Schedule()
		snap()
	})

	s.Ready(b)
	s.Ready(c)
	if s.NReady() != 2 {
		t.Fatalf("nready = %d, want 2", s.NReady())
	}

	if !s.Cede() {
		t.Fatal("cede with a non-empty queue should switch")
	}

	// A has resumed: C popped A off the queue, leaving [B].
	snap()
	if s.NReady() != 1 {
		t.Fatalf("nready = %d after rotation, want 1", s.NReady())
	}
	if !s.IsReady(b) {
		t.Fatal("B should be the remaining ready coroutine")
	}

	// Let B and C run to completion.
	s.Ready(c)
	s.Schedule()

	want := []snapshot{
		{"B", 2}, // B running, queue [C, A]
		{"C", 2}, // C running, queue [A, B]
		{"A", 1}, // A resumed, queue [B]
	}
	if len(snaps) < 3 {
		t.Fatalf("snapshots = %v, want at least %v", snaps, want)
	}
	for i := range want {
		if snaps[i] != want[i] {
			t.Fatalf("snapshot[%d] = %v, want %v", i, snaps[i], want[i])
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	s, _ := bootstrapped("main")
	c := newTestCoro("c", func() {})

	prev := s.Save(c, coroengine.SaveArgs|coroengine.SaveTopic)
	if prev != coroengine.SaveDefault {
		t.Fatalf("prior mask = %#x, want the default %#x", prev, coroengine.SaveDefault)
	}

	got := s.Save(c, coroengine.SaveQuery)
	if got != coroengine.SaveArgs|coroengine.SaveTopic {
		t.Fatalf("queried mask = %#x, want %#x", got, coroengine.SaveArgs|coroengine.SaveTopic)
	}

	// Query must not replace.
	if again := s.Save(c, coroengine.SaveQuery); again != got {
		t.Fatalf("query changed the mask: %#x != %#x", again, got)
	}
}

func TestSave_ClampsUndefinedBits(t *testing.T) {
	s, _ := bootstrapped("main")
	c := newTestCoro("c", func() {})

	s.Save(c, 0xFF00|coroengine.SaveLastErr)
	got := s.Save(c, coroengine.SaveQuery)
	if got != coroengine.SaveLastErr {
		t.Fatalf("mask = %#x, want undefined bits clamped to %#x", got, coroengine.SaveLastErr)
	}
}

func TestRun_AdoptsCaller(t *testing.T) {
	s := New()

	entered := false
	s.Run(func() {
		entered = true
		cur := s.Current()
		if cur == nil {
			t.Fatal("current should be set inside Run")
		}
		if coroName(cur) != "main" {
			t.Fatalf("current = %q, want main", coroName(cur))
		}
		if s.Cede() {
			t.Fatal("cede with nothing ready should keep the caller running")
		}
	})

	if !entered {
		t.Fatal("Run did not invoke its body")
	}
}

// TestMutualExclusion verifies that at every observable point exactly
// one coroutine is current and that it is never simultaneously queued.
func TestMutualExclusion(t *testing.T) {
	s, main := bootstrapped("main")

	check := func(self Coroutine) {
		cur := s.Current()
		if cur != self {
			t.Errorf("current = %s, want %s", coroName(cur), coroName(self))
		}
		if s.IsReady(cur) {
			t.Errorf("current coroutine %s found in the ready queue", coroName(cur))
		}
	}

	var w1, w2 *testCoro
	w1 = newTestCoro("w1", func() {
		check(w1)
		s.Cede()
		check(w1)
	})
	w2 = newTestCoro("w2", func() {
		check(w2)
		s.Cede()
		check(w2)
	})

	s.Ready(w1)
	s.Ready(w2)
	check(main)
	for s.NReady() > 0 {
		s.Schedule()
		check(main)
	}
}
