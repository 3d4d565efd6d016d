package patients_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/medidesk/console/patients"
	patientsTest "github.com/medidesk/console/patients/test"
)

type response struct {
	patients []patients.Patient
	err      error
}

// scriptedSource answers each call with the next response pushed on its channel
type scriptedSource struct {
	mu        sync.Mutex
	calls     int
	started   chan struct{}
	responses chan response
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{
		started:   make(chan struct{}, 10),
		responses: make(chan response, 10),
	}
}

func (s *scriptedSource) ListPatients(ctx context.Context, _ *oauth2.Token) ([]patients.Patient, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	s.started <- struct{}{}

	select {
	case r := <-s.responses:
		return r.patients, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *scriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var _ = Describe("Cache", func() {
	var source *scriptedSource
	var cache *patients.Cache
	var ctx context.Context
	var token *oauth2.Token

	BeforeEach(func() {
		ctx = context.Background()
		token = &oauth2.Token{AccessToken: "token"}
		source = newScriptedSource()
		cache = patients.NewCache(source, zap.NewNop().Sugar())
	})

	It("starts empty and stale", func() {
		Expect(cache.IsStale()).To(BeTrue())
		Expect(cache.Snapshot().Patients).To(BeEmpty())
	})

	It("replaces the collection and recomputes counts on success", func() {
		source.responses <- response{patients: patientsTest.Fixed()}
		snapshot, err := cache.Fetch(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(patients.Ids(snapshot.Patients)).To(Equal([]string{"1", "2"}))
		Expect(snapshot.Counts[0].Count).To(Equal(2))
		Expect(cache.IsStale()).To(BeFalse())
	})

	It("keeps the previous collection on failure", func() {
		source.responses <- response{patients: patientsTest.Fixed()}
		_, err := cache.Fetch(ctx, token)
		Expect(err).ToNot(HaveOccurred())

		failure := errors.New("connection refused")
		source.responses <- response{err: failure}
		snapshot, err := cache.Fetch(ctx, token)
		Expect(err).To(MatchError(failure))
		Expect(patients.Ids(snapshot.Patients)).To(Equal([]string{"1", "2"}))
	})

	It("only fetches once until invalidated", func() {
		source.responses <- response{patients: patientsTest.Fixed()}
		_, err := cache.Get(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		_, err = cache.Get(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(source.Calls()).To(Equal(1))

		cache.Invalidate()
		Expect(cache.IsStale()).To(BeTrue())
		Expect(cache.Snapshot().Patients).To(HaveLen(2))

		source.responses <- response{patients: patientsTest.Fixed()[:1]}
		snapshot, err := cache.Get(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(snapshot.Patients).To(HaveLen(1))
		Expect(source.Calls()).To(Equal(2))
	})

	It("stays stale when invalidated while a fetch is in flight", func() {
		done := make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			_, err := cache.Fetch(ctx, token)
			done <- err
		}()
		Eventually(source.started).Should(Receive())

		cache.Invalidate()
		source.responses <- response{patients: patientsTest.Fixed()}
		Eventually(done).Should(Receive(BeNil()))

		Expect(cache.Snapshot().Patients).To(HaveLen(2))
		Expect(cache.IsStale()).To(BeTrue())

		source.responses <- response{patients: patientsTest.Fixed()[:1]}
		snapshot, err := cache.Get(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Expect(snapshot.Patients).To(HaveLen(1))
		Expect(source.Calls()).To(Equal(2))
		Expect(cache.IsStale()).To(BeFalse())
	})

	It("discards the response of a superseded fetch", func() {
		type result struct {
			snapshot patients.Snapshot
			err      error
		}
		first := make(chan result, 1)
		go func() {
			defer GinkgoRecover()
			s, err := cache.Fetch(ctx, token)
			first <- result{s, err}
		}()
		Eventually(source.started).Should(Receive())

		second := make(chan result, 1)
		go func() {
			defer GinkgoRecover()
			s, err := cache.Fetch(ctx, token)
			second <- result{s, err}
		}()
		Eventually(source.started).Should(Receive())

		newer := patientsTest.Fixed()
		older := patientsTest.RandomPatients(5)

		// The calls race for the responses, so both answers carry data that could be applied.
		// Whichever arrives, only the second fetch may replace the cache.
		source.responses <- response{patients: older}
		source.responses <- response{patients: newer}

		var r1, r2 result
		Eventually(first).Should(Receive(&r1))
		Eventually(second).Should(Receive(&r2))

		Expect(r1.err).To(MatchError(patients.ErrStaleFetch))
		Expect(r2.err).ToNot(HaveOccurred())
		Expect(cache.Snapshot().Generation).To(Equal(r2.snapshot.Generation))
		Expect(cache.Snapshot().Patients).To(Equal(r2.snapshot.Patients))
	})

	It("notifies subscribers with copies until they unsubscribe", func() {
		received := make(chan patients.Snapshot, 2)
		unsubscribe := cache.Subscribe(func(s patients.Snapshot) {
			received <- s
		})

		source.responses <- response{patients: patientsTest.Fixed()}
		_, err := cache.Fetch(ctx, token)
		Expect(err).ToNot(HaveOccurred())

		var snapshot patients.Snapshot
		Eventually(received).Should(Receive(&snapshot))
		snapshot.Patients[0].Name = "Mallory"
		Expect(cache.Snapshot().Patients[0].Name).To(Equal("Alice"))

		unsubscribe()
		source.responses <- response{patients: patientsTest.Fixed()}
		_, err = cache.Fetch(ctx, token)
		Expect(err).ToNot(HaveOccurred())
		Consistently(received).ShouldNot(Receive())
	})
})
