package sessions_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medidesk/console/sessions"
	sessionsTest "github.com/medidesk/console/sessions/test"
	storeTest "github.com/medidesk/console/store/test"
)

func expectSameSession(actual, expected *sessions.Session) {
	Expect(actual).ToNot(BeNil())
	Expect(actual.Id).To(Equal(expected.Id))
	Expect(actual.UserName).To(Equal(expected.UserName))
	Expect(actual.User).To(Equal(expected.User))
	Expect(actual.Token.AccessToken).To(Equal(expected.Token.AccessToken))
	Expect(actual.Token.Expiry).To(BeTemporally("==", expected.Token.Expiry))
	Expect(actual.Dashboard).To(Equal(expected.Dashboard))
	Expect(actual.DismissedNotifications).To(Equal(expected.DismissedNotifications))
	Expect(actual.CreatedTime).To(BeTemporally("==", expected.CreatedTime))
	Expect(actual.ExpirationTime).To(BeTemporally("==", expected.ExpirationTime))
}

func itBehavesLikeAStore(getStore func() sessions.Store) {
	var ctx context.Context
	var store sessions.Store

	BeforeEach(func() {
		ctx = context.Background()
		store = getStore()
	})

	It("returns not found for an unknown session", func() {
		_, err := store.Get(ctx, "unknown")
		Expect(err).To(MatchError(sessions.ErrSessionNotFound))
	})

	It("returns a saved session", func() {
		session := sessionsTest.RandomSession()
		Expect(store.Save(ctx, session)).To(Succeed())

		result, err := store.Get(ctx, session.Id)
		Expect(err).ToNot(HaveOccurred())
		expectSameSession(result, session)
	})

	It("replaces a session on save", func() {
		session := sessionsTest.RandomSession()
		Expect(store.Save(ctx, session)).To(Succeed())

		session.Dashboard.SetSearchQuery("updated")
		session.DismissedNotifications = append(session.DismissedNotifications, "second")
		Expect(store.Save(ctx, session)).To(Succeed())

		result, err := store.Get(ctx, session.Id)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Dashboard.SearchQuery).To(Equal("updated"))
		Expect(result.DismissedNotifications).To(HaveLen(2))
	})

	It("deletes a session", func() {
		session := sessionsTest.RandomSession()
		Expect(store.Save(ctx, session)).To(Succeed())
		Expect(store.Delete(ctx, session.Id)).To(Succeed())

		_, err := store.Get(ctx, session.Id)
		Expect(err).To(MatchError(sessions.ErrSessionNotFound))
	})

	It("ignores deletion of an unknown session", func() {
		Expect(store.Delete(ctx, "unknown")).To(Succeed())
	})

	It("does not return expired sessions", func() {
		session := sessionsTest.RandomSession()
		session.ExpirationTime = time.Now().Add(-time.Minute)
		Expect(store.Save(ctx, session)).To(Succeed())

		_, err := store.Get(ctx, session.Id)
		Expect(err).To(MatchError(sessions.ErrSessionNotFound))
	})
}

var _ = Describe("MemoryStore", func() {
	var store *sessions.MemoryStore

	BeforeEach(func() {
		var err error
		store, err = sessions.NewMemoryStore(2)
		Expect(err).ToNot(HaveOccurred())
	})

	itBehavesLikeAStore(func() sessions.Store { return store })

	It("isolates the stored session from later modifications", func() {
		session := sessionsTest.RandomSession()
		Expect(store.Save(context.Background(), session)).To(Succeed())
		session.UserName = "changed"

		result, err := store.Get(context.Background(), session.Id)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.UserName).ToNot(Equal("changed"))
	})

	It("evicts the least recently used session", func() {
		ctx := context.Background()
		first := sessionsTest.RandomSession()
		second := sessionsTest.RandomSession()
		third := sessionsTest.RandomSession()
		Expect(store.Save(ctx, first)).To(Succeed())
		Expect(store.Save(ctx, second)).To(Succeed())
		Expect(store.Save(ctx, third)).To(Succeed())

		_, err := store.Get(ctx, first.Id)
		Expect(err).To(MatchError(sessions.ErrSessionNotFound))
		_, err = store.Get(ctx, third.Id)
		Expect(err).ToNot(HaveOccurred())
	})
})

var _ = Describe("RedisStore", func() {
	var server *miniredis.Miniredis
	var store *sessions.RedisStore

	BeforeEach(func() {
		var err error
		server, err = miniredis.Run()
		Expect(err).ToNot(HaveOccurred())

		client := sessions.NewRedisClient(&sessions.Config{RedisAddress: server.Addr()})
		store = sessions.NewRedisStore(client, "test:session:")
	})

	AfterEach(func() {
		server.Close()
	})

	itBehavesLikeAStore(func() sessions.Store { return store })

	It("stores sessions under the prefix with the remaining lifetime as ttl", func() {
		session := sessionsTest.RandomSession()
		Expect(store.Save(context.Background(), session)).To(Succeed())

		key := "test:session:" + session.Id
		Expect(server.Exists(key)).To(BeTrue())
		Expect(server.TTL(key)).To(BeNumerically("~", time.Hour, time.Minute))

		server.FastForward(2 * time.Hour)
		Expect(server.Exists(key)).To(BeFalse())
	})
})

var _ = Describe("MongoStore", Ordered, func() {
	var store *sessions.MongoStore

	BeforeAll(func() {
		storeTest.SetupDatabase()
		store = sessions.NewMongoStore(storeTest.GetTestDatabase())
		Expect(store.Initialize(context.Background())).To(Succeed())
	})

	AfterAll(func() {
		storeTest.TeardownDatabase()
	})

	itBehavesLikeAStore(func() sessions.Store { return store })
})
