package sessions_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/oauth2"

	"github.com/medidesk/console/patients"
	"github.com/medidesk/console/sessions"
	sessionsTest "github.com/medidesk/console/sessions/test"
)

var _ = Describe("Session", func() {
	It("creates anonymous sessions with the default dashboard state", func() {
		session := sessions.New(time.Hour)
		Expect(session.Id).ToNot(BeEmpty())
		Expect(session.IsEstablished()).To(BeFalse())
		Expect(session.IsExpired()).To(BeFalse())
		Expect(session.Dashboard.ActiveCategory).To(Equal(patients.CategoryAll))
		Expect(session.ExpirationTime).To(BeTemporally("~", time.Now().Add(time.Hour), time.Second))
	})

	It("generates unique ids", func() {
		Expect(sessions.New(time.Hour).Id).ToNot(Equal(sessions.New(time.Hour).Id))
	})

	It("is established by a user name alone", func() {
		session := sessions.New(time.Hour)
		session.UserName = "Jane Doe"
		Expect(session.IsEstablished()).To(BeTrue())
	})

	It("is established by a token alone", func() {
		session := sessions.New(time.Hour)
		session.Token = &oauth2.Token{AccessToken: "abc"}
		Expect(session.IsEstablished()).To(BeTrue())
		Expect(session.TokenExpired()).To(BeFalse())
	})

	It("reports expired tokens", func() {
		session := sessions.New(time.Hour)
		session.Token = &oauth2.Token{AccessToken: "abc", Expiry: time.Now().Add(-time.Minute)}
		Expect(session.TokenExpired()).To(BeTrue())
	})

	It("is not established when nil", func() {
		var session *sessions.Session
		Expect(session.IsEstablished()).To(BeFalse())
	})

	It("clears the user state but keeps the id", func() {
		session := sessionsTest.RandomSession()
		id := session.Id
		session.Clear()

		Expect(session.Id).To(Equal(id))
		Expect(session.IsEstablished()).To(BeFalse())
		Expect(session.User).To(BeNil())
		Expect(session.DismissedNotifications).To(BeEmpty())
		Expect(session.Dashboard.ActiveCategory).To(Equal(patients.CategoryAll))
	})

	It("is carried through the context", func() {
		session := sessionsTest.RandomSession()
		ctx := sessions.WithSession(context.Background(), session)
		Expect(sessions.FromContext(ctx)).To(BeIdenticalTo(session))
		Expect(sessions.FromContext(context.Background())).To(BeNil())
	})
})
