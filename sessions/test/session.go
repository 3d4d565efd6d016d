package test

import (
	"time"

	"golang.org/x/oauth2"

	"github.com/medidesk/console/patients"
	"github.com/medidesk/console/remote"
	"github.com/medidesk/console/sessions"
	"github.com/medidesk/console/test"
)

func RandomSession() *sessions.Session {
	firstName := test.Faker.Person().FirstName()
	lastName := test.Faker.Person().LastName()

	session := sessions.New(time.Hour)
	session.Token = &oauth2.Token{
		AccessToken: test.Faker.UUID().V4(),
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour).Truncate(time.Millisecond),
	}
	session.User = &remote.User{
		Id:        test.Faker.UUID().V4(),
		Email:     test.Faker.Internet().Email(),
		FirstName: firstName,
		LastName:  lastName,
		Role:      "doctor",
	}
	session.UserName = session.User.DisplayName()
	session.Dashboard.SetActiveCategory(patients.CategoryHighPriority)
	session.Dashboard.SetSearchQuery(test.Faker.Lorem().Word())
	session.DismissedNotifications = []string{test.Faker.Lorem().Word()}
	session.CreatedTime = session.CreatedTime.Truncate(time.Millisecond)
	session.ExpirationTime = session.ExpirationTime.Truncate(time.Millisecond)

	return session
}
