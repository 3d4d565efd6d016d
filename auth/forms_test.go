package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medidesk/console/auth"
)

func validRegistrationForm() auth.RegistrationForm {
	return auth.RegistrationForm{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Password:    "secret1",
		Role:        "nurse",
		AcceptTerms: true,
	}
}

var _ = Describe("RegistrationForm", func() {
	It("accepts a complete form", func() {
		Expect(validRegistrationForm().Validate()).To(Succeed())
	})

	DescribeTable("rejects invalid forms with the first applicable message",
		func(modify func(*auth.RegistrationForm), message string) {
			form := validRegistrationForm()
			modify(&form)

			err := form.Validate()
			var formErr *auth.FormError
			Expect(err).To(BeAssignableToTypeOf(formErr))
			Expect(err.Error()).To(Equal(message))
		},
		Entry("missing first name", func(f *auth.RegistrationForm) { f.FirstName = "" }, auth.MessageMissingFields),
		Entry("missing role", func(f *auth.RegistrationForm) { f.Role = "" }, auth.MessageMissingFields),
		Entry("missing fields before invalid email", func(f *auth.RegistrationForm) { f.Email = "nope"; f.Password = "" }, auth.MessageMissingFields),
		Entry("email without domain", func(f *auth.RegistrationForm) { f.Email = "jane@" }, auth.MessageInvalidEmail),
		Entry("email without tld", func(f *auth.RegistrationForm) { f.Email = "jane@example" }, auth.MessageInvalidEmail),
		Entry("email with spaces", func(f *auth.RegistrationForm) { f.Email = "jane doe@example.com" }, auth.MessageInvalidEmail),
		Entry("short password", func(f *auth.RegistrationForm) { f.Password = "12345" }, auth.MessageShortPassword),
		Entry("unknown role", func(f *auth.RegistrationForm) { f.Role = "janitor" }, auth.MessageInvalidRole),
		Entry("terms not accepted", func(f *auth.RegistrationForm) { f.AcceptTerms = false }, auth.MessageTermsNotAccepted),
	)

	It("accepts a password of exactly six characters", func() {
		form := validRegistrationForm()
		form.Password = "123456"
		Expect(form.Validate()).To(Succeed())
	})

	It("concatenates the full name", func() {
		Expect(validRegistrationForm().FullName()).To(Equal("Jane Doe"))
	})
})

var _ = Describe("LoginForm", func() {
	It("requires both fields", func() {
		Expect(auth.LoginForm{Email: "jane@example.com"}.Validate()).To(MatchError(auth.MessageMissingFields))
		Expect(auth.LoginForm{Password: "secret1"}.Validate()).To(MatchError(auth.MessageMissingFields))
		Expect(auth.LoginForm{Email: "jane@example.com", Password: "secret1"}.Validate()).To(Succeed())
	})
})
