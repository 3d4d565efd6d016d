package auth_test

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medidesk/console/auth"
)

func signedToken(expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1234",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("not-the-service-key"))
	Expect(err).ToNot(HaveOccurred())
	return signed
}

var _ = Describe("NewToken", func() {
	It("reads the expiration of jwt access tokens", func() {
		expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
		token := auth.NewToken(signedToken(expiresAt))

		Expect(token.TokenType).To(Equal("Bearer"))
		Expect(token.Expiry).To(BeTemporally("==", expiresAt))
		Expect(token.Valid()).To(BeTrue())
		Expect(auth.ExpiresIn(token)).To(BeNumerically("~", time.Hour, time.Minute))
	})

	It("marks expired jwt access tokens as invalid", func() {
		token := auth.NewToken(signedToken(time.Now().Add(-time.Hour)))
		Expect(token.Valid()).To(BeFalse())
	})

	It("keeps opaque tokens without expiration", func() {
		token := auth.NewToken("opaque-token")
		Expect(token.AccessToken).To(Equal("opaque-token"))
		Expect(token.Expiry.IsZero()).To(BeTrue())
		Expect(token.Valid()).To(BeTrue())
		Expect(auth.ExpiresIn(token)).To(BeZero())
	})
})
