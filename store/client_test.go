package store_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medidesk/console/store"
)

var _ = Describe("NewDatabase", func() {
	It("selects the configured database", func() {
		client, err := store.NewClient("mongodb://localhost:27017/")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() {
			_ = client.Disconnect(context.Background())
		})

		db, err := store.NewDatabase(client, &store.Config{DatabaseName: "console_test"})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.Name()).To(Equal("console_test"))
	})

	It("requires a database name", func() {
		client, err := store.NewClient("mongodb://localhost:27017/")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(func() {
			_ = client.Disconnect(context.Background())
		})

		_, err = store.NewDatabase(client, &store.Config{})
		Expect(err).To(HaveOccurred())
	})
})
