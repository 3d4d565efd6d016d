package test

import (
	"context"
	"fmt"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medidesk/console/store"
	"github.com/medidesk/console/test"
)

const (
	mongoTestHostEnv = "MEDIDESK_STORE_TEST_HOST"
	mongoTimeout     = time.Second * 5
)

var (
	database *mongo.Database
)

// MongoTestHost returns the deployment used by the integration tests, empty when none is configured
func MongoTestHost() string {
	return os.Getenv(mongoTestHostEnv)
}

func SetupDatabase() {
	host := MongoTestHost()
	if host == "" {
		Skip(fmt.Sprintf("%s is not set", mongoTestHostEnv))
	}

	client, err := store.NewClient(host)
	Expect(err).ToNot(HaveOccurred())

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	Expect(client.Ping(ctx, nil)).To(Succeed())

	databaseName := fmt.Sprintf("medidesk_test_%s_%d", test.Faker.Letter(), GinkgoParallelProcess())
	database = client.Database(databaseName)
}

func TeardownDatabase() {
	if database == nil {
		return
	}
	Expect(database.Drop(context.Background())).To(Succeed())

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	Expect(database.Client().Disconnect(ctx)).To(Succeed())
	database = nil
}

func GetTestDatabase() *mongo.Database {
	Expect(database).ToNot(BeNil())
	return database
}
