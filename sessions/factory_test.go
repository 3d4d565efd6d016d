package sessions_test

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/medidesk/console/sessions"
)

var _ = Describe("NewStore", func() {
	var cfg *sessions.Config
	var lifecycle *fxtest.Lifecycle

	BeforeEach(func() {
		cfg = &sessions.Config{
			MemorySize:  10,
			RedisPrefix: "test:",
		}
		lifecycle = fxtest.NewLifecycle(GinkgoT())
	})

	It("defaults to the memory backend", func() {
		store, err := sessions.NewStore(cfg, zap.NewNop().Sugar(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(store).To(BeAssignableToTypeOf(&sessions.MemoryStore{}))
	})

	It("connects to redis when the lifecycle starts", func() {
		server, err := miniredis.Run()
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(server.Close)
		cfg.Backend = sessions.BackendRedis
		cfg.RedisAddress = server.Addr()

		store, err := sessions.NewStore(cfg, zap.NewNop().Sugar(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(store).To(BeAssignableToTypeOf(&sessions.RedisStore{}))

		lifecycle.RequireStart()
		lifecycle.RequireStop()
	})

	It("fails to start when redis is unreachable", func() {
		server, err := miniredis.Run()
		Expect(err).ToNot(HaveOccurred())
		cfg.Backend = sessions.BackendRedis
		cfg.RedisAddress = server.Addr()
		server.Close()

		_, err = sessions.NewStore(cfg, zap.NewNop().Sugar(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(lifecycle.Start(context.Background())).ToNot(Succeed())
	})

	It("rejects an unknown backend", func() {
		cfg.Backend = "cassandra"
		_, err := sessions.NewStore(cfg, zap.NewNop().Sugar(), lifecycle)
		Expect(err).To(MatchError(ContainSubstring("unsupported session store")))
	})
})
