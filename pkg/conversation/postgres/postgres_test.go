package postgres_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rostrumlabs/rostrum/pkg/conversation"
	"github.com/rostrumlabs/rostrum/pkg/conversation/postgres"
)

// connStr returns the PostgreSQL connection string from environment or skips the test.
func connStr() string {
	dsn := os.Getenv("ROSTRUM_TEST_POSTGRES_DSN")
	if dsn == "" {
		Skip("ROSTRUM_TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

var _ = Describe("Store", func() {
	var (
		store *postgres.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dsn := connStr()

		var err error
		store, err = postgres.NewStore(ctx, dsn)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	It("round-trips turns oldest first", func() {
		Expect(store.AppendTurn(ctx, conversation.NewTurn(conversation.SenderUser, "pg hello", ""))).To(Succeed())
		Expect(store.AppendTurn(ctx, conversation.NewTurn(conversation.SenderBot, "pg reply", "gpt-4o-mini"))).To(Succeed())

		turns, err := store.RecentTurns(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(HaveLen(2))
		Expect(turns[0].Text).To(Equal("pg hello"))
		Expect(turns[1].Model).To(Equal("gpt-4o-mini"))
	})

	It("persists debate records", func() {
		rec := conversation.NewDebateRecord("pg topic", "a", "b", "",
			[]conversation.ResponseEntry{{Model: "m", Response: "r"}})
		Expect(store.AppendDebate(ctx, rec)).To(Succeed())
	})
})
