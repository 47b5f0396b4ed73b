// Package testutil provides test utilities for hiverender integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/hiveblocks/hiverender/hive"
	"github.com/hiveblocks/hiverender/hive/service"
	"github.com/hiveblocks/hiverender/internal/renderqueue"
	"github.com/hiveblocks/hiverender/internal/storage"
	"github.com/hiveblocks/hiverender/render"
)

// TestApp wraps the application services for integration tests.
type TestApp struct {
	Rendering service.RenderingService
	Drafts    service.DraftService
	Queue     *renderqueue.Queue
	DB        *sqlx.DB
}

// TestRenderOptions returns a rendering profile matching production defaults
// with hivemoji enabled and peakd.com/hive.blog link conversion on.
func TestRenderOptions() hive.RenderOptions {
	return hive.RenderOptions{
		IPFSGateways:      []string{"https://ipfs.io/", "https://cloudflare-ipfs.com/"},
		HiveDomains:       []string{"hive.blog", "peakd.com", "ecency.com"},
		ConvertHiveURLs:   true,
		InternalURLPrefix: "",
		Hivemoji: hive.HivemojiOptions{
			Enabled:      true,
			BaseURL:      "https://images.hive.blog/hivemoji",
			DefaultOwner: "hiveio",
		},
	}.WithDefaults()
}

// SetupTestDB creates an in-memory SQLite database with migrations applied
// and returns the draft store backed by it.
func SetupTestDB(t *testing.T) (service.DraftStore, *sqlx.DB, func()) {
	t.Helper()

	conn, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// Every pooled connection would otherwise get its own :memory: database.
	conn.SetMaxOpenConns(1)

	if err := storage.RunMigrations(conn); err != nil {
		conn.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	store, err := storage.Init(conn)
	if err != nil {
		conn.Close()
		t.Fatalf("failed to initialize storage: %v", err)
	}

	cleanup := func() {
		conn.Close()
	}

	return store, conn, cleanup
}

// SetupTestApp creates a full application instance for integration tests.
// The render queue runs a single worker.
func SetupTestApp(t *testing.T) (*TestApp, func()) {
	t.Helper()

	store, conn, dbCleanup := SetupTestDB(t)

	renderer := render.New(TestRenderOptions())
	renderingService := service.NewRenderingService(renderer)

	queue := renderqueue.New(1, func(markdown string) (string, error) {
		return renderingService.Render(markdown)
	})

	app := &TestApp{
		Rendering: renderingService,
		Drafts:    service.NewDraftService(store, renderingService, queue),
		Queue:     queue,
		DB:        conn,
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.Shutdown(ctx)
		dbCleanup()
	}

	return app, cleanup
}

// CreateTestDraft creates a draft and returns it with its first revision.
func CreateTestDraft(t *testing.T, app *TestApp, title, markdown string) *hive.Draft {
	t.Helper()

	draft, err := app.Drafts.Create(title, markdown)
	if err != nil {
		t.Fatalf("failed to create test draft: %v", err)
	}
	return draft
}
