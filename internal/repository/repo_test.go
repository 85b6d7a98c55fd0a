package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradejournal/internal/domain"
	"tradejournal/internal/repository"
	"tradejournal/internal/testutil"
)

func truncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE users, projects, trades, backtest_setups, backtest_screenshots`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func newUser(t *testing.T, pool *pgxpool.Pool, username string) *domain.User {
	t.Helper()
	repo := repository.NewUserRepository(pool)
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "opaque",
		CreatedAt:    time.Now(),
	}
	if err := repo.Register(context.Background(), user); err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func newProject(t *testing.T, pool *pgxpool.Pool, owner uuid.UUID, name string) *domain.Project {
	t.Helper()
	repo := repository.NewProjectRepository(pool)
	p := &domain.Project{ID: uuid.New(), UserID: owner, Name: name, Category: "forex"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return p
}

func newTrade(t *testing.T, pool *pgxpool.Pool, projectID uuid.UUID, date string, screenshot []byte) *domain.Trade {
	t.Helper()
	repo := repository.NewTradeRepository(pool)
	profit := 12.5
	tr := &domain.Trade{
		ID:        uuid.New(),
		ProjectID: projectID,
		Date:      date,
		Symbol:    "EURUSD",
		Direction: "long",
		Entry:     1.085,
		Exit:      1.091,
		LotSize:   0.5,
		RR:        "1.5",
		Result:    domain.ResultWin,
		Profit:    &profit,
		Notes:     "clean breakout",
	}
	if err := repo.Create(context.Background(), tr, screenshot); err != nil {
		t.Fatalf("create trade: %v", err)
	}
	return tr
}

// ---------- UserRepository ----------

func TestUserRegisterBootstrap(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	repo := repository.NewUserRepository(pool)

	first := newUser(t, pool, "first")
	if first.Role != domain.RoleAdmin {
		t.Fatalf("first user role = %q, want admin", first.Role)
	}

	second := newUser(t, pool, "second")
	if second.Role != domain.RoleUser {
		t.Fatalf("second user role = %q, want user", second.Role)
	}

	got, err := repo.GetByEmail(ctx, "second@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("GetByEmail returned wrong user")
	}
}

func TestUserDeleteDoesNotCascade(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	users := repository.NewUserRepository(pool)
	projects := repository.NewProjectRepository(pool)

	user := newUser(t, pool, "leaver")
	project := newProject(t, pool, user.ID, "kept")
	newTrade(t, pool, project.ID, "2024-03-01", nil)

	if err := users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := users.GetByID(ctx, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}

	// Retention behavior: the journal data stays behind.
	if _, err := projects.GetByID(ctx, project.ID); err != nil {
		t.Fatalf("project should survive owner deletion: %v", err)
	}
}

func TestUserUpdateRole(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	repo := repository.NewUserRepository(pool)

	newUser(t, pool, "bootstrap") // takes the admin slot
	user2 := newUser(t, pool, "plain")

	if err := repo.UpdateRole(ctx, user2.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	got, err := repo.GetByID(ctx, user2.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != domain.RoleAdmin {
		t.Fatalf("role = %q, want admin", got.Role)
	}

	if err := repo.UpdateRole(ctx, uuid.New(), domain.RoleUser); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

// ---------- ProjectRepository ----------

func TestProjectCascadeDeleteScoped(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	projects := repository.NewProjectRepository(pool)
	trades := repository.NewTradeRepository(pool)

	owner := newUser(t, pool, "owner")
	doomed := newProject(t, pool, owner.ID, "doomed")
	sibling := newProject(t, pool, owner.ID, "sibling")

	newTrade(t, pool, doomed.ID, "2024-01-01", nil)
	newTrade(t, pool, doomed.ID, "2024-01-02", nil)
	kept := newTrade(t, pool, sibling.ID, "2024-01-03", nil)

	if err := projects.DeleteCascade(ctx, doomed.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	gone, err := trades.ListByProject(ctx, doomed.ID)
	if err != nil {
		t.Fatalf("ListByProject doomed: %v", err)
	}
	if len(gone) != 0 {
		t.Fatalf("doomed project still has %d trades", len(gone))
	}

	remaining, err := trades.ListByProject(ctx, sibling.ID)
	if err != nil {
		t.Fatalf("ListByProject sibling: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != kept.ID {
		t.Fatalf("sibling trades affected by cascade: %+v", remaining)
	}
	if remaining[0].Notes != kept.Notes {
		t.Fatalf("sibling trade content changed")
	}
}

func TestProjectOwnerImmutable(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	projects := repository.NewProjectRepository(pool)

	owner := newUser(t, pool, "keeper")
	project := newProject(t, pool, owner.ID, "before")

	if err := projects.Update(ctx, project.ID, "after", "crypto"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := projects.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "after" || got.Category != "crypto" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.UserID != owner.ID {
		t.Fatalf("owner changed on update")
	}
}

// ---------- TradeRepository ----------

func TestTradeListOrderedByDateDesc(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	trades := repository.NewTradeRepository(pool)

	owner := newUser(t, pool, "sorter")
	project := newProject(t, pool, owner.ID, "dates")

	// Zero-padded ISO dates sort correctly as text.
	newTrade(t, pool, project.ID, "2024-02-09", nil)
	newTrade(t, pool, project.ID, "2024-11-01", nil)
	newTrade(t, pool, project.ID, "2024-02-10", nil)

	list, err := trades.ListByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	want := []string{"2024-11-01", "2024-02-10", "2024-02-09"}
	if len(list) != len(want) {
		t.Fatalf("got %d trades, want %d", len(list), len(want))
	}
	for i, w := range want {
		if list[i].Date != w {
			t.Fatalf("position %d: got %s, want %s", i, list[i].Date, w)
		}
	}
}

func TestTradeScreenshotPreservedOnUpdate(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	trades := repository.NewTradeRepository(pool)

	owner := newUser(t, pool, "shooter")
	project := newProject(t, pool, owner.ID, "shots")
	original := []byte("png-bytes")
	tr := newTrade(t, pool, project.ID, "2024-05-05", original)

	// Full-field update without a new attachment keeps the stored bytes.
	tr.Notes = "updated"
	if err := trades.Update(ctx, tr, nil, false); err != nil {
		t.Fatalf("Update keep: %v", err)
	}
	data, err := trades.Screenshot(ctx, tr.ID)
	if err != nil {
		t.Fatalf("Screenshot after keep: %v", err)
	}
	if string(data) != string(original) {
		t.Fatalf("screenshot changed: %q", data)
	}

	// Supplying a new attachment replaces it.
	if err := trades.Update(ctx, tr, []byte("new-bytes"), true); err != nil {
		t.Fatalf("Update replace: %v", err)
	}
	data, err = trades.Screenshot(ctx, tr.ID)
	if err != nil {
		t.Fatalf("Screenshot after replace: %v", err)
	}
	if string(data) != "new-bytes" {
		t.Fatalf("screenshot not replaced: %q", data)
	}
}

func TestTradeOwnerOfJoinsProject(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	trades := repository.NewTradeRepository(pool)

	owner := newUser(t, pool, "joiner")
	project := newProject(t, pool, owner.ID, "joined")
	tr := newTrade(t, pool, project.ID, "2024-06-06", nil)

	got, err := trades.OwnerOf(ctx, tr.ID)
	if err != nil {
		t.Fatalf("OwnerOf: %v", err)
	}
	if got != owner.ID {
		t.Fatalf("owner = %s, want %s", got, owner.ID)
	}

	if _, err := trades.OwnerOf(ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown trade, got %v", err)
	}
}

// ---------- SetupRepository ----------

func newSetupInput(owner uuid.UUID, title string) *domain.BacktestSetup {
	return &domain.BacktestSetup{
		ID:         uuid.New(),
		UserID:     owner,
		Date:       "2024-07-07",
		Title:      title,
		EntryNotes: "waited for sweep",
		Result:     domain.ResultWin,
		Timeframe:  "H1",
		Market:     "EURUSD",
		RMultiple:  "2.5",
	}
}

func TestSetupCreateWithScreenshots(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	setups := repository.NewSetupRepository(pool)

	owner := newUser(t, pool, "archivist")
	setup := newSetupInput(owner.ID, "london sweep")
	attachments := []domain.Attachment{
		{Filename: "a.png", Data: []byte("img-a")},
		{Filename: "b.png", Data: []byte("img-b")},
	}

	if err := setups.CreateWithScreenshots(ctx, setup, attachments); err != nil {
		t.Fatalf("CreateWithScreenshots: %v", err)
	}
	if len(setup.ScreenshotIDs) != 2 {
		t.Fatalf("got %d screenshot ids, want 2", len(setup.ScreenshotIDs))
	}

	data, filename, err := setups.Screenshot(ctx, setup.ScreenshotIDs[0])
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if filename != "a.png" || string(data) != "img-a" {
		t.Fatalf("screenshot mismatch: %s %q", filename, data)
	}

	gotOwner, err := setups.ScreenshotOwnerOf(ctx, setup.ScreenshotIDs[1])
	if err != nil {
		t.Fatalf("ScreenshotOwnerOf: %v", err)
	}
	if gotOwner != owner.ID {
		t.Fatalf("screenshot owner = %s, want %s", gotOwner, owner.ID)
	}
}

func TestSetupCreateAllOrNothing(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	setups := repository.NewSetupRepository(pool)

	owner := newUser(t, pool, "atomic")
	setup := newSetupInput(owner.ID, "doomed batch")

	// The third attachment violates the image NOT NULL constraint, forcing
	// the whole batch to roll back.
	attachments := []domain.Attachment{
		{Filename: "1.png", Data: []byte("ok")},
		{Filename: "2.png", Data: []byte("ok")},
		{Filename: "3.png", Data: nil},
	}

	if err := setups.CreateWithScreenshots(ctx, setup, attachments); err == nil {
		t.Fatal("expected create to fail")
	}

	if _, err := setups.GetByID(ctx, setup.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("setup row survived failed batch: %v", err)
	}

	var count int
	err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM backtest_screenshots WHERE setup_id = $1`, setup.ID).Scan(&count)
	if err != nil {
		t.Fatalf("count screenshots: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d screenshot rows survived failed batch", count)
	}
}

func TestSetupDeleteCascade(t *testing.T) {
	pool := testutil.SetupPool(t)
	truncateAll(t, pool)
	ctx := context.Background()
	setups := repository.NewSetupRepository(pool)

	owner := newUser(t, pool, "cleaner")
	setup := newSetupInput(owner.ID, "short-lived")
	if err := setups.CreateWithScreenshots(ctx, setup, []domain.Attachment{
		{Filename: "x.png", Data: []byte("img")},
	}); err != nil {
		t.Fatalf("CreateWithScreenshots: %v", err)
	}

	if err := setups.DeleteCascade(ctx, setup.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	if _, _, err := setups.Screenshot(ctx, setup.ScreenshotIDs[0]); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("screenshot outlived its setup: %v", err)
	}
}
