package database

import (
	"context"
	"testing"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db, err := Open("file:userrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewUserRepository(db)
	ctx := context.Background()

	u, err := repo.Create(ctx, "root", "Superuser", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Username != "root" || u.Name != "Superuser" {
		t.Fatalf("unexpected created user: %+v", u)
	}

	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g.Username != "root" || g.PasswordHash != "hash" {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	g2, err := repo.GetByUsername(ctx, "root")
	if err != nil || g2.ID != u.ID {
		t.Fatalf("get by username: %v %+v", err, g2)
	}

	if _, err := repo.GetByUsername(ctx, "nobody"); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db, err := Open("file:userrepo_dup?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "alice", "Alice", "h1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, "alice", "Other Alice", "h2"); err != ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserRepository_ListWithBlogs(t *testing.T) {
	db, err := Open("file:userrepo_list?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	users := NewUserRepository(db)
	blogs := NewBlogRepository(db)
	ctx := context.Background()

	alice, err := users.Create(ctx, "alice", "Alice", "h")
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	if _, err := users.Create(ctx, "bob", "Bob", "h"); err != nil {
		t.Fatalf("create bob: %v", err)
	}

	if _, err := blogs.Create(ctx, "First", "Alice", "http://a.example/1", 0, alice.ID); err != nil {
		t.Fatalf("create blog: %v", err)
	}
	if _, err := blogs.Create(ctx, "Second", "Alice", "http://a.example/2", 3, alice.ID); err != nil {
		t.Fatalf("create blog: %v", err)
	}

	list, err := users.ListWithBlogs(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}

	byName := map[string]int{}
	for _, u := range list {
		if u.Blogs == nil {
			t.Fatalf("blogs slice should never be nil: %+v", u)
		}
		byName[u.Username] = len(u.Blogs)
	}
	if byName["alice"] != 2 || byName["bob"] != 0 {
		t.Fatalf("unexpected blog counts: %v", byName)
	}

	for _, u := range list {
		if u.Username != "alice" {
			continue
		}
		if u.Blogs[0].Title != "First" || u.Blogs[0].URL != "http://a.example/1" {
			t.Fatalf("unexpected populated blog: %+v", u.Blogs[0])
		}
	}
}
