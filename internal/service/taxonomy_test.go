package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestTaxonomyCreateAndList(t *testing.T) {
	db := testDB(t)
	taxonomy, _ := testServices(db)

	name := uniqueName("Technology")
	created, err := taxonomy.Create(CategoryInput{Name: name, Description: "tech posts"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cleanupCategory(t, db, created.ID)

	wantSlug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	if created.Slug != wantSlug {
		t.Errorf("slug: got %q, want %q", created.Slug, wantSlug)
	}
	if created.Color != "#3B82F6" {
		t.Errorf("color default: got %q, want #3B82F6", created.Color)
	}

	items, err := taxonomy.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, c := range items {
		if c.ID == created.ID {
			found = true
			if c.PostCount != 0 {
				t.Errorf("fresh category post count: got %d, want 0", c.PostCount)
			}
		}
	}
	if !found {
		t.Error("created category missing from List")
	}
}

func TestTaxonomyCreateValidation(t *testing.T) {
	db := testDB(t)
	taxonomy, _ := testServices(db)

	var ve *ValidationError

	if _, err := taxonomy.Create(CategoryInput{Name: ""}); !errors.As(err, &ve) {
		t.Errorf("empty name: got %v, want ValidationError", err)
	}
	if _, err := taxonomy.Create(CategoryInput{Name: strings.Repeat("x", 51)}); !errors.As(err, &ve) {
		t.Errorf("long name: got %v, want ValidationError", err)
	}
	if _, err := taxonomy.Create(CategoryInput{Name: "!!! ???"}); !errors.As(err, &ve) {
		t.Errorf("symbol-only name (empty slug): got %v, want ValidationError", err)
	}
	if _, err := taxonomy.Create(CategoryInput{Name: uniqueName("Valid"), Color: "nope"}); !errors.As(err, &ve) {
		t.Errorf("bad color: got %v, want ValidationError", err)
	}
	long := CategoryInput{Name: uniqueName("Valid"), Description: strings.Repeat("d", 201)}
	if _, err := taxonomy.Create(long); !errors.As(err, &ve) {
		t.Errorf("long description: got %v, want ValidationError", err)
	}
}

func TestTaxonomyDuplicateNameAnyCasing(t *testing.T) {
	db := testDB(t)
	taxonomy, _ := testServices(db)

	name := uniqueName("Duplicated")
	created, err := taxonomy.Create(CategoryInput{Name: name})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cleanupCategory(t, db, created.ID)

	// Exact same name.
	if _, err := taxonomy.Create(CategoryInput{Name: name}); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("same name: got %v, want ErrDuplicateName", err)
	}

	// Same name, different casing — must be DuplicateName, never a
	// storage error.
	_, err = taxonomy.Create(CategoryInput{Name: strings.ToUpper(name)})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("upper-cased name: got %v, want ErrDuplicateName", err)
	}
	var se *StorageError
	if errors.As(err, &se) {
		t.Error("duplicate surfaced as StorageError")
	}
}

func TestTaxonomyGetByIDAndSlug(t *testing.T) {
	db := testDB(t)
	taxonomy, content := testServices(db)
	author := testUser(t, db)

	created, err := taxonomy.Create(CategoryInput{Name: uniqueName("Lookup")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cleanupCategory(t, db, created.ID)

	post, err := content.Create(author.ID, PostInput{
		Title: uniqueName("In Category"), Content: "body", CategoryID: created.ID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	cleanupPost(t, db, post.ID)

	byID, err := taxonomy.Get(ByID(created.ID))
	if err != nil {
		t.Fatalf("Get by id: %v", err)
	}
	if byID.Category.ID != created.ID {
		t.Error("Get by id returned wrong category")
	}
	if len(byID.Posts) != 1 || byID.Posts[0].ID != post.ID {
		t.Errorf("expected the category's post in detail, got %d posts", len(byID.Posts))
	}

	bySlug, err := taxonomy.Get(ParseIdentifier(created.Slug))
	if err != nil {
		t.Fatalf("Get by slug: %v", err)
	}
	if bySlug.Category.ID != created.ID {
		t.Error("Get by slug returned wrong category")
	}

	if _, err := taxonomy.Get(ParseIdentifier("no-such-category")); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown slug: got %v, want ErrNotFound", err)
	}
	if _, err := taxonomy.Get(ByID(uuid.New())); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestTaxonomyUpdateRederivesSlug(t *testing.T) {
	db := testDB(t)
	taxonomy, _ := testServices(db)

	created, err := taxonomy.Create(CategoryInput{Name: uniqueName("Before")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cleanupCategory(t, db, created.ID)

	newName := uniqueName("After Rename")
	updated, err := taxonomy.Update(created.ID, CategoryPatch{Name: &newName})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	wantSlug := strings.ToLower(strings.ReplaceAll(newName, " ", "-"))
	if updated.Slug != wantSlug {
		t.Errorf("slug after rename: got %q, want %q", updated.Slug, wantSlug)
	}

	// Patch without name leaves name and slug alone.
	desc := "only the description"
	updated, err = taxonomy.Update(created.ID, CategoryPatch{Description: &desc})
	if err != nil {
		t.Fatalf("Update description: %v", err)
	}
	if updated.Slug != wantSlug || updated.Name != newName {
		t.Error("description-only patch touched name or slug")
	}
	if updated.Description != desc {
		t.Errorf("description: got %q, want %q", updated.Description, desc)
	}

	if _, err := taxonomy.Update(uuid.New(), CategoryPatch{Description: &desc}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestTaxonomyDeleteBlockedByDependents(t *testing.T) {
	db := testDB(t)
	taxonomy, content := testServices(db)
	author := testUser(t, db)

	created, err := taxonomy.Create(CategoryInput{Name: uniqueName("Doomed")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cleanupCategory(t, db, created.ID)

	post, err := content.Create(author.ID, PostInput{
		Title: uniqueName("Dependent"), Content: "body", CategoryID: created.ID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	cleanupPost(t, db, post.ID)

	err = taxonomy.Delete(created.ID)
	var de *DependentsError
	if !errors.As(err, &de) {
		t.Fatalf("delete with dependent: got %v, want DependentsError", err)
	}
	if de.Count != 1 {
		t.Errorf("dependent count: got %d, want 1", de.Count)
	}

	// Remove the post, then deletion succeeds.
	if err := content.Delete(author.ID, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if err := taxonomy.Delete(created.ID); err != nil {
		t.Fatalf("delete category after post removal: %v", err)
	}

	if err := taxonomy.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
