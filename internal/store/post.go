// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// PostStore handles all post and comment database operations. Comments
// have no lifecycle of their own: they are created through their parent
// post and removed with it (ON DELETE CASCADE).
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postJoinedColumns selects a post row together with its author and
// category, which every read of a post carries.
const postJoinedColumns = `
	p.id, p.title, p.slug, p.content, p.excerpt, p.featured_image,
	p.tags, p.is_published, p.view_count, p.author_id, p.category_id,
	p.created_at, p.updated_at,
	u.id, u.name, u.email, u.avatar,
	c.id, c.name, c.slug, c.description, c.color, c.created_at, c.updated_at`

const postJoins = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN categories c ON c.id = p.category_id`

// scanPost scans a joined post row, decoding the tags JSON column and
// populating the author and category views.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var (
		p       models.Post
		author  models.Author
		cat     models.Category
		tagsRaw []byte
	)
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&tagsRaw, &p.IsPublished, &p.ViewCount, &p.AuthorID, &p.CategoryID,
		&p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.Name, &author.Email, &author.Avatar,
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Color,
		&cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tagsRaw, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode post tags: %w", err)
	}
	p.Author = &author
	p.Category = &cat
	return &p, nil
}

// tagsJSON encodes a tag list for the jsonb column. A nil slice is stored
// as an empty array, not SQL NULL.
func tagsJSON(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode post tags: %w", err)
	}
	return b, nil
}

// List returns a page of posts, newest first, optionally filtered to a
// single category. Author and category are populated on every item.
func (s *PostStore) List(limit, offset int, categoryID *uuid.UUID) ([]models.Post, error) {
	query := `SELECT ` + postJoinedColumns + postJoins
	var args []any
	if categoryID != nil {
		query += ` WHERE p.category_id = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
		args = []any{*categoryID, limit, offset}
	} else {
		query += ` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Count returns the total number of posts, optionally filtered to a category.
func (s *PostStore) Count(categoryID *uuid.UUID) (int, error) {
	var count int
	var err error
	if categoryID != nil {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE category_id = $1`, *categoryID).Scan(&count)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// RecentByCategory returns up to limit posts in a category, newest first.
func (s *PostStore) RecentByCategory(categoryID uuid.UUID, limit int) ([]models.Post, error) {
	rows, err := s.db.Query(
		`SELECT `+postJoinedColumns+postJoins+`
		WHERE p.category_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2`, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent posts by category: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a post by ID with author and category populated.
// Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postJoinedColumns+postJoins+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by slug with author and category populated.
// Returns nil if not found.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postJoinedColumns+postJoins+` WHERE p.slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// IncrementViews bumps the view counter by one in a single atomic update
// and returns the new value. Returns sql.ErrNoRows wrapped if the post
// vanished between lookup and update.
func (s *PostStore) IncrementViews(id uuid.UUID) (int, error) {
	var views int
	err := s.db.QueryRow(`
		UPDATE posts SET view_count = view_count + 1 WHERE id = $1
		RETURNING view_count
	`, id).Scan(&views)
	if err != nil {
		return 0, fmt.Errorf("increment post views: %w", err)
	}
	return views, nil
}

// Create inserts a new post and returns it fully populated.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	tags, err := tagsJSON(p.Tags)
	if err != nil {
		return nil, err
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO posts (title, slug, content, excerpt, featured_image,
		                   tags, is_published, author_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage,
		tags, p.IsPublished, p.AuthorID, p.CategoryID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an existing post and returns the updated row fully
// populated. Returns nil if the post no longer exists.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	tags, err := tagsJSON(p.Tags)
	if err != nil {
		return nil, err
	}

	res, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4,
			featured_image = $5, tags = $6, is_published = $7,
			category_id = $8, updated_at = NOW()
		WHERE id = $9
	`, p.Title, p.Slug, p.Content, p.Excerpt,
		p.FeaturedImage, tags, p.IsPublished, p.CategoryID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update post rows: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.FindByID(p.ID)
}

// Delete removes a post by ID. Its comments go with it via the cascading
// foreign key, in the same statement. Returns true when a row was deleted.
func (s *PostStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post rows: %w", err)
	}
	return n > 0, nil
}

// AddComment appends a comment to a post and returns it with the
// commenting user populated.
func (s *PostStore) AddComment(postID, userID uuid.UUID, content string) (*models.Comment, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`, postID, userID, content).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	row := s.db.QueryRow(`
		SELECT cm.id, cm.post_id, cm.user_id, cm.content, cm.created_at,
		       u.id, u.name, u.email, u.avatar
		FROM comments cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.id = $1
	`, id)
	return scanComment(row)
}

// Comments returns all comments for a post in append order, each with the
// commenting user populated.
func (s *PostStore) Comments(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT cm.id, cm.post_id, cm.user_id, cm.content, cm.created_at,
		       u.id, u.name, u.email, u.avatar
		FROM comments cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.post_id = $1
		ORDER BY cm.created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		cm, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *cm)
	}
	return items, rows.Err()
}

// scanComment scans a comment row joined with its user.
func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var (
		cm   models.Comment
		user models.Author
	)
	err := scanner.Scan(
		&cm.ID, &cm.PostID, &cm.UserID, &cm.Content, &cm.CreatedAt,
		&user.ID, &user.Name, &user.Email, &user.Avatar,
	)
	if err != nil {
		return nil, err
	}
	cm.User = &user
	return &cm, nil
}
