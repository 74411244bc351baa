package repository

import (
	"context"
	"database/sql"

	"github.com/lumapark/venue-booking/internal/model"
)

// PostRepo provides CRUD operations for blog posts managed through the
// admin CMS.  Bilingual fields use paired _tr/_en columns like the
// events table.
type PostRepo struct {
	db *sql.DB
}

// NewPostRepo returns a new PostRepo bound to the given database.
func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{db: db} }

const postColumns = `id, slug, title_tr, title_en, excerpt_tr, excerpt_en, body_tr, body_en,
	author_id, image_path, published, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (model.Post, error) {
	var (
		p         model.Post
		imagePath sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Slug,
		&p.Title.TR, &p.Title.EN,
		&p.Excerpt.TR, &p.Excerpt.EN,
		&p.Body.TR, &p.Body.EN,
		&p.AuthorID, &imagePath, &p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Post{}, err
	}
	p.ImagePath = imagePath.String
	return p, nil
}

// List returns posts newest first.  When publishedOnly is set, drafts
// are excluded (the public blog view); the admin list passes false.
func (r *PostRepo) List(ctx context.Context, publishedOnly bool) ([]model.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		q += ` WHERE published = 1`
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetByID returns one post.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.Post{}, ErrPostNotFound
	}
	return p, err
}

// Create inserts a post and populates its generated id.
func (r *PostRepo) Create(ctx context.Context, p *model.Post) error {
	const q = `INSERT INTO posts (slug, title_tr, title_en, excerpt_tr, excerpt_en, body_tr, body_en,
		author_id, image_path, published) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.Slug, p.Title.TR, p.Title.EN, p.Excerpt.TR, p.Excerpt.EN, p.Body.TR, p.Body.EN,
		p.AuthorID, nullStr(p.ImagePath), p.Published,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update rewrites a post in place.
func (r *PostRepo) Update(ctx context.Context, p *model.Post) error {
	const q = `UPDATE posts SET slug = ?, title_tr = ?, title_en = ?, excerpt_tr = ?, excerpt_en = ?,
		body_tr = ?, body_en = ?, author_id = ?, image_path = ?, published = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.Slug, p.Title.TR, p.Title.EN, p.Excerpt.TR, p.Excerpt.EN, p.Body.TR, p.Body.EN,
		p.AuthorID, nullStr(p.ImagePath), p.Published, p.ID,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE id = ?`, p.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrPostNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a post.
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPostNotFound
	}
	return nil
}

// AuthorRepo reads blog authors.  Authors are managed outside the CMS
// and only listed here.
type AuthorRepo struct {
	db *sql.DB
}

// NewAuthorRepo returns a new AuthorRepo bound to the given database.
func NewAuthorRepo(db *sql.DB) *AuthorRepo { return &AuthorRepo{db: db} }

// List returns every author.
func (r *AuthorRepo) List(ctx context.Context) ([]model.Author, error) {
	const q = `SELECT id, name, title, avatar_url FROM authors ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	authors := make([]model.Author, 0)
	for rows.Next() {
		var (
			a      model.Author
			title  sql.NullString
			avatar sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &title, &avatar); err != nil {
			return nil, err
		}
		a.Title = title.String
		a.AvatarURL = avatar.String
		authors = append(authors, a)
	}
	return authors, rows.Err()
}
