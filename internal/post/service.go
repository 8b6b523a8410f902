package post

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anshkapoor/gramly/internal/models"
)

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// Feed lists posts newest first with the author profile joined, the shape
// the feed page renders directly.
func (s *Service) Feed(ctx context.Context, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.user_id, p.image_url, p.caption, p.likes_count, p.created_at,
		        pr.id, pr.username, pr.display_name, pr.bio, pr.avatar_url, pr.created_at
		 FROM posts p
		 JOIN profiles pr ON pr.id = p.user_id
		 ORDER BY p.created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var a models.Profile
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ImageURL, &p.Caption, &p.LikesCount, &p.CreatedAt,
			&a.ID, &a.Username, &a.DisplayName, &a.Bio, &a.AvatarURL, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Author = &a
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

type CreateRequest struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*models.Post, error) {
	var p models.Post
	err := s.db.QueryRow(ctx,
		`INSERT INTO posts (user_id, image_url, caption)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, image_url, caption, likes_count, created_at`,
		userID, req.ImageURL, req.Caption,
	).Scan(&p.ID, &p.UserID, &p.ImageURL, &p.Caption, &p.LikesCount, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &p, nil
}

// Like is idempotent; liking twice neither errors nor double-counts.
func (s *Service) Like(ctx context.Context, postID, userID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		postID, userID,
	)
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}

	if tag.RowsAffected() > 0 {
		if _, err := tx.Exec(ctx, "UPDATE posts SET likes_count = likes_count + 1 WHERE id = $1", postID); err != nil {
			return fmt.Errorf("bump likes count: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Service) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2",
		postID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}

	if tag.RowsAffected() > 0 {
		if _, err := tx.Exec(ctx, "UPDATE posts SET likes_count = likes_count - 1 WHERE id = $1", postID); err != nil {
			return fmt.Errorf("drop likes count: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Service) Favorite(ctx context.Context, postID, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO favorites (user_id, post_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userID, postID,
	)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (s *Service) Unfavorite(ctx context.Context, postID, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM favorites WHERE user_id = $1 AND post_id = $2",
		userID, postID,
	)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

// Favorites lists the user's saved posts, newest save first.
func (s *Service) Favorites(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.user_id, p.image_url, p.caption, p.likes_count, p.created_at,
		        pr.id, pr.username, pr.display_name, pr.bio, pr.avatar_url, pr.created_at
		 FROM favorites f
		 JOIN posts p ON p.id = f.post_id
		 JOIN profiles pr ON pr.id = p.user_id
		 WHERE f.user_id = $1
		 ORDER BY f.created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var a models.Profile
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ImageURL, &p.Caption, &p.LikesCount, &p.CreatedAt,
			&a.ID, &a.Username, &a.DisplayName, &a.Bio, &a.AvatarURL, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		p.Author = &a
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
