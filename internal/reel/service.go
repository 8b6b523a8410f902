package reel

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

func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Reel, error) {
	rows, err := s.db.Query(ctx,
		`SELECT r.id, r.user_id, r.video_url, r.caption, r.likes_count, r.created_at,
		        pr.id, pr.username, pr.display_name, pr.bio, pr.avatar_url, pr.created_at
		 FROM reels r
		 JOIN profiles pr ON pr.id = r.user_id
		 ORDER BY r.created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list reels: %w", err)
	}
	defer rows.Close()

	var reels []models.Reel
	for rows.Next() {
		var r models.Reel
		var a models.Profile
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.VideoURL, &r.Caption, &r.LikesCount, &r.CreatedAt,
			&a.ID, &a.Username, &a.DisplayName, &a.Bio, &a.AvatarURL, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reel: %w", err)
		}
		r.Author = &a
		reels = append(reels, r)
	}
	return reels, rows.Err()
}

type CreateRequest struct {
	VideoURL string `json:"video_url"`
	Caption  string `json:"caption"`
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*models.Reel, error) {
	var r models.Reel
	err := s.db.QueryRow(ctx,
		`INSERT INTO reels (user_id, video_url, caption)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, video_url, caption, likes_count, created_at`,
		userID, req.VideoURL, req.Caption,
	).Scan(&r.ID, &r.UserID, &r.VideoURL, &r.Caption, &r.LikesCount, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert reel: %w", err)
	}
	return &r, nil
}

func (s *Service) Like(ctx context.Context, reelID, userID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO reel_likes (reel_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		reelID, userID,
	)
	if err != nil {
		return fmt.Errorf("insert reel like: %w", err)
	}

	if tag.RowsAffected() > 0 {
		if _, err := tx.Exec(ctx, "UPDATE reels SET likes_count = likes_count + 1 WHERE id = $1", reelID); err != nil {
			return fmt.Errorf("bump likes count: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Service) Unlike(ctx context.Context, reelID, userID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"DELETE FROM reel_likes WHERE reel_id = $1 AND user_id = $2",
		reelID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete reel like: %w", err)
	}

	if tag.RowsAffected() > 0 {
		if _, err := tx.Exec(ctx, "UPDATE reels SET likes_count = likes_count - 1 WHERE id = $1", reelID); err != nil {
			return fmt.Errorf("drop likes count: %w", err)
		}
	}

	return tx.Commit(ctx)
}
