package comment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anshkapoor/gramly/internal/models"
	"github.com/anshkapoor/gramly/internal/moderation"
	"github.com/anshkapoor/gramly/internal/queue"
)

// Service persists comments on posts and reels. Every comment passes
// through the moderation pipeline before INSERT; the verdict is stored as
// is_hidden + moderation_reason. A classifier failure never blocks the
// insert (the pipeline is fail-open and always yields a verdict).
type Service struct {
	db    *pgxpool.Pool
	mod   *moderation.Service
	queue *queue.Client // nil disables rescan scheduling
}

func NewService(db *pgxpool.Pool, mod *moderation.Service, q *queue.Client) *Service {
	return &Service{db: db, mod: mod, queue: q}
}

func (s *Service) ListForPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	return s.list(ctx, "comments", "post_id", postID)
}

func (s *Service) ListForReel(ctx context.Context, reelID uuid.UUID) ([]models.Comment, error) {
	return s.list(ctx, "reel_comments", "reel_id", reelID)
}

func (s *Service) CreateForPost(ctx context.Context, postID, userID uuid.UUID, content string) (*models.Comment, error) {
	return s.create(ctx, "comments", "post_id", queue.TargetPost, postID, userID, content)
}

func (s *Service) CreateForReel(ctx context.Context, reelID, userID uuid.UUID, content string) (*models.Comment, error) {
	return s.create(ctx, "reel_comments", "reel_id", queue.TargetReel, reelID, userID, content)
}

func (s *Service) list(ctx context.Context, table, parentCol string, parentID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(
		`SELECT c.id, c.%s, c.user_id, c.content, c.is_hidden, c.moderation_reason, c.created_at,
		        pr.id, pr.username, pr.display_name, pr.bio, pr.avatar_url, pr.created_at
		 FROM %s c
		 JOIN profiles pr ON pr.id = c.user_id
		 WHERE c.%s = $1
		 ORDER BY c.created_at ASC`, parentCol, table, parentCol),
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		var a models.Profile
		if err := rows.Scan(
			&c.ID, &c.ParentID, &c.UserID, &c.Content, &c.IsHidden, &c.ModerationReason, &c.CreatedAt,
			&a.ID, &a.Username, &a.DisplayName, &a.Bio, &a.AvatarURL, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.Author = &a
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *Service) create(ctx context.Context, table, parentCol, target string, parentID, userID uuid.UUID, content string) (*models.Comment, error) {
	res, err := s.mod.Screen(ctx, content)
	if err != nil {
		return nil, err // moderation.ErrInvalidComment
	}

	var reason *string
	if res.IsHarmful {
		reason = &res.Reason
	}

	var c models.Comment
	err = s.db.QueryRow(ctx, fmt.Sprintf(
		`INSERT INTO %s (%s, user_id, content, is_hidden, moderation_reason)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, %s, user_id, content, is_hidden, moderation_reason, created_at`,
		table, parentCol, parentCol),
		parentID, userID, content, res.IsHarmful, reason,
	).Scan(&c.ID, &c.ParentID, &c.UserID, &c.Content, &c.IsHidden, &c.ModerationReason, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	// The heuristic alone screened this comment; schedule an AI re-run.
	if !res.AIChecked && s.mod.AIEnabled() && s.queue != nil {
		if err := s.queue.EnqueueCommentRescan(queue.CommentRescanPayload{
			CommentID: c.ID.String(),
			Target:    target,
		}); err != nil {
			slog.Warn("failed to enqueue comment rescan", "comment_id", c.ID, "error", err)
		}
	}

	return &c, nil
}
