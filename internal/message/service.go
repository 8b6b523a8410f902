package message

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

// Service handles direct messages. Outgoing messages run through the same
// moderation pipeline as comments; harmful ones are stored hidden. Delivery
// is plain request/response, no realtime channel.
type Service struct {
	db    *pgxpool.Pool
	mod   *moderation.Service
	queue *queue.Client
}

func NewService(db *pgxpool.Pool, mod *moderation.Service, q *queue.Client) *Service {
	return &Service{db: db, mod: mod, queue: q}
}

// Conversation returns the message history between two users, oldest first.
func (s *Service) Conversation(ctx context.Context, userID, peerID uuid.UUID, limit int) ([]models.Message, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, sender_id, recipient_id, content, is_hidden, moderation_reason, created_at
		 FROM messages
		 WHERE (sender_id = $1 AND recipient_id = $2)
		    OR (sender_id = $2 AND recipient_id = $1)
		 ORDER BY created_at ASC
		 LIMIT $3`,
		userID, peerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.IsHidden, &m.ModerationReason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *Service) Send(ctx context.Context, senderID, recipientID uuid.UUID, content string) (*models.Message, error) {
	res, err := s.mod.Screen(ctx, content)
	if err != nil {
		return nil, err
	}

	var reason *string
	if res.IsHarmful {
		reason = &res.Reason
	}

	var m models.Message
	err = s.db.QueryRow(ctx,
		`INSERT INTO messages (sender_id, recipient_id, content, is_hidden, moderation_reason)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, sender_id, recipient_id, content, is_hidden, moderation_reason, created_at`,
		senderID, recipientID, content, res.IsHarmful, reason,
	).Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.IsHidden, &m.ModerationReason, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	if !res.AIChecked && s.mod.AIEnabled() && s.queue != nil {
		if err := s.queue.EnqueueCommentRescan(queue.CommentRescanPayload{
			CommentID: m.ID.String(),
			Target:    queue.TargetMessage,
		}); err != nil {
			slog.Warn("failed to enqueue message rescan", "message_id", m.ID, "error", err)
		}
	}

	return &m, nil
}
