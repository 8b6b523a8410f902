package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anshkapoor/gramly/internal/moderation"
	"github.com/anshkapoor/gramly/internal/queue"
)

// RescanWorker re-runs the full moderation pipeline for comments that were
// screened heuristic-only. A verdict can only harden here: a comment already
// hidden is never un-hidden by a rescan.
type RescanWorker struct {
	db  *pgxpool.Pool
	mod *moderation.Service
}

func NewRescanWorker(db *pgxpool.Pool, mod *moderation.Service) *RescanWorker {
	return &RescanWorker{db: db, mod: mod}
}

func (w *RescanWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.CommentRescanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal rescan payload: %w", err)
	}

	table, err := tableFor(payload.Target)
	if err != nil {
		return err
	}

	var content string
	var isHidden bool
	err = w.db.QueryRow(ctx,
		fmt.Sprintf("SELECT content, is_hidden FROM %s WHERE id = $1", table),
		payload.CommentID,
	).Scan(&content, &isHidden)
	if err != nil {
		return fmt.Errorf("load %s %s: %w", payload.Target, payload.CommentID, err)
	}

	if isHidden {
		// Already hidden, nothing to harden.
		return nil
	}

	verdict, err := w.mod.Moderate(ctx, content)
	if err != nil {
		return fmt.Errorf("rescan %s %s: %w", payload.Target, payload.CommentID, err)
	}

	if !verdict.IsHarmful {
		return nil
	}

	_, err = w.db.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET is_hidden = true, moderation_reason = $1 WHERE id = $2", table),
		verdict.Reason, payload.CommentID,
	)
	if err != nil {
		return fmt.Errorf("hide %s %s: %w", payload.Target, payload.CommentID, err)
	}

	slog.Info("comment hidden on rescan",
		"target", payload.Target,
		"id", payload.CommentID,
		"reason", verdict.Reason,
	)
	return nil
}

func tableFor(target string) (string, error) {
	switch target {
	case queue.TargetPost:
		return "comments", nil
	case queue.TargetReel:
		return "reel_comments", nil
	case queue.TargetMessage:
		return "messages", nil
	default:
		return "", fmt.Errorf("unknown rescan target %q", target)
	}
}
