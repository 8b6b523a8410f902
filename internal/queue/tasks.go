package queue

const (
	TypeCommentRescan = "comment:rescan"
)

// Comment targets; reel comments and DMs live in their own tables.
const (
	TargetPost    = "post"
	TargetReel    = "reel"
	TargetMessage = "message"
)

// CommentRescanPayload schedules a moderation re-run for a comment that was
// classified heuristic-only because the AI step was unavailable.
type CommentRescanPayload struct {
	CommentID string `json:"comment_id"`
	Target    string `json:"target"`
}
