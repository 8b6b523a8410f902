package profile

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anshkapoor/gramly/internal/models"
	"github.com/anshkapoor/gramly/internal/storage"
)

type Service struct {
	db     *pgxpool.Pool
	store  storage.Storage
	bucket string
}

func NewService(db *pgxpool.Pool, store storage.Storage, bucket string) *Service {
	return &Service{db: db, store: store, bucket: bucket}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRow(ctx,
		`SELECT id, username, display_name, bio, avatar_url, created_at
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRow(ctx,
		`SELECT id, username, display_name, bio, avatar_url, created_at
		 FROM profiles WHERE username = $1`,
		username,
	).Scan(&p.ID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get profile by username: %w", err)
	}
	return &p, nil
}

type UpdateRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRow(ctx,
		`UPDATE profiles SET display_name = $1, bio = $2 WHERE id = $3
		 RETURNING id, username, display_name, bio, avatar_url, created_at`,
		req.DisplayName, req.Bio, id,
	).Scan(&p.ID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &p, nil
}

// UploadAvatar stores the image and records its public URL on the profile.
func (s *Service) UploadAvatar(ctx context.Context, id uuid.UUID, data io.Reader, contentType string) (string, error) {
	path := fmt.Sprintf("%s/avatar", id)
	if err := s.store.Upload(ctx, s.bucket, path, data, contentType); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	url := s.store.PublicURL(s.bucket, path)
	if _, err := s.db.Exec(ctx, "UPDATE profiles SET avatar_url = $1 WHERE id = $2", url, id); err != nil {
		return "", fmt.Errorf("record avatar URL: %w", err)
	}
	return url, nil
}

// PostsCount backs the profile page counter.
func (s *Service) PostsCount(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE user_id = $1", id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}
