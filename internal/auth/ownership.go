package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blogapp/internal/model"
)

// ParseID normalizes a textual identifier (any case, braces or urn prefix) into a uuid.
// The nil uuid is rejected.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse id %q: %w", s, err)
	}
	if id == uuid.Nil {
		return uuid.Nil, errors.New("parse id: nil uuid")
	}
	return id, nil
}

// IsOwner reports whether userID authored post.
func IsOwner(post *model.Post, userID uuid.UUID) bool {
	if post == nil || userID == uuid.Nil {
		return false
	}
	return post.AuthorID == userID
}
