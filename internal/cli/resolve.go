package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
)

// resolveMember accepts a full id, an id prefix, or an exact name or title.
func resolveMember(ctx context.Context, app *App, ref string) (*domain.Member, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("member is required")
	}
	m, err := app.Members.Resolve(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("member not found: %q", ref)
	}
	return m, err
}

// resolveSubmissionID accepts a full id or a prefix of a pending submission id.
func resolveSubmissionID(ctx context.Context, app *App, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", fmt.Errorf("submission ID is required")
	}
	if _, err := app.Submissions.GetByID(ctx, ref); err == nil {
		return ref, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	pending, err := app.Submissions.ListPending(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, s := range pending {
		if strings.HasPrefix(s.ID, strings.ToLower(ref)) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("submission not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("submission ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
