package cli

import (
	"context"
	"fmt"
	"strings"
)

// matchID resolves user input against a set of ids: exact match first, then
// unique prefix. Ambiguous prefixes and misses are errors.
func matchID(kind string, ids []string, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s id prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	tasks, err := app.Tasks.ListByProject(ctx, app.Config.Project, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return matchID("task", ids, input)
}

func resolveSprintID(ctx context.Context, app *App, input string) (string, error) {
	sprints, err := app.Sprints.ListByProject(ctx, app.Config.Project, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(sprints))
	for _, s := range sprints {
		ids = append(ids, s.ID)
	}
	return matchID("sprint", ids, input)
}

// resolveSessionID accepts either a session id or a sprint id (resolving to
// that sprint's session).
func resolveSessionID(ctx context.Context, app *App, input string) (string, error) {
	if session, err := app.Retro.GetSession(ctx, input); err == nil {
		return session.ID, nil
	}
	sprintID, err := resolveSprintID(ctx, app, input)
	if err != nil {
		return "", err
	}
	session, err := app.Retro.GetSessionBySprint(ctx, sprintID)
	if err != nil {
		return "", err
	}
	return session.ID, nil
}
