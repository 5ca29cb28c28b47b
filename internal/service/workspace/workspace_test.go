package workspace

import (
	"context"
	"errors"
	"strings"
	"testing"

	"loft/internal/domain"
	models "loft/internal/domain/models/workspace"
	wsSvc "loft/internal/domain/services/workspace"
)

func TestUpdateWorkspaceName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ws, err := env.workspaces.UpdateName(ctx, env.wsID, &wsSvc.UpdateWorkspaceNameRequest{
		UserID: testUserID,
		Name:   "  Renamed  ",
	})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if ws.Name != "Renamed" {
		t.Errorf("name = %q, want trimmed %q", ws.Name, "Renamed")
	}
}

func TestUpdateWorkspaceNameValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		newName string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too long", strings.Repeat("a", 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.workspaces.UpdateName(ctx, env.wsID, &wsSvc.UpdateWorkspaceNameRequest{
				UserID: testUserID,
				Name:   tt.newName,
			})
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestWorkspaceOwnershipGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.workspaces.GetWorkspace(ctx, otherUserID, env.wsID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("get err = %v, want ErrUnauthorized", err)
	}
	_, err := env.workspaces.UpdateName(ctx, env.wsID, &wsSvc.UpdateWorkspaceNameRequest{
		UserID: otherUserID,
		Name:   "Hijacked",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("rename err = %v, want ErrUnauthorized", err)
	}
	if env.store.workspaces[env.wsID].Name == "Hijacked" {
		t.Error("workspace renamed by unauthorized call")
	}
}

func TestWorkspaceAddChild(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ref := models.ChildRef{ID: "ext-1", Type: models.ChildKindFile, Title: "Upload"}
	ws, err := env.workspaces.AddChild(ctx, env.wsID, &wsSvc.AddChildRequest{
		UserID: testUserID,
		Child:  ref,
	})
	if err != nil {
		t.Fatalf("add child: %v", err)
	}
	if models.FindChild(ws.Children, "ext-1") < 0 {
		t.Error("added child missing from workspace children")
	}

	// A duplicate is a conflict.
	_, err = env.workspaces.AddChild(ctx, env.wsID, &wsSvc.AddChildRequest{
		UserID: testUserID,
		Child:  ref,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate err = %v, want ErrConflict", err)
	}
}

func TestWorkspaceAddChildValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		child models.ChildRef
	}{
		{"missing id", models.ChildRef{Type: models.ChildKindFolder, Title: "x"}},
		{"bad type", models.ChildRef{ID: "x-1", Type: "gadget", Title: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.workspaces.AddChild(ctx, env.wsID, &wsSvc.AddChildRequest{
				UserID: testUserID,
				Child:  tt.child,
			})
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
