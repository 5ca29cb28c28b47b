package workspace

import (
	"encoding/json"
	"fmt"

	models "loft/internal/domain/models/workspace"
)

// encodeChildren serializes a ChildRef list for a JSONB column. A nil slice
// becomes an empty JSON array so the column never holds NULL.
func encodeChildren(children []models.ChildRef) ([]byte, error) {
	if children == nil {
		children = []models.ChildRef{}
	}
	data, err := json.Marshal(children)
	if err != nil {
		return nil, fmt.Errorf("encode children: %w", err)
	}
	return data, nil
}

// decodeChildren deserializes a JSONB children column.
func decodeChildren(data []byte) ([]models.ChildRef, error) {
	if len(data) == 0 {
		return []models.ChildRef{}, nil
	}
	var children []models.ChildRef
	if err := json.Unmarshal(data, &children); err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}
	if children == nil {
		children = []models.ChildRef{}
	}
	return children, nil
}

// parentColumns splits a ParentRef into the two nullable parent id columns.
func parentColumns(p models.ParentRef) (parentWorkspaceID, parentFolderID *string) {
	switch p.Kind {
	case models.ParentKindWorkspace:
		id := p.ID
		return &id, nil
	case models.ParentKindFolder:
		id := p.ID
		return nil, &id
	}
	return nil, nil
}

// parentFromColumns rebuilds a ParentRef from the two nullable parent id
// columns. The one_parent CHECK guarantees exactly one is set.
func parentFromColumns(parentWorkspaceID, parentFolderID *string) models.ParentRef {
	if parentFolderID != nil {
		return models.FolderParent(*parentFolderID)
	}
	if parentWorkspaceID != nil {
		return models.WorkspaceParent(*parentWorkspaceID)
	}
	return models.ParentRef{}
}
