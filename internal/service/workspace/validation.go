package workspace

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"loft/internal/config"
	models "loft/internal/domain/models/workspace"
	wsSvc "loft/internal/domain/services/workspace"
)

// iconRemove is the sentinel icon value clients send to clear an icon.
const iconRemove = "remove"

func validateCreateFolderRequest(req *wsSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
		validation.Field(&req.Parent, validation.By(validParentRef)),
	)
}

func validateCreateDocumentRequest(req *wsSvc.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
		validation.Field(&req.Parent, validation.By(validParentRef)),
	)
}

func validateSaveFileRequest(req *wsSvc.SaveFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
		validation.Field(&req.URL, validation.Required, is.URL),
		validation.Field(&req.SizeMB, validation.Min(0.0)),
		validation.Field(&req.Parent, validation.By(validParentRef)),
	)
}

func validateRenameRequest(req *wsSvc.RenameRequest) error {
	// At least one field must be provided
	if req.Title == nil && req.Icon == nil {
		return fmt.Errorf("at least one of title or icon must be provided")
	}

	rules := []*validation.FieldRules{}
	if req.Title != nil {
		rules = append(rules,
			validation.Field(&req.Title,
				validation.Required,
				validation.Length(1, config.MaxTitleLength),
			),
		)
	}
	return validation.ValidateStruct(req, rules...)
}

func validateUpdateDocumentRequest(req *wsSvc.UpdateDocumentRequest) error {
	rules := []*validation.FieldRules{}
	if req.Title != nil {
		rules = append(rules,
			validation.Field(&req.Title,
				validation.Required,
				validation.Length(1, config.MaxTitleLength),
			),
		)
	}
	if req.Content != nil {
		rules = append(rules,
			validation.Field(&req.Content,
				validation.Length(0, config.MaxContentLength),
			),
		)
	}
	return validation.ValidateStruct(req, rules...)
}

func validateMoveRequest(req *wsSvc.MoveRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.NewParent, validation.By(validParentRef)),
	)
}

func validateAddCollaboratorsRequest(req *wsSvc.AddCollaboratorsRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TargetUserIDs,
			validation.Required,
			validation.Length(1, config.MaxCollaboratorsPerInvite),
			validation.Each(validation.Required),
		),
	)
}

func validParentRef(value interface{}) error {
	ref, ok := value.(models.ParentRef)
	if !ok {
		return fmt.Errorf("not a parent reference")
	}
	return ref.Validate()
}

// applyIcon folds an icon patch into the current icon value, honoring the
// "remove" sentinel.
func applyIcon(current, patch *string) *string {
	if patch == nil {
		return current
	}
	if *patch == iconRemove {
		return nil
	}
	return patch
}
