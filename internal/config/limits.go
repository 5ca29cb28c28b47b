package config

const (
	// MaxTitleLength is the maximum length for folder, document and file
	// titles, and for workspace names. Limited to 255 to fit comfortably in
	// sidebar rendering and keep names short and descriptive.
	MaxTitleLength = 255

	// MaxCollaboratorsPerInvite bounds a single collaborator invitation
	// batch. The share dialog selects at most this many users; the server
	// enforces the same bound so the contract does not rest on the UI.
	MaxCollaboratorsPerInvite = 5

	// MaxContentLength is the maximum length of a serialized document
	// content blob. The editor ships the whole blob on every save, so this
	// doubles as the effective document size limit.
	MaxContentLength = 5 << 20
)
