package templates

// TemplateData holds the data passed to template rendering.
type TemplateData struct {
	// FolderName is the module folder name.
	FolderName string

	// Title is the module title.
	Title string

	// Subtitle is optional; templates omit it when empty.
	Subtitle string

	// Author is the module author.
	Author string

	// Date is the creation date (YYYY-MM-DD).
	Date string
}

// GenerateOptions configures module generation.
type GenerateOptions struct {
	// ModulesDir is the directory the module folder is created in.
	ModulesDir string

	// FolderName is the new module folder.
	FolderName string

	// Title is the module title.
	Title string

	// Subtitle is an optional module subtitle.
	Subtitle string

	// Author defaults to metadata.DefaultAuthor.
	Author string
}

// GenerateResult contains the result of module generation.
type GenerateResult struct {
	// ModuleDir is the created module folder.
	ModuleDir string

	// Files is the list of files created, relative to ModuleDir.
	Files []string
}
