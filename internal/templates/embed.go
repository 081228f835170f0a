// Package templates scaffolds new course modules from embedded templates.
package templates

import "embed"

// moduleDir is the root of the module templates inside TemplateFS.
const moduleDir = "module"

// TemplateFS holds the module templates. Files ending in .tmpl are rendered
// with text/template and written without the suffix.
//
//go:embed module/*
var TemplateFS embed.FS
