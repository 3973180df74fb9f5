package starterblog

import "embed"

// EmbeddedAssets contains the default stylesheet shipped with every site.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

const stylesheetName = "style.css"
