package folio

import "embed"

// EmbeddedAssets holds folio.js, the progressive-enhancement script served at
// /public/folio.js.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
