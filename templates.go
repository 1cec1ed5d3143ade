package ileso

import (
	"io/fs"

	"github.com/goliatone/go-ileso/pkg/contract"
	"github.com/goliatone/go-ileso/pkg/renderers/web"
)

// EmbeddedTemplates exposes the HTML page templates so callers can copy or
// extend them without importing the web package.
func EmbeddedTemplates() fs.FS {
	return web.TemplatesFS()
}

// EmbeddedAssets exposes the stylesheet served by the web handler.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(ileso.EmbeddedAssets()),
//	  ),
//	)
func EmbeddedAssets() fs.FS {
	return web.AssetsFS()
}

// ContractDocument returns the embedded OpenAPI description of the
// prediction endpoint.
func ContractDocument() []byte {
	return contract.Raw()
}
