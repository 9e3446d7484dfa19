package assets

import (
	"strings"

	"github.com/atelieamado/backoffice-api/pkg/config"
)

// Folders inside the bucket, one per asset family. Product photos and stamp
// art live in different folders and must never be conflated.
const (
	FolderStock    = "Imagens/Estoque"
	FolderPrints   = "Imagens/Estampas"
	FolderProducts = "Imagens/Produtos"
)

// NoAsset is the sentinel returned when a record has no stored file name.
// Callers render a placeholder instead of a link.
const NoAsset = ""

// Resolver derives publicly addressable URLs from stored file-name
// fragments. It is pure: no network call is made to validate existence, so
// broken links are a display-time concern.
type Resolver struct {
	baseURL string
	bucket  string
}

// NewResolver builds a resolver from the storage configuration.
func NewResolver(cfg config.StorageConfig) Resolver {
	return Resolver{
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		bucket:  strings.Trim(cfg.Bucket, "/"),
	}
}

// PublicURL joins base, bucket, folder and fragment into a public URL.
// An empty fragment yields NoAsset rather than a dangling link.
func (r Resolver) PublicURL(folder, fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return NoAsset
	}
	parts := []string{r.baseURL, r.bucket, strings.Trim(folder, "/"), strings.TrimLeft(fragment, "/")}
	return strings.Join(parts, "/")
}

// StockImageURL resolves a stock item's product photo.
func (r Resolver) StockImageURL(fragment string) string {
	return r.PublicURL(FolderStock, fragment)
}

// PrintURL resolves a line item's stamp/art reference.
func (r Resolver) PrintURL(fragment string) string {
	return r.PublicURL(FolderPrints, fragment)
}
