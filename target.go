package doccrawler

// CrawlTarget identifies one seed URL within an ingestion session.
type CrawlTarget struct {
	// Name is a stable slug derived from the seed page's title, used to key
	// per-target state and scratch files.
	Name string

	// URL is the seed URL the crawl starts from.
	URL string
}

// Validate returns an error if the target contains invalid fields.
func (t *CrawlTarget) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "target name required")
	}
	if t.URL == "" {
		return Errorf(EINVALID, "target URL required")
	}
	return nil
}
