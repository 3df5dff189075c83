package reconcile

// Result partitions the manifest into files that were (or would be) added and files that
// were left alone. Paths are slash-separated and relative to the knowledge base root.
type Result struct {
	Added   []string `json:"added_files" yaml:"added_files"`
	Skipped []string `json:"skipped_files" yaml:"skipped_files"`
	DryRun  bool     `json:"dry_run" yaml:"dry_run"`
}

// FilesAdded is the number of added paths.
func (r *Result) FilesAdded() int { return len(r.Added) }

// FilesSkipped is the number of skipped paths.
func (r *Result) FilesSkipped() int { return len(r.Skipped) }

// UpToDate reports whether nothing needed to be added.
func (r *Result) UpToDate() bool { return len(r.Added) == 0 }

func (r *Result) add(p string)  { r.Added = append(r.Added, p) }
func (r *Result) skip(p string) { r.Skipped = append(r.Skipped, p) }
