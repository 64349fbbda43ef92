package ingest

import "fmt"

// ImportRunningError is returned when a sync is requested for a triple whose
// checkpoint is still marked running. The scheduler treats it as expected
// and skips the pair.
type ImportRunningError struct {
	Organization  string
	Collection    string
	Subcollection string
}

func (e *ImportRunningError) Error() string {
	if e.Subcollection != "" {
		return fmt.Sprintf("import for %s/%s in org %s still pending", e.Collection, e.Subcollection, e.Organization)
	}
	return fmt.Sprintf("import for %s in org %s still pending", e.Collection, e.Organization)
}
