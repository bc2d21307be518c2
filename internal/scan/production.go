package scan

import "github.com/MOYARU/pubguard/internal/report"

// Production walks the tree and flags configuration pointing at live
// trading rather than the sandbox. Same traversal and exclusions as the
// secret pass; the placeholder allowlist does not apply here.
func Production(root string) ([]report.Finding, []report.TraversalError) {
	var findings []report.Finding
	errs := walkTree(root, func(path, rel string) error {
		fs, err := scanFile(path, rel, productionCatalog)
		if err != nil {
			return err
		}
		findings = append(findings, fs...)
		return nil
	})
	return findings, errs
}
