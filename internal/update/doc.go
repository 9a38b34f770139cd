// Package update checks a release feed for a newer build.
//
// The release feed is an Atom document. Only the first entry is read, and its
// title is taken as the latest version tag. A tag that differs from the
// running build's version string counts as an available update. Semantic
// version ordering is computed as a hint for display but does not gate the
// result.
//
// The package returns structured data (UpdateInfo) and plain errors. Deciding
// what to do with a failed check (the UI discards it) is left to the caller.
//
// Example usage:
//
//	checker := update.NewChecker(update.WithFeedURL(feedURL))
//	info, err := checker.Check(ctx, currentVersion)
//	if err != nil {
//	    // best effort: log and move on
//	}
//	if info.UpdateAvailable {
//	    // raise the update prompt
//	}
package update
